package util

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileExists(t *testing.T) {
	filePath := "./.jeinwei8380243unt4u"
	os.Remove(filePath)
	file, err := os.OpenFile(filePath, os.O_RDONLY|os.O_CREATE, 0666)
	assert.Nil(t, err)
	file.Close()
	exists, err := Exists(filePath)
	assert.Nil(t, err)
	assert.True(t, exists)
	os.Remove(filePath)
	exists, err = Exists(filePath)
	assert.Nil(t, err)
	assert.False(t, exists)

	currBinary, err := os.Executable()
	assert.Nil(t, err)
	badPath := path.Join(currBinary, "non-existant-file")

	_, err = Exists(badPath)
	assert.NotNil(t, err)
}

func TestIsDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "cybershield-util")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	filePath := path.Join(dir, "file.csv")
	assert.Nil(t, ioutil.WriteFile(filePath, []byte("time,user,ip,status\n"), 0644))

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(filePath))
	assert.False(t, IsDir(path.Join(dir, "missing")))
}

func TestMinMax(t *testing.T) {
	large := 100
	small := -100
	assert.Equal(t, large, Max(large, small))
	assert.Equal(t, large, Max(small, large))
	assert.Equal(t, small, Min(large, small))
	assert.Equal(t, small, Min(small, large))
}
