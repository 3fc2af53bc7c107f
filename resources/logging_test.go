package resources

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/activecm/cybershield/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerLevels(t *testing.T) {
	testCases := []struct {
		level int
		exp   log.Level
	}{
		{0, log.ErrorLevel},
		{1, log.WarnLevel},
		{2, log.InfoLevel},
		{3, log.DebugLevel},
	}

	for _, test := range testCases {
		logger, err := initLogger(&config.LogStaticCfg{LogLevel: test.level})
		require.NoError(t, err)
		assert.Equal(t, test.exp, logger.Level, "log level %d", test.level)
		assert.Empty(t, logger.Hooks)
	}
}

func TestInitLoggerToFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "cybershield-logs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	logger, err := initLogger(&config.LogStaticCfg{LogLevel: 2, LogPath: dir, LogToFile: true})
	require.NoError(t, err)
	logger.Out = ioutil.Discard

	logger.Info("written to the info file")

	runDirs, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, runDirs, 1)

	contents, err := ioutil.ReadFile(filepath.Join(dir, runDirs[0].Name(), "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(contents), "written to the info file")
}

func TestInitTestResources(t *testing.T) {
	res := InitTestResources(t)
	assert.NotNil(t, res.Config)
	assert.Equal(t, log.DebugLevel, res.Log.Level)
}
