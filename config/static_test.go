package config

import (
	"testing"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
)

const staticConfigParserTestConfig = `
LogConfig:
    LogLevel: 2
    LogPath: /var/lib/cybershield/logs
    LogToFile: true
Anomaly:
    Trees: 50
    MaxSamples: 128
    Contamination: 0.1
    Seed: 7
Filtering:
    NeverInclude: ["8.8.4.4/32", "10.0.0.1"]
`

var testConfigFullExp = StaticCfg{
	Log: LogStaticCfg{
		LogLevel:  2,
		LogPath:   "/var/lib/cybershield/logs",
		LogToFile: true,
	},
	Anomaly: AnomalyStaticCfg{
		Trees:         50,
		MaxSamples:    128,
		Contamination: 0.1,
		Seed:          7,
	},
	Filtering: FilteringStaticCfg{
		NeverInclude: []string{"8.8.4.4/32", "10.0.0.1"},
	},
}

// TestParseStaticConfig ensures that a yaml config
// string is correctly converted into a StaticCfg struct.
func TestParseStaticConfig(t *testing.T) {
	config := &StaticCfg{}
	err := parseStaticConfig([]byte(staticConfigParserTestConfig), config)

	// We are not testing the version setting ensure they are equal
	testConfigFullExp.Version = config.Version
	testConfigFullExp.ExactVersion = config.ExactVersion

	assert.Nil(t, err)
	assert.Equal(t, testConfigFullExp, *config)
}

// TestDefaultStaticConfig ensures that sections left out of a config
// file keep their default values
func TestDefaultStaticConfig(t *testing.T) {
	testConfig := `
LogConfig:
    LogLevel: 3
`
	config := &StaticCfg{}
	assert.Nil(t, defaults.Set(config))
	err := parseStaticConfig([]byte(testConfig), config)
	assert.Nil(t, err)

	assert.Equal(t, 3, config.Log.LogLevel)
	assert.Equal(t, "/var/lib/cybershield/logs", config.Log.LogPath)
	assert.Equal(t, 100, config.Anomaly.Trees)
	assert.Equal(t, 256, config.Anomaly.MaxSamples)
	assert.Equal(t, 0.2, config.Anomaly.Contamination)
	assert.Equal(t, int64(42), config.Anomaly.Seed)
	assert.Empty(t, config.Filtering.NeverInclude)
}

// TestFilePathCleaning ensures that paths specified
// in a config file are cleaned up correctly.
func TestFilePathCleaning(t *testing.T) {
	testConfig := `
LogConfig:
    LogPath: /var/lib/cybershield/incorrect/./../logs/
`
	config := &StaticCfg{}
	assert.Nil(t, defaults.Set(config))
	err := parseStaticConfig([]byte(testConfig), config)

	assert.Nil(t, err)
	assert.Equal(t, "/var/lib/cybershield/logs", config.Log.LogPath)
}

func TestInvalidAnomalyConfig(t *testing.T) {
	testCases := []struct {
		yaml string
		msg  string
	}{
		{"Anomaly:\n    Contamination: 0\n", "zero contamination should be rejected"},
		{"Anomaly:\n    Contamination: 0.75\n", "contamination above one half should be rejected"},
		{"Anomaly:\n    Trees: 0\n", "a forest needs at least one tree"},
		{"Anomaly:\n    MaxSamples: 1\n", "a tree needs at least two samples"},
	}

	for _, test := range testCases {
		config := &StaticCfg{}
		assert.Nil(t, defaults.Set(config))
		err := parseStaticConfig([]byte(test.yaml), config)
		assert.NotNil(t, err, test.msg)
	}
}
