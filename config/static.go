package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Log          LogStaticCfg       `yaml:"LogConfig"`
		Anomaly      AnomalyStaticCfg   `yaml:"Anomaly"`
		Filtering    FilteringStaticCfg `yaml:"Filtering"`
		Version      string             `yaml:"-"`
		ExactVersion string             `yaml:"-"`
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"1"`
		LogPath   string `yaml:"LogPath" default:"/var/lib/cybershield/logs"`
		LogToFile bool   `yaml:"LogToFile"`
	}

	//AnomalyStaticCfg controls the isolation forest used to flag
	//suspicious failure counts
	AnomalyStaticCfg struct {
		Trees         int     `yaml:"Trees" default:"100"`
		MaxSamples    int     `yaml:"MaxSamples" default:"256"`
		Contamination float64 `yaml:"Contamination" default:"0.2"`
		Seed          int64   `yaml:"Seed" default:"42"`
	}

	//FilteringStaticCfg controls which source addresses are dropped
	//before analysis
	FilteringStaticCfg struct {
		NeverInclude []string `yaml:"NeverInclude"`
	}
)

// loadStaticConfig attempts to parse a config file. An empty path
// yields the default configuration.
func loadStaticConfig(cfgPath string) (*StaticCfg, error) {
	var config = new(StaticCfg)

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	if cfgPath == "" {
		config.Version = Version
		config.ExactVersion = ExactVersion
		return config, nil
	}

	cfgFile, err := ioutil.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}

	if err := parseStaticConfig(cfgFile, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", cfgPath, err)
	}
	return config, nil
}

// parseStaticConfig deserializes yaml data into the given StaticCfg,
// expanding environment variables and cleaning paths afterwards
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	if err := yaml.Unmarshal(cfgFile, config); err != nil {
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	if config.Log.LogPath != "" {
		config.Log.LogPath = filepath.Clean(config.Log.LogPath)
	}

	if err := validateAnomalyConfig(&config.Anomaly); err != nil {
		return err
	}

	// grab the version constants set by the build process
	config.Version = Version
	config.ExactVersion = ExactVersion

	return nil
}

// validateAnomalyConfig rejects forest parameters the scorer cannot work with
func validateAnomalyConfig(config *AnomalyStaticCfg) error {
	if config.Contamination <= 0 || config.Contamination > 0.5 {
		return errors.New("Anomaly.Contamination must be in the range (0, 0.5]")
	}
	if config.Trees < 1 {
		return errors.New("Anomaly.Trees must be at least 1")
	}
	if config.MaxSamples < 2 {
		return errors.New("Anomaly.MaxSamples must be at least 2")
	}
	return nil
}
