package config

import (
	"os"
	"os/user"
	"path/filepath"
	"reflect"
)

//Version is filled at compile time with the git version of cybershield
//Version is filled by "git describe --abbrev=0 --tags"
var Version = "v0.0.0-dev"

//ExactVersion is filled by "git describe --always --long --dirty --tags"
var ExactVersion = "undefined"

const (
	//userConfigPath is the config location relative to the user's home directory
	userConfigPath = ".cybershield/config.yaml"

	//globalConfigPath is the system wide config location
	globalConfigPath = "/etc/cybershield/config.yaml"
)

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// LoadConfig initializes a Config struct with values read
// from a config file. It takes a string for the path to the file.
// An empty path falls back to the user config, then the global config,
// then the built in defaults.
func LoadConfig(cfgPath string) (*Config, error) {
	config := &Config{}

	if cfgPath == "" {
		cfgPath = findConfigFile()
	}

	static, err := loadStaticConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	config.S = *static

	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}

	return config, nil
}

// findConfigFile returns the first config file which exists in order of
// precedence. An empty string means no config file was found.
func findConfigFile() string {
	if usr, err := user.Current(); err == nil {
		userPath := filepath.Join(usr.HomeDir, userConfigPath)
		if _, err := os.Stat(userPath); err == nil {
			return userPath
		}
	}

	if _, err := os.Stat(globalConfigPath); err == nil {
		return globalConfigPath
	}
	return ""
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
