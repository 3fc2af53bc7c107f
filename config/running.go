package config

import (
	"net"

	"github.com/activecm/cybershield/util"
	"github.com/blang/semver"
)

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		Filtering FilteringRunningCfg
		Version   semver.Version
	}

	//FilteringRunningCfg holds the parsed filtering subnets
	FilteringRunningCfg struct {
		NeverIncluded []*net.IPNet
	}
)

// initRunningConfig uses data in the static config to initialize
// the passed in running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	var err error

	running.Filtering.NeverIncluded, err = util.ParseSubnets(static.Filtering.NeverInclude)
	if err != nil {
		return err
	}

	running.Version, err = semver.ParseTolerant(static.Version)
	return err
}
