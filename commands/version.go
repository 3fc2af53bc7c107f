package commands

import (
	"fmt"

	"github.com/activecm/cybershield/config"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:   "version",
		Usage:  "Show the cybershield version and build",
		Flags:  []cli.Flag{configFlag},
		Action: showVersion,
	}

	bootstrapCommands(command)
}

func showVersion(c *cli.Context) error {
	conf, err := config.LoadConfig(getConfigFilePath(c))
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	fmt.Printf("%s (%s)\n", conf.R.Version.String(), conf.S.ExactVersion)
	return nil
}
