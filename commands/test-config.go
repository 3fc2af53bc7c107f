package commands

import (
	"fmt"
	"os"

	"github.com/activecm/cybershield/config"
	"github.com/activecm/cybershield/resources"

	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

func init() {
	command := cli.Command{
		Flags: []cli.Flag{
			configFlag,
		},
		Name:   "test-config",
		Usage:  "Check the configuration file for validity",
		Action: testConfiguration,
	}

	bootstrapCommands(command)
}

// testConfiguration prints out the result of parsing the config file
func testConfiguration(c *cli.Context) error {
	// First, print out the config as it was parsed
	conf, err := config.LoadConfig(getConfigFilePath(c))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to load config: %s", err.Error()), -1)
	}

	staticConfig, err := yaml.Marshal(conf.S)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", string(staticConfig))

	// Then test initializing external resources like the log file handles
	resources.InitResources(getConfigFilePath(c))

	return nil
}
