package main

import (
	"os"

	"github.com/activecm/cybershield/commands"
	"github.com/activecm/cybershield/config"
	"github.com/urfave/cli"
)

// Entry point of cybershield
func main() {
	app := cli.NewApp()
	app.Name = "cybershield"
	app.Usage = "Flag suspicious sources in authentication logs."

	// Change the version string with updates so that a quick help command will
	// let the testers know what version they're on
	app.Version = config.Version

	// Define commands used with this application
	app.Commands = commands.Commands()

	app.Run(os.Args)
}
