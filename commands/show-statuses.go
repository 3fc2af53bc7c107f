package commands

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/activecm/cybershield/pkg/authlog"
	"github.com/activecm/cybershield/resources"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{

		Name:      "show-statuses",
		Usage:     "Print the status values found in authentication logs",
		ArgsUsage: "<log file or directory> [...]",
		Flags: []cli.Flag{
			humanFlag,
			configFlag,
		},
		Action: func(c *cli.Context) error {
			paths := c.Args()
			if len(paths) == 0 {
				return cli.NewExitError("Specify at least one log file or directory", -1)
			}

			res := resources.InitResources(getConfigFilePath(c))

			batch, err := loadBatch(res, paths)
			if err != nil {
				res.Log.Error(err)
				return cli.NewExitError(err.Error(), -1)
			}

			if len(batch) == 0 {
				return cli.NewExitError("No records were found", -1)
			}

			if c.Bool("human-readable") {
				err = showStatusesHuman(os.Stdout, batch)
			} else {
				err = showStatuses(os.Stdout, batch)
			}
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}
	bootstrapCommands(command)
}

func showStatuses(w io.Writer, batch authlog.LogBatch) error {
	counts := authlog.StatusCounts(batch)
	csvWriter := csv.NewWriter(w)
	csvWriter.Write([]string{"Status", "Records"})
	for _, status := range authlog.Statuses(batch) {
		csvWriter.Write([]string{status, i(int64(counts[status]))})
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func showStatusesHuman(w io.Writer, batch authlog.LogBatch) error {
	counts := authlog.StatusCounts(batch)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Status", "Records"})
	for _, status := range authlog.Statuses(batch) {
		table.Append([]string{status, i(int64(counts[status]))})
	}
	table.Render()
	return nil
}
