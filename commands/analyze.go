package commands

import (
	"io"
	"os"

	"github.com/activecm/cybershield/pkg/authlog"
	"github.com/activecm/cybershield/pkg/report"
	"github.com/activecm/cybershield/pkg/threat"
	"github.com/activecm/cybershield/resources"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func init() {
	analyzeCommand := cli.Command{
		Name:      "analyze",
		Usage:     "Score the source addresses of authentication logs",
		ArgsUsage: "<log file or directory> [...]",
		Flags: []cli.Flag{
			configFlag,
			humanFlag,
			statusFlag,
			cli.BoolFlag{
				Name:  "json",
				Usage: "Print the report as JSON",
			},
			cli.StringFlag{
				Name:  "output, o",
				Usage: "Write the report to `FILE` instead of standard out",
				Value: "",
			},
			cli.BoolFlag{
				Name:  "suspicious-only",
				Usage: "Only list addresses flagged as suspicious",
			},
		},
		Action: analyzeLogs,
	}

	bootstrapCommands(analyzeCommand)
}

type outputFormat int

const (
	formatCSV outputFormat = iota
	formatHuman
	formatJSON
)

func analyzeLogs(c *cli.Context) error {
	paths := c.Args()
	if len(paths) == 0 {
		return cli.NewExitError("Specify at least one log file or directory", -1)
	}

	format := formatCSV
	if c.Bool("human-readable") && c.Bool("json") {
		return cli.NewExitError("--human-readable and --json are incompatible", -1)
	} else if c.Bool("human-readable") {
		format = formatHuman
	} else if c.Bool("json") {
		format = formatJSON
	}

	res := resources.InitResources(getConfigFilePath(c))
	runLog := res.Log.WithFields(log.Fields{
		"run_id": uuid.New().String(),
	})
	runLog.WithFields(log.Fields{
		"paths": []string(paths),
	}).Info("Starting analysis")

	batch, err := loadBatch(res, paths)
	if err != nil {
		runLog.Error(err)
		return cli.NewExitError(err.Error(), -1)
	}

	statuses := statusFilter(c.StringSlice("status"))
	warnUnknownStatuses(runLog, batch, statuses)

	analyzer := threat.NewAnalyzer(res.Config, res.Log)
	threatReport := analyzer.AnalyzeBatch(batch, statuses)

	var out io.Writer = os.Stdout
	if outPath := c.String("output"); outPath != "" {
		outFile, err := os.Create(outPath)
		if err != nil {
			runLog.Error(err)
			return cli.NewExitError(err.Error(), -1)
		}
		defer outFile.Close()
		out = outFile
	}

	err = writeReport(out, threatReport, format, c.Bool("suspicious-only"))
	if err != nil {
		runLog.Error(err)
		return cli.NewExitError(err.Error(), -1)
	}

	runLog.WithFields(log.Fields{
		"entries":    len(threatReport.Entries),
		"suspicious": len(threatReport.Suspicious()),
	}).Info("Finished analysis")
	return nil
}

// writeReport prints the report in the requested format
func writeReport(w io.Writer, threatReport *report.ThreatReport, format outputFormat, suspiciousOnly bool) error {
	entries := threatReport.Entries
	if suspiciousOnly {
		entries = threatReport.Suspicious()
	}

	switch format {
	case formatJSON:
		return report.WriteJSON(w, threatReport, entries)
	case formatHuman:
		if err := report.WriteSummaryTable(w, threatReport); err != nil {
			return err
		}
		if len(threatReport.Entries) == 0 {
			_, err := io.WriteString(w, "No failed login attempts detected\n")
			return err
		}
		return report.WriteTable(w, entries)
	}
	return report.WriteCSV(w, entries)
}

// statusFilter maps an absent --status flag to nil, which keeps every
// observed status
func statusFilter(requested []string) []string {
	if len(requested) == 0 {
		return nil
	}
	return requested
}

// warnUnknownStatuses logs the requested statuses which no record carries
func warnUnknownStatuses(logger *log.Entry, batch authlog.LogBatch, statuses []string) {
	counts := authlog.StatusCounts(batch)
	for _, status := range statuses {
		if counts[status] == 0 {
			logger.WithFields(log.Fields{
				"status": status,
			}).Warn("No records carry the requested status")
		}
	}
}
