package commands

import (
	"errors"
	"os"
	"time"

	"github.com/activecm/cybershield/pkg/authlog"
	"github.com/activecm/cybershield/resources"
	"github.com/pbnjay/memory"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

// loadBatch reads every supported log file named on the command line and
// validates each one against the required columns. Files are merged into
// a single batch in the order given.
func loadBatch(res *resources.Resources, paths []string) (authlog.LogBatch, error) {
	files := authlog.GatherLogFiles(paths, res.Log)
	if len(files) == 0 {
		return nil, errors.New("no supported log files found (.csv, .json, .jsonl, .ndjson, optionally .gz or .zst)")
	}

	checkMemory(res.Log, files)

	// progress bar for multi file uploads
	var p *mpb.Progress
	var bar *mpb.Bar
	if len(files) > 1 {
		p = mpb.New(mpb.WithWidth(20), mpb.WithOutput(os.Stderr))
		bar = p.AddBar(int64(len(files)),
			mpb.PrependDecorators(
				decor.Name("\t[-] Reading Logs:", decor.WC{W: 30, C: decor.DidentRight}),
				decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	var firstErr error
	batches := make([]authlog.LogBatch, 0, len(files))
	for _, path := range files {
		start := time.Now()

		if firstErr == nil {
			batch, err := readLogFile(res.Log, path)
			if err != nil {
				firstErr = err
			} else {
				batches = append(batches, batch)
			}
		}

		if bar != nil {
			bar.IncrBy(1, time.Since(start))
		}
	}
	if p != nil {
		p.Wait()
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return authlog.Merge(batches...), nil
}

// readLogFile decodes and validates a single log file
func readLogFile(logger *log.Logger, path string) (authlog.LogBatch, error) {
	table, err := authlog.ReadFile(path)
	if err != nil {
		return nil, err
	}

	batch, err := authlog.ParseTable(table)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"path":    path,
		"columns": len(table.Header),
		"records": len(batch),
	}).Debug("Read log file")
	return batch, nil
}

// checkMemory warns when the input is large compared to the physical
// memory of the machine. Every record is held in memory for the run.
func checkMemory(logger *log.Logger, files []string) {
	var size int64
	for _, path := range files {
		if info, err := os.Stat(path); err == nil {
			size += info.Size()
		}
	}

	total := memory.TotalMemory()
	if total > 0 && uint64(size) > total/2 {
		logger.WithFields(log.Fields{
			"input_bytes":  size,
			"memory_bytes": total,
		}).Warn("Input files are larger than half of the system memory; compressed files grow further once read")
	}
}
