package threat

import (
	"net"

	"github.com/activecm/cybershield/config"
	"github.com/activecm/cybershield/pkg/anomaly"
	"github.com/activecm/cybershield/pkg/authlog"
	"github.com/activecm/cybershield/pkg/failure"
	"github.com/activecm/cybershield/pkg/report"
	"github.com/activecm/cybershield/pkg/risk"
	"github.com/activecm/cybershield/util"
	log "github.com/sirupsen/logrus"
)

type (
	//Analyzer runs the scoring pipeline over authentication log batches.
	//It holds no per run state and may be shared between goroutines
	//working on independent batches.
	Analyzer struct {
		detector      *anomaly.Detector
		neverIncluded []*net.IPNet
		log           *log.Logger
	}
)

//NewAnalyzer creates an Analyzer whose isolation forest and address
//filter come from the given configuration
func NewAnalyzer(conf *config.Config, logger *log.Logger) *Analyzer {
	forest := &anomaly.IsolationForest{
		Trees:         conf.S.Anomaly.Trees,
		MaxSamples:    conf.S.Anomaly.MaxSamples,
		Contamination: conf.S.Anomaly.Contamination,
		Seed:          conf.S.Anomaly.Seed,
	}
	return NewAnalyzerWithScorer(forest, conf.R.Filtering.NeverIncluded, logger)
}

//NewAnalyzerWithScorer creates an Analyzer with a custom anomaly scorer
func NewAnalyzerWithScorer(scorer anomaly.Scorer, neverIncluded []*net.IPNet, logger *log.Logger) *Analyzer {
	return &Analyzer{
		detector:      anomaly.NewDetector(scorer),
		neverIncluded: neverIncluded,
		log:           logger,
	}
}

//Analyze validates the table and scores it. A nil status list keeps
//every status observed in the table. A table missing required
//columns is rejected with an *authlog.SchemaError.
func (a *Analyzer) Analyze(table *authlog.Table, statuses []string) (*report.ThreatReport, error) {
	batch, err := authlog.ParseTable(table)
	if err != nil {
		a.log.WithFields(log.Fields{
			"source": table.Source,
			"error":  err.Error(),
		}).Error("Rejected log table")
		return nil, err
	}
	return a.AnalyzeBatch(batch, statuses), nil
}

//AnalyzeBatch scores an already validated batch. A nil status list keeps
//every status observed in the batch; an empty non-nil list keeps nothing.
func (a *Analyzer) AnalyzeBatch(batch authlog.LogBatch, statuses []string) *report.ThreatReport {
	if statuses == nil {
		statuses = authlog.Statuses(batch)
	}

	filtered := authlog.FilterByStatus(batch, statuses)
	filtered = a.filterAddresses(filtered)

	stats := failure.Aggregate(filtered)

	tiers := make([]risk.Tier, len(stats))
	for i, stat := range stats {
		tiers[i] = risk.Classify(stat.FailCount)
	}

	labels := a.detector.Detect(stats)

	threatReport := report.Assemble(filtered, stats, tiers, labels)

	a.log.WithFields(log.Fields{
		"records":     len(batch),
		"filtered":    len(filtered),
		"statuses":    statuses,
		"failed_ips":  len(stats),
		"suspicious":  len(threatReport.Suspicious()),
		"failed_logs": threatReport.Summary.FailedLogs,
	}).Debug("Scored log batch")

	return threatReport
}

// filterAddresses drops records whose source address falls in a
// NeverInclude subnet. Records whose address does not parse are kept.
func (a *Analyzer) filterAddresses(batch authlog.LogBatch) authlog.LogBatch {
	if len(a.neverIncluded) == 0 {
		return batch
	}

	kept := make(authlog.LogBatch, 0, len(batch))
	dropped := 0
	for _, record := range batch {
		ip := net.ParseIP(record.IP)
		if ip != nil && util.ContainsIP(a.neverIncluded, ip) {
			dropped++
			continue
		}
		kept = append(kept, record)
	}

	if dropped > 0 {
		a.log.WithFields(log.Fields{
			"dropped": dropped,
		}).Info("Dropped records from never included subnets")
	}
	return kept
}
