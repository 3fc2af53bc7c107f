package report

import (
	"github.com/activecm/cybershield/pkg/anomaly"
	"github.com/activecm/cybershield/pkg/authlog"
	"github.com/activecm/cybershield/pkg/failure"
	"github.com/activecm/cybershield/pkg/risk"
)

type (
	//Entry is the assessment of a single source address
	Entry struct {
		failure.Stat
		Risk    risk.Tier
		Anomaly anomaly.Label
	}

	//Summary holds batch wide counts over the status filtered records
	Summary struct {
		TotalLogs   int `json:"total_logs"`
		FailedLogs  int `json:"failed_logs"`
		UniqueIPs   int `json:"unique_ips"`
		UniqueUsers int `json:"unique_users"`
	}

	//ThreatReport is the result of one pipeline run
	ThreatReport struct {
		Entries []Entry
		Summary Summary
	}
)

//Assemble zips the per address stats, tiers and labels into a report.
//The three slices are aligned by position and keep the aggregator's
//order. The summary is computed over the status filtered batch.
func Assemble(batch authlog.LogBatch, stats []failure.Stat,
	tiers []risk.Tier, labels []anomaly.Label) *ThreatReport {

	entries := make([]Entry, len(stats))
	for i, stat := range stats {
		entries[i] = Entry{
			Stat:    stat,
			Risk:    tiers[i],
			Anomaly: labels[i],
		}
	}

	return &ThreatReport{
		Entries: entries,
		Summary: Summarize(batch),
	}
}

//Summarize counts the records, failures, addresses and users of a batch
func Summarize(batch authlog.LogBatch) Summary {
	ips := make(map[string]struct{})
	users := make(map[string]struct{})
	summary := Summary{TotalLogs: len(batch)}

	for _, record := range batch {
		if record.Failed() {
			summary.FailedLogs++
		}
		ips[record.IP] = struct{}{}
		users[record.User] = struct{}{}
	}

	summary.UniqueIPs = len(ips)
	summary.UniqueUsers = len(users)
	return summary
}

//RiskDistribution counts the entries in each risk tier
func (r *ThreatReport) RiskDistribution() map[risk.Tier]int {
	tiers := make([]risk.Tier, len(r.Entries))
	for i, entry := range r.Entries {
		tiers[i] = entry.Risk
	}
	return risk.Distribution(tiers)
}

//Suspicious returns the entries labeled as outliers, in report order
func (r *ThreatReport) Suspicious() []Entry {
	var suspicious []Entry
	for _, entry := range r.Entries {
		if entry.Anomaly == anomaly.Suspicious {
			suspicious = append(suspicious, entry)
		}
	}
	return suspicious
}
