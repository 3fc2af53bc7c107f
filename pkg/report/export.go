package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/activecm/cybershield/pkg/risk"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//CSVHeader names the columns of the exported report
var CSVHeader = []string{"ip", "fail_count", "risk_level", "anomaly"}

type (
	// entryView is the serialized form of an Entry
	entryView struct {
		IP        string `json:"ip"`
		FailCount int    `json:"fail_count"`
		RiskLevel string `json:"risk_level"`
		Anomaly   int    `json:"anomaly"`
	}

	// reportView is the serialized form of a ThreatReport
	reportView struct {
		Summary          Summary        `json:"summary"`
		RiskDistribution map[string]int `json:"risk_distribution"`
		Entries          []entryView    `json:"entries"`
	}
)

// helper functions for formatting integers
func i(i int) string {
	return strconv.Itoa(i)
}

//WriteCSV writes the entries as comma separated values. The anomaly
//column holds -1 for suspicious addresses and 1 for normal ones.
func WriteCSV(w io.Writer, entries []Entry) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(CSVHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		err := csvWriter.Write([]string{
			entry.IP,
			i(entry.FailCount),
			entry.Risk.String(),
			i(entry.Anomaly.Native()),
		})
		if err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

//WriteTable renders the entries as a human readable table
func WriteTable(w io.Writer, entries []Entry) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Source IP", "Failures", "Risk", "Anomaly"})
	for _, entry := range entries {
		table.Append([]string{
			entry.IP,
			i(entry.FailCount),
			entry.Risk.String(),
			entry.Anomaly.String(),
		})
	}
	table.Render()
	return nil
}

//WriteSummaryTable renders the summary counts and risk breakdown
//as a human readable table
func WriteSummaryTable(w io.Writer, r *ThreatReport) error {
	dist := r.RiskDistribution()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Total Logs", "Failed Logins", "Unique IPs",
		"Unique Users", "High", "Medium", "Low", "Suspicious"})
	table.Append([]string{
		i(r.Summary.TotalLogs),
		i(r.Summary.FailedLogs),
		i(r.Summary.UniqueIPs),
		i(r.Summary.UniqueUsers),
		i(dist[risk.High]),
		i(dist[risk.Medium]),
		i(dist[risk.Low]),
		i(len(r.Suspicious())),
	})
	table.Render()
	return nil
}

//WriteJSON writes the summary, risk breakdown and entries as one
//indented JSON document
func WriteJSON(w io.Writer, r *ThreatReport, entries []Entry) error {
	view := reportView{
		Summary:          r.Summary,
		RiskDistribution: make(map[string]int),
		Entries:          make([]entryView, len(entries)),
	}
	for tier, count := range r.RiskDistribution() {
		view.RiskDistribution[tier.String()] = count
	}
	for idx, entry := range entries {
		view.Entries[idx] = entryView{
			IP:        entry.IP,
			FailCount: entry.FailCount,
			RiskLevel: entry.Risk.String(),
			Anomaly:   entry.Anomaly.Native(),
		}
	}

	encoded, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')
	_, err = w.Write(encoded)
	return err
}
