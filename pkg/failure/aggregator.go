package failure

import (
	"sort"

	"github.com/activecm/cybershield/pkg/authlog"
)

//Stat holds the number of failed logins attributed to one source address
type Stat struct {
	IP        string
	FailCount int
}

//Aggregate groups the LOGIN_FAIL records of a batch by source address.
//The result is ordered by descending fail count, then ascending address.
//A batch without failures yields an empty slice.
func Aggregate(batch authlog.LogBatch) []Stat {
	counts := make(map[string]int)
	for _, record := range batch {
		if record.Failed() {
			counts[record.IP]++
		}
	}

	stats := make([]Stat, 0, len(counts))
	for ip, count := range counts {
		stats = append(stats, Stat{IP: ip, FailCount: count})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].FailCount != stats[j].FailCount {
			return stats[i].FailCount > stats[j].FailCount
		}
		return stats[i].IP < stats[j].IP
	})
	return stats
}

//Counts returns the fail counts of the stats as a feature vector
func Counts(stats []Stat) []float64 {
	values := make([]float64, len(stats))
	for i, stat := range stats {
		values[i] = float64(stat.FailCount)
	}
	return values
}

//Total sums the fail counts of the stats
func Total(stats []Stat) int {
	total := 0
	for _, stat := range stats {
		total += stat.FailCount
	}
	return total
}
