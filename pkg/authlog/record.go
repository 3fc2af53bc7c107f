package authlog

const (
	//StatusLoginFail marks a failed authentication attempt
	StatusLoginFail = "LOGIN_FAIL"

	//StatusLoginSuccess marks a successful authentication attempt
	StatusLoginSuccess = "LOGIN_SUCCESS"
)

type (
	//LogRecord is a single parsed authentication log row.
	//Status values other than the known constants are kept verbatim.
	LogRecord struct {
		Time   string
		User   string
		IP     string
		Status string
	}

	//LogBatch is an ordered set of records as uploaded
	LogBatch []LogRecord
)

//Failed reports whether the record is a login failure
func (r LogRecord) Failed() bool {
	return r.Status == StatusLoginFail
}

//Statuses returns the distinct status values of the batch in first seen order
func Statuses(batch LogBatch) []string {
	seen := make(map[string]struct{})
	var statuses []string
	for _, record := range batch {
		if _, ok := seen[record.Status]; ok {
			continue
		}
		seen[record.Status] = struct{}{}
		statuses = append(statuses, record.Status)
	}
	return statuses
}

//StatusCounts returns the number of records carrying each status value
func StatusCounts(batch LogBatch) map[string]int {
	counts := make(map[string]int)
	for _, record := range batch {
		counts[record.Status]++
	}
	return counts
}

//FilterByStatus returns a new batch holding the records whose status
//is in the allowed set. The input batch is left untouched.
func FilterByStatus(batch LogBatch, allowed []string) LogBatch {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, status := range allowed {
		allowedSet[status] = struct{}{}
	}

	filtered := make(LogBatch, 0, len(batch))
	for _, record := range batch {
		if _, ok := allowedSet[record.Status]; ok {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

//Merge concatenates batches in order into a new batch
func Merge(batches ...LogBatch) LogBatch {
	size := 0
	for _, batch := range batches {
		size += len(batch)
	}
	merged := make(LogBatch, 0, size)
	for _, batch := range batches {
		merged = append(merged, batch...)
	}
	return merged
}
