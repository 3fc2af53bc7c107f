package authlog

import (
	"fmt"
	"sort"
	"strings"
)

const (
	//ColumnTime holds the timestamp of the attempt
	ColumnTime = "time"
	//ColumnUser holds the account name
	ColumnUser = "user"
	//ColumnIP holds the source address
	ColumnIP = "ip"
	//ColumnStatus holds the outcome of the attempt
	ColumnStatus = "status"
)

//RequiredColumns lists the header names every upload must carry.
//Names are case sensitive.
var RequiredColumns = []string{ColumnTime, ColumnUser, ColumnIP, ColumnStatus}

type (
	//Table is decoded tabular input before validation
	Table struct {
		Source string
		Header []string
		Rows   [][]string
	}

	//SchemaError is returned when an upload is missing required columns.
	//The whole batch is rejected.
	SchemaError struct {
		Source  string
		Missing []string
	}
)

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("input must contain the columns %s; missing %s",
		strings.Join(RequiredColumns, ", "), strings.Join(e.Missing, ", "))
	if e.Source != "" {
		return e.Source + ": " + msg
	}
	return msg
}

//ValidateHeader checks that every required column is present.
//Extra columns are allowed.
func ValidateHeader(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, name := range header {
		present[name] = struct{}{}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return &SchemaError{Missing: missing}
	}
	return nil
}

//ParseTable validates the table header and maps each row onto a LogRecord.
//Cells beyond a short row are read as empty strings; no other row level
//checking is done.
func ParseTable(table *Table) (LogBatch, error) {
	if err := ValidateHeader(table.Header); err != nil {
		err.(*SchemaError).Source = table.Source
		return nil, err
	}

	index := make(map[string]int, len(table.Header))
	for i, name := range table.Header {
		// the first occurrence of a duplicated column wins
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	cell := func(row []string, column string) string {
		i := index[column]
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	batch := make(LogBatch, 0, len(table.Rows))
	for _, row := range table.Rows {
		batch = append(batch, LogRecord{
			Time:   cell(row, ColumnTime),
			User:   cell(row, ColumnUser),
			IP:     cell(row, ColumnIP),
			Status: cell(row, ColumnStatus),
		})
	}
	return batch, nil
}
