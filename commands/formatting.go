package commands

import (
	"strconv"
)

// helper function for formatting integers
func i(i int64) string {
	return strconv.FormatInt(i, 10)
}
