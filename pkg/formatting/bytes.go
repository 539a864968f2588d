// Package formatting renders values for people: elapsed-time labels for
// validator activity and byte sizes for operator output.
package formatting

import (
	"math"
	"strconv"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes converts a byte count to a base-1024 string such as "1.5 MB".
// Negative precision is clamped to zero.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	f := float64(n)
	i := min(int(math.Floor(math.Log(f)/math.Log(1024))), len(units)-1)
	size := f / math.Pow(1024, float64(i))

	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}
