// Package display formats the count column and human-readable sizes.
package display

import (
	"fmt"
	"strconv"
)

// CountWidth is the width the count is right-justified to in count mode.
const CountWidth = 7

// AppendCount appends n right-justified in a field of [CountWidth]
// spaces. Wider numbers are appended in full, like "%7d".
func AppendCount(dst []byte, n int) []byte {
	var digits [20]byte
	d := strconv.AppendInt(digits[:0], int64(n), 10)
	for i := len(d); i < CountWidth; i++ {
		dst = append(dst, ' ')
	}
	return append(dst, d...)
}

// AppendCountRow appends "{count:>7} {line}" without a trailing newline.
func AppendCountRow(dst []byte, n int, line string) []byte {
	dst = AppendCount(dst, n)
	dst = append(dst, ' ')
	return append(dst, line...)
}

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}
