package report

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// truncate shortens s to width runes, replacing the tail with "..." when it
// does not fit.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	keep := width - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string([]rune(s)[:keep]) + ellipsis
}

// padLeft right-aligns an already formatted string to width runes. painted
// is what gets printed; plain is used to measure it.
func padLeft(plain, painted string, width int) string {
	n := width - utf8.RuneCountInString(plain)
	if n <= 0 {
		return painted
	}
	return strings.Repeat(" ", n) + painted
}

// formatNumber prints v with the given number of decimals. A negative count
// selects the shortest representation that round-trips.
func formatNumber(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// formatScore renders "score/total".
func formatScore(score, total float64, decimals int) string {
	return formatNumber(score, decimals) + "/" + formatNumber(total, decimals)
}
