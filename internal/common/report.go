package common

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"payments-engine-go/internal/ledger"
)

const (
	// Default separator width for console reports
	DefaultWidth = 80
)

// WriteSeparator writes a separator line with the specified character and width
func WriteSeparator(w io.Writer, char string, width int) {
	fmt.Fprintln(w, strings.Repeat(char, width))
}

// WriteHeader writes a formatted header with title and separators
func WriteHeader(w io.Writer, title string, width int) {
	fmt.Fprintln(w)
	WriteSeparator(w, "=", width)
	fmt.Fprintln(w, title)
	WriteSeparator(w, "=", width)
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// WriteRunSummary writes the per-run outcome counts, one line per rejection
// reason, sorted for stable output.
func WriteRunSummary(w io.Writer, stats ledger.Stats) {
	WriteHeader(w, "Processing summary", DefaultWidth)
	fmt.Fprintf(w, "Records read:     %d\n", stats.Read)
	fmt.Fprintf(w, "Records applied:  %d\n", stats.Applied)
	fmt.Fprintf(w, "Records rejected: %d\n", stats.Rejected)

	if stats.Rejected == 0 {
		return
	}

	reasons := make([]string, 0, len(stats.Reasons))
	for reason := range stats.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	fmt.Fprintln(w, "\nRejections by reason:")
	for i, reason := range reasons {
		isLast := i == len(reasons)-1
		fmt.Fprintf(w, "%s%-55s %d\n", BoxPrefix(isLast), reason, stats.Reasons[reason])
	}
}
