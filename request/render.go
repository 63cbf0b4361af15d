package request

import (
	"strings"
	"text/tabwriter"
)

// FormatPairs renders pairs as an aligned two-column table, or as plain
// "key: value" lines in accessible mode. Both the console and the capture
// layer use this rendering.
func FormatPairs(pairs []Pair, accessible bool) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	if accessible {
		for _, p := range pairs {
			b.WriteString(p.Key + ": " + p.Value + "\n")
		}
		return b.String()
	}
	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', 0)
	for _, p := range pairs {
		w.Write([]byte(p.Key + "\t" + p.Value + "\n"))
	}
	w.Flush()
	return b.String()
}
