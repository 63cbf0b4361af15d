package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"httpsnare/console"
	"httpsnare/utils"
)

const listingWidth = 80

// infoPanel builds the operator information block: the served directory and
// its immediate contents when serving is enabled, and the interface/address
// table for the resolved bind address. rules adds the leading and trailing
// section rule.
func infoPanel(r *utils.Resolver, cfg Config, rules bool) string {
	var b strings.Builder
	if rules {
		b.WriteString(console.Divider + "\n")
	}
	if cfg.ServeDir != "" {
		abs, err := filepath.Abs(cfg.ServeDir)
		if err != nil {
			abs = cfg.ServeDir
		}
		b.WriteString("Serving " + abs + "\n")
		if entries, err := os.ReadDir(cfg.ServeDir); err == nil {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			b.WriteString(columnize(names, listingWidth))
		}
		b.WriteString("\n")
	}
	b.WriteString("Reachable on:\n")
	b.WriteString(addressTable(r))
	if rules {
		b.WriteString(console.Divider + "\n")
	}
	return b.String()
}

func addressTable(r *utils.Resolver) string {
	access := r.AccessAddresses()
	names := make([]string, 0, len(access))
	for name := range access {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 0, 2, ' ', 0)
	for _, name := range names {
		w.Write([]byte(name + "\t" + strings.Join(access[name], ", ") + "\n"))
	}
	w.Flush()
	return b.String()
}

// columnize lays names out ls-style, column-major, within the given width.
func columnize(names []string, width int) string {
	if len(names) == 0 {
		return ""
	}
	colw := 0
	for _, n := range names {
		if len(n) > colw {
			colw = len(n)
		}
	}
	colw += 2
	cols := width / colw
	if cols < 1 {
		cols = 1
	}
	rows := (len(names) + cols - 1) / cols

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := col*rows + row
			if i >= len(names) {
				continue
			}
			if (col+1)*rows+row < len(names) {
				b.WriteString(names[i] + strings.Repeat(" ", colw-len(names[i])))
			} else {
				b.WriteString(names[i])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
