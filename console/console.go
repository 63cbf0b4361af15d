// Package console owns the shared terminal output path: one lock serializes
// every write and the color-state mutation behind it, so concurrently handled
// requests never interleave their multi-line blocks.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"httpsnare/request"
)

// Divider separates request blocks in verbose output.
var Divider = strings.Repeat("-", 72)

// Options are the display toggles, fixed after startup.
type Options struct {
	Verbose    bool
	Accessible bool
	NoColor    bool
}

// Console is the single shared writer. It is constructed once in main and
// passed to both the request handler and the operator-input loop; the mutex
// guards the writer and the color allocator together.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	colors *Allocator
	opts   Options
}

func New(w io.Writer, opts Options) *Console {
	if opts.Accessible {
		opts.NoColor = true
	}
	return &Console{w: w, colors: NewAllocator(), opts: opts}
}

// PrintRequest renders one request block under the lock: optional divider,
// the request line in a freshly allocated color, and in verbose mode the
// header/body/query detail plus the uploaded-file report. saved states
// whether capture persisted the request's files.
func (c *Console) PrintRequest(s *request.Snapshot, saved bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.opts.Verbose && !c.opts.Accessible {
		fmt.Fprintln(c.w, Divider)
	}
	line := s.RequestLine()
	if c.opts.NoColor {
		fmt.Fprintln(c.w, line)
	} else {
		rgb := c.colors.Next()
		color.RGB(int(rgb.R), int(rgb.G), int(rgb.B)).Fprintln(c.w, line)
	}
	if !c.opts.Verbose {
		return
	}

	if len(s.Headers) > 0 {
		fmt.Fprint(c.w, request.FormatPairs(s.Headers, c.opts.Accessible))
	}
	switch s.BodyKind {
	case request.BodyDocument:
		if data, err := json.MarshalIndent(s.Document, "", "  "); err == nil {
			fmt.Fprintln(c.w, string(data))
		}
	case request.BodyForm:
		fmt.Fprint(c.w, request.FormatPairs(s.Form, c.opts.Accessible))
	}
	if len(s.Query) > 0 {
		fmt.Fprintln(c.w, "Query parameters:")
		fmt.Fprint(c.w, request.FormatPairs(s.Query, c.opts.Accessible))
	}
	if n := len(s.Files); n > 0 {
		if saved {
			fmt.Fprintf(c.w, "%d uploaded file(s) saved to disk\n", n)
		} else {
			fmt.Fprintf(c.w, "%d uploaded file(s) received but not saved (no output directory)\n", n)
		}
	}
}

// Print writes s under the output lock. The operator info panel goes through
// here so it cannot interleave with request blocks.
func (c *Console) Print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.w, s)
}
