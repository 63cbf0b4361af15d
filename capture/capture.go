// Package capture persists per-request artifacts under an output root. Each
// request gets one directory named after its sanitized request line, holding
// the headers, body, query parameters, and any uploaded files.
package capture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	billyutil "github.com/go-git/go-billy/v5/util"
	"golang.org/x/sys/unix"

	"httpsnare/request"
)

var (
	// ErrNotDirectory means the configured output root exists but is a file.
	ErrNotDirectory = errors.New("capture root exists and is not a directory")
	// ErrNotWritable means the output root cannot be written to.
	ErrNotWritable = errors.New("capture root is not writable")
)

// overflowLimit is the value length above which a body or query parameter is
// additionally written to its own file.
const overflowLimit = 50

// Recorder writes capture entries through a billy filesystem rooted at the
// output directory. A nil Recorder is valid and records nothing.
type Recorder struct {
	fs         billy.Filesystem
	accessible bool
}

// Open prepares the capture root: creates it if absent, and fails before the
// listener binds when it exists as a plain file or cannot be written.
func Open(root string, accessible bool) (*Recorder, error) {
	st, err := os.Stat(root)
	switch {
	case err == nil && !st.IsDir():
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	case err == nil:
		if unix.Access(root, unix.W_OK) != nil {
			return nil, fmt.Errorf("%s: %w", root, ErrNotWritable)
		}
	default:
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, err
		}
	}
	return New(osfs.New(root), accessible), nil
}

// New wraps an existing filesystem; tests hand in a memfs.
func New(fs billy.Filesystem, accessible bool) *Recorder {
	return &Recorder{fs: fs, accessible: accessible}
}

// Create writes one capture entry for s and reports whether anything was
// written. A colliding entry name (two requests sanitizing identically) is an
// error with no retry and no renaming; that trade-off keeps entry names
// predictable for the operator.
func (rec *Recorder) Create(s *request.Snapshot) (bool, error) {
	if rec == nil {
		return false, nil
	}
	name := DirName(s.RequestLine())
	if _, err := rec.fs.Stat(name); err == nil {
		return false, fmt.Errorf("capture entry %q already exists", name)
	}
	if err := rec.fs.MkdirAll(name, 0o755); err != nil {
		return false, err
	}

	if err := rec.writeText(name, "headers.txt", request.FormatPairs(s.Headers, rec.accessible)); err != nil {
		return false, err
	}
	switch s.BodyKind {
	case request.BodyDocument:
		data, err := json.MarshalIndent(s.Document, "", "  ")
		if err != nil {
			return false, err
		}
		if err := rec.writeText(name, "body.json", string(data)+"\n"); err != nil {
			return false, err
		}
	case request.BodyForm:
		if err := rec.writePairs(name, "body", s.Form); err != nil {
			return false, err
		}
	}
	if len(s.Query) > 0 {
		if err := rec.writePairs(name, "query-params", s.Query); err != nil {
			return false, err
		}
	}
	if err := rec.writeFiles(name, s.Files); err != nil {
		return false, err
	}
	return true, nil
}

func (rec *Recorder) writeText(dir, file, text string) error {
	return billyutil.WriteFile(rec.fs, rec.fs.Join(dir, file), []byte(text), 0o644)
}

// writePairs writes the key/value table plus one overflow file per value
// longer than overflowLimit, the key stripped to alphanumerics.
func (rec *Recorder) writePairs(dir, kind string, pairs []request.Pair) error {
	if err := rec.writeText(dir, kind+".txt", request.FormatPairs(pairs, rec.accessible)); err != nil {
		return err
	}
	for _, p := range pairs {
		if len(p.Value) <= overflowLimit {
			continue
		}
		file := fmt.Sprintf("%s-param-%s.txt", kind, sanitizeKey(p.Key))
		if err := rec.writeText(dir, file, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeFiles saves uploads under uploadedFiles/ by base name; same-named
// uploads in one request overwrite each other, last write wins.
func (rec *Recorder) writeFiles(dir string, files []request.File) error {
	if len(files) == 0 {
		return nil
	}
	sub := rec.fs.Join(dir, "uploadedFiles")
	if err := rec.fs.MkdirAll(sub, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		name := filepath.Base(f.Name)
		if name == "." || name == string(filepath.Separator) {
			continue
		}
		if err := billyutil.WriteFile(rec.fs, rec.fs.Join(sub, name), f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
