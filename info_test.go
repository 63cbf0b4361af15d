package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"httpsnare/console"
	"httpsnare/utils"
)

func TestColumnize(t *testing.T) {
	out := columnize([]string{"a.txt", "bb.txt", "ccc.txt", "d"}, 20)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows at width 20, got %q", out)
	}
	for _, name := range []string{"a.txt", "bb.txt", "ccc.txt", "d"} {
		if !strings.Contains(out, name) {
			t.Fatalf("missing %s in %q", name, out)
		}
	}
}

func TestColumnizeEmpty(t *testing.T) {
	if got := columnize(nil, 80); got != "" {
		t.Fatalf("expected empty listing, got %q", got)
	}
}

func TestColumnizeNarrow(t *testing.T) {
	out := columnize([]string{"averylongfilename.tar.gz", "b"}, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one name per row when names exceed the width, got %q", out)
	}
}

func TestInfoPanel(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "drop.bin"), []byte{1}, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r, err := utils.NewResolver()
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if _, err := r.Resolve(utils.Wildcard); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	cfg := defaultConfig()
	cfg.ServeDir = dir

	plain := infoPanel(r, cfg, false)
	if strings.Contains(plain, console.Divider) {
		t.Fatalf("rules suppressed: unexpected divider in %q", plain)
	}
	if !strings.Contains(plain, "drop.bin") {
		t.Fatalf("directory listing missing from %q", plain)
	}
	if !strings.Contains(plain, "Reachable on:") {
		t.Fatalf("address table missing from %q", plain)
	}

	ruled := infoPanel(r, cfg, true)
	if strings.Count(ruled, console.Divider) != 2 {
		t.Fatalf("expected leading and trailing rules in %q", ruled)
	}

	cfg.ServeDir = ""
	noServe := infoPanel(r, cfg, false)
	if strings.Contains(noServe, "Serving ") {
		t.Fatalf("serve section should be absent: %q", noServe)
	}
}
