package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "captures")
	rec, err := Open(root, false)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		t.Fatalf("root not created: %v", err)
	}

	// Idempotent on an existing directory.
	if _, err := Open(root, false); err != nil {
		t.Fatalf("second Open error: %v", err)
	}
}

func TestOpenRejectsPlainFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "captures")
	if err := os.WriteFile(root, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Open(root, false); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("err=%v want ErrNotDirectory", err)
	}
}
