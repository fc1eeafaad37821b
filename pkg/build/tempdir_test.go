package build

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewTempOutputDir(t *testing.T) {
	root := t.TempDir()
	dir, err := NewTempOutputDir(root, "")
	if err != nil {
		t.Fatalf("NewTempOutputDir() error = %v", err)
	}
	realRoot, _ := filepath.EvalSymlinks(root)
	if filepath.Dir(dir.Path()) != realRoot {
		t.Errorf("directory %s not created under %s", dir.Path(), realRoot)
	}
	if !strings.HasPrefix(filepath.Base(dir.Path()), DefaultTempPrefix) {
		t.Errorf("directory %s lacks prefix %s", dir.Path(), DefaultTempPrefix)
	}
	if info, err := os.Stat(dir.Path()); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	writeFile(t, filepath.Join(dir.Path(), "fr", "main.js"), "bundle")
	if err := dir.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(dir.Path()); !os.IsNotExist(err) {
		t.Fatalf("directory not removed: %v", err)
	}
}

func TestTempOutputDir_CloseOnceAndSwallowsErrors(t *testing.T) {
	calls := 0
	dir := &TempOutputDir{path: "/nowhere", removeFn: func(string) error {
		calls++
		return errors.New("permission denied")
	}}
	for i := 0; i < 3; i++ {
		if err := dir.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("remove called %d times, want 1", calls)
	}
}

func TestTempOutputDir_NilIsSafe(t *testing.T) {
	var dir *TempOutputDir
	if dir.Path() != "" || dir.Close() != nil {
		t.Fatal("nil directory must be inert")
	}
	dir.RemoveOnExit()
}

func TestTempOutputDir_RemoveOnExitStopsOnClose(t *testing.T) {
	dir, err := NewTempOutputDir(t.TempDir(), "i18n-test-")
	if err != nil {
		t.Fatalf("NewTempOutputDir() error = %v", err)
	}
	dir.RemoveOnExit()
	dir.RemoveOnExit()
	if err := dir.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(dir.Path()); !os.IsNotExist(err) {
		t.Fatalf("directory not removed: %v", err)
	}
}

func TestNewTempOutputDir_MissingRoot(t *testing.T) {
	if _, err := NewTempOutputDir(filepath.Join(t.TempDir(), "missing"), ""); err == nil {
		t.Fatal("expected error for a missing root")
	}
}
