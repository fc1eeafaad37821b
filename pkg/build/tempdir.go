package build

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
)

// DefaultTempPrefix names the temporary output directory of an inlining build.
const DefaultTempPrefix = "angular-cli-i18n-"

// TempOutputDir is a uniquely named directory owned by one build invocation.
// It is removed at most once, by Close.
type TempOutputDir struct {
	path string

	once     sync.Once
	removeFn func(string) error
	stop     chan struct{}
}

// NewTempOutputDir creates a directory named prefix+random under the real path of
// root. An empty root means os.TempDir().
func NewTempOutputDir(root, prefix string) (*TempOutputDir, error) {
	if root == "" {
		root = os.TempDir()
	}
	if prefix == "" {
		prefix = DefaultTempPrefix
	}
	real, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve temporary directory root %s: %w", root, err)
	}
	dir, err := os.MkdirTemp(real, prefix)
	if err != nil {
		return nil, fmt.Errorf("create temporary output directory: %w", err)
	}
	return &TempOutputDir{path: dir, removeFn: os.RemoveAll}, nil
}

// Path returns the directory path.
func (d *TempOutputDir) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Close removes the directory. It is safe to call more than once and from several
// goroutines; removal failures are ignored.
func (d *TempOutputDir) Close() error {
	if d == nil {
		return nil
	}
	d.once.Do(func() {
		if d.stop != nil {
			close(d.stop)
		}
		_ = d.removeFn(d.path)
	})
	return nil
}

// RemoveOnExit closes the directory and exits with status 1 when the process
// receives SIGINT or SIGTERM. Call it once, before the directory is handed to
// later build stages.
func (d *TempOutputDir) RemoveOnExit() {
	if d == nil || d.stop != nil {
		return
	}
	d.stop = make(chan struct{})
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func(stop <-chan struct{}) {
		defer signal.Stop(signals)
		select {
		case <-signals:
			_ = d.Close()
			os.Exit(1)
		case <-stop:
		}
	}(d.stop)
}
