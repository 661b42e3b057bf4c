// Package writer writes generated files only when their content changes.
//
// Every write can set off a dev-server reload, so a run that produces the
// same bytes as last time must leave the file alone.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phobologic/iconsheet/internal/console"
)

// FS is the filesystem capability the writer needs.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
}

// OS is the real filesystem. Writes go to a temporary file in the target
// directory and are renamed into place.
type OS struct {
	PermFile os.FileMode
	PermDir  os.FileMode
}

func (o OS) permFile() os.FileMode {
	if o.PermFile == 0 {
		return 0o644
	}
	return o.PermFile
}

func (o OS) permDir() os.FileMode {
	if o.PermDir == 0 {
		return 0o755
	}
	return o.PermDir
}

// ReadFile reads path.
func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MkdirAll creates path and any missing parents.
func (o OS) MkdirAll(path string) error {
	return os.MkdirAll(path, o.permDir())
}

// WriteFile replaces path atomically.
func (o OS) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(o.permFile()); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// Writer is a change-aware file writer.
type Writer struct {
	FS  FS
	Log *console.Logger
}

// New returns a Writer on the real filesystem.
func New(log *console.Logger) *Writer {
	return &Writer{FS: OS{}, Log: log}
}

// WriteIfChanged writes content to path unless the file already holds
// exactly those bytes. Any read failure, including a missing file, counts
// as changed. message is logged after a successful write.
func (w *Writer) WriteIfChanged(path, content, message string) (bool, error) {
	current, err := w.FS.ReadFile(path)
	if err == nil && bytes.Equal(current, []byte(content)) {
		return false, nil
	}
	if err := w.FS.WriteFile(path, []byte(content)); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	w.Log.Info("%s", message)
	return true, nil
}

// EnsureDir creates dir and its parents.
func (w *Writer) EnsureDir(dir string) error {
	if err := w.FS.MkdirAll(dir); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
