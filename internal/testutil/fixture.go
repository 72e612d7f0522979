// Package testutil provides helpers for building locale fixtures on an
// afero filesystem and comparing command output against golden files.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

// WriteTree writes files (path -> contents) into fs, creating parent
// directories as needed. Paths are relative to root.
func WriteTree(t *testing.T, fs afero.Fs, root string, files map[string]string) {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(root, name)
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
		}
		if err := afero.WriteFile(fs, path, []byte(files[name]), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", path, err)
		}
	}
}

// ReadFile returns the contents of path, failing the test if it cannot be read.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

// AssertMissing fails the test if path exists in fs.
func AssertMissing(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatalf("Exists(%s): %v", path, err)
	}
	if ok {
		t.Errorf("%s exists, want it absent", path)
	}
}

// FailingFs wraps an afero.Fs and refuses to open or create the listed
// paths, which stands in for unreadable or read-only files.
type FailingFs struct {
	afero.Fs
	fail map[string]bool
}

// NewFailingFs returns fs with every name in failing made inaccessible.
func NewFailingFs(fs afero.Fs, failing ...string) *FailingFs {
	f := &FailingFs{Fs: fs, fail: make(map[string]bool, len(failing))}
	for _, name := range failing {
		f.fail[filepath.Clean(name)] = true
	}
	return f
}

func (f *FailingFs) denied(name string) bool {
	return f.fail[filepath.Clean(name)]
}

// Open implements afero.Fs.
func (f *FailingFs) Open(name string) (afero.File, error) {
	if f.denied(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Open(name)
}

// OpenFile implements afero.Fs.
func (f *FailingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if f.denied(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

// Create implements afero.Fs.
func (f *FailingFs) Create(name string) (afero.File, error) {
	if f.denied(name) {
		return nil, &os.PathError{Op: "create", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Create(name)
}

// MkdirAll implements afero.Fs.
func (f *FailingFs) MkdirAll(path string, perm os.FileMode) error {
	if f.denied(path) {
		return &os.PathError{Op: "mkdir", Path: path, Err: os.ErrPermission}
	}
	return f.Fs.MkdirAll(path, perm)
}
