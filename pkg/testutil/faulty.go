package testutil

import (
	"io/fs"
	"path"
	"sync"

	"github.com/arthur-debert/srcbundle/pkg/types"
)

// FaultyFS wraps a types.FS and fails operations on configured paths
type FaultyFS struct {
	types.FS

	mu         sync.RWMutex
	readErrors map[string]error
	writeErrs  map[string]error
}

// NewFaultyFS wraps fsys with no failures configured
func NewFaultyFS(fsys types.FS) *FaultyFS {
	return &FaultyFS{
		FS:         fsys,
		readErrors: make(map[string]error),
		writeErrs:  make(map[string]error),
	}
}

// WithReadError makes ReadFile of name fail with err
func (f *FaultyFS) WithReadError(name string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErrors[path.Clean(name)] = err
	return f
}

// WithWriteError makes WriteFile and MkdirAll of name fail with err
func (f *FaultyFS) WithWriteError(name string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErrs[path.Clean(name)] = err
	return f
}

func (f *FaultyFS) lookup(m map[string]error, name string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return m[path.Clean(name)]
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.lookup(f.readErrors, name); err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.lookup(f.writeErrs, name); err != nil {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) MkdirAll(name string, perm fs.FileMode) error {
	if err := f.lookup(f.writeErrs, name); err != nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: err}
	}
	return f.FS.MkdirAll(name, perm)
}
