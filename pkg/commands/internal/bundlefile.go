// Package internal holds file helpers shared by the command implementations
package internal

import (
	"path/filepath"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/types"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// ReadBundle loads and parses the bundle file at path
func ReadBundle(fsys types.FS, path string, opts bundle.ParseOptions) (string, *bundle.Document, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read bundle %s", path).
			WithDetail("path", path)
	}
	text := string(data)
	doc, err := bundle.Parse(text, opts)
	if err != nil {
		return "", nil, err
	}
	return text, doc, nil
}

// WriteOutput writes data to path, creating the parent directory
func WriteOutput(fsys types.FS, path string, data []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailure, "cannot create directory for %s", path).
			WithDetail("path", path)
	}
	if err := fsys.WriteFile(path, data, filePerm); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailure, "cannot write %s", path).
			WithDetail("path", path)
	}
	return nil
}

// ReplaceExt swaps the extension of path for ext
func ReplaceExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}
