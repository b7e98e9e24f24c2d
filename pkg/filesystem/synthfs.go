package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	sfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// synthFS reads through the OS and applies every write as a synthfs
// operation on the root filesystem
type synthFS struct {
	osFS
	target synthfs.FileSystem
	logger zerolog.Logger
}

// NewSynth creates the filesystem used by the CLI: reads go straight to the
// OS, directory and file creation run through a synthfs pipeline
func NewSynth() types.FS {
	return &synthFS{
		target: sfs.NewOSFileSystem("/"),
		logger: logging.GetLogger("filesystem.synthfs"),
	}
}

func (s *synthFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	abs, rel, err := s.relative(name)
	if err != nil {
		return err
	}

	// synthfs refuses to create over an existing file
	if info, err := os.Lstat(abs); err == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "write", Path: name, Err: syscall.EISDIR}
		}
		if err := os.Remove(abs); err != nil {
			return err
		}
	}

	op := operations.NewCreateFileOperation(core.OperationID("write-file-"+abs), rel)
	op.SetItem(&fileItem{path: rel, content: data, mode: perm})
	return s.run("write", name, synthfs.NewOperationsPackageAdapter(op))
}

func (s *synthFS) MkdirAll(path string, perm fs.FileMode) error {
	abs, _, err := s.relative(path)
	if err != nil {
		return err
	}

	// create each missing ancestor in turn, outermost first
	var missing []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return &fs.PathError{Op: "mkdir", Path: dir, Err: syscall.ENOTDIR}
			}
			break
		}
		missing = append(missing, dir)
		if dir == filepath.Dir(dir) {
			break
		}
	}

	for i := len(missing) - 1; i >= 0; i-- {
		rel := strings.TrimPrefix(missing[i], string(filepath.Separator))
		op := operations.NewCreateDirectoryOperation(core.OperationID("create-dir-"+missing[i]), rel)
		op.SetItem(&directoryItem{path: rel, mode: perm})
		if err := s.run("mkdir", missing[i], synthfs.NewOperationsPackageAdapter(op)); err != nil {
			return err
		}
	}
	return nil
}

// relative returns the absolute form of name and its path below "/"
func (s *synthFS) relative(name string) (string, string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", "", err
	}
	rel, err := filepath.Rel("/", abs)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert path %s: %w", abs, err)
	}
	return abs, rel, nil
}

func (s *synthFS) run(opName, path string, op synthfs.Operation) error {
	pipeline := synthfs.NewMemPipeline()
	if err := pipeline.Add(op); err != nil {
		return &fs.PathError{Op: opName, Path: path, Err: err}
	}

	result := synthfs.NewExecutor().Run(context.Background(), pipeline, s.target)
	if err := result.GetError(); err != nil {
		s.logger.Debug().Err(err).Str("op", opName).Str("path", path).Msg("synthfs operation failed")
		return &fs.PathError{Op: opName, Path: path, Err: err}
	}
	s.logger.Trace().Str("op", opName).Str("path", path).Msg("synthfs operation applied")
	return nil
}

// fileItem describes a file to create
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem describes a directory to create
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
