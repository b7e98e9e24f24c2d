// Package reconstruct materializes a parsed bundle as a directory tree.
package reconstruct

import (
	"path/filepath"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/rs/zerolog"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Options configure a reconstruction run
type Options struct {
	bundle.ParseOptions

	// SkipEmptyDirs creates only the directories needed by files
	SkipEmptyDirs bool
	// Overwrite replaces files that already exist in the destination
	Overwrite bool
	// DryRun plans the run without touching the filesystem
	DryRun bool
}

// Result is the outcome of a reconstruction run. In a dry run Dirs and
// Created list what would have been written.
type Result struct {
	Version int
	// Paths holds every leaf path of the layout in order
	Paths   []string
	Dirs    []string
	Created []string
	// Failures are per-item problems; the run continued past each of them
	Failures []types.Diagnostic
	Orphans  []types.Diagnostic
	DryRun   bool
}

// Run parses bundle text and materializes it under dest. A malformed bundle
// is returned as an error before anything is written.
func Run(fsys types.FS, text, dest string, opts Options) (*Result, error) {
	doc, err := bundle.Parse(text, opts.ParseOptions)
	if err != nil {
		return nil, err
	}
	return Apply(fsys, doc, dest, opts)
}

// Apply materializes an already parsed bundle under dest. Leaves without a
// code block become empty files; orphan blocks never create files.
func Apply(fsys types.FS, doc *bundle.Document, dest string, opts Options) (*Result, error) {
	logger := logging.GetLogger("reconstruct").With().
		Str("dest", dest).
		Bool("dry_run", opts.DryRun).
		Logger()
	done := logging.LogOperationStart(logger, "reconstruct")
	defer done()

	res := &Result{
		Version: doc.Version,
		Paths:   doc.Leaves(),
		DryRun:  opts.DryRun,
	}

	for _, orphan := range doc.Orphans() {
		res.Orphans = append(res.Orphans, types.NewErrorDiagnostic(
			orphan, errors.ErrOrphanPath, "code block has no layout entry", nil))
		logger.Warn().Str("path", orphan).Msg("Ignoring orphan code block")
	}

	if !opts.DryRun {
		if err := fsys.MkdirAll(dest, dirPerm); err != nil {
			return nil, errors.Wrapf(err, errors.ErrWriteFailure, "cannot create destination %s", dest).
				WithDetail("path", dest)
		}
	}

	m := &materializer{fs: fsys, dest: dest, opts: opts, res: res, logger: logger}

	if !opts.SkipEmptyDirs {
		for _, dir := range doc.Dirs() {
			m.dir(dir)
		}
	}

	for _, leaf := range res.Paths {
		content, ok := doc.Content(leaf)
		if !ok {
			logger.Debug().Str("path", leaf).Msg("No code block, creating empty file")
		}
		m.file(leaf, content)
	}

	logger.Info().
		Int("files", len(res.Created)).
		Int("dirs", len(res.Dirs)).
		Int("failures", len(res.Failures)).
		Int("orphans", len(res.Orphans)).
		Msg("Reconstruction complete")

	return res, nil
}

type materializer struct {
	fs     types.FS
	dest   string
	opts   Options
	res    *Result
	logger zerolog.Logger
}

func (m *materializer) fail(rel string, err error) {
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		code = errors.ErrWriteFailure
	}
	m.res.Failures = append(m.res.Failures, types.NewErrorDiagnostic(rel, code, failureReason(code), err))
	m.logger.Error().Err(err).Str("path", rel).Msg("Cannot materialize path")
}

func failureReason(code errors.ErrorCode) string {
	if code == errors.ErrUnsafePath {
		return "path escapes destination"
	}
	return "cannot write"
}

func (m *materializer) dir(rel string) {
	target, err := paths.SafeJoin(m.dest, rel)
	if err != nil {
		m.fail(rel, err)
		return
	}

	if info, err := m.fs.Stat(target); err == nil {
		if !info.IsDir() {
			m.fail(rel, errors.Newf(errors.ErrWriteFailure, "%s exists and is not a directory", rel))
			return
		}
		m.res.Dirs = append(m.res.Dirs, rel)
		return
	}

	if !m.opts.DryRun {
		if err := m.fs.MkdirAll(target, dirPerm); err != nil {
			m.fail(rel, errors.Wrapf(err, errors.ErrWriteFailure, "cannot create directory %s", rel))
			return
		}
	}
	m.res.Dirs = append(m.res.Dirs, rel)
	m.logger.Debug().Str("path", rel).Msg("Created directory")
}

func (m *materializer) file(rel, content string) {
	target, err := paths.SafeJoin(m.dest, rel)
	if err != nil {
		m.fail(rel, err)
		return
	}

	if info, err := m.fs.Stat(target); err == nil {
		if info.IsDir() {
			m.fail(rel, errors.Newf(errors.ErrWriteFailure, "%s exists and is a directory", rel))
			return
		}
		if !m.opts.Overwrite {
			m.fail(rel, errors.Newf(errors.ErrWriteFailure, "%s already exists", rel).
				WithDetail("hint", "use --force to overwrite"))
			return
		}
	}

	if !m.opts.DryRun {
		if err := m.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
			m.fail(rel, errors.Wrapf(err, errors.ErrWriteFailure, "cannot create parent of %s", rel))
			return
		}
		if err := m.fs.WriteFile(target, []byte(content), filePerm); err != nil {
			m.fail(rel, errors.Wrapf(err, errors.ErrWriteFailure, "cannot write %s", rel))
			return
		}
	}
	m.res.Created = append(m.res.Created, rel)
	m.logger.Debug().Str("path", rel).Int("bytes", len(content)).Msg("Wrote file")
}
