// Package serialize walks a source tree and produces the layout lines and
// code text of a bundle.
package serialize

import (
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/filter"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/rs/zerolog"
)

// Options configure a serialization run
type Options struct {
	// Filter selects files and directories. A nil filter includes no file.
	Filter *filter.Filter
	// Exclude lists paths, in the same form as root-joined paths, that are
	// never included. Used to keep a bundle out of itself.
	Exclude []string
	// PruneEmptyDirs leaves out directories whose subtree has no included
	// file. The root is always listed.
	PruneEmptyDirs bool
}

// Result is the outcome of a serialization run
type Result struct {
	Layout []bundle.LayoutLine
	Code   string
	// Files holds the included relative paths in bundle order
	Files    []string
	Included int
	// Skipped holds entries left out on purpose, Errors entries that could
	// not be read.
	Skipped []types.Diagnostic
	Errors  []types.Diagnostic
}

// WriteTo renders the complete bundle text to w
func (r *Result) WriteTo(w io.Writer) error {
	return bundle.Render(w, r.Layout, r.Code)
}

// Text returns the complete bundle text
func (r *Result) Text() string {
	return bundle.RenderString(r.Layout, r.Code)
}

// section is the rendered part of one directory subtree
type section struct {
	lines []bundle.LayoutLine
	code  strings.Builder
	files []string
}

type walker struct {
	fs      types.FS
	filter  *filter.Filter
	exclude map[string]bool
	prune   bool
	res     *Result
	logger  zerolog.Logger
}

// Run serializes the tree under root. Per-file problems become diagnostics;
// only an unusable root is an error.
func Run(fsys types.FS, root string, opts Options) (*Result, error) {
	logger := logging.GetLogger("serialize").With().Str("root", root).Logger()
	done := logging.LogOperationStart(logger, "serialize")
	defer done()

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot access source directory %s", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "source %s is not a directory", root).
			WithDetail("path", root)
	}

	w := &walker{
		fs:      fsys,
		filter:  opts.Filter,
		exclude: make(map[string]bool),
		prune:   opts.PruneEmptyDirs,
		res:     &Result{},
		logger:  logger,
	}
	if w.filter == nil {
		w.filter = filter.New(nil, nil, nil)
	}
	for _, p := range opts.Exclude {
		w.exclude[filepath.Clean(p)] = true
	}

	logger.Info().Strs("suffixes", w.filter.Suffixes()).Msg("Serializing source tree")

	sec, err := w.dir(root, "", 0)
	if err != nil {
		return nil, err
	}

	w.res.Layout = sec.lines
	w.res.Code = sec.code.String()
	w.res.Files = sec.files
	w.res.Included = len(sec.files)

	logger.Info().
		Int("included", w.res.Included).
		Int("skipped", len(w.res.Skipped)).
		Int("errors", len(w.res.Errors)).
		Msg("Serialization complete")

	return w.res, nil
}

// dir renders one directory: its line, its matching files in name order,
// then its subdirectories in name order.
func (w *walker) dir(abs, rel string, depth int) (*section, error) {
	entries, err := w.fs.ReadDir(abs)
	if err != nil {
		if rel == "" {
			return nil, errors.Wrapf(err, errors.ErrUnreadableSource, "cannot list source directory %s", abs)
		}
		w.res.Errors = append(w.res.Errors,
			types.NewErrorDiagnostic(rel, errors.ErrUnreadableSource, "cannot list directory", err))
		w.logger.Warn().Err(err).Str("path", rel).Msg("Cannot list directory")
		return nil, nil
	}

	sec := &section{}
	if rel == "" {
		sec.lines = append(sec.lines, bundle.RootLine())
	} else {
		sec.lines = append(sec.lines, bundle.LayoutLine{Depth: depth, Kind: bundle.KindDirectory, Name: path.Base(rel)})
	}

	var subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		childRel := joinRel(rel, name)
		childAbs := filepath.Join(abs, name)

		if entry.Type()&fs.ModeSymlink != 0 {
			w.skip(childRel, types.ReasonSymlink)
			continue
		}
		if w.exclude[filepath.Clean(childAbs)] {
			w.skip(childRel, types.ReasonExcluded)
			continue
		}
		if err := bundle.ValidateName(name); err != nil {
			w.res.Errors = append(w.res.Errors,
				types.NewErrorDiagnostic(childRel, errors.ErrUnreadableSource, "name cannot be stored in a bundle", err))
			w.logger.Warn().Err(err).Str("path", childRel).Msg("Skipping entry with unsupported name")
			continue
		}
		if entry.IsDir() {
			subdirs = append(subdirs, name)
			continue
		}
		if !entry.Type().IsRegular() {
			w.skip(childRel, types.ReasonExcluded)
			continue
		}
		if reason := w.filter.File(name, childRel); reason != "" {
			w.skip(childRel, reason)
			continue
		}

		content, ok := w.read(childAbs, childRel)
		if !ok {
			continue
		}
		sec.lines = append(sec.lines, bundle.LayoutLine{Depth: depth + 1, Kind: bundle.KindFile, Name: name})
		bundle.AppendBlock(&sec.code, childRel, content)
		sec.files = append(sec.files, childRel)
		w.logger.Debug().Str("path", childRel).Int("bytes", len(content)).Msg("Included file")
	}

	for _, name := range subdirs {
		childRel := joinRel(rel, name)
		if reason := w.filter.Dir(name, childRel); reason != "" {
			w.skip(childRel, reason)
			continue
		}
		child, err := w.dir(filepath.Join(abs, name), childRel, depth+1)
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		if w.prune && len(child.files) == 0 {
			w.skip(childRel, types.ReasonEmpty)
			continue
		}
		sec.lines = append(sec.lines, child.lines...)
		sec.code.WriteString(child.code.String())
		sec.files = append(sec.files, child.files...)
	}

	return sec, nil
}

// read returns file content when it is readable UTF-8 text
func (w *walker) read(abs, rel string) (string, bool) {
	data, err := w.fs.ReadFile(abs)
	if err != nil {
		w.res.Errors = append(w.res.Errors,
			types.NewErrorDiagnostic(rel, errors.ErrUnreadableSource, "cannot read file", err))
		w.logger.Warn().Err(err).Str("path", rel).Msg("Skipping unreadable file")
		return "", false
	}
	if !utf8.Valid(data) {
		w.res.Errors = append(w.res.Errors,
			types.NewErrorDiagnostic(rel, errors.ErrUnreadableSource, "not valid UTF-8 text", nil))
		w.logger.Warn().Str("path", rel).Msg("Skipping non-text file")
		return "", false
	}
	return string(data), true
}

func (w *walker) skip(rel, reason string) {
	w.res.Skipped = append(w.res.Skipped, types.Diagnostic{Path: rel, Reason: reason})
	w.logger.Trace().Str("path", rel).Str("reason", reason).Msg("Skipped")
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}
