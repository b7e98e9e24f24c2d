// Package unpack implements the unpack command: rebuild a directory tree
// from a bundle file.
package unpack

import (
	"time"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/commands/internal"
	"github.com/arthur-debert/srcbundle/pkg/config"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/reconstruct"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Options defines the options for the Unpack command
type Options struct {
	FS     types.FS
	Bundle string
	Dest   string
	Unpack config.Unpack
	DryRun bool
	RunID  string
}

// Unpack materializes Bundle under Dest. A malformed bundle fails before
// anything is written; per-file problems are reported in the summary.
func Unpack(opts Options) (*display.UnpackSummary, error) {
	logger := logging.GetLogger("commands.unpack")
	logger.Debug().Str("command", "Unpack").Msg("Executing command")

	bundlePath, err := paths.Resolve(opts.Bundle)
	if err != nil {
		return nil, err
	}
	dest, err := paths.Resolve(opts.Dest)
	if err != nil {
		return nil, err
	}

	parseOpts := bundle.ParseOptions{Permissive: opts.Unpack.Permissive}
	_, doc, err := internal.ReadBundle(opts.FS, bundlePath, parseOpts)
	if err != nil {
		return nil, err
	}

	res, err := reconstruct.Apply(opts.FS, doc, dest, reconstruct.Options{
		ParseOptions:  parseOpts,
		SkipEmptyDirs: opts.Unpack.SkipEmptyDirs,
		Overwrite:     opts.Unpack.Overwrite,
		DryRun:        opts.DryRun,
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("command", "Unpack").Int("created", len(res.Created)).Msg("Command finished")
	return &display.UnpackSummary{
		RunID:     opts.RunID,
		Bundle:    bundlePath,
		Dest:      dest,
		Version:   res.Version,
		Created:   res.Created,
		Dirs:      res.Dirs,
		Failures:  res.Failures,
		Orphans:   res.Orphans,
		DryRun:    res.DryRun,
		Timestamp: time.Now(),
	}, nil
}
