// Package verify implements the verify command: check that a directory
// tree still holds what a bundle describes.
package verify

import (
	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/commands/internal"
	"github.com/arthur-debert/srcbundle/pkg/internal/hashutil"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Options defines the options for the Verify command
type Options struct {
	FS         types.FS
	Bundle     string
	Dir        string
	Permissive bool
}

// Verify compares every leaf of Bundle with the file of the same path under
// Dir. Version 1 content must match byte for byte; for legacy bundles file
// content is first normalized the way they store it, so a tree that was
// packed into the bundle verifies as well as one unpacked from it.
// Files under Dir that the bundle does not list are not reported.
func Verify(opts Options) (*display.VerifySummary, error) {
	log := logging.GetLogger("commands.verify")
	log.Debug().Str("command", "Verify").Msg("Executing command")

	bundlePath, err := paths.Resolve(opts.Bundle)
	if err != nil {
		return nil, err
	}
	dir, err := paths.Resolve(opts.Dir)
	if err != nil {
		return nil, err
	}
	_, doc, err := internal.ReadBundle(opts.FS, bundlePath, bundle.ParseOptions{Permissive: opts.Permissive})
	if err != nil {
		return nil, err
	}

	normalize := func(content string) string {
		return bundle.NormalizeContent(content, doc.Version)
	}

	result := &display.VerifySummary{Bundle: bundlePath, Dir: dir}
	for _, leaf := range doc.Leaves() {
		target, err := paths.SafeJoin(dir, leaf)
		if err != nil {
			log.Warn().Err(err).Str("path", leaf).Msg("Unsafe leaf path")
			result.Missing = append(result.Missing, leaf)
			continue
		}
		got, err := hashutil.FileChecksum(opts.FS, target, normalize)
		if err != nil {
			result.Missing = append(result.Missing, leaf)
			continue
		}

		content, _ := doc.Content(leaf)
		if want := hashutil.Checksum(content); got == want {
			result.Matched = append(result.Matched, leaf)
		} else {
			result.Changed = append(result.Changed, leaf)
			log.Debug().Str("path", leaf).Str("want", want).Str("got", got).Msg("Content differs")
		}
	}

	log.Info().
		Str("command", "Verify").
		Int("matched", len(result.Matched)).
		Int("changed", len(result.Changed)).
		Int("missing", len(result.Missing)).
		Msg("Command finished")
	return result, nil
}
