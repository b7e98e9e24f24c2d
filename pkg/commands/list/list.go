// Package list implements the list command: describe what a bundle holds
// without writing anything.
package list

import (
	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/commands/internal"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Options defines the options for the List command
type Options struct {
	FS         types.FS
	Bundle     string
	Permissive bool
}

// List parses Bundle and reports its leaf paths, directories, leaves
// without a code block and orphan blocks.
func List(opts Options) (*display.ListSummary, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Msg("Executing command")

	bundlePath, err := paths.Resolve(opts.Bundle)
	if err != nil {
		return nil, err
	}
	_, doc, err := internal.ReadBundle(opts.FS, bundlePath, bundle.ParseOptions{Permissive: opts.Permissive})
	if err != nil {
		return nil, err
	}

	result := &display.ListSummary{
		Bundle:  bundlePath,
		Version: doc.Version,
		Files:   doc.Leaves(),
		Dirs:    doc.Dirs(),
		Orphans: doc.Orphans(),
	}
	for _, leaf := range result.Files {
		if _, ok := doc.Content(leaf); !ok {
			result.Empty = append(result.Empty, leaf)
		}
	}

	log.Info().Str("command", "List").Int("fileCount", len(result.Files)).Msg("Command finished")
	return result, nil
}
