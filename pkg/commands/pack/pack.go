// Package pack implements the pack command: serialize a source tree into a
// bundle file and optionally a PDF rendering of it.
package pack

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/commands/internal"
	"github.com/arthur-debert/srcbundle/pkg/config"
	"github.com/arthur-debert/srcbundle/pkg/filter"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/render"
	"github.com/arthur-debert/srcbundle/pkg/serialize"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Options defines the options for the Pack command
type Options struct {
	FS     types.FS
	Source string
	// Pack and PDF are the resolved configuration sections, command-line
	// flags already applied.
	Pack   config.Pack
	PDF    config.PDF
	DryRun bool
	RunID  string
}

// Pack serializes Source into the configured output file. The output and
// the PDF are excluded from the walk so a bundle never contains itself.
func Pack(opts Options) (*display.PackSummary, error) {
	logger := logging.GetLogger("commands.pack")
	logger.Debug().Str("command", "Pack").Msg("Executing command")

	source, err := paths.Resolve(opts.Source)
	if err != nil {
		return nil, err
	}
	output, err := paths.Resolve(opts.Pack.Output)
	if err != nil {
		return nil, err
	}
	pdfPath := ""
	if opts.Pack.PDF {
		pdfPath = internal.ReplaceExt(output, ".pdf")
	}

	f := filter.New(opts.Pack.Extensions, opts.Pack.Ignore, opts.Pack.SkipDirs)
	res, err := serialize.Run(opts.FS, source, serialize.Options{
		Filter:         f,
		Exclude:        excluded(output, pdfPath),
		PruneEmptyDirs: opts.Pack.PruneEmptyDirs,
	})
	if err != nil {
		return nil, err
	}

	summary := &display.PackSummary{
		RunID:     opts.RunID,
		Source:    source,
		Output:    output,
		PDF:       pdfPath,
		Included:  res.Included,
		Files:     res.Files,
		Skipped:   res.Skipped,
		Errors:    res.Errors,
		DryRun:    opts.DryRun,
		Timestamp: time.Now(),
	}
	if res.Included == 0 {
		logger.Warn().Strs("extensions", f.Suffixes()).Msg("No file matched the filter")
	}
	if opts.DryRun {
		return summary, nil
	}

	text := res.Text()
	if err := internal.WriteOutput(opts.FS, output, []byte(text)); err != nil {
		return nil, err
	}
	logger.Info().Str("output", output).Int("bytes", len(text)).Msg("Bundle written")

	if pdfPath != "" {
		if err := writePDF(opts, filepath.Base(source), text, pdfPath); err != nil {
			return nil, err
		}
		logger.Info().Str("output", pdfPath).Msg("PDF written")
	}

	logger.Info().Str("command", "Pack").Int("included", res.Included).Msg("Command finished")
	return summary, nil
}

func excluded(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, filepath.Clean(p))
		}
	}
	return out
}

// writePDF renders the freshly written bundle, so the PDF shows exactly
// what the bundle holds
func writePDF(opts Options, title, text, path string) error {
	doc, err := bundle.Parse(text, bundle.ParseOptions{})
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	renderer := render.NewPDF(render.PDFOptions{
		FontSize:     opts.PDF.FontSize,
		LineHeight:   opts.PDF.LineHeight,
		Margin:       opts.PDF.Margin,
		MaxLineRunes: opts.PDF.MaxLineRunes,
		Title:        title,
	})
	if err := renderer.Render(&buf, doc); err != nil {
		return err
	}
	return internal.WriteOutput(opts.FS, path, buf.Bytes())
}
