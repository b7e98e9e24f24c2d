// Package render implements the render command: write a bundle as a PDF
// or as canonical current-version text.
package render

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/commands/internal"
	"github.com/arthur-debert/srcbundle/pkg/config"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/render"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Output formats
const (
	FormatPDF  = "pdf"
	FormatText = "text"
)

// Options defines the options for the Render command
type Options struct {
	FS     types.FS
	Bundle string
	// Output defaults to the bundle path with the format's extension
	Output     string
	Format     string
	PDF        config.PDF
	Permissive bool
	DryRun     bool
}

// Render parses Bundle and writes it in Format
func Render(opts Options) (*display.RenderSummary, error) {
	log := logging.GetLogger("commands.render")
	log.Debug().Str("command", "Render").Str("format", opts.Format).Msg("Executing command")

	bundlePath, err := paths.Resolve(opts.Bundle)
	if err != nil {
		return nil, err
	}
	_, doc, err := internal.ReadBundle(opts.FS, bundlePath, bundle.ParseOptions{Permissive: opts.Permissive})
	if err != nil {
		return nil, err
	}

	renderer, err := rendererFor(opts, filepath.Base(bundlePath))
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = internal.ReplaceExt(bundlePath, renderer.Extension())
	}
	output, err = paths.Resolve(output)
	if err != nil {
		return nil, err
	}
	if output == bundlePath {
		return nil, errors.New(errors.ErrInvalidInput, "output would overwrite the bundle").
			WithDetail("path", output)
	}

	result := &display.RenderSummary{
		Bundle: bundlePath,
		Output: output,
		Format: strings.ToLower(opts.Format),
		Lines:  len(render.Lines(doc)),
	}
	if opts.DryRun {
		return result, nil
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, doc); err != nil {
		return nil, err
	}
	if err := internal.WriteOutput(opts.FS, output, buf.Bytes()); err != nil {
		return nil, err
	}

	log.Info().Str("command", "Render").Str("output", output).Msg("Command finished")
	return result, nil
}

func rendererFor(opts Options, title string) (render.Renderer, error) {
	switch strings.ToLower(opts.Format) {
	case FormatPDF, "":
		return render.NewPDF(render.PDFOptions{
			FontSize:     opts.PDF.FontSize,
			LineHeight:   opts.PDF.LineHeight,
			Margin:       opts.PDF.Margin,
			MaxLineRunes: opts.PDF.MaxLineRunes,
			Title:        title,
		}), nil
	case FormatText:
		return render.Text{}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown render format: %s", opts.Format).
			WithDetail("format", opts.Format)
	}
}
