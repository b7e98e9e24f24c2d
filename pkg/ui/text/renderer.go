// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Styler decorates a fragment of output with a named style
type Styler func(style, s string) string

func plain(_ string, s string) string { return s }

// Renderer provides plain text output. With a Styler it is also the layout
// engine of the terminal renderer.
type Renderer struct {
	output io.Writer
	style  Styler
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return NewStyled(output, plain), nil
}

// NewStyled creates a text renderer that styles fragments with style
func NewStyled(output io.Writer, style Styler) *Renderer {
	return &Renderer{output: output, style: style}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var lines []string
	switch v := result.(type) {
	case *display.PackSummary:
		lines = r.pack(v)
	case *display.UnpackSummary:
		lines = r.unpack(v)
	case *display.ListSummary:
		lines = r.list(v)
	case *display.VerifySummary:
		lines = r.verify(v)
	case *display.GenConfigSummary:
		if len(v.Written) == 0 && len(v.Existing) == 0 {
			_, err := io.WriteString(r.output, v.Content)
			return err
		}
		for _, p := range v.Written {
			lines = append(lines, "Wrote "+r.path(p))
		}
		for _, p := range v.Existing {
			lines = append(lines, r.style("Warning", "Exists, left unchanged: ")+r.path(p))
		}
	case *display.RenderSummary:
		lines = []string{fmt.Sprintf("Rendered %s as %s into %s (%s)",
			r.path(v.Bundle), v.Format, r.path(v.Output), Plural(v.Lines, "line"))}
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	return r.write(lines)
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) write(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(r.output, strings.Join(lines, "\n"))
	return err
}

func (r *Renderer) path(p string) string {
	return r.style("FilePath", p)
}

func (r *Renderer) count(n int, noun string) string {
	return r.style("Count", Plural(n, noun))
}

func (r *Renderer) indent(s string) string {
	return "  " + s
}

func (r *Renderer) dryRun(dry bool) string {
	if !dry {
		return ""
	}
	return r.style("DryRunBanner", "[dry run] ")
}

func (r *Renderer) pack(v *display.PackSummary) []string {
	verb := "Packed"
	if v.DryRun {
		verb = "Would pack"
	}
	lines := []string{fmt.Sprintf("%s%s %s from %s into %s",
		r.dryRun(v.DryRun), verb, r.count(v.Included, "file"), r.path(v.Source), r.path(v.Output))}
	if v.PDF != "" {
		lines = append(lines, "PDF: "+r.path(v.PDF))
	}
	if v.DryRun {
		for _, f := range v.Files {
			lines = append(lines, r.indent(r.path(f)))
		}
	}
	if len(v.Skipped) > 0 {
		order, counts := display.CountReasons(v.Skipped)
		parts := make([]string, len(order))
		for i, reason := range order {
			parts[i] = fmt.Sprintf("%s %d", r.style("Reason", reason), counts[reason])
		}
		lines = append(lines, fmt.Sprintf("Skipped %d: %s", len(v.Skipped), strings.Join(parts, ", ")))
	}
	return append(lines, r.diagnostics("Unreadable", v.Errors)...)
}

func (r *Renderer) unpack(v *display.UnpackSummary) []string {
	verb := "Unpacked"
	if v.DryRun {
		verb = "Would unpack"
	}
	lines := []string{fmt.Sprintf("%s%s %s and %s into %s (format %d)",
		r.dryRun(v.DryRun), verb, r.count(len(v.Created), "file"), r.count(len(v.Dirs), "directory"),
		r.path(v.Dest), v.Version)}
	if v.DryRun {
		for _, f := range v.Created {
			lines = append(lines, r.indent(r.path(f)))
		}
	}
	lines = append(lines, r.diagnostics("Failures", v.Failures)...)
	return append(lines, r.diagnostics("Orphan blocks", v.Orphans)...)
}

func (r *Renderer) list(v *display.ListSummary) []string {
	lines := []string{fmt.Sprintf("%s (format %d): %s, %s",
		r.path(v.Bundle), v.Version, r.count(len(v.Files), "file"), r.count(len(v.Dirs), "directory"))}

	empty := make(map[string]bool, len(v.Empty))
	for _, e := range v.Empty {
		empty[e] = true
	}
	for _, f := range v.Files {
		line := r.indent(r.path(f))
		if empty[f] {
			line += " " + r.style("Reason", "(no content)")
		}
		lines = append(lines, line)
	}
	if len(v.Orphans) > 0 {
		lines = append(lines, r.style("Warning", fmt.Sprintf("Orphan blocks %d:", len(v.Orphans))))
		for _, o := range v.Orphans {
			lines = append(lines, r.indent(r.path(o)))
		}
	}
	return lines
}

func (r *Renderer) verify(v *display.VerifySummary) []string {
	var lines []string
	if v.OK() {
		lines = append(lines, r.style("Success", fmt.Sprintf("OK: %s in %s match %s",
			Plural(len(v.Matched), "file"), v.Dir, v.Bundle)))
		return lines
	}
	lines = append(lines, r.style("Error", fmt.Sprintf("Mismatch: %d changed, %d missing, %d matching",
		len(v.Changed), len(v.Missing), len(v.Matched))))
	for _, c := range v.Changed {
		lines = append(lines, r.indent("changed "+r.path(c)))
	}
	for _, m := range v.Missing {
		lines = append(lines, r.indent("missing "+r.path(m)))
	}
	return lines
}

func (r *Renderer) diagnostics(title string, diags []types.Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	lines := []string{r.style("Warning", fmt.Sprintf("%s %d:", title, len(diags)))}
	for _, d := range diags {
		lines = append(lines, r.indent(d.String()))
	}
	return lines
}

// Plural formats a count with a noun, adding the English plural suffix
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
