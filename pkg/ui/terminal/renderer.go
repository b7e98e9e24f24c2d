// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/ui/output/styles"
	"github.com/arthur-debert/srcbundle/pkg/ui/text"
	"github.com/pterm/pterm"
)

// Renderer lays out summaries like the text renderer and decorates them
// with the styles registry and pterm prefixes.
type Renderer struct {
	output io.Writer
	layout *text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		layout: text.NewStyled(w, styles.Render),
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	return r.layout.RenderResult(result)
}

// RenderError renders an error with a prefix and its code highlighted
func (r *Renderer) RenderError(err error) error {
	msg := err.Error()
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		msg = styles.Render("Bold", string(coded.Code)) + " " + coded.Message
		if coded.Wrapped != nil {
			msg += ": " + coded.Wrapped.Error()
		}
	}
	_, werr := fmt.Fprintln(r.output, pterm.Error.Sprint(msg))
	return werr
}

// RenderMessage renders a simple informational message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, pterm.Info.Sprint(msg))
	return err
}
