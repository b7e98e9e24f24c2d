package render

import (
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// PDFOptions control page layout. Zero fields take the defaults below.
type PDFOptions struct {
	FontSize float64
	// LineHeight is in millimetres
	LineHeight float64
	// Margin is used for every page edge and for the page-break trigger
	Margin float64
	// MaxLineRunes truncates longer lines
	MaxLineRunes int
	Title        string
	// CreationDate pins the document date, for reproducible output
	CreationDate time.Time
}

const (
	defaultFontSize     = 10
	defaultLineHeight   = 5
	defaultMargin       = 10
	defaultMaxLineRunes = 200
)

// PDF renders a document in Courier on A4 pages
type PDF struct {
	opts PDFOptions
}

// NewPDF returns a PDF renderer
func NewPDF(opts PDFOptions) *PDF {
	if opts.FontSize <= 0 {
		opts.FontSize = defaultFontSize
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = defaultLineHeight
	}
	if opts.Margin <= 0 {
		opts.Margin = defaultMargin
	}
	if opts.MaxLineRunes <= 0 {
		opts.MaxLineRunes = defaultMaxLineRunes
	}
	if opts.Title == "" {
		opts.Title = "Source bundle"
	}
	return &PDF{opts: opts}
}

func (p *PDF) Extension() string { return ".pdf" }

func (p *PDF) Render(w io.Writer, doc *bundle.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(p.opts.Margin, p.opts.Margin, p.opts.Margin)
	pdf.SetAutoPageBreak(true, p.opts.Margin)
	pdf.SetTitle(p.opts.Title, true)
	pdf.SetCreator("srcbundle", false)
	if !p.opts.CreationDate.IsZero() {
		pdf.SetCreationDate(p.opts.CreationDate)
	}
	pdf.AddPage()
	pdf.SetFont("Courier", "", p.opts.FontSize)

	for _, line := range Lines(doc) {
		text, err := latin1(truncate(line, p.opts.MaxLineRunes))
		if err != nil {
			return errors.Wrap(err, errors.ErrRender, "cannot encode line for PDF")
		}
		pdf.CellFormat(0, p.opts.LineHeight, text, "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, errors.ErrRender, "cannot write PDF")
	}
	return nil
}

// truncate keeps at most n runes and expands tabs
func truncate(line string, n int) string {
	line = strings.ReplaceAll(line, "\t", bundle.IndentUnit)
	r := []rune(line)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// latin1 replaces characters the core PDF fonts cannot show with '?' and
// encodes the rest as ISO-8859-1.
func latin1(s string) (string, error) {
	s = strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
	return charmap.ISO8859_1.NewEncoder().String(s)
}
