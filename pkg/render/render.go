// Package render turns a parsed bundle into output documents. Renderers only
// consume bundle.Document; none of them parse bundle text themselves.
package render

import (
	"io"
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
)

// Renderer writes a document in one output format
type Renderer interface {
	Render(w io.Writer, doc *bundle.Document) error
	// Extension is the conventional file suffix, dot included
	Extension() string
}

// Lines returns the document as display lines in bundle order: header,
// layout, separator, then every code block with its marker.
func Lines(doc *bundle.Document) []string {
	lines := []string{bundle.LayoutHeader, bundle.Rule}
	lines = append(lines, bundle.FormatLayout(doc.Tree.Layout())...)
	lines = append(lines, "", bundle.Rule, bundle.CodeHeader, "")

	for _, p := range doc.Blocks.Order {
		lines = append(lines, bundle.PathMarker+p)
		content := doc.Blocks.Content[p]
		if content != "" {
			lines = append(lines, strings.Split(strings.TrimSuffix(content, "\n"), "\n")...)
		}
		lines = append(lines, "")
	}
	return lines
}

// Text writes the canonical current-version text of a document. Legacy
// bundles come out in the tagged grammar.
type Text struct{}

func (Text) Extension() string { return ".txt" }

func (Text) Render(w io.Writer, doc *bundle.Document) error {
	var code strings.Builder
	for _, p := range doc.Blocks.Order {
		bundle.AppendBlock(&code, p, doc.Blocks.Content[p])
	}
	return bundle.Render(w, doc.Tree.Layout(), code.String())
}
