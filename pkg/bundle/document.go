package bundle

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/errors"
)

// Render writes a complete bundle: version line, layout section, separator
// and the code text produced by AppendBlock.
func Render(w io.Writer, layout []LayoutLine, code string) error {
	var sb strings.Builder
	sb.WriteString(VersionPrefix + strconv.Itoa(FormatVersion) + "\n")
	sb.WriteString(LayoutHeader + "\n")
	sb.WriteString(Rule + "\n")
	sb.WriteString(strings.Join(FormatLayout(layout), "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(Rule + "\n")
	sb.WriteString(CodeHeader + "\n\n")
	sb.WriteString(code)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to write bundle")
	}
	return nil
}

// RenderString is Render into a string
func RenderString(layout []LayoutLine, code string) string {
	var sb strings.Builder
	_ = Render(&sb, layout, code)
	return sb.String()
}

// Document is a parsed bundle
type Document struct {
	Version int
	Layout  []LayoutLine
	Tree    *Tree
	Blocks  *Blocks
}

// Leaves returns the file paths of the layout section in order
func (d *Document) Leaves() []string {
	return d.Tree.Leaves()
}

// Dirs returns the directory paths of the layout section in order
func (d *Document) Dirs() []string {
	return d.Tree.Dirs()
}

// Content returns the code block for a leaf path, or "" when the bundle has
// none.
func (d *Document) Content(leaf string) (string, bool) {
	c, ok := d.Blocks.Content[leaf]
	return c, ok
}

// Orphans returns code-block paths with no matching leaf, in block order,
// followed by marker paths that could not be normalized.
func (d *Document) Orphans() []string {
	leaves := make(map[string]bool)
	for _, l := range d.Leaves() {
		leaves[l] = true
	}
	var out []string
	for _, p := range d.Blocks.Order {
		if !leaves[p] {
			out = append(out, p)
		}
	}
	return append(out, d.Blocks.Invalid...)
}

// sections holds line ranges found by locate
type sections struct {
	version     int
	layoutStart int
	layoutEnd   int
	codeStart   int
}

// locate finds the layout header, its underline, the separator and the code
// header. Any of them missing or out of order makes the bundle malformed.
func locate(lines []string) (sections, error) {
	var s sections
	trimmed := func(i int) string { return strings.TrimRight(lines[i], "\r") }

	header := -1
	for i := range lines {
		if trimmed(i) == LayoutHeader {
			header = i
			break
		}
	}
	if header < 0 {
		return s, errors.New(errors.ErrMalformedBundle, "layout header not found").
			WithDetail("expected", LayoutHeader)
	}

	version, err := readVersion(lines[:header])
	if err != nil {
		return s, err
	}
	s.version = version

	if header+1 >= len(lines) || trimmed(header+1) != Rule {
		return s, errors.New(errors.ErrMalformedBundle, "layout header is not followed by its rule").
			WithDetail("line", header+2)
	}

	separator := -1
	for i := header + 2; i < len(lines); i++ {
		if trimmed(i) == Rule {
			separator = i
			break
		}
	}
	if separator < 0 {
		return s, errors.New(errors.ErrMalformedBundle, "separator between layout and code not found")
	}
	if separator+1 >= len(lines) || trimmed(separator+1) != CodeHeader {
		return s, errors.New(errors.ErrMalformedBundle, "code header not found after separator").
			WithDetail("line", separator+2)
	}

	s.layoutStart = header + 2
	s.layoutEnd = separator
	s.codeStart = separator + 2
	return s, nil
}

// readVersion scans the preamble for a version line
func readVersion(preamble []string) (int, error) {
	for _, raw := range preamble {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, VersionPrefix) {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(line[len(VersionPrefix):]))
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrMalformedBundle, "invalid version line %q", line)
		}
		if v < 1 || v > FormatVersion {
			return 0, errors.Newf(errors.ErrUnsupportedVersion,
				"bundle format %d is not supported (this build reads 0..%d)", v, FormatVersion).
				WithDetail("version", v)
		}
		return v, nil
	}
	return LegacyVersion, nil
}

// Parse decodes bundle text. Structural problems are returned as
// MALFORMED_BUNDLE or UNSUPPORTED_VERSION errors; the layout and the code
// section are parsed independently.
func Parse(text string, opts ParseOptions) (*Document, error) {
	// A final newline terminates the last line rather than starting an
	// empty one.
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	s, err := locate(lines)
	if err != nil {
		return nil, err
	}

	doc := &Document{Version: s.version}

	var lineNos []int
	for i := s.layoutStart; i < s.layoutEnd; i++ {
		l, ok, err := ParseLayoutLine(lines[i], s.version, i+1, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			doc.Layout = append(doc.Layout, l)
			lineNos = append(lineNos, i+1)
		}
	}

	doc.Tree, err = BuildTree(doc.Layout, lineNos, s.version, opts)
	if err != nil {
		return nil, err
	}

	doc.Blocks, err = ParseBlocks(lines[s.codeStart:], s.codeStart+1, s.version, opts)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ParseReader reads all of r and parses it
func ParseReader(r io.Reader, opts ParseOptions) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return Parse(string(data), opts)
}
