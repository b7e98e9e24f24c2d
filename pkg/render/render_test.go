package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyBundle = "PROJECT FILE LAYOUT\n" +
	"===================\n" +
	"📁 .\n" +
	"📁 src\n" +
	"    📄 a.txt\n" +
	"\n" +
	"===================\n" +
	"CODE CONTENT\n" +
	"\n" +
	"// File: src/a.txt\n" +
	"hello\n" +
	"\tworld ✓\n" +
	"\n"

func parse(t *testing.T, text string) *bundle.Document {
	t.Helper()
	doc, err := bundle.Parse(text, bundle.ParseOptions{})
	require.NoError(t, err)
	return doc
}

func TestLines(t *testing.T) {
	doc := parse(t, legacyBundle)

	assert.Equal(t, []string{
		"PROJECT FILE LAYOUT",
		"===================",
		"D .",
		"    D src",
		"        F a.txt",
		"",
		"===================",
		"CODE CONTENT",
		"",
		"// File: src/a.txt",
		"hello",
		"\tworld ✓",
		"",
	}, Lines(doc))
}

func TestTextUpgradesLegacyBundle(t *testing.T) {
	doc := parse(t, legacyBundle)

	var buf bytes.Buffer
	require.NoError(t, Text{}.Render(&buf, doc))

	upgraded := parse(t, buf.String())
	assert.Equal(t, bundle.FormatVersion, upgraded.Version)
	assert.Equal(t, doc.Leaves(), upgraded.Leaves())

	content, ok := upgraded.Content("src/a.txt")
	require.True(t, ok)
	assert.Equal(t, "hello\n\tworld ✓", content)
}

func TestPDF(t *testing.T) {
	doc := parse(t, legacyBundle)
	r := NewPDF(PDFOptions{CreationDate: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)})
	assert.Equal(t, ".pdf", r.Extension())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, doc))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("%%EOF")))
}

func TestPDFManyPages(t *testing.T) {
	var code strings.Builder
	bundle.AppendBlock(&code, "big.txt", strings.Repeat("line of code\n", 500))
	layout := []bundle.LayoutLine{bundle.RootLine(), {Depth: 1, Kind: bundle.KindFile, Name: "big.txt"}}
	doc := parse(t, bundle.RenderString(layout, code.String()))

	var buf bytes.Buffer
	require.NoError(t, NewPDF(PDFOptions{}).Render(&buf, doc))
	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")), 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ü✓", truncate("ü✓x", 2))
	assert.Equal(t, "    x", truncate("\tx", 10))
}

func TestLatin1(t *testing.T) {
	got, err := latin1("café ✓ 日本")
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9 ? ??", got)
}
