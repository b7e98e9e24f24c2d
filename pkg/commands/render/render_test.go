// pkg/commands/render/render_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS
// PURPOSE: Test rendering bundles to PDF and to current-version text

package render_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/commands/render"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/filesystem"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacy = "PROJECT FILE LAYOUT\n===================\n" +
	"📁 .\n    📄 a.kt\n\n" +
	"===================\nCODE CONTENT\n\n" +
	"// File: a.kt\nfun main() {}\n\n"

func setup(t *testing.T) types.FS {
	t.Helper()
	fsys := filesystem.NewMemFS()
	require.NoError(t, fsys.MkdirAll("/b", 0755))
	require.NoError(t, fsys.WriteFile("/b/old.txt", []byte(legacy), 0644))
	return fsys
}

func TestRender_PDF(t *testing.T) {
	fsys := setup(t)

	summary, err := render.Render(render.Options{FS: fsys, Bundle: "/b/old.txt", Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, "/b/old.pdf", summary.Output)
	assert.Equal(t, "pdf", summary.Format)
	assert.Greater(t, summary.Lines, 5)

	data, err := fsys.ReadFile("/b/old.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestRender_TextUpgradesLegacy(t *testing.T) {
	fsys := setup(t)

	_, err := render.Render(render.Options{FS: fsys, Bundle: "/b/old.txt", Format: "text", Output: "/b/new.txt"})
	require.NoError(t, err)

	data, err := fsys.ReadFile("/b/new.txt")
	require.NoError(t, err)
	doc, err := bundle.Parse(string(data), bundle.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, bundle.FormatVersion, doc.Version)
	assert.Equal(t, []string{"a.kt"}, doc.Leaves())
}

func TestRender_DryRun(t *testing.T) {
	fsys := setup(t)

	summary, err := render.Render(render.Options{FS: fsys, Bundle: "/b/old.txt", DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, "/b/old.pdf", summary.Output)
	_, err = fsys.Stat("/b/old.pdf")
	assert.Error(t, err)
}

func TestRender_Errors(t *testing.T) {
	fsys := setup(t)

	_, err := render.Render(render.Options{FS: fsys, Bundle: "/b/old.txt", Format: "docx"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = render.Render(render.Options{FS: fsys, Bundle: "/b/old.txt", Format: "text"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "text output defaults onto the input")

	_, err = render.Render(render.Options{FS: fsys, Bundle: "/b/missing.txt"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
