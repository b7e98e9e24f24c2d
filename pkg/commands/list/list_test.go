// pkg/commands/list/list_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS
// PURPOSE: Test bundle listing for current and legacy bundles

package list_test

import (
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/commands/list"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	fsys := filesystem.NewMemFS()
	text := "BUNDLE-FORMAT: 1\nPROJECT FILE LAYOUT\n===================\n" +
		"D .\n    D src\n        F a.txt\n        F b.txt\n    D docs\n\n" +
		"===================\nCODE CONTENT\n\n" +
		"// File: src/a.txt\nhello\n\n// File: stray.txt\nx\n\n"
	require.NoError(t, fsys.WriteFile("/bundle.txt", []byte(text), 0644))

	summary, err := list.List(list.Options{FS: fsys, Bundle: "/bundle.txt"})
	require.NoError(t, err)

	assert.Equal(t, "/bundle.txt", summary.Bundle)
	assert.Equal(t, 1, summary.Version)
	assert.Equal(t, []string{"src/a.txt", "src/b.txt"}, summary.Files)
	assert.Equal(t, []string{"src", "docs"}, summary.Dirs)
	assert.Equal(t, []string{"src/b.txt"}, summary.Empty)
	assert.Equal(t, []string{"stray.txt"}, summary.Orphans)
}

func TestList_Legacy(t *testing.T) {
	fsys := filesystem.NewMemFS()
	text := "PROJECT FILE LAYOUT\n===================\n" +
		"📁 .\n📁 src\n    📄 a.kt\n\n" +
		"===================\nCODE CONTENT\n\n" +
		"// File: src/a.kt\nfun main() {}\n\n"
	require.NoError(t, fsys.WriteFile("/old.txt", []byte(text), 0644))

	summary, err := list.List(list.Options{FS: fsys, Bundle: "/old.txt"})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Version)
	assert.Equal(t, []string{"src/a.kt"}, summary.Files)
	assert.Empty(t, summary.Empty)
}

func TestList_Missing(t *testing.T) {
	_, err := list.List(list.Options{FS: filesystem.NewMemFS(), Bundle: "/none.txt"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
