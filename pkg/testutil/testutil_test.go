package testutil_test

import (
	stderrors "errors"
	"io/fs"
	"os"
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeRoundTrip(t *testing.T) {
	files := map[string]string{
		"src/a.kt":    "class A\n",
		"src/b/c.xml": "<c/>\n",
		"empty/":      "",
	}
	fsys := testutil.NewTree(t, nil)
	testutil.WriteTree(t, fsys, "/root", files)

	assert.Equal(t, files, testutil.ReadTree(t, fsys, "/root"))
}

func TestFaultyFS(t *testing.T) {
	denied := stderrors.New("permission denied")
	fsys := testutil.NewFaultyFS(testutil.NewTree(t, map[string]string{"/a.txt": "a"})).
		WithReadError("/a.txt", denied).
		WithWriteError("/out/b.txt", denied).
		WithWriteError("/locked", denied)

	_, err := fsys.ReadFile("/a.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, denied)
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "read", pathErr.Op)

	assert.ErrorIs(t, fsys.WriteFile("/out/b.txt", nil, 0644), denied)
	assert.ErrorIs(t, fsys.MkdirAll("/locked/", 0755), denied)

	require.NoError(t, fsys.MkdirAll("/out", 0755))
	require.NoError(t, fsys.WriteFile("/out/c.txt", []byte("c"), 0644))
	data, err := fsys.ReadFile("/out/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
}

func TestIsolate(t *testing.T) {
	testutil.Isolate(t)
	assert.NotEmpty(t, os.Getenv(paths.EnvConfigDir))
	assert.Equal(t, os.Getenv(paths.EnvConfigDir), paths.ConfigDir())
}
