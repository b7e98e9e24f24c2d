package reconstruct_test

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/bundle"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/filesystem"
	"github.com/arthur-debert/srcbundle/pkg/filter"
	"github.com/arthur-debert/srcbundle/pkg/reconstruct"
	"github.com/arthur-debert/srcbundle/pkg/serialize"
	"github.com/arthur-debert/srcbundle/pkg/testutil"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleBundle = "BUNDLE-FORMAT: 1\n" +
	"PROJECT FILE LAYOUT\n" +
	"===================\n" +
	"D .\n" +
	"    D src\n" +
	"        F a.txt\n" +
	"        D sub\n" +
	"\n" +
	"===================\n" +
	"CODE CONTENT\n" +
	"\n" +
	"// File: src/a.txt\n" +
	"hello\n" +
	"\\ No newline at end of file\n" +
	"\n"

func readFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunExampleScenario(t *testing.T) {
	fsys := filesystem.NewMemFS()

	res, err := reconstruct.Run(fsys, exampleBundle, "/out", reconstruct.Options{})
	require.NoError(t, err)

	assert.Equal(t, bundle.FormatVersion, res.Version)
	assert.Equal(t, []string{"src/a.txt"}, res.Paths)
	assert.Equal(t, []string{"src/a.txt"}, res.Created)
	assert.Equal(t, []string{"src", "src/sub"}, res.Dirs)
	assert.Empty(t, res.Failures)
	assert.Empty(t, res.Orphans)

	assert.Equal(t, "hello", readFile(t, fsys, "/out/src/a.txt"))

	info, err := fsys.Stat("/out/src/sub")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := fsys.ReadDir("/out/src/sub")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunSkipEmptyDirs(t *testing.T) {
	fsys := filesystem.NewMemFS()

	res, err := reconstruct.Run(fsys, exampleBundle, "/out", reconstruct.Options{SkipEmptyDirs: true})
	require.NoError(t, err)

	assert.Empty(t, res.Dirs)
	assert.Equal(t, "hello", readFile(t, fsys, "/out/src/a.txt"))

	_, err = fsys.Stat("/out/src/sub")
	assert.Error(t, err)
}

func TestRunMissingBlockCreatesEmptyFile(t *testing.T) {
	text := strings.Replace(exampleBundle, "        F a.txt\n", "        F a.txt\n        F empty.txt\n", 1)
	fsys := filesystem.NewMemFS()

	res, err := reconstruct.Run(fsys, text, "/out", reconstruct.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/a.txt", "src/empty.txt"}, res.Created)
	assert.Equal(t, "", readFile(t, fsys, "/out/src/empty.txt"))
}

func TestRunOrphansCreateNothing(t *testing.T) {
	text := exampleBundle +
		"// File: ghost.txt\n" +
		"boo\n" +
		"\n" +
		"// File: ../../escape.txt\n" +
		"nope\n"
	fsys := filesystem.NewMemFS()

	res, err := reconstruct.Run(fsys, text, "/out", reconstruct.Options{})
	require.NoError(t, err)

	require.Len(t, res.Orphans, 2)
	assert.Equal(t, "ghost.txt", res.Orphans[0].Path)
	assert.Equal(t, errors.ErrOrphanPath, res.Orphans[0].Code)
	assert.Equal(t, "../../escape.txt", res.Orphans[1].Path)

	_, err = fsys.Stat("/out/ghost.txt")
	assert.Error(t, err)
	_, err = fsys.Stat("/escape.txt")
	assert.Error(t, err)
}

func TestRunMalformedWritesNothing(t *testing.T) {
	tests := []struct {
		name string
		text string
		code errors.ErrorCode
	}{
		{"no header", "just some text\n", errors.ErrMalformedBundle},
		{"depth jump", strings.Replace(exampleBundle, "    D src\n", "", 1), errors.ErrMalformedBundle},
		{"unknown version", strings.Replace(exampleBundle, "FORMAT: 1", "FORMAT: 9", 1), errors.ErrUnsupportedVersion},
		{"dot-dot name", strings.Replace(exampleBundle, "F a.txt", "F ..", 1), errors.ErrMalformedBundle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMemFS()

			res, err := reconstruct.Run(fsys, tt.text, "/out", reconstruct.Options{})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)

			_, err = fsys.Stat("/out")
			assert.Error(t, err, "destination must not be created")
		})
	}
}

func TestRunPermissiveDepthJump(t *testing.T) {
	text := strings.Replace(exampleBundle, "        F a.txt\n", "        F a.txt\n                F deep.txt\n", 1)
	fsys := filesystem.NewMemFS()

	res, err := reconstruct.Run(fsys, text, "/out", reconstruct.Options{
		ParseOptions: bundle.ParseOptions{Permissive: true},
	})
	require.NoError(t, err)
	assert.Contains(t, res.Created, "src/deep.txt")
}

func TestRunExistingFiles(t *testing.T) {
	fsys := filesystem.NewMemFS()
	require.NoError(t, fsys.MkdirAll("/out/src", 0755))
	require.NoError(t, fsys.WriteFile("/out/src/a.txt", []byte("mine\n"), 0644))

	t.Run("kept without overwrite", func(t *testing.T) {
		res, err := reconstruct.Run(fsys, exampleBundle, "/out", reconstruct.Options{})
		require.NoError(t, err)

		require.Len(t, res.Failures, 1)
		assert.Equal(t, "src/a.txt", res.Failures[0].Path)
		assert.Equal(t, errors.ErrWriteFailure, res.Failures[0].Code)
		assert.Empty(t, res.Created)
		assert.Equal(t, "mine\n", readFile(t, fsys, "/out/src/a.txt"))
	})

	t.Run("replaced with overwrite", func(t *testing.T) {
		res, err := reconstruct.Run(fsys, exampleBundle, "/out", reconstruct.Options{Overwrite: true})
		require.NoError(t, err)

		assert.Empty(t, res.Failures)
		assert.Equal(t, "hello", readFile(t, fsys, "/out/src/a.txt"))
	})
}

func TestRunDryRun(t *testing.T) {
	fsys := filesystem.NewMemFS()

	res, err := reconstruct.Run(fsys, exampleBundle, "/out", reconstruct.Options{DryRun: true})
	require.NoError(t, err)

	assert.True(t, res.DryRun)
	assert.Equal(t, []string{"src/a.txt"}, res.Created)
	assert.Equal(t, []string{"src", "src/sub"}, res.Dirs)

	_, err = fsys.Stat("/out")
	assert.Error(t, err)
}

func TestRunWriteFailureContinues(t *testing.T) {
	text := strings.Replace(exampleBundle, "        F a.txt\n", "        F a.txt\n        F b.txt\n", 1)
	fsys := testutil.NewFaultyFS(filesystem.NewMemFS()).
		WithWriteError("/out/src/a.txt", stderrors.New("permission denied"))

	res, err := reconstruct.Run(fsys, text, "/out", reconstruct.Options{})
	require.NoError(t, err)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, "src/a.txt", res.Failures[0].Path)
	assert.Equal(t, errors.ErrWriteFailure, res.Failures[0].Code)
	assert.Equal(t, []string{"src/b.txt"}, res.Created)
}

func TestRoundTrip(t *testing.T) {
	files := map[string]string{
		"build.gradle.kts":                   "plugins {}\n",
		"app/src/main/kotlin/Main.kt":        "fun main() {\n    println(\"hi\")\n}\n",
		"app/src/main/kotlin/ui/Screen.kt":   "class Screen\n\n\n// trailing comment\n",
		"app/src/test/kotlin/MainTest.kt":    "class MainTest\n",
		"app/src/main/res/values/strings.kt": "val s = \"ünïcødé ✓\"\n",
	}
	src := filesystem.NewMemFS()
	for p, content := range files {
		full := filepath.Join("/project", p)
		require.NoError(t, src.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, src.WriteFile(full, []byte(content), 0644))
	}
	require.NoError(t, src.MkdirAll("/project/app/empty", 0755))

	ser, err := serialize.Run(src, "/project", serialize.Options{
		Filter: filter.New([]string{".kt", ".kts"}, nil, nil),
	})
	require.NoError(t, err)
	require.Equal(t, len(files), ser.Included)

	text := ser.Text()
	for _, dest := range []string{"/first", "/second"} {
		out := filesystem.NewMemFS()
		res, err := reconstruct.Run(out, text, dest, reconstruct.Options{})
		require.NoError(t, err)
		assert.Empty(t, res.Failures)
		assert.ElementsMatch(t, ser.Files, res.Created)

		for p, want := range files {
			assert.Equal(t, want, readFile(t, out, filepath.Join(dest, p)), p)
		}
		info, err := out.Stat(filepath.Join(dest, "app/empty"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestRoundTripExampleScenario(t *testing.T) {
	src := testutil.NewTree(t, map[string]string{
		"/root/src/a.txt":     "hello",
		"/root/src/sub/b.log": "filtered out\n",
	})

	ser, err := serialize.Run(src, "/root", serialize.Options{Filter: filter.New([]string{".txt"}, nil, nil)})
	require.NoError(t, err)
	assert.Equal(t, exampleBundle, ser.Text())

	out := filesystem.NewMemFS()
	_, err = reconstruct.Run(out, ser.Text(), "/out", reconstruct.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"src/a.txt": "hello",
		"src/sub/":  "",
	}, testutil.ReadTree(t, out, "/out"))
}

func TestRoundTripEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{"no final newline", "src/a.txt", "hello"},
		{"empty file", "src/empty.txt", ""},
		{"only blank lines", "src/blank.txt", "\n\n\n"},
		{"trailing blank lines", "src/tail.txt", "x\n\n"},
		{"leading space in name", "src/ lead.txt", "y\n"},
		{"surrounding spaces in directory name", " dir /a.txt", "d\n"},
		{"marker line naming itself", "src/c.txt", "line\n// File: src/c.txt\nmore\n"},
		{"marker line naming another path", "src/d.txt", "// File: src/nowhere.txt\nrest"},
		{"escaped marker line", "src/e.txt", "\\// File: src/e.txt\n"},
		{"flag-like last line", "src/f.txt", "\\ No newline at end of file\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewTree(t, map[string]string{
				filepath.Join("/project", tt.path): tt.content,
				"/project/zz/after.txt":            "after\n",
			})

			ser, err := serialize.Run(src, "/project", serialize.Options{Filter: filter.New([]string{".txt"}, nil, nil)})
			require.NoError(t, err)
			require.Empty(t, ser.Errors)
			require.Equal(t, 2, ser.Included)

			out := filesystem.NewMemFS()
			res, err := reconstruct.Run(out, ser.Text(), "/out", reconstruct.Options{})
			require.NoError(t, err)
			assert.Empty(t, res.Orphans)
			assert.Empty(t, res.Failures)
			assert.ElementsMatch(t, []string{tt.path, "zz/after.txt"}, res.Created)
			assert.Equal(t, tt.content, readFile(t, out, filepath.Join("/out", tt.path)))
			assert.Equal(t, "after\n", readFile(t, out, "/out/zz/after.txt"))
		})
	}
}

func TestRoundTripSkipsUnrepresentableNames(t *testing.T) {
	src := testutil.NewTree(t, map[string]string{
		"/project/src/a\\b.txt": "skipped\n",
		"/project/src/ok.txt":    "kept\n",
	})

	ser, err := serialize.Run(src, "/project", serialize.Options{Filter: filter.New([]string{".txt"}, nil, nil)})
	require.NoError(t, err)
	require.Len(t, ser.Errors, 1)
	assert.Equal(t, "src/a\\b.txt", ser.Errors[0].Path)
	assert.Equal(t, errors.ErrUnreadableSource, ser.Errors[0].Code)

	out := filesystem.NewMemFS()
	res, err := reconstruct.Run(out, ser.Text(), "/out", reconstruct.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/ok.txt"}, res.Created)
}
