package bundle

import (
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dir(depth int, name string) LayoutLine {
	return LayoutLine{Depth: depth, Kind: KindDirectory, Name: name}
}

func file(depth int, name string) LayoutLine {
	return LayoutLine{Depth: depth, Kind: KindFile, Name: name}
}

func TestBuildTree(t *testing.T) {
	lines := []LayoutLine{
		RootLine(),
		file(1, "go.mod"),
		dir(1, "src"),
		file(2, "a.txt"),
		dir(2, "sub"),
		file(3, "b.txt"),
		dir(1, "docs"),
	}

	tree, err := BuildTree(lines, nil, FormatVersion, ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"go.mod", "src/a.txt", "src/sub/b.txt"}, tree.Leaves())
	assert.Equal(t, []string{"src", "src/sub", "docs"}, tree.Dirs())
	assert.Equal(t, 7, tree.Len())

	root := tree.Node(RootID)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "src", tree.Node(root.Children[1]).Name)
}

func TestBuildTreeWithoutRootLine(t *testing.T) {
	tree, err := BuildTree([]LayoutLine{dir(1, "src"), file(2, "a.txt")}, nil, FormatVersion, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.txt"}, tree.Leaves())
}

func TestBuildTreeMergesRepeatedDirectories(t *testing.T) {
	lines := []LayoutLine{
		RootLine(),
		dir(1, "src"),
		file(2, "a.txt"),
		dir(1, "src"),
		file(2, "b.txt"),
	}

	tree, err := BuildTree(lines, nil, FormatVersion, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.txt", "src/b.txt"}, tree.Leaves())
	assert.Equal(t, []string{"src"}, tree.Dirs())
}

func TestBuildTreeDepthJump(t *testing.T) {
	lines := []LayoutLine{
		RootLine(),
		dir(1, "src"),
		file(3, "deep.txt"),
	}

	t.Run("strict rejects", func(t *testing.T) {
		_, err := BuildTree(lines, []int{4, 5, 6}, FormatVersion, ParseOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedBundle))
		details := errors.GetErrorDetails(err)
		assert.Equal(t, 6, details["line"])
		assert.Equal(t, 3, details["depth"])
	})

	t.Run("permissive attaches to current directory", func(t *testing.T) {
		tree, err := BuildTree(lines, nil, FormatVersion, ParseOptions{Permissive: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/deep.txt"}, tree.Leaves())
	})
}

func TestBuildTreeFileCannotHaveChildren(t *testing.T) {
	lines := []LayoutLine{
		RootLine(),
		file(1, "a.txt"),
		file(2, "b.txt"),
	}
	_, err := BuildTree(lines, nil, FormatVersion, ParseOptions{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedBundle))
}

func TestBuildTreeRejects(t *testing.T) {
	tests := []struct {
		name  string
		lines []LayoutLine
	}{
		{"dot-dot name", []LayoutLine{RootLine(), file(1, "..")}},
		{"separator in name", []LayoutLine{RootLine(), file(1, "a/b.txt")}},
		{"file listed twice", []LayoutLine{RootLine(), file(1, "a.txt"), file(1, "a.txt")}},
		{"file and directory clash", []LayoutLine{RootLine(), file(1, "a"), dir(1, "a")}},
		{"non-root at depth zero", []LayoutLine{RootLine(), dir(0, "src")}},
		{"root marker nested", []LayoutLine{RootLine(), dir(1, ".")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTree(tt.lines, nil, FormatVersion, ParseOptions{})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedBundle), "got %v", err)

			tree, err := BuildTree(tt.lines, nil, FormatVersion, ParseOptions{Permissive: true})
			require.NoError(t, err, "permissive mode skips the offending line")
			assert.NotNil(t, tree)
		})
	}
}

func TestBuildTreeLegacyDepths(t *testing.T) {
	// Legacy bundles place top-level directories at the root's depth
	lines := []LayoutLine{
		RootLine(),
		file(1, "build.gradle.kts"),
		dir(0, "app"),
		file(1, "Main.kt"),
		dir(1, "ui"),
		file(2, "Screen.kt"),
	}

	tree, err := BuildTree(lines, nil, LegacyVersion, ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"build.gradle.kts", "app/Main.kt", "app/ui/Screen.kt"}, tree.Leaves())
	assert.Equal(t, []string{"app", "app/ui"}, tree.Dirs())
}

func TestTreePath(t *testing.T) {
	tree := NewTree()
	src := tree.add(RootID, "src", KindDirectory)
	a := tree.add(src, "a.txt", KindFile)

	assert.Equal(t, "", tree.Path(RootID))
	assert.Equal(t, "src", tree.Path(src))
	assert.Equal(t, "src/a.txt", tree.Path(a))
}

func TestTreeLayoutNormalizesLegacyDepths(t *testing.T) {
	lines := []LayoutLine{
		RootLine(),
		file(1, "settings.gradle"),
		dir(0, "app"),
		file(1, "Main.kt"),
		dir(1, "ui"),
	}

	tree, err := BuildTree(lines, nil, LegacyVersion, ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"D .",
		"    F settings.gradle",
		"    D app",
		"        F Main.kt",
		"        D ui",
	}, FormatLayout(tree.Layout()))
}
