package testutil

import (
	"path"
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/filesystem"
	"github.com/arthur-debert/srcbundle/pkg/types"
)

// NewTree returns a memory filesystem holding files, keyed by absolute path
func NewTree(t *testing.T, files map[string]string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemFS()
	WriteTree(t, fsys, "/", files)
	return fsys
}

// WriteTree creates files below root, making parent directories as needed.
// A key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := path.Join(root, rel)
		if rel[len(rel)-1] == '/' {
			if err := fsys.MkdirAll(full, 0755); err != nil {
				t.Fatalf("Failed to create dir %s: %v", full, err)
			}
			continue
		}
		if err := fsys.MkdirAll(path.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create dir %s: %v", path.Dir(full), err)
		}
		if err := fsys.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", full, err)
		}
	}
}

// ReadTree returns every regular file below root keyed by its slash
// separated relative path. Empty directories are keyed with a trailing "/".
func ReadTree(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	readDir(t, fsys, root, "", tree)
	return tree
}

func readDir(t *testing.T, fsys types.FS, root, rel string, tree map[string]string) {
	entries, err := fsys.ReadDir(path.Join(root, rel))
	if err != nil {
		t.Fatalf("Failed to read dir %s: %v", path.Join(root, rel), err)
	}
	if len(entries) == 0 && rel != "" {
		tree[rel+"/"] = ""
		return
	}
	for _, e := range entries {
		child := path.Join(rel, e.Name())
		if e.IsDir() {
			readDir(t, fsys, root, child, tree)
			continue
		}
		data, err := fsys.ReadFile(path.Join(root, child))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", child, err)
		}
		tree[child] = string(data)
	}
}
