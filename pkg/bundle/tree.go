package bundle

import (
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/errors"
)

// NodeID identifies a node inside one Tree
type NodeID int

// RootID is the identifier of the root directory of every Tree
const RootID NodeID = 0

// Node is a directory or a file of a Tree. Directories own the ordered list
// of their children's identifiers.
type Node struct {
	ID       NodeID
	Name     string
	Kind     Kind
	Parent   NodeID
	Children []NodeID
}

// Tree is the shape recovered from a layout section
type Tree struct {
	nodes []Node
}

// NewTree returns a tree holding only the root directory
func NewTree() *Tree {
	return &Tree{nodes: []Node{{ID: RootID, Name: RootName, Kind: KindDirectory, Parent: RootID}}}
}

// Node returns the node with the given identifier
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Len returns the number of nodes, root included
func (t *Tree) Len() int {
	return len(t.nodes)
}

// child finds a direct child of parent by name
func (t *Tree) child(parent NodeID, name string) (NodeID, bool) {
	for _, id := range t.nodes[parent].Children {
		if t.nodes[id].Name == name {
			return id, true
		}
	}
	return 0, false
}

func (t *Tree) add(parent NodeID, name string, kind Kind) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{ID: id, Name: name, Kind: kind, Parent: parent})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Path returns the "/"-joined path of a node relative to the root. The
// root itself has the empty path.
func (t *Tree) Path(id NodeID) string {
	var parts []string
	for id != RootID {
		n := t.nodes[id]
		parts = append(parts, n.Name)
		id = n.Parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Leaves returns file paths in layout order
func (t *Tree) Leaves() []string {
	return t.collect(KindFile)
}

// Dirs returns directory paths in layout order, root excluded
func (t *Tree) Dirs() []string {
	return t.collect(KindDirectory)
}

func (t *Tree) collect(kind Kind) []string {
	var out []string
	for _, n := range t.nodes[1:] {
		if n.Kind == kind {
			out = append(out, t.Path(n.ID))
		}
	}
	return out
}

// BuildTree replays layout lines against a stack of ancestor directories.
// For each line the stack is cut to the line's depth; the line's parent is
// the top of what remains. Directories are pushed, files become leaves.
func BuildTree(lines []LayoutLine, lineNos []int, version int, opts ParseOptions) (*Tree, error) {
	t := NewTree()
	var stack []NodeID
	if version != LegacyVersion {
		stack = []NodeID{RootID}
	}

	for i, l := range lines {
		lineNo := 0
		if i < len(lineNos) {
			lineNo = lineNos[i]
		}

		if len(stack) > l.Depth {
			stack = stack[:l.Depth]
		}

		if l.Name == RootName && l.Kind == KindDirectory {
			if l.Depth != 0 {
				if opts.Permissive {
					continue
				}
				return nil, malformed("root marker below depth 0", lineNo, l.String())
			}
			stack = append(stack[:0], RootID)
			continue
		}

		if err := ValidateName(l.Name); err != nil {
			if opts.Permissive {
				continue
			}
			return nil, errors.Wrap(err, errors.ErrMalformedBundle, "invalid layout name").
				WithDetail("line", lineNo)
		}

		if len(stack) < l.Depth && !opts.Permissive {
			return nil, malformed("layout depth jumps more than one level", lineNo, l.String()).
				WithDetail("depth", l.Depth).
				WithDetail("expected_max", len(stack))
		}

		// Legacy bundles put top-level directories at depth 0 next to the
		// root marker; the current grammar reserves depth 0 for the root.
		if l.Depth == 0 && version != LegacyVersion && !opts.Permissive {
			return nil, malformed("only the root may sit at depth 0", lineNo, l.String())
		}

		parent := RootID
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}

		id, exists := t.child(parent, l.Name)
		switch {
		case exists && t.nodes[id].Kind != l.Kind:
			if opts.Permissive {
				continue
			}
			return nil, malformed("name used for both a file and a directory", lineNo, l.String())
		case exists && l.Kind == KindFile:
			if opts.Permissive {
				continue
			}
			return nil, malformed("file listed twice", lineNo, l.String())
		case !exists:
			id = t.add(parent, l.Name, l.Kind)
		}

		if l.Kind == KindDirectory {
			stack = append(stack, id)
		}
	}

	return t, nil
}

// Layout renders the tree back to layout lines in pre-order, with depths
// measured from the root. Legacy depths come out in the current grammar.
func (t *Tree) Layout() []LayoutLine {
	out := []LayoutLine{RootLine()}
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		for _, c := range t.nodes[id].Children {
			n := t.nodes[c]
			out = append(out, LayoutLine{Depth: depth, Kind: n.Kind, Name: n.Name})
			if n.Kind == KindDirectory {
				walk(c, depth+1)
			}
		}
	}
	walk(RootID, 1)
	return out
}
