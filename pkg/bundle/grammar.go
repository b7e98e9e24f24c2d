package bundle

import (
	"strings"
)

const (
	// FormatVersion is the grammar version written by Render
	FormatVersion = 1

	// LegacyVersion is assigned to bundles that carry no version line
	LegacyVersion = 0

	VersionPrefix = "BUNDLE-FORMAT: "
	LayoutHeader  = "PROJECT FILE LAYOUT"
	Rule          = "==================="
	CodeHeader    = "CODE CONTENT"
	PathMarker    = "// File: "

	// IndentUnit is the indentation of one depth level
	IndentUnit = "    "

	// RootName is the fixed name of the root directory line
	RootName = "."

	TagDirectory = "D"
	TagFile      = "F"

	legacyDirectoryGlyph = "📁"
	legacyFileGlyph      = "📄"
)

// Kind tells directories and files apart in the layout section
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// LayoutLine is one rendered node of the layout section
type LayoutLine struct {
	Depth int
	Kind  Kind
	Name  string
}

// RootLine returns the layout line of the tree root
func RootLine() LayoutLine {
	return LayoutLine{Depth: 0, Kind: KindDirectory, Name: RootName}
}

// IsRoot reports whether the line is the root marker
func (l LayoutLine) IsRoot() bool {
	return l.Depth == 0 && l.Kind == KindDirectory && l.Name == RootName
}

// String renders the line in the current grammar
func (l LayoutLine) String() string {
	tag := TagDirectory
	if l.Kind == KindFile {
		tag = TagFile
	}
	return strings.Repeat(IndentUnit, l.Depth) + tag + " " + l.Name
}

// FormatLayout renders layout lines in order
func FormatLayout(lines []LayoutLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// tagsFor returns the directory and file tags valid for a grammar version
func tagsFor(version int) (dir, file string) {
	if version == LegacyVersion {
		return legacyDirectoryGlyph, legacyFileGlyph
	}
	return TagDirectory, TagFile
}
