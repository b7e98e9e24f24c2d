// Package display holds the view models commands hand to renderers. They
// carry plain data only, so every output format sees the same facts.
package display

import (
	"time"

	"github.com/arthur-debert/srcbundle/pkg/types"
)

// PackSummary describes a serialization run
type PackSummary struct {
	RunID  string `json:"run_id"`
	Source string `json:"source"`
	Output string `json:"output"`
	PDF    string `json:"pdf,omitempty"`

	// Included files in bundle order
	Included int      `json:"included"`
	Files    []string `json:"files"`

	// Entries left out on purpose, and entries that could not be read
	Skipped []types.Diagnostic `json:"skipped"`
	Errors  []types.Diagnostic `json:"errors"`

	// Whether this was a dry run
	DryRun bool `json:"dry_run"`

	// When the command was executed
	Timestamp time.Time `json:"timestamp"`
}

// UnpackSummary describes a reconstruction run
type UnpackSummary struct {
	RunID    string             `json:"run_id"`
	Bundle   string             `json:"bundle"`
	Dest     string             `json:"dest"`
	Version  int                `json:"version"`
	Created  []string           `json:"created"`
	Dirs     []string           `json:"dirs"`
	Failures []types.Diagnostic `json:"failures"`
	Orphans  []types.Diagnostic `json:"orphans"`

	// Whether this was a dry run
	DryRun bool `json:"dry_run"`

	// When the command was executed
	Timestamp time.Time `json:"timestamp"`
}

// ListSummary describes the contents of a bundle
type ListSummary struct {
	Bundle  string   `json:"bundle"`
	Version int      `json:"version"`
	Files   []string `json:"files"`
	Dirs    []string `json:"dirs"`

	// Empty lists files that have no code block
	Empty   []string `json:"empty"`
	Orphans []string `json:"orphans"`
}

// VerifySummary compares a bundle with a directory tree
type VerifySummary struct {
	Bundle string `json:"bundle"`
	Dir    string `json:"dir"`

	// Matched files have identical content, Changed differ, Missing are
	// absent from the tree.
	Matched []string `json:"matched"`
	Changed []string `json:"changed"`
	Missing []string `json:"missing"`
}

// OK reports whether the tree holds every bundled file unchanged
func (v *VerifySummary) OK() bool {
	return len(v.Changed) == 0 && len(v.Missing) == 0
}

// RenderSummary describes a bundle rendered to another format
type RenderSummary struct {
	Bundle string `json:"bundle"`
	Output string `json:"output"`
	Format string `json:"format"`
	Lines  int    `json:"lines"`
}

// CountReasons groups diagnostics by reason, keeping first-seen order
func CountReasons(diags []types.Diagnostic) ([]string, map[string]int) {
	counts := make(map[string]int)
	var order []string
	for _, d := range diags {
		if counts[d.Reason] == 0 {
			order = append(order, d.Reason)
		}
		counts[d.Reason]++
	}
	return order, counts
}

// GenConfigSummary carries generated configuration, either to print or as
// the list of files it was written to
type GenConfigSummary struct {
	Content string   `json:"content"`
	Written []string `json:"written"`
	// Existing lists targets left untouched because they already exist
	Existing []string `json:"existing"`
}
