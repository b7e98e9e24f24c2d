// Package filter decides which entries of a source tree take part in a
// bundle: a case-insensitive suffix allow-list for files, glob ignore rules
// matched against entry names, and directory names that are never entered.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/types"
)

// Filter is safe to share between runs. The zero value matches no file and
// ignores nothing.
type Filter struct {
	suffixes []string
	ignore   []string
	skipDirs map[string]bool
}

// New builds a filter. Suffixes are compared case-insensitively against the
// end of the file name; a leading dot is not required ("kt" matches
// "Main.kt" and "Main.KT"). Empty suffixes are dropped.
func New(suffixes, ignore, skipDirs []string) *Filter {
	f := &Filter{skipDirs: make(map[string]bool)}
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			f.suffixes = append(f.suffixes, s)
		}
	}
	for _, p := range ignore {
		if p = strings.TrimSpace(p); p != "" {
			f.ignore = append(f.ignore, p)
		}
	}
	for _, d := range skipDirs {
		if d = strings.TrimSpace(d); d != "" {
			f.skipDirs[d] = true
		}
	}
	return f
}

// Suffixes returns the normalized allow-list
func (f *Filter) Suffixes() []string {
	return append([]string(nil), f.suffixes...)
}

// MatchesSuffix reports whether name ends with one of the allowed suffixes
func (f *Filter) MatchesSuffix(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range f.suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// IsIgnored matches the entry name, then its slash-separated relative path,
// against the ignore globs.
func (f *Filter) IsIgnored(name, relPath string) bool {
	for _, pattern := range f.ignore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if relPath != "" && strings.Contains(pattern, "/") {
			if matched, _ := filepath.Match(pattern, relPath); matched {
				return true
			}
		}
	}
	return false
}

// File returns "" when the file is included, otherwise the reason it is not
func (f *Filter) File(name, relPath string) string {
	if f.IsIgnored(name, relPath) {
		return types.ReasonIgnored
	}
	if !f.MatchesSuffix(name) {
		return types.ReasonFiltered
	}
	return ""
}

// Dir returns "" when the directory is entered, otherwise the reason it is
// not. The root is always entered.
func (f *Filter) Dir(name, relPath string) string {
	if relPath == "" {
		return ""
	}
	if f.skipDirs[name] {
		return types.ReasonExcluded
	}
	if f.IsIgnored(name, relPath) {
		return types.ReasonIgnored
	}
	return ""
}
