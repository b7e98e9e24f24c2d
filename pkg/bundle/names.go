package bundle

import (
	"fmt"
	"path"
	"strings"
)

// ValidateName checks that name is a single path segment that a layout line
// can hold: not empty, not "." or "..", without separators or line breaks.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name: %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name must not contain path separators: %q", name)
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("name must not contain line breaks: %q", name)
	}
	return nil
}

// NormalizePath converts a code-block path to the "/"-separated, cleaned
// form used as mapping key. It returns "" for paths that cannot name a file
// under the root. Spaces are part of the path.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return ""
	}
	return p
}
