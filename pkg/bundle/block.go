package bundle

import (
	"strings"
)

// NoFinalNewline follows the last content line of a block whose file does
// not end with a newline.
const NoFinalNewline = `\ No newline at end of file`

// escapePrefix is put in front of content lines that would otherwise read
// as a path marker or as NoFinalNewline.
const escapePrefix = `\`

// needsEscape reports whether a content line collides with block syntax once
// its leading escapes are removed. Escaped lines match too, so escaping is
// reversible.
func needsEscape(line string) bool {
	bare := strings.TrimLeft(line, escapePrefix)
	if strings.HasPrefix(bare, PathMarker) {
		return true
	}
	return len(bare) < len(line) && bare == NoFinalNewline[len(escapePrefix):]
}

// AppendBlock writes one code block: the path marker, the escaped content
// lines, NoFinalNewline when the content lacks a final newline, and exactly
// one blank line.
func AppendBlock(sb *strings.Builder, relPath, content string) {
	sb.WriteString(PathMarker)
	sb.WriteString(relPath)
	sb.WriteString("\n")
	if content != "" {
		for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
			if needsEscape(line) {
				sb.WriteString(escapePrefix)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		if !strings.HasSuffix(content, "\n") {
			sb.WriteString(NoFinalNewline + "\n")
		}
	}
	sb.WriteString("\n")
}

// blockContent decodes the buffered lines of one block. Current bundles
// drop the single terminating blank line, honor NoFinalNewline and undo
// escapes. Legacy bundles drop every trailing blank line and keep no final
// line terminator.
func blockContent(lines []string, version int) string {
	if version == LegacyVersion {
		end := len(lines)
		for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
			end--
		}
		return strings.Join(lines[:end], "\n")
	}

	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) == 0 {
		return ""
	}
	final := "\n"
	if lines[len(lines)-1] == NoFinalNewline {
		lines = lines[:len(lines)-1]
		final = ""
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if needsEscape(line) {
			line = line[len(escapePrefix):]
		}
		out[i] = line
	}
	return strings.Join(out, "\n") + final
}

// NormalizeContent returns content as it reads back from a bundle of the
// given version. Current bundles are lossless; legacy ones lose trailing
// blank lines and the final newline.
func NormalizeContent(content string, version int) string {
	if version != LegacyVersion {
		return content
	}
	return blockContent(strings.Split(content, "\n"), version)
}

// Blocks is the path -> content mapping of a code section, with the order
// in which paths appeared.
type Blocks struct {
	Content map[string]string
	Order   []string
	// Invalid holds marker paths that could not be normalized
	Invalid []string
}

// ParseBlocks scans code-section lines. A path marker starts a new block and
// flushes the previous one; lines before the first marker are discarded.
// Legacy marker paths are trimmed of surrounding spaces; current ones are
// taken as written.
func ParseBlocks(lines []string, firstLineNo int, version int, opts ParseOptions) (*Blocks, error) {
	b := &Blocks{Content: make(map[string]string)}

	current := ""
	inBlock := false
	var buffer []string

	flush := func() {
		if inBlock && current != "" {
			if _, seen := b.Content[current]; !seen {
				b.Order = append(b.Order, current)
			}
			b.Content[current] = blockContent(buffer, version)
		}
		buffer = buffer[:0]
	}

	for i, raw := range lines {
		marker := strings.TrimRight(raw, "\r")
		if !strings.HasPrefix(marker, PathMarker) {
			if inBlock {
				buffer = append(buffer, raw)
			}
			continue
		}

		flush()
		inBlock = true
		rawPath := marker[len(PathMarker):]
		if version == LegacyVersion {
			rawPath = strings.TrimSpace(rawPath)
		}
		current = NormalizePath(rawPath)
		if current == "" {
			b.Invalid = append(b.Invalid, rawPath)
			continue
		}
		if _, dup := b.Content[current]; dup && !opts.Permissive {
			return nil, malformed("code block path appears more than once", firstLineNo+i, raw).
				WithDetail("path", current)
		}
	}
	flush()

	return b, nil
}
