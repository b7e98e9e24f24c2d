package bundle

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/srcbundle/pkg/errors"
)

// ParseOptions control how forgiving parsing is. The zero value is strict.
type ParseOptions struct {
	// Permissive floors misaligned indentation, attaches depth jumps to the
	// current directory, keeps the last of duplicate code blocks and skips
	// unparseable or invalid lines instead of rejecting the bundle.
	Permissive bool
}

// ParseLayoutLine decodes one layout line. Blank lines return ok=false and
// no error. lineNo is only used in error details.
func ParseLayoutLine(raw string, version int, lineNo int, opts ParseOptions) (LayoutLine, bool, error) {
	line := strings.TrimRight(raw, "\r")
	if strings.TrimSpace(line) == "" {
		return LayoutLine{}, false, nil
	}

	depth, rest, err := splitIndent(line, opts)
	if err != nil {
		return LayoutLine{}, false, malformed(err.Error(), lineNo, raw)
	}

	dirTag, fileTag := tagsFor(version)
	var kind Kind
	switch {
	case strings.HasPrefix(rest, dirTag+" "):
		kind = KindDirectory
		rest = rest[len(dirTag)+1:]
	case strings.HasPrefix(rest, fileTag+" "):
		kind = KindFile
		rest = rest[len(fileTag)+1:]
	default:
		if opts.Permissive {
			return LayoutLine{}, false, nil
		}
		return LayoutLine{}, false, malformed("layout line has no directory or file tag", lineNo, raw)
	}

	// Legacy names are trimmed like legacy marker paths; current names keep
	// every character after the single space that follows the tag.
	if version == LegacyVersion {
		rest = strings.TrimSpace(rest)
	}
	return LayoutLine{Depth: depth, Kind: kind, Name: rest}, true, nil
}

// splitIndent measures leading indentation in IndentUnit steps
func splitIndent(line string, opts ParseOptions) (int, string, error) {
	spaces := 0
	units := 0
	i := 0
	for ; i < len(line); i++ {
		switch line[i] {
		case ' ':
			spaces++
			continue
		case '\t':
			if !opts.Permissive {
				return 0, "", fmt.Errorf("tab in layout indentation")
			}
			units++
			continue
		}
		break
	}
	if spaces%len(IndentUnit) != 0 && !opts.Permissive {
		return 0, "", fmt.Errorf("indentation of %d spaces is not a multiple of %d", spaces, len(IndentUnit))
	}
	return units + spaces/len(IndentUnit), line[i:], nil
}

func malformed(msg string, lineNo int, raw string) *errors.Error {
	return errors.New(errors.ErrMalformedBundle, msg).
		WithDetail("line", lineNo).
		WithDetail("text", raw)
}
