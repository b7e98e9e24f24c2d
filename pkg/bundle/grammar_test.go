package bundle

import (
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutLineString(t *testing.T) {
	tests := []struct {
		name string
		line LayoutLine
		want string
	}{
		{"root", RootLine(), "D ."},
		{"directory", LayoutLine{Depth: 1, Kind: KindDirectory, Name: "src"}, "    D src"},
		{"file", LayoutLine{Depth: 2, Kind: KindFile, Name: "a.txt"}, "        F a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.String())
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "directory", KindDirectory.String())
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestParseLayoutLine(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		version  int
		opts     ParseOptions
		want     LayoutLine
		wantOK   bool
		wantCode errors.ErrorCode
	}{
		{
			name:    "root",
			raw:     "D .",
			version: FormatVersion,
			want:    RootLine(),
			wantOK:  true,
		},
		{
			name:    "nested file",
			raw:     "        F main.go",
			version: FormatVersion,
			want:    LayoutLine{Depth: 2, Kind: KindFile, Name: "main.go"},
			wantOK:  true,
		},
		{
			name:    "name with spaces keeps inner spaces",
			raw:     "    F read me.txt\r",
			version: FormatVersion,
			want:    LayoutLine{Depth: 1, Kind: KindFile, Name: "read me.txt"},
			wantOK:  true,
		},
		{
			name:    "surrounding spaces are part of the name",
			raw:     "    F  lead.txt ",
			version: FormatVersion,
			want:    LayoutLine{Depth: 1, Kind: KindFile, Name: " lead.txt "},
			wantOK:  true,
		},
		{
			name:    "legacy names are trimmed",
			raw:     "    📄  lead.txt ",
			version: LegacyVersion,
			want:    LayoutLine{Depth: 1, Kind: KindFile, Name: "lead.txt"},
			wantOK:  true,
		},
		{
			name:    "blank line is skipped",
			raw:     "   ",
			version: FormatVersion,
		},
		{
			name:     "misaligned indentation is malformed",
			raw:      "  F a.txt",
			version:  FormatVersion,
			wantCode: errors.ErrMalformedBundle,
		},
		{
			name:    "misaligned indentation floors when permissive",
			raw:     "      F a.txt",
			version: FormatVersion,
			opts:    ParseOptions{Permissive: true},
			want:    LayoutLine{Depth: 1, Kind: KindFile, Name: "a.txt"},
			wantOK:  true,
		},
		{
			name:     "tab indentation is malformed",
			raw:      "\tF a.txt",
			version:  FormatVersion,
			wantCode: errors.ErrMalformedBundle,
		},
		{
			name:     "missing tag is malformed",
			raw:      "    a.txt",
			version:  FormatVersion,
			wantCode: errors.ErrMalformedBundle,
		},
		{
			name:    "missing tag is ignored when permissive",
			raw:     "    a.txt",
			version: FormatVersion,
			opts:    ParseOptions{Permissive: true},
		},
		{
			name:    "legacy glyphs",
			raw:     "    📄 Main.kt",
			version: LegacyVersion,
			want:    LayoutLine{Depth: 1, Kind: KindFile, Name: "Main.kt"},
			wantOK:  true,
		},
		{
			name:     "glyphs are not part of the current grammar",
			raw:      "📁 .",
			version:  FormatVersion,
			wantCode: errors.ErrMalformedBundle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseLayoutLine(tt.raw, tt.version, 3, tt.opts)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				assert.Equal(t, 3, errors.GetErrorDetails(err)["line"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"a.txt", "src", ".gitignore", "read me", " lead.txt", "trail.txt "} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "a\nb", "a\r"} {
		assert.Error(t, ValidateName(name), name)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"src/a.txt", "src/a.txt"},
		{" src/a.txt ", " src/a.txt "},
		{"src/ lead.txt", "src/ lead.txt"},
		{`src\sub\b.txt`, "src/sub/b.txt"},
		{"./src//a.txt", "src/a.txt"},
		{"", ""},
		{".", ""},
		{"../etc/passwd", ""},
		{"src/../../x", ""},
		{"/etc/passwd", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}
