package config

import (
	"github.com/arthur-debert/srcbundle/pkg/errors"
)

// Config is the resolved configuration of one run
type Config struct {
	Pack   Pack   `koanf:"pack" toml:"pack"`
	Unpack Unpack `koanf:"unpack" toml:"unpack"`
	PDF    PDF    `koanf:"pdf" toml:"pdf"`

	// Sources lists the files and layers that contributed, in load order
	Sources []string `koanf:"-" toml:"-"`
}

// Pack holds serialization settings
type Pack struct {
	Extensions     []string `koanf:"extensions" toml:"extensions"`
	Ignore         []string `koanf:"ignore" toml:"ignore"`
	SkipDirs       []string `koanf:"skip_dirs" toml:"skip_dirs"`
	Output         string   `koanf:"output" toml:"output"`
	PruneEmptyDirs bool     `koanf:"prune_empty_dirs" toml:"prune_empty_dirs"`
	PDF            bool     `koanf:"pdf" toml:"pdf"`
}

// Unpack holds reconstruction settings
type Unpack struct {
	Permissive    bool `koanf:"permissive" toml:"permissive"`
	SkipEmptyDirs bool `koanf:"skip_empty_dirs" toml:"skip_empty_dirs"`
	Overwrite     bool `koanf:"overwrite" toml:"overwrite"`
}

// PDF holds page layout settings for the PDF renderer
type PDF struct {
	FontSize     float64 `koanf:"font_size" toml:"font_size"`
	LineHeight   float64 `koanf:"line_height" toml:"line_height"`
	Margin       float64 `koanf:"margin" toml:"margin"`
	MaxLineRunes int     `koanf:"max_line_runes" toml:"max_line_runes"`
}

// Validate rejects values no component can work with
func (c *Config) Validate() error {
	if c.Pack.Output == "" {
		return errors.New(errors.ErrConfigParse, "pack.output must not be empty")
	}
	if c.PDF.FontSize <= 0 || c.PDF.LineHeight <= 0 || c.PDF.Margin < 0 {
		return errors.New(errors.ErrConfigParse, "pdf sizes must be positive").
			WithDetail("font_size", c.PDF.FontSize).
			WithDetail("line_height", c.PDF.LineHeight).
			WithDetail("margin", c.PDF.Margin)
	}
	if c.PDF.MaxLineRunes <= 0 {
		return errors.New(errors.ErrConfigParse, "pdf.max_line_runes must be positive")
	}
	return nil
}
