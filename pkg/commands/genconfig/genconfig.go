// Package genconfig implements the genconfig command: print or write a
// configuration file.
package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/srcbundle/pkg/commands/internal"
	"github.com/arthur-debert/srcbundle/pkg/config"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/paths"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Options holds options for the genconfig command
type Options struct {
	FS types.FS
	// Effective, when set, is marshaled instead of the commented defaults
	Effective *config.Config
	// Write saves a project file into each of Dirs (the current directory
	// when empty) instead of returning the content for printing
	Write bool
	Dirs  []string
}

// GenConfig outputs or writes the configuration
func GenConfig(opts Options) (*display.GenConfigSummary, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	if opts.Effective != nil {
		data, err := config.Marshal(opts.Effective)
		if err != nil {
			return nil, err
		}
		content = string(data)
	}

	result := &display.GenConfigSummary{Content: content}
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	dirs := opts.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		abs, err := paths.Resolve(dir)
		if err != nil {
			return result, err
		}
		target := filepath.Join(abs, paths.ProjectConfigFileName)

		if _, err := opts.FS.Stat(target); err == nil {
			logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
			result.Existing = append(result.Existing, target)
			continue
		}
		if err := internal.WriteOutput(opts.FS, target, []byte(content)); err != nil {
			return result, err
		}
		logger.Info().Str("path", target).Msg("Written config file")
		result.Written = append(result.Written, target)
	}
	return result, nil
}
