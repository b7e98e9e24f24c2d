// Package commands provides the command implementations behind the CLI.
//
// Each command is implemented in its own subdirectory:
//   - pack/      - Pack: source tree to bundle (and PDF)
//   - unpack/    - Unpack: bundle to source tree
//   - list/      - List: describe a bundle
//   - verify/    - Verify: compare a tree with a bundle
//   - render/    - Render: bundle to PDF or current-version text
//   - genconfig/ - GenConfig: print or write configuration
//   - internal/  - bundle file helpers
//
// Commands take a types.FS and return the view models of pkg/ui/display.
package commands

import (
	"github.com/arthur-debert/srcbundle/pkg/commands/genconfig"
	"github.com/arthur-debert/srcbundle/pkg/commands/list"
	"github.com/arthur-debert/srcbundle/pkg/commands/pack"
	"github.com/arthur-debert/srcbundle/pkg/commands/render"
	"github.com/arthur-debert/srcbundle/pkg/commands/unpack"
	"github.com/arthur-debert/srcbundle/pkg/commands/verify"
	"github.com/arthur-debert/srcbundle/pkg/ui/display"
)

// Pack serializes a source tree into a bundle file.
type PackOptions = pack.Options

func Pack(opts PackOptions) (*display.PackSummary, error) {
	return pack.Pack(opts)
}

// Unpack rebuilds a tree from a bundle file.
type UnpackOptions = unpack.Options

func Unpack(opts UnpackOptions) (*display.UnpackSummary, error) {
	return unpack.Unpack(opts)
}

// List describes the contents of a bundle.
type ListOptions = list.Options

func List(opts ListOptions) (*display.ListSummary, error) {
	return list.List(opts)
}

// Verify compares a directory tree with a bundle.
type VerifyOptions = verify.Options

func Verify(opts VerifyOptions) (*display.VerifySummary, error) {
	return verify.Verify(opts)
}

// Render writes a bundle as PDF or canonical text.
type RenderOptions = render.Options

func Render(opts RenderOptions) (*display.RenderSummary, error) {
	return render.Render(opts)
}

// GenConfig prints or writes configuration.
type GenConfigOptions = genconfig.Options

func GenConfig(opts GenConfigOptions) (*display.GenConfigSummary, error) {
	return genconfig.GenConfig(opts)
}
