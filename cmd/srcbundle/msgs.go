package srcbundle

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Flatten source trees into text bundles and back"
	MsgPackShort       = "Bundle a source tree into one text file"
	MsgUnpackShort     = "Rebuild a source tree from a bundle"
	MsgListShort       = "List the files and directories of a bundle"
	MsgListLong        = "List prints the layout of a bundle: its files in order, its directories, files without content and orphan code blocks."
	MsgVerifyShort     = "Check a directory against a bundle"
	MsgRenderShort     = "Render a bundle as PDF or current-version text"
	MsgGenConfigShort  = "Print or write a configuration file"
	MsgGenConfigLong   = "Print the default configuration with every value commented out, or with --effective the configuration after all layers are applied.\n\nWith -w, write a .srcbundle.toml project file into each given directory (the current one by default). Existing files are left unchanged."
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgNoFilesMatched = "No file matched the extensions %s; the bundle has an empty code section."

	// Error messages
	MsgErrNoCommand      = "no command specified"
	MsgErrUnpackFailures = "%d of %d paths could not be written"
	MsgErrVerifyMismatch = "%d files changed and %d missing"
	MsgErrHelpNotFound   = "help command not found"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without writing files"
	MsgFlagForce      = "Overwrite existing files when unpacking"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagConfig     = "Configuration file applied after all other layers"
	MsgFlagExt        = "File-name suffix to include (repeatable, replaces configured extensions)"
	MsgFlagOutput     = "Output file"
	MsgFlagPDF        = "Also write a PDF next to the bundle"
	MsgFlagIgnore     = "Glob pattern of entries to leave out (repeatable)"
	MsgFlagSkipDir    = "Directory name never descended into (repeatable)"
	MsgFlagPrune      = "Leave out directories with no included file"
	MsgFlagPermissive = "Repair misaligned indentation and skip duplicate or invalid entries"
	MsgFlagSkipEmpty  = "Create only the directories that hold files"
	MsgFlagTo         = "Render format: pdf or text"
	MsgFlagEffective  = "Print the resolved configuration instead of the defaults"
	MsgFlagWrite      = "Write .srcbundle.toml files instead of printing"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/pack-long.txt
	msgPackLongRaw string
	MsgPackLong    = strings.TrimSpace(msgPackLongRaw)

	//go:embed msgs/pack-example.txt
	msgPackExampleRaw string
	MsgPackExample    = strings.TrimRight(msgPackExampleRaw, "\n")

	//go:embed msgs/unpack-long.txt
	msgUnpackLongRaw string
	MsgUnpackLong    = strings.TrimSpace(msgUnpackLongRaw)

	//go:embed msgs/unpack-example.txt
	msgUnpackExampleRaw string
	MsgUnpackExample    = strings.TrimRight(msgUnpackExampleRaw, "\n")

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
