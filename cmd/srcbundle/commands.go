package srcbundle

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/srcbundle/internal/version"
	"github.com/arthur-debert/srcbundle/pkg/cobrax/topics"
	"github.com/arthur-debert/srcbundle/pkg/commands"
	"github.com/arthur-debert/srcbundle/pkg/commands/render"
	"github.com/arthur-debert/srcbundle/pkg/config"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/filesystem"
	"github.com/arthur-debert/srcbundle/pkg/logging"
	"github.com/arthur-debert/srcbundle/pkg/types"
	"github.com/arthur-debert/srcbundle/pkg/ui"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags and per-run state shared by
// every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	force      bool
	format     string
	configFile string

	runID string
	fs    types.FS
}

// loadConfig resolves the configuration layers for a run rooted at dir
func (g *globalOptions) loadConfig(dir string) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		SourceDir:  dir,
		ConfigFile: g.configFile,
	})
}

// renderer builds the output renderer for cmd from --format
func (g *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(filesystem.NewSynth())
}

func newRootCmd(fsys types.FS) *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{fs: fsys}

	rootCmd := &cobra.Command{
		Use:     "srcbundle",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			g.runID = uuid.NewString()
			logging.WithRunID(g.runID)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&g.force, "force", false, MsgFlagForce)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPackCmd(g))
	rootCmd.AddCommand(newUnpackCmd(g))
	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newVerifyCmd(g))
	rootCmd.AddCommand(newRenderCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	opts := topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newPackCmd(g *globalOptions) *cobra.Command {
	var (
		exts     []string
		output   string
		pdf      bool
		ignore   []string
		skipDirs []string
		prune    bool
	)

	cmd := &cobra.Command{
		Use:     "pack [dir]",
		Short:   MsgPackShort,
		Long:    MsgPackLong,
		Example: MsgPackExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			source := "."
			if len(args) == 1 {
				source = args[0]
			}

			cfg, err := g.loadConfig(source)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("ext") {
				cfg.Pack.Extensions = exts
			}
			if flags.Changed("output") {
				cfg.Pack.Output = output
			}
			if flags.Changed("pdf") {
				cfg.Pack.PDF = pdf
			}
			if flags.Changed("prune-empty") {
				cfg.Pack.PruneEmptyDirs = prune
			}
			cfg.Pack.Ignore = append(cfg.Pack.Ignore, ignore...)
			cfg.Pack.SkipDirs = append(cfg.Pack.SkipDirs, skipDirs...)

			log.Info().
				Str("source", source).
				Strs("extensions", cfg.Pack.Extensions).
				Bool("dry_run", g.dryRun).
				Msg("Packing source tree")

			summary, err := commands.Pack(commands.PackOptions{
				FS:     g.fs,
				Source: source,
				Pack:   cfg.Pack,
				PDF:    cfg.PDF,
				DryRun: g.dryRun,
				RunID:  g.runID,
			})
			if err != nil {
				return err
			}

			if summary.Included == 0 && g.format != "json" {
				if err := r.RenderMessage(fmt.Sprintf(MsgNoFilesMatched, strings.Join(cfg.Pack.Extensions, ", "))); err != nil {
					return err
				}
			}
			return r.RenderResult(summary)
		},
	}

	cmd.Flags().StringSliceVarP(&exts, "ext", "e", nil, MsgFlagExt)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&pdf, "pdf", false, MsgFlagPDF)
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, MsgFlagIgnore)
	cmd.Flags().StringArrayVar(&skipDirs, "skip-dir", nil, MsgFlagSkipDir)
	cmd.Flags().BoolVar(&prune, "prune-empty", false, MsgFlagPrune)
	return cmd
}

func newUnpackCmd(g *globalOptions) *cobra.Command {
	var (
		permissive bool
		skipEmpty  bool
	)

	cmd := &cobra.Command{
		Use:     "unpack <bundle> [dest]",
		Short:   MsgUnpackShort,
		Long:    MsgUnpackLong,
		Example: MsgUnpackExample,
		GroupID: "core",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}

			cfg, err := g.loadConfig(".")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("permissive") {
				cfg.Unpack.Permissive = permissive
			}
			if cmd.Flags().Changed("skip-empty-dirs") {
				cfg.Unpack.SkipEmptyDirs = skipEmpty
			}
			if g.force {
				cfg.Unpack.Overwrite = true
			}

			summary, err := commands.Unpack(commands.UnpackOptions{
				FS:     g.fs,
				Bundle: args[0],
				Dest:   dest,
				Unpack: cfg.Unpack,
				DryRun: g.dryRun,
				RunID:  g.runID,
			})
			if err != nil {
				return err
			}

			if err := r.RenderResult(summary); err != nil {
				return err
			}
			if n := len(summary.Failures); n > 0 {
				return errors.Newf(errors.ErrWriteFailure, MsgErrUnpackFailures, n, n+len(summary.Created)+len(summary.Dirs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&permissive, "permissive", false, MsgFlagPermissive)
	cmd.Flags().BoolVar(&skipEmpty, "skip-empty-dirs", false, MsgFlagSkipEmpty)
	return cmd
}

func newListCmd(g *globalOptions) *cobra.Command {
	var permissive bool

	cmd := &cobra.Command{
		Use:     "list <bundle>",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			summary, err := commands.List(commands.ListOptions{
				FS:         g.fs,
				Bundle:     args[0],
				Permissive: permissive,
			})
			if err != nil {
				return err
			}
			return r.RenderResult(summary)
		},
	}

	cmd.Flags().BoolVar(&permissive, "permissive", false, MsgFlagPermissive)
	return cmd
}

func newVerifyCmd(g *globalOptions) *cobra.Command {
	var permissive bool

	cmd := &cobra.Command{
		Use:     "verify <bundle> <dir>",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			summary, err := commands.Verify(commands.VerifyOptions{
				FS:         g.fs,
				Bundle:     args[0],
				Dir:        args[1],
				Permissive: permissive,
			})
			if err != nil {
				return err
			}
			if err := r.RenderResult(summary); err != nil {
				return err
			}
			if !summary.OK() {
				return errors.Newf(errors.ErrInvalidInput, MsgErrVerifyMismatch, len(summary.Changed), len(summary.Missing)).
					WithDetail("changed", summary.Changed).
					WithDetail("missing", summary.Missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&permissive, "permissive", false, MsgFlagPermissive)
	return cmd
}

func newRenderCmd(g *globalOptions) *cobra.Command {
	var (
		to         string
		output     string
		permissive bool
	)

	cmd := &cobra.Command{
		Use:     "render <bundle>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			cfg, err := g.loadConfig(".")
			if err != nil {
				return err
			}
			summary, err := commands.Render(commands.RenderOptions{
				FS:         g.fs,
				Bundle:     args[0],
				Output:     output,
				Format:     to,
				PDF:        cfg.PDF,
				Permissive: permissive,
				DryRun:     g.dryRun,
			})
			if err != nil {
				return err
			}
			return r.RenderResult(summary)
		},
	}

	cmd.Flags().StringVar(&to, "to", render.FormatPDF, MsgFlagTo)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&permissive, "permissive", false, MsgFlagPermissive)
	return cmd
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var (
		effective bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig [dir...]",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			opts := commands.GenConfigOptions{FS: g.fs, Write: write, Dirs: args}
			if effective {
				cfg, err := g.loadConfig(".")
				if err != nil {
					return err
				}
				opts.Effective = cfg
			}

			result, err := commands.GenConfig(opts)
			if err != nil {
				return err
			}
			return r.RenderResult(result)
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Run == nil {
				return errors.New(errors.ErrInternal, MsgErrHelpNotFound)
			}
			if len(args) == 0 {
				args = []string{"topics"}
			}
			helpCmd.Run(helpCmd, args)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "srcbundle version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
