package filemap

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/filemap/internal/version"
	"github.com/arthur-debert/filemap/pkg/config"
	"github.com/arthur-debert/filemap/pkg/fmlang"
	"github.com/arthur-debert/filemap/pkg/help"
	"github.com/arthur-debert/filemap/pkg/logging"
	"github.com/arthur-debert/filemap/pkg/manifest"
	"github.com/arthur-debert/filemap/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	verbosity  int
	configFile string
	replace    bool
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "filemap",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("filemap version {{.Version}}\n  commit: %s\n  built:  %s\n", version.Commit, version.Date))

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&opts.replace, "replace", false, MsgFlagReplace)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return output.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newShellCmd(opts))
	rootCmd.AddCommand(newStageCmd(opts))
	rootCmd.AddCommand(newCollectCmd(opts))
	rootCmd.AddCommand(newSyntaxCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	if tm, err := help.New(help.Options{Renderer: topicRenderer()}); err == nil {
		tm.Install(rootCmd)
	}

	return rootCmd
}

// loadConfig layers the config files with the flags the user actually set
func (o *rootOptions) loadConfig(cmd *cobra.Command, workDir string) (*config.Config, error) {
	overrides := map[string]interface{}{}
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("replace") {
		overrides["replace_duplicates"] = o.replace
	}
	if flags.Changed("format") {
		overrides["output.format"] = o.format
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		WorkDir:    workDir,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// newInterpreter seeds an interpreter from the configuration
func newInterpreter(cfg *config.Config, cwd string, out io.Writer) (*fmlang.Interpreter, error) {
	return fmlang.New(fmlang.Options{
		Dir:               cwd,
		ReplaceDuplicates: cfg.ReplaceDuplicates,
		Exclusions:        cfg.Excludes,
		Out:               out,
		ShowWidth:         cfg.Output.ShowWidth,
	})
}

// renderManifest prints m in the configured format. Auto detection only
// picks the table when writing to a colour terminal.
func renderManifest(cfg *config.Config, w io.Writer, m *manifest.Manifest) error {
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}
	format = output.Resolve(format, w)

	r, err := output.New(format, w, output.Options{Width: cfg.Output.ShowWidth})
	if err != nil {
		return err
	}
	return r.Render(m)
}

// topicRenderer styles help topics only on terminals
func topicRenderer() help.Renderer {
	if isTerminal(os.Stdout) {
		return help.NewGlamourRenderer()
	}
	return &help.PlainRenderer{}
}

func newSyntaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "syntax",
		Short:   MsgSyntaxShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := help.New(help.Options{Renderer: topicRenderer()})
			if err != nil {
				return err
			}
			return tm.Write(cmd.OutOrStdout(), help.SyntaxTopic)
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}

			cfg, err := opts.loadConfig(cmd, ".")
			if err != nil {
				return err
			}
			content, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
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
				return cmd.Root().GenBashCompletion(out)
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
