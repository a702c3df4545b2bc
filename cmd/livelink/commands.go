package livelink

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/livelink/internal/version"
	"github.com/arthur-debert/livelink/pkg/config"
	"github.com/arthur-debert/livelink/pkg/core"
	"github.com/arthur-debert/livelink/pkg/errors"
	"github.com/arthur-debert/livelink/pkg/git"
	"github.com/arthur-debert/livelink/pkg/logging"
	"github.com/arthur-debert/livelink/pkg/runner"
	"github.com/arthur-debert/livelink/pkg/types"
	"github.com/arthur-debert/livelink/pkg/ui"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"gopkg.in/yaml.v3"
)

// Env holds what a command run reads from its surroundings. Zero values use
// the process environment and the real filesystem, runner and cloner.
type Env struct {
	WorkingDir     string
	UserConfigFile string
	Environ        []string

	FileSystem types.FS
	Runner     runner.Runner
	Cloner     git.Cloner

	// ProcessStdout and ProcessStderr receive child process output
	ProcessStdout io.Writer
	ProcessStderr io.Writer
}

// flagKeys maps link flags to configuration keys
var flagKeys = map[string]string{
	"cwd":                    "cwd",
	"dest":                   "dest",
	"id":                     "id",
	"manifest":               "manifest",
	"dir":                    "dir",
	"repo":                   "repo",
	"npm":                    "package_manager",
	"abort-on-clone-failure": "abort_on_clone_failure",
	"timeout":                "timeout",
	"dry-run":                "dry_run",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(&Env{})
}

// NewRootCmdWithEnv creates the root command bound to env
func NewRootCmdWithEnv(env *Env) *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		format    string
	)

	rootCmd := &cobra.Command{
		Use:     "livelink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errors.Newf(errors.ErrInvalidInput, MsgErrUnexpectedArgs, args)
			}
			return runLink(cmd, env, format)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&format, "format", "auto", MsgFlagFormat)
	pf.String("cwd", "", MsgFlagCwd)
	pf.String("dest", "", MsgFlagDest)
	pf.String("id", "", MsgFlagID)
	pf.String("manifest", "package.json", MsgFlagManifest)
	pf.String("dir", "", MsgFlagDir)
	pf.String("repo", "", MsgFlagRepo)
	pf.String("npm", "npm", MsgFlagNpm)
	pf.Bool("abort-on-clone-failure", true, MsgFlagAbortOnClone)
	pf.Duration("timeout", 0, MsgFlagTimeout)
	pf.Bool("dry-run", false, MsgFlagDryRun)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagDirname("dest")
	_ = rootCmd.MarkPersistentFlagDirname("cwd")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetHelpTemplate(MsgHelpTemplate)

	rootCmd.AddCommand(newResolveCmd(env, &format))
	rootCmd.AddCommand(newConfigCmd(env))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// collectFlags returns the explicitly set link flags keyed by config key
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		flags[key] = f.Value.String()
	}
	return flags
}

func loadOptions(cmd *cobra.Command, env *Env) (*config.Options, error) {
	opts, err := config.Load(config.LoadOptions{
		WorkingDir:     env.WorkingDir,
		UserConfigFile: env.UserConfigFile,
		Environ:        env.Environ,
		Flags:          collectFlags(cmd),
	})
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("cmd")
	logger.Debug().Str("options", opts.Describe()).Msg("Configuration loaded")
	return opts, nil
}

func newRenderer(cmd *cobra.Command, format string) (ui.Renderer, error) {
	f, err := ui.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(f, cmd.OutOrStdout())
}

// reportedError wraps an error the command already wrote out through its
// renderer
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err has already been rendered for the user
func IsReported(err error) bool {
	var re *reportedError
	return stderrors.As(err, &re)
}

// reportError renders err in the selected format. JSON goes to stdout so the
// output stays one parseable stream; other formats go to stderr.
func reportError(cmd *cobra.Command, format string, err error) error {
	f, perr := ui.ParseFormat(format)
	if perr != nil {
		return err
	}
	out := cmd.ErrOrStderr()
	if f == ui.FormatJSON {
		out = cmd.OutOrStdout()
	}
	renderer, rerr := ui.NewRenderer(f, out)
	if rerr != nil {
		return err
	}
	if rerr := renderer.RenderError(err); rerr != nil {
		logger := logging.GetLogger("cmd")
		logger.Error().Err(rerr).Msg("Failed to render error")
		return err
	}
	return &reportedError{err: err}
}

func runLink(cmd *cobra.Command, env *Env, format string) error {
	logger := logging.GetLogger("cmd.link")

	renderer, err := newRenderer(cmd, format)
	if err != nil {
		return err
	}

	opts, err := loadOptions(cmd, env)
	if err != nil {
		return reportError(cmd, format, err)
	}

	stdout, stderr := env.ProcessStdout, env.ProcessStderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if f, _ := ui.ParseFormat(format); f == ui.FormatJSON {
		// Keep stdout parseable
		stdout = stderr
	}

	result, err := core.Link(cmd.Context(), core.LinkOptions{
		Options:    opts,
		FileSystem: env.FileSystem,
		Runner:     env.Runner,
		Cloner:     env.Cloner,
		Stdout:     stdout,
		Stderr:     stderr,
	})
	if result == nil {
		return reportError(cmd, format, err)
	}

	if rerr := renderer.RenderResult(result); rerr != nil {
		logger.Error().Err(rerr).Msg("Failed to render result")
		return err
	}
	if err != nil {
		// the failed step is part of the rendered result
		return &reportedError{err: err}
	}
	if !result.Succeeded() {
		logger.Warn().Msg(MsgCloneFailureIgnored)
	}
	return nil
}

func newResolveCmd(env *Env, format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: MsgResolveShort,
		Long:  MsgResolveLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, *format)
			if err != nil {
				return err
			}
			opts, err := loadOptions(cmd, env)
			if err != nil {
				return reportError(cmd, *format, err)
			}
			cfg, err := core.Resolve(opts, env.FileSystem)
			if err != nil {
				return reportError(cmd, *format, err)
			}
			return renderer.RenderConfig(cfg)
		},
	}
}

func newConfigCmd(env *Env) *cobra.Command {
	var (
		format   string
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := io.WriteString(cmd.OutOrStdout(), config.DefaultConfigContent())
				return err
			}
			opts, err := loadOptions(cmd, env)
			if err != nil {
				return err
			}
			out, err := encodeConfig(opts.ToMap(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", MsgFlagConfigFormat)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagConfigDefaults)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func encodeConfig(m map[string]interface{}, format string) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch format {
	case "toml":
		out, err = toml.Marshal(m)
	case "yaml":
		out, err = yaml.Marshal(m)
	case "json":
		out, err = json.MarshalIndent(m, "", "  ")
		out = append(out, '\n')
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownConfigFormat, format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to encode configuration as %s", format)
	}
	return out, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
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
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// ManHeader is the header used for generated man pages
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "LIVELINK",
		Section: "1",
		Source:  "livelink " + version.Version,
		Manual:  "livelink manual",
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to create %s", dir)
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to generate man pages")
			}
			logger := logging.GetLogger("cmd.man")
			logger.Info().Str("dir", dir).Msgf(MsgManWritten, dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}
