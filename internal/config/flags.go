package config

// This file implements CLI parsing on top of cobra: the root command that
// takes [INPUT] [OUTPUT], and the completion subcommand.
// Flag values are captured into flagValues and applied after the config
// file, so only flags the user actually passed override file settings.

import (
	"errors"
	"io"
	"io/fs"

	"github.com/spf13/cobra"
)

// Shells lists the shells the completion subcommand can generate for.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// flagValues holds raw flag values until they are merged into Config.
type flagValues struct {
	count      bool
	verbose    bool
	color      string
	logFile    string
	configFile string
}

// NewRootCommand builds the uniqs command tree. run is invoked once cfg
// has been fully resolved (defaults, config file, flags, positionals) and
// validated.
func NewRootCommand(cfg *Config, version string, run func(cmd *cobra.Command) error) *cobra.Command {
	var fv flagValues

	root := &cobra.Command{
		Use:   "uniqs [INPUT] [OUTPUT]",
		Short: "uniq(1) alternative with streaming support",
		Long: `uniq(1) alternative with streaming support

The uniqs utility reads the specified INPUT, and writes only the unique lines
that appear in it to OUTPUT. It ignores lines that have already appeared
before. If INPUT is a single dash ('-') or absent, standard input is read.
If OUTPUT is absent, the standard output is used for output.
Use '--' before a path that starts with a dash: uniqs -- -notes.txt`,
		Version:       version,
		Args:          positionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) >= 2 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolve(cmd, cfg, &fv, args); err != nil {
				return err
			}
			return run(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("uniqs v{{.Version}}\n")

	f := root.Flags()
	f.BoolVarP(&fv.count, "count", "c", false, "Prefix lines by the number of occurrences")
	f.BoolVarP(&fv.verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
	f.StringVar(&fv.color, "color", "", "Diagnostic log color: auto | always | never")
	f.StringVarP(&fv.logFile, "log", "l", "", "Append diagnostics to file")
	f.StringVar(&fv.configFile, "config", "", "Path of a TOML config file")
	f.BoolP("version", "V", false, "Print version and exit")

	root.AddCommand(newCompletionCommand(root))
	return root
}

// positionalArgs accepts at most INPUT and OUTPUT.
func positionalArgs(_ *cobra.Command, args []string) error {
	if len(args) > 2 {
		return argErrorf("accepts at most 2 args (INPUT, OUTPUT), received %d", len(args))
	}
	return nil
}

// resolve merges the config file, changed flags and positionals into cfg.
func resolve(cmd *cobra.Command, cfg *Config, fv *flagValues, args []string) error {
	path := fv.configFile
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			// A missing default config file is normal; a missing explicit one is not.
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	f := cmd.Flags()
	if f.Changed("count") {
		cfg.Count = fv.count
	}
	if f.Changed("verbose") {
		cfg.Verbose = fv.verbose
	}
	if f.Changed("color") {
		mode, err := ParseColorMode(fv.color)
		if err != nil {
			return err
		}
		cfg.ColorMode = mode
	}
	if f.Changed("log") {
		cfg.LogFile = fv.logFile
	}

	if len(args) > 0 {
		cfg.InputPath = args[0]
	}
	if len(args) > 1 {
		cfg.OutputPath = args[1]
	}
	return cfg.Validate()
}

func newCompletionCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:                   "completion <bash|zsh|fish|powershell>",
		Short:                 "Generate shell completion script for specified shell",
		ValidArgs:             Shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return WriteCompletion(root, args[0], cmd.OutOrStdout())
		},
	}
}

// WriteCompletion writes the completion script for shell to w.
func WriteCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return argErrorf("unsupported shell %q", shell)
}
