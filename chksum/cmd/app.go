package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/byte4ever/chksum/chksum"
	"github.com/byte4ever/chksum/color"
	"github.com/byte4ever/chksum/config"
	"github.com/byte4ever/chksum/digest"
	"github.com/byte4ever/chksum/source"
)

var (
	_ pflag.Value = (*color.Mode)(nil)
	_ pflag.Value = (*source.DirPolicy)(nil)
	_ pflag.Value = (*config.Level)(nil)
)

// app holds the streams and flag values of one
// invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	color      color.Mode
	configPath string
	jobs       int
	directory  source.DirPolicy
	logLevel   config.Level

	helpShown bool
	code      int
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logLevel: config.Level(config.Default().LogLevel),
	}
}

// command builds the root command with one subcommand per
// registered algorithm.
func (ap *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "chksum",
		Short:         "Calculate checksums of files, directories or stdin",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.SetIn(ap.stdin)
	root.SetOut(ap.stderr)
	root.SetErr(ap.stderr)

	// Help exits with EX_USAGE, so remember it was shown.
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		ap.helpShown = true
		defaultHelp(cmd, args)
	})

	pf := root.PersistentFlags()
	pf.VarP(
		&ap.color, "color", "c",
		"show colored output (always, auto, never)",
	)
	pf.StringVar(
		&ap.configPath, "config", "",
		"YAML or JSON config file (default $"+config.EnvPath+")",
	)
	pf.IntVarP(
		&ap.jobs, "jobs", "j", 0,
		"maximum concurrent digests (0 means one per CPU)",
	)
	pf.Var(
		&ap.directory, "directory",
		"directory handling (content, reject)",
	)
	pf.Var(
		&ap.logLevel, "log-level",
		"log level (debug, info, warn, error)",
	)

	for _, al := range digest.Algorithms() {
		root.AddCommand(ap.algorithmCommand(al.Name, al.Title))
	}

	return root
}

// algorithmCommand returns the subcommand for one
// algorithm. The command name is the registry key.
func (ap *app) algorithmCommand(name, title string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " [--stdin | PATH...]",
		Short: "Calculate " + title + " digest",
		Args:  cobra.ArbitraryArgs,
		RunE:  ap.runDigest,
	}

	cmd.Flags().BoolP(
		"stdin", "s", false,
		"calculate digest from stdin",
	)

	return cmd
}

// runDigest resolves targets and configuration, then runs the
// engine. Usage errors are returned before anything else
// happens.
func (ap *app) runDigest(cmd *cobra.Command, paths []string) error {
	const errCtx = "calculating digests"

	stdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return fmt.Errorf("%s: %w: %w", errCtx, chksum.ErrInternal, err)
	}

	targets, err := chksum.Targets(paths, stdin)
	if err != nil {
		return err
	}

	if ap.jobs < 0 {
		return fmt.Errorf(
			"%s: %w: --jobs must be >= 0, got %d",
			errCtx, chksum.ErrUsage, ap.jobs,
		)
	}

	al, err := digest.Lookup(cmd.Name())
	if err != nil {
		return fmt.Errorf("%s: %w: %w", errCtx, chksum.ErrInternal, err)
	}

	cfg, err := ap.resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", errCtx, errConfig, err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		ap.stderr, &slog.HandlerOptions{Level: cfg.LogLevel},
	)))

	pr, err := chksum.NewPrinter(
		ap.stdout, ap.stderr,
		chksum.WithStyle(color.NewStyler(cfg.Color, ap.stderr)),
		chksum.WithAlgorithm(al.Name),
		chksum.WithFormats(cfg.Format.Success, cfg.Format.Failure),
	)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", errCtx, errConfig, err)
	}

	en := &chksum.Engine{
		Algorithm: al,
		Stdin:     ap.stdin,
		Printer:   pr,
		Workers:   cfg.Jobs,
		DirPolicy: cfg.Directory,
	}

	status, err := en.Run(targets)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	ap.code = status.ExitCode()

	return nil
}

// resolveConfig layers defaults, the config file and the
// flags the user actually set.
func (ap *app) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	const errCtx = "resolving config"

	cfg := config.Default()

	path := ap.configPath
	if path == "" {
		path = os.Getenv(config.EnvPath)
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("%s: %w", errCtx, err)
		}

		cfg = loaded
	}

	fl := cmd.Flags()

	if fl.Changed("color") {
		cfg.Color = ap.color
	}

	if fl.Changed("jobs") {
		cfg.Jobs = ap.jobs
	}

	if fl.Changed("directory") {
		cfg.Directory = ap.directory
	}

	if fl.Changed("log-level") {
		cfg.LogLevel = slog.Level(ap.logLevel)
	}

	return cfg, nil
}
