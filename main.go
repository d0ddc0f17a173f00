package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"markestedt/easypaste/config"
	"markestedt/easypaste/platform"
	"markestedt/easypaste/systray"
)

type options struct {
	file       string
	delimiter  string
	configPath string
	noPaste    bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("EasyPaste error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "easypaste",
		Short: "Paste the segments of a text file one hotkey press at a time",
		Long: `easypaste loads a text file split by a delimiter and copies one segment
to the clipboard each time the global hotkey is pressed, optionally pasting
it into the active window. Text after a delimiter on the same line is a
note: it is shown in the preview but never pasted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.verbose)

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			return run(cfg)
		},
	}

	bindFlags(cmd, &opts)
	cmd.AddCommand(newInitConfigCmd(), newHistoryCmd())

	return cmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "path to the text file containing delimited content")
	flags.StringVarP(&opts.delimiter, "delimiter", "d", config.DefaultDelimiter, "delimiter between segments")
	flags.StringVarP(&opts.configPath, "config", "c", "", "configuration file path")
	flags.BoolVar(&opts.noPaste, "no-paste", false, "only copy segments, do not paste them")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging (info level)")
}

// setupLogging installs the default slog logger; warnings only unless verbose
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, path, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Info("Configuration loaded", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.FilePath = opts.file
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter = opts.delimiter
	}
	if flags.Changed("no-paste") {
		cfg.Paste = !opts.noPaste
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// run creates the agent and drives it until the last segment or a signal
func run(cfg *config.Config) error {
	agent, err := NewAgent(cfg)
	if err != nil {
		return err
	}
	defer agent.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var runErr error
	platform.RunMain(func() {
		if cfg.Tray.Enabled && platform.TraySupported {
			runErr = runWithTray(ctx, agent)
			return
		}
		if cfg.Tray.Enabled {
			slog.Warn("System tray is not supported on this platform, continuing without it")
		}
		runErr = agent.Run(ctx)
	})
	if runErr != nil {
		return runErr
	}

	slog.Info("EasyPaste stopped")
	return nil
}

// runWithTray keeps the tray on the calling goroutine and the agent on another
func runWithTray(ctx context.Context, agent *Agent) error {
	tray := systray.NewManager(nil)
	agent.AttachTray(tray)

	errCh := make(chan error, 1)
	go func() {
		errCh <- agent.Run(ctx)
		tray.Stop()
	}()

	tray.Run()

	return <-errCh
}

func newInitConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a configuration file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := config.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
