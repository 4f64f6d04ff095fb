// Package main is the entry point for the Thunderpad editor.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/thunderpad/internal/app"
	"github.com/dshills/thunderpad/internal/config"
	"github.com/dshills/thunderpad/internal/frame"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	readOnly   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "thunderpad [files...]",
		Short: "Thunderpad - a multi-window text editor",
		Long: "Thunderpad - a multi-window text editor\n\n" +
			"Every file opens in its own window. Settings changed in one window\n" +
			"apply to all of them and are saved for the next session.\n\n" +
			"Keys:\n" + keyHelp(),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, files []string) error {
			return runEditor(opts, files)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("Thunderpad %s\nCommit: %s\nBuilt: %s\n", version, commit, date))

	root.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.Flags().BoolVarP(&opts.readOnly, "readonly", "R", false, "Open files in read-only mode")

	root.AddCommand(newConfigCmd())
	return root
}

func newConfigCmd() *cobra.Command {
	var showPath bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showPath {
				path, err := config.DefaultPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}
			data, err := config.Default().Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&showPath, "path", false, "Print where the configuration file is read from")
	return cmd
}

func keyHelp() string {
	var b strings.Builder
	for _, k := range frame.Keys {
		fmt.Fprintf(&b, "  %-8s %s\n", k.Key, k.Action)
	}
	return b.String()
}

func runEditor(opts options, files []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	// Ensure the terminal is restored on all exit paths
	defer screen.Fini()

	ui := frame.New(screen, nil)
	application, err := app.New(app.Options{
		Config:     cfg,
		Documents:  ui.DocumentFactory(),
		Sinks:      ui.SinkFactory(),
		Dispatcher: ui.Dispatcher(),
		ReadOnly:   opts.readOnly,
	})
	if err != nil {
		return err
	}
	defer application.Shutdown()
	ui.Attach(application)

	// Handle signals for graceful shutdown. SIGINT asks like Ctrl-Q does;
	// SIGTERM cannot wait for an answer and only saves the session.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		for sig := range signals {
			guarded := sig != syscall.SIGTERM
			ui.Dispatcher().Dispatch(func() { ui.Quit(guarded) })
		}
	}()

	if _, err := application.OpenFiles(files); err != nil && application.First() == nil {
		return err
	}
	return ui.Run()
}
