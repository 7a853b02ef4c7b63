package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/teleprompt/internal/logging"
	"github.com/sandeepkv93/teleprompt/internal/update"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigFile string
	DataDir    string
	Backend    string
	LogFile    string

	cfg     update.RuntimeConfig
	logger  *slog.Logger
	closers []io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "teleprompt",
		Short:         "Per-slide speaker scripts in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Example: strings.TrimSpace(`
  # Start the interactive prompter
  teleprompt

  # Scriptable commands
  teleprompt slides list
  teleprompt slides set-script 3 Thank everyone for coming
  teleprompt settings set --font-size 18
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, app)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		logger, closer, err := logging.Open(cfg.LogPath(), logging.ParseLevel(cfg.LogLevel))
		if err != nil {
			return writeErr(cmd, fmt.Errorf("open log file: %w", err))
		}
		app.logger = logger
		app.closers = append(app.closers, closer)
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		app.close()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Path to config.yaml (default: <data-dir>/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Directory holding scripts, database and log")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Slide storage backend (json|sqlite)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Log file path, or none to disable logging")

	cmd.AddCommand(newSlidesCmd(app))
	cmd.AddCommand(newSettingsCmd(app))
	cmd.AddCommand(newMCPCmd(app))

	return cmd
}

// resolveConfig layers defaults, the config file, the environment and then
// flags, in that order.
func resolveConfig(cmd *cobra.Command, app *App) (update.RuntimeConfig, error) {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if app.DataDir != "" {
		cfg.DataDir = app.DataDir
	}

	path := app.ConfigFile
	optional := path == ""
	if optional {
		path = cfg.ConfigPath()
	}
	cfg, err := update.LoadRuntimeConfigFile(path, cfg, optional)
	if err != nil {
		return cfg, err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = app.DataDir
	}
	if flags.Changed("backend") {
		cfg.Backend = strings.ToLower(strings.TrimSpace(app.Backend))
	}
	if flags.Changed("log-file") {
		cfg.LogFile = app.LogFile
	}
	return cfg, cfg.Validate()
}

func (app *App) close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		_ = app.closers[i].Close()
	}
	app.closers = nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	rt, err := openRuntime(cmd.Context(), app, app.cfg.Watch)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer rt.Close()

	m := update.NewModelWithConfig(app.cfg, update.Deps{
		Gateway:      rt.Gateway,
		LocalStorage: rt.Local,
		Reloads:      rt.Reloads(),
		Logger:       app.logger,
	})
	app.logger.Info("starting prompter", "backend", app.cfg.Backend, "data_dir", app.cfg.DataDir)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(commandContext(cmd)))
	if _, err := program.Run(); err != nil {
		app.logger.Error("prompter exited with error", "error", err)
		return writeErr(cmd, fmt.Errorf("teleprompt failed: %w", err))
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeOut(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// reportedError marks an error writeErr has already printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err}
}

// Execute runs cmd and prints any error cobra itself raised, such as a bad
// flag or argument count. Errors from command bodies are printed once by
// writeErr.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err.Error())
	}
	return err
}
