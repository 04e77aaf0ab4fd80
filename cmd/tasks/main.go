// Package main implements the tasks CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amonks/tasks/internal/config"
	"github.com/amonks/tasks/internal/logging"
	"github.com/amonks/tasks/task"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "tasks",
	Short:             "Track personal tasks ordered by computed priority",
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

var (
	rootConfigPath string
	rootNow        string
	rootLogLevel   string
)

// app holds what every command needs once flags and config are resolved.
var app struct {
	cfg    *config.Config
	logger zerolog.Logger
	now    time.Time
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Config file (default ~/.config/tasks/config.toml)")
	flags.StringVar(&rootNow, "now", "", "Evaluate priorities as of this RFC 3339 instant")
	flags.StringVar(&rootLogLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	_ = flags.MarkHidden("now")
}

func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = rootLogLevel
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	now, err := parseNow(rootNow)
	if err != nil {
		return err
	}

	app.cfg = cfg
	app.now = now
	app.logger = logging.New(os.Stderr, level).With().Str("cmd", cmd.Name()).Logger()
	app.logger.Debug().
		Str("backend", string(cfg.Storage.Backend)).
		Str("path", cfg.Storage.Path).
		Time("now", now).
		Msg("configured")
	return nil
}

func parseNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	now, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: expected RFC 3339", value)
	}
	return now, nil
}

// clock returns the pinned --now instant, or the wall clock.
func clock() func() time.Time {
	if rootNow == "" {
		return time.Now
	}
	pinned := app.now
	return func() time.Time { return pinned }
}

// openStorage opens the configured backend.
func openStorage() (*task.Storage, error) {
	store, err := app.cfg.OpenStore()
	if err != nil {
		return nil, err
	}
	return task.NewStorage(store, app.logger), nil
}

// ordering returns the configured title collation.
func ordering() (*task.Ordering, error) {
	locale, err := app.cfg.Locale()
	if err != nil {
		return nil, err
	}
	return task.NewOrdering(locale), nil
}
