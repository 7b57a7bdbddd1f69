// Package commands defines the claude-notify CLI: the default agent
// mode plus the send and version subcommands.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nerdmakr/claude-notify/internal/app"
	"github.com/nerdmakr/claude-notify/internal/cue"
	"github.com/nerdmakr/claude-notify/internal/logging"
	"github.com/nerdmakr/claude-notify/internal/model"
	"github.com/nerdmakr/claude-notify/internal/notify"
	"github.com/nerdmakr/claude-notify/internal/registry"
	"github.com/nerdmakr/claude-notify/internal/server"
	"github.com/nerdmakr/claude-notify/internal/store"
)

// SettingsFileName is the SQLite database holding user preferences.
const SettingsFileName = "settings.db"

var configPath string

// NewRootCommand creates the root command. Running it with no
// subcommand starts the notification agent.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claude-notify",
		Short: "Desktop notification agent for coding assistant hooks",
		Long: `claude-notify runs a local notification agent: it listens on a
loopback HTTP endpoint for task-completion events posted by coding
assistant hooks, keeps a durable history of them, and surfaces new
events in a transient panel with an audible cue.`,
		RunE: runAgent,
	}

	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(), "path to the config file",
	)
	rootCmd.AddCommand(NewSendCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runAgent wires the stores, registry, ingestion endpoint, and UI
// together and blocks until the UI exits.
func runAgent(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	// A failed log file open degrades to a discarding logger; the agent
	// still runs.
	logger, _ := logging.Setup(dataDir)

	recordLog := store.NewRecordLog(filepath.Join(dataDir, store.LogFileName), logger)

	settings, err := store.NewSettingsStore(filepath.Join(dataDir, SettingsFileName))
	if err != nil {
		return err
	}
	defer settings.Close()

	var notifier registry.Notifier
	if cfg.DesktopNotifications {
		notifier = notify.New()
	}

	reg := registry.New(
		recordLog,
		time.Duration(cfg.Panel.DismissSeconds)*time.Second,
		cfg.Panel.MaxRows,
		cue.NewPlayer(),
		notifier,
		logger,
	)
	if err := reg.Start(); err != nil {
		return fmt.Errorf("loading notification history: %w", err)
	}
	defer reg.Stop()

	ctx := context.Background()
	cueName, err := settings.Get(ctx, store.SettingSoundCue, cfg.Sound.Cue)
	if err == nil && cue.IsValid(cueName) {
		reg.SetCue(cueName)
	}
	groupMode, _ := settings.Get(ctx, store.SettingGroupMode, "date")

	srv := server.New(reg, logger)
	if err := srv.Start(cfg.Listen.Port); err != nil {
		return err
	}
	defer srv.Stop()

	logger.WithField("data_dir", dataDir).Info("agent started")

	program := tea.NewProgram(
		app.New(reg, settings, groupMode, cfg.Panel.MaxRows, logger),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}

	return nil
}
