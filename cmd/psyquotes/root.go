package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/config"
	"github.com/nickpending/psyquotes/internal/db"
	"github.com/nickpending/psyquotes/internal/logging"
	"github.com/nickpending/psyquotes/internal/ui"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	offline bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "psyquotes",
		Short: "A feed of psychology quotes with AI-generated backgrounds",
		Long: `PsyQuotes shows a vertical feed of quotes from Jung, Freud, Frankl and others.

Pick a card and turn it into a 9:16 short with a Gemini-generated background.
Without a GEMINI_API_KEY an offline gradient generator is used instead.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(flags)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.offline, "offline", false, "Use the offline placeholder generator")

	cmd.AddCommand(
		newListCmd(),
		newGenerateCmd(flags),
		newHistoryCmd(),
	)

	return cmd
}

// loadConfig reads config.toml and applies flag overrides
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags != nil && flags.offline {
		cfg.Shorts.Offline = true
	}
	return cfg, nil
}

func runTUI(flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if _, err := logging.Init(version); err != nil {
		// Logging is best effort; the UI works without it
		fmt.Printf("warning: logging disabled: %v\n", err)
	}
	defer logging.Close()
	defer db.CloseDB()

	gen, modelName, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	logging.Info("generator selected", "model", modelName, "remote", cfg.UseRemote())

	model := ui.NewModel(cfg, catalog.Default(), gen, modelName)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse wheel scrolls the feed
	)
	final, err := p.Run()
	if m, ok := final.(ui.Model); ok {
		m.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
