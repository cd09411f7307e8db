package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nickpending/psyquotes/internal/catalog"
	"github.com/nickpending/psyquotes/internal/db"
	"github.com/nickpending/psyquotes/internal/logging"
	"github.com/nickpending/psyquotes/internal/shorts"
	"github.com/nickpending/psyquotes/internal/ui/operations"
)

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "generate <quote-id>",
		Short: "Generate a short for one quote and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Use(cmd.ErrOrStderr(), log.InfoLevel)
			defer db.CloseDB()

			q, ok := catalog.Default().Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown quote %q", args[0])
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Shorts.OutputDir
			}

			gen, modelName, err := newGenerator(cfg)
			if err != nil {
				return err
			}
			logging.Info("generating short", "quote", q.ID, "model", modelName)

			session := shorts.NewController(gen).Run(cmd.Context(), q)
			if session.Status != shorts.StatusCompleted {
				if session.Err == nil {
					return errors.New(shorts.ErrorMessage)
				}
				return fmt.Errorf("%s: %w", shorts.ErrorMessage, session.Err)
			}

			saved := operations.SaveShort(outDir, q, session.Result, modelName, session.Attempt)().(operations.ShortSavedMsg)
			if !saved.Success {
				return saved.Error
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n",
				saved.Path,
				humanize.Bytes(uint64(saved.Bytes)),
				session.Elapsed.Round(100*time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write the image to (default from config)")

	return cmd
}
