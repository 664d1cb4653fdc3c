package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mandex/mandex/internal/ui"
	"github.com/mandex/mandex/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index when the manual text changes",
		Long: `Watch the configured manual text file and rebuild the cached
index whenever it changes. Runs until interrupted.

Examples:
  mandex watch
  mandex watch --debounce 2s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out := ui.New(cmd.OutOrStdout())

			// Build once up front so the first lookup is already warm.
			if _, err := ensureIndex(cfg, false); err != nil {
				return err
			}

			w := watch.New(cfg.Manual.Text, debounce, func(context.Context) error {
				ix, err := ensureIndex(cfg, true)
				if err != nil {
					out.Error(err.Error())
					return err
				}
				out.Successf("index rebuilt: %d mnemonics", ix.Len())
				return nil
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out.Plainf("watching %s", cfg.Manual.Text)
			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounceWindow, "Quiet window before rebuilding")

	return cmd
}
