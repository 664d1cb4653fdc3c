package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mandex/mandex/internal/ui"
	"github.com/mandex/mandex/internal/viewer"
)

func newOpenCmd() *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "open <mnemonic>",
		Short: "Open the manual at an instruction's page",
		Long: `Open a PDF viewer at the manual page documenting the given
instruction. The lookup is case-insensitive.

Examples:
  mandex open ADD
  mandex open bne
  mandex open MOVE --rebuild`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMnemonics,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rebuild {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if _, err := ensureIndex(cfg, true); err != nil {
					return err
				}
			}
			return runOpen(cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Rebuild the index before opening")

	return cmd
}

func runOpen(cmd *cobra.Command, mnemonic string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ix, err := ensureIndex(cfg, false)
	if err != nil {
		return err
	}

	page, err := ix.Resolve(mnemonic)
	if err != nil {
		return err
	}

	slog.Info("opening manual",
		slog.String("mnemonic", mnemonic),
		slog.Int("page", page),
	)

	if err := viewer.New(cfg.Viewer.Command).Open(cfg.Manual.PDF, page); err != nil {
		return err
	}

	out := ui.New(cmd.OutOrStdout())
	out.Entry(mnemonic, page)
	return nil
}
