package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mandex/mandex/internal/ui"
)

func newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the mnemonic index",
		Long: `Rebuild the mnemonic index from the manual text, bypassing the
cache. Normally unnecessary: the cache key is the text's content hash,
so the index is rebuilt automatically whenever the text changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ix, err := ensureIndex(cfg, true)
			if err != nil {
				return err
			}

			ui.New(cmd.OutOrStdout()).Successf("index rebuilt: %d mnemonics", ix.Len())
			return nil
		},
	}
}
