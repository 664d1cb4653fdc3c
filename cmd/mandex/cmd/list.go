package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandex/mandex/internal/ui"
)

func newListCmd() *cobra.Command {
	var (
		format    string
		namesOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all indexed mnemonics",
		Long: `List every mnemonic in the index with its manual page number.

With --names-only the output is one mnemonic per line, suitable for
feeding shell completion or fuzzy finders.

Examples:
  mandex list
  mandex list --names-only | fzf
  mandex list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, format, namesOnly)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&namesOnly, "names-only", false, "Print mnemonics without page numbers")

	return cmd
}

func runList(cmd *cobra.Command, format string, namesOnly bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ix, err := ensureIndex(cfg, false)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ix.Entries())
	case "text":
		out := ui.New(cmd.OutOrStdout())
		if namesOnly {
			for _, name := range ix.Mnemonics() {
				out.Plain(name)
			}
			return nil
		}
		for _, entry := range ix.Entries() {
			out.Entry(entry.Mnemonic, entry.Page)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", format)
	}
}
