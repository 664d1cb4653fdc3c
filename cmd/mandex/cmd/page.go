package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandex/mandex/internal/ui"
)

// pageResult is the JSON shape of a page lookup.
type pageResult struct {
	Mnemonic string `json:"mnemonic"`
	Page     int    `json:"page"`
}

func newPageCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "page <mnemonic>",
		Short: "Print an instruction's manual page number",
		Long: `Print the manual page number for the given instruction without
opening a viewer. Useful for scripting.

Examples:
  mandex page ADD
  mandex page bne --format json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeMnemonics,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runPage(cmd *cobra.Command, mnemonic, format string) error {
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

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(pageResult{Mnemonic: mnemonic, Page: page})
	case "text":
		ui.NewPlain(cmd.OutOrStdout()).Plainf("%d", page)
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text or json)", format)
	}
}
