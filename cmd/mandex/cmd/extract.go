package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandex/mandex/internal/extract"
	"github.com/mandex/mandex/internal/ui"
)

func newExtractCmd() *cobra.Command {
	var (
		out     string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the manual text from the PDF",
		Long: `Extract a plain-text rendering of the manual PDF with form-feed
page breaks, the input the index builder expects. Requires pdftotext
and pdfinfo from poppler-utils.

The output path defaults to the configured manual.text.

Examples:
  mandex extract
  mandex extract --out /tmp/manual.txt --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			outPath := out
			if outPath == "" {
				outPath = cfg.Manual.Text
			}
			if outPath == "" {
				return fmt.Errorf("no output path: set manual.text or pass --out")
			}

			n := workers
			if n == 0 {
				n = cfg.Extract.Workers
			}

			pages, err := extract.New(n).Run(cmd.Context(), cfg.Manual.PDF, outPath)
			if err != nil {
				return err
			}

			w := ui.New(cmd.OutOrStdout())
			w.Successf("extracted %d pages", pages)
			w.Dim(outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default: configured manual.text)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent pdftotext invocations (default: configured)")

	return cmd
}
