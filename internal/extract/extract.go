// Package extract produces the plain-text rendering of a manual PDF that
// the index builder consumes. Text extraction shells out to pdftotext from
// poppler-utils; pages are extracted individually so the form-feed page
// boundaries the builder relies on are exact.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mandex/mandex/internal/errors"
)

// Extractor extracts page-separated text from a PDF.
type Extractor struct {
	workers int

	// Injection points for tests.
	lookPath func(string) (string, error)
	runPage  func(ctx context.Context, pdfPath string, pageNum int) (string, error)
	runInfo  func(ctx context.Context, pdfPath string) ([]byte, error)
}

// New creates an extractor running at most workers concurrent pdftotext
// invocations.
func New(workers int) *Extractor {
	if workers < 1 {
		workers = 1
	}
	return &Extractor{
		workers:  workers,
		lookPath: exec.LookPath,
		runPage:  runPdftotext,
		runInfo:  runPdfinfo,
	}
}

// Run extracts all pages of pdfPath and writes them to outPath joined by
// form feeds, atomically (temp file + rename).
func (e *Extractor) Run(ctx context.Context, pdfPath, outPath string) (int, error) {
	text, pages, err := e.Text(ctx, pdfPath)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, errors.Wrap(errors.ErrCodeExtractFailed, err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(text), 0o644); err != nil {
		return 0, errors.Wrap(errors.ErrCodeExtractFailed, err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, errors.Wrap(errors.ErrCodeExtractFailed, err)
	}

	return pages, nil
}

// Text extracts all pages and returns them joined by form feeds, plus the
// page count. Page order is preserved regardless of extraction order.
func (e *Extractor) Text(ctx context.Context, pdfPath string) (string, int, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return "", 0, errors.New(errors.ErrCodeExtractFailed,
			"manual PDF not found: "+pdfPath, err).
			WithSuggestion("set manual.pdf in the configuration")
	}
	if _, err := e.lookPath("pdftotext"); err != nil {
		return "", 0, errors.New(errors.ErrCodeExtractFailed,
			"pdftotext not found", err).
			WithSuggestion("install poppler-utils")
	}

	pageCount, err := e.pageCount(ctx, pdfPath)
	if err != nil {
		return "", 0, err
	}

	pages := make([]string, pageCount)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < pageCount; i++ {
		i := i
		g.Go(func() error {
			text, err := e.runPage(gctx, pdfPath, i+1)
			if err != nil {
				return errors.Wrap(errors.ErrCodeExtractFailed,
					fmt.Errorf("extracting page %d: %w", i+1, err))
			}
			// pdftotext appends its own trailing form feed per page
			pages[i] = strings.TrimSuffix(text, "\f")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", 0, err
	}

	return strings.Join(pages, "\f"), pageCount, nil
}

// pageCount determines the number of pages via pdfinfo.
func (e *Extractor) pageCount(ctx context.Context, pdfPath string) (int, error) {
	output, err := e.runInfo(ctx, pdfPath)
	if err != nil {
		return 0, errors.New(errors.ErrCodeExtractFailed,
			"pdfinfo failed for "+pdfPath, err).
			WithSuggestion("install poppler-utils")
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		return count, nil
	}

	return 0, errors.New(errors.ErrCodeExtractFailed,
		"could not determine page count from pdfinfo", nil)
}

// runPdftotext extracts a single page with layout preserved.
func runPdftotext(ctx context.Context, pdfPath string, pageNum int) (string, error) {
	page := strconv.Itoa(pageNum)
	cmd := exec.CommandContext(ctx, "pdftotext", "-f", page, "-l", page, "-layout", pdfPath, "-")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// runPdfinfo returns the raw pdfinfo output.
func runPdfinfo(ctx context.Context, pdfPath string) ([]byte, error) {
	return exec.CommandContext(ctx, "pdfinfo", pdfPath).Output()
}
