package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// manualPage renders one page of manual text whose fourth line carries a
// section heading for the given mnemonic.
func manualPage(section, mnemonic string) string {
	return fmt.Sprintf("MC68000 FAMILY\n\nINSTRUCTION SET\n%s %s %s\n\nOperation: ...\n",
		section, mnemonic, mnemonic)
}

// fillerPage renders a page with no instruction heading.
const fillerPage = "MC68000 FAMILY\n\nINSTRUCTION SET\ncontinued from previous page\n"

// setupProject creates a temp project directory with a manual text and a
// project config pointing at it, and makes it the working directory.
func setupProject(t *testing.T, pages ...string) string {
	t.Helper()

	tmpDir := t.TempDir()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(oldDir) })

	// Keep user config, cache and logs out of the real home directory.
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	textPath := filepath.Join(tmpDir, "manual.txt")
	require.NoError(t, os.WriteFile(textPath, []byte(strings.Join(pages, "\f")), 0o644))

	configYAML := fmt.Sprintf(`version: 1
manual:
  pdf: %s
  text: %s
cache:
  dir: %s
`, filepath.Join(tmpDir, "manual.pdf"), textPath, filepath.Join(tmpDir, "cache"))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mandex.yaml"), []byte(configYAML), 0o644))

	return tmpDir
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}
