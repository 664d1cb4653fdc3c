package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config lookup at an empty directory so tests
// never pick up a developer's real ~/.config/mandex/config.yaml.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	cfg := NewConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, DefaultPageOffset, cfg.Manual.PageOffset)
	assert.Equal(t, DefaultHeadingLine, cfg.Manual.HeadingLine)
	assert.Empty(t, cfg.Manual.Text)
	assert.Empty(t, cfg.Manual.PDF)
	assert.Contains(t, cfg.Cache.Dir, ".mandex")
	assert.Equal(t, runtime.NumCPU(), cfg.Extract.Workers)
	assert.Empty(t, cfg.Viewer.Command)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageOffset, cfg.Manual.PageOffset)
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	yaml := `
manual:
  pdf: /manuals/armv7.pdf
  text: /manuals/armv7.txt
  page_offset: 14
viewer:
  command: zathura
log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mandex.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/manuals/armv7.pdf", cfg.Manual.PDF)
	assert.Equal(t, "/manuals/armv7.txt", cfg.Manual.Text)
	assert.Equal(t, 14, cfg.Manual.PageOffset)
	assert.Equal(t, "zathura", cfg.Viewer.Command)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched fields keep their defaults
	assert.Equal(t, runtime.NumCPU(), cfg.Extract.Workers)
}

func TestLoad_UserConfigThenProjectConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	userDir := filepath.Join(xdg, "mandex")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yaml"),
		[]byte("viewer:\n  command: okular\nlog_level: warn\n"), 0o644))

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mandex.yaml"),
		[]byte("log_level: error\n"), 0o644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	// Project config wins over user config; user config wins over defaults
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "okular", cfg.Viewer.Command)
}

func TestLoad_EnvOverridesEverything(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mandex.yaml"),
		[]byte("manual:\n  text: /from/file.txt\n"), 0o644))

	t.Setenv("MANDEX_MANUAL_TEXT", "/from/env.txt")
	t.Setenv("MANDEX_PAGE_OFFSET", "7")
	t.Setenv("MANDEX_VIEWER", "evince")

	cfg, err := Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/from/env.txt", cfg.Manual.Text)
	assert.Equal(t, 7, cfg.Manual.PageOffset)
	assert.Equal(t, "evince", cfg.Viewer.Command)
}

func TestLoad_CustomRules(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	yaml := `
rules:
  - pattern: "^(B)\\.cond$"
    suffixes: [EQ, NE, CS]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mandex.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, `^(B)\.cond$`, cfg.Rules[0].Pattern)
	assert.Equal(t, []string{"EQ", "NE", "CS"}, cfg.Rules[0].Suffixes)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mandex.yaml"),
		[]byte("manual: [not a mapping"), 0o644))

	_, err := Load(tmpDir)
	assert.Error(t, err)
}

func TestValidate_RejectsNegativeOffset(t *testing.T) {
	cfg := NewConfig()
	cfg.Manual.PageOffset = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := NewConfig()
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadRule(t *testing.T) {
	cfg := NewConfig()

	cfg.Rules = []RuleConfig{{Pattern: "([", Suffixes: []string{"EQ"}}}
	assert.Error(t, cfg.Validate(), "unparseable pattern")

	cfg.Rules = []RuleConfig{{Pattern: "^(B)$", Suffixes: nil}}
	assert.Error(t, cfg.Validate(), "missing suffixes")

	cfg.Rules = []RuleConfig{{Pattern: "", Suffixes: []string{"EQ"}}}
	assert.Error(t, cfg.Validate(), "empty pattern")
}

func TestWriteYAML_RoundTrips(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	cfg := NewConfig()
	cfg.Manual.Text = "/manuals/m.txt"
	cfg.Manual.PageOffset = 5

	path := filepath.Join(tmpDir, ".mandex.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/manuals/m.txt", loaded.Manual.Text)
	assert.Equal(t, 5, loaded.Manual.PageOffset)
}

func TestLoad_HeadingLineOverride(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	yaml := "manual:\n  heading_line: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mandex.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Manual.HeadingLine)

	t.Setenv("MANDEX_HEADING_LINE", "6")
	cfg, err = Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Manual.HeadingLine)
}
