package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yaml", `
table:
  max_x: 9
  max_y: 2
output_prefix: "> "
record_delimiter: ";"
echo_records: false
log_level: debug
metrics_file: /tmp/robot.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TableConfig{MaxX: 9, MaxY: 2}, cfg.Table)
	assert.Equal(t, "> ", cfg.OutputPrefix)
	assert.Equal(t, ";", cfg.RecordDelimiter)
	assert.False(t, cfg.EchoRecords)
	assert.Equal(t, "/tmp/robot.prom", cfg.MetricsFile)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "partial.yaml", "color: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Color)
	assert.Equal(t, DefaultConfig().Table, cfg.Table)
	assert.Equal(t, "Output : ", cfg.OutputPrefix)
	assert.Equal(t, "|", cfg.RecordDelimiter)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeFile(t, dir, "broken.yaml", "table: [1, 2"))
	require.ErrorContains(t, err, "failed to parse config file")

	_, err = Load(writeFile(t, dir, "delim.yaml", "record_delimiter: \"||\"\n"))
	require.ErrorContains(t, err, "record_delimiter")

	_, err = Load(writeFile(t, dir, "level.yaml", "log_level: loud\n"))
	require.ErrorContains(t, err, "log_level")
}

func TestLoadSearchesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	writeFile(t, dir, "robot.yaml", "table:\n  max_x: 7\n  max_y: 7\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Table.MaxX)
}
