package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "index.json", cfg.IndexPath())
	assert.Contains(t, cfg.Filter().Dirs, "node_modules")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	doc := `
model: llama3.1:8b
store: sqlite
exclude:
  extensions: [".lock"]
bundle:
  prefixes: [Order]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "llama3.1:8b", cfg.Model)
	assert.Equal(t, "index.db", cfg.IndexPath())
	assert.Equal(t, []string{".lock"}, cfg.Exclude.Extensions)
	assert.Contains(t, cfg.Exclude.Dirs, ".git", "unset keys keep their defaults")
	assert.Equal(t, []string{"Order"}, cfg.Bundle.Prefixes)
	assert.Equal(t, "server.js", cfg.Combine.EntryFile)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("model: [unterminated"), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "invalid YAML")

	wrong := filepath.Join(dir, "wrong.yaml")
	require.NoError(t, os.WriteFile(wrong, []byte("summarizer: gpt"), 0o644))
	_, err = Load(wrong)
	assert.ErrorContains(t, err, "summarizer must be ollama or ast")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	cfg := Default()
	cfg.Index = "cache/summaries.json"

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
