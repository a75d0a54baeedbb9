package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".crochet.yaml")
	body := "array_pattern_gaps: true\ndecl_path: decls.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.ArrayPatternGaps)
	assert.Equal(t, "decls.yaml", cfg.DeclPath)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".crochet.yaml")
	require.NoError(t, os.WriteFile(path, []byte("array_pattern_gaps: [this is not a bool"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
