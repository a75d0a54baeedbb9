package declloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "decls.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadSeedsEnvBindings(t *testing.T) {
	path := writeManifest(t, `
declarations:
  - name: count
    type: "number"
  - name: greet
    type: "(s: string) => string"
`)
	env, err := Load(path)
	require.NoError(t, err)

	countScheme, ok := env.Lookup("count")
	require.True(t, ok)
	assert.NotNil(t, countScheme.Root)

	greetScheme, ok := env.Lookup("greet")
	require.True(t, ok)
	assert.NotNil(t, greetScheme.Root)
}

func TestLoadMissingNameFails(t *testing.T) {
	path := writeManifest(t, `
declarations:
  - type: "number"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
