package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runOnSource(t *testing.T, src string) (stdout, stderr string, code int) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "t.croc")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	origOut, origErr := os.Stdout, os.Stderr
	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	os.Stdout, os.Stderr = outW, errW
	defer func() { os.Stdout, os.Stderr = origOut, origErr }()

	code = run([]string{path})

	outW.Close()
	errW.Close()
	var outBuf, errBuf bytes.Buffer
	io.Copy(&outBuf, outR)
	io.Copy(&errBuf, errR)
	return outBuf.String(), errBuf.String(), code
}

func TestRunSuccessProducesJS(t *testing.T) {
	out, _, code := runOnSource(t, `let x = 1 + 2;`)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "const x = 1 + 2;")
}

func TestRunSyntaxErrorExitsTwo(t *testing.T) {
	_, errOut, code := runOnSource(t, `let x = ;`)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "PAR001")
}

func TestRunTypeErrorExitsOne(t *testing.T) {
	_, errOut, code := runOnSource(t, `let x: string = 1;`)
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, errOut)
}

func TestRunUsageErrorExitsTwo(t *testing.T) {
	code := run(nil)
	assert.Equal(t, 2, code)
}
