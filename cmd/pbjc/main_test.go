package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProto(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestRunSucceedsAndReturnsExitSuccess(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "fruit.proto", `
syntax = "proto3";
package example.fruit;

message Apple {
  string variety = 1;
}
`)

	code := run([]string{"pbjc", "--out", outDir, srcDir})
	assert.Equal(t, exitSuccess, code)

	_, err := os.Stat(filepath.Join(outDir, "example", "fruit", "model", "apple.go"))
	assert.NoError(t, err)
}

func TestRunMissingSourceDirIsCompileError(t *testing.T) {
	outDir := t.TempDir()

	code := run([]string{"pbjc", "--out", outDir})
	assert.Equal(t, exitCompileError, code)
}

func TestRunMalformedSchemaIsCompileError(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "bad.proto", `this is not a valid schema {{{`)

	code := run([]string{"pbjc", "--out", outDir, srcDir})
	assert.Equal(t, exitCompileError, code)
}

func TestRunMissingOutFlagFailsBeforeCompiling(t *testing.T) {
	srcDir := t.TempDir()
	writeProto(t, srcDir, "fruit.proto", `
syntax = "proto3";
message Apple { string variety = 1; }
`)

	code := run([]string{"pbjc", srcDir})
	assert.NotEqual(t, exitSuccess, code)
}

func TestRunUnwritableOutDirIsIOError(t *testing.T) {
	srcDir := t.TempDir()
	writeProto(t, srcDir, "fruit.proto", `
syntax = "proto3";
message Apple { string variety = 1; }
`)

	// A regular file can't be used as an output directory: os.MkdirAll
	// underneath it fails, which driver.Run reports as an IOFailure.
	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))
	outDir := filepath.Join(blocked, "out")

	code := run([]string{"pbjc", "--out", outDir, srcDir})
	assert.Equal(t, exitIOError, code)
}
