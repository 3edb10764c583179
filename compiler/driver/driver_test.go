package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectLogger struct {
	infos, warnings []string
}

func (l *collectLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, format)
}
func (l *collectLogger) Warningf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, format)
}

func writeProto(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestRunGeneratesFourFilesPerMessage(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "fruit.proto", `
syntax = "proto3";
package example.fruit;

message Apple {
  string variety = 1;
  int32 weight_grams = 2;
}
`)

	log := &collectLogger{}
	err := Run(Options{SourceDirs: []string{srcDir}, OutDir: outDir, BasePackage: "com.acme"}, log)
	require.NoError(t, err)

	base := filepath.Join(outDir, "com", "acme", "example", "fruit")
	for _, role := range []string{"model", "schemas", "parsers", "writers"} {
		p := filepath.Join(base, role, "apple.go")
		data, rerr := os.ReadFile(p)
		require.NoErrorf(t, rerr, "expected generated file %s", p)
		assert.Contains(t, string(data), "package "+role)
	}
	assert.Len(t, log.infos, 1)
}

func TestRunGeneratesTopLevelEnum(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "colors.proto", `
syntax = "proto3";
package example.colors;

enum Color {
  UNKNOWN = 0;
  RED = 1;
}
`)

	err := Run(Options{SourceDirs: []string{srcDir}, OutDir: outDir}, nil)
	require.NoError(t, err)

	data, rerr := os.ReadFile(filepath.Join(outDir, "example", "colors", "model", "color.go"))
	require.NoError(t, rerr)
	assert.Contains(t, string(data), "Color")
	assert.Contains(t, string(data), "RED")
}

func TestRunHonorsJavaPackageOverrideForImportPaths(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "fruit.proto", `
syntax = "proto3";
// <<<pbj.java_package = "custom.fruitpkg">>>
package example.fruit;

message Apple {
  string variety = 1;
}
`)
	writeProto(t, srcDir, "basket.proto", `
syntax = "proto3";
package example.basket;
import "fruit.proto";

message Basket {
  example.fruit.Apple apple = 1;
}
`)

	err := Run(Options{SourceDirs: []string{srcDir}, OutDir: outDir, BasePackage: "com.acme"}, nil)
	require.NoError(t, err)

	data, rerr := os.ReadFile(filepath.Join(outDir, "com", "acme", "example", "basket", "model", "basket.go"))
	require.NoError(t, rerr)
	assert.Contains(t, string(data), `custom/fruitpkg/model`,
		"Basket's model should import Apple via its java_package override, not com/acme/example/fruit")

	_, rerr = os.ReadFile(filepath.Join(outDir, "custom", "fruitpkg", "model", "apple.go"))
	require.NoError(t, rerr, "Apple itself should be generated under its overridden package path")
}

func TestRunFailsOnDuplicateFieldNumberAcrossNestedMessage(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "bad.proto", `
syntax = "proto3";
message Outer {
  message Inner {
    int32 a = 1;
    int32 b = 1;
  }
  Inner inner = 1;
}
`)

	err := Run(Options{SourceDirs: []string{srcDir}, OutDir: outDir}, nil)
	require.Error(t, err)
}

func TestRunFailsOnComparableNamingUnknownField(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "bad.proto", `
syntax = "proto3";

// <<<pbj.comparable = "id, nope">>>
message Thing {
  int32 id = 1;
}
`)

	err := Run(Options{SourceDirs: []string{srcDir}, OutDir: outDir}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRunFailsOnComparableNamingMessageTypedField(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeProto(t, srcDir, "bad.proto", `
syntax = "proto3";

message Inner {
  int32 a = 1;
}

// <<<pbj.comparable = "id, inner">>>
message Outer {
  int32 id = 1;
  Inner inner = 2;
}
`)

	err := Run(Options{SourceDirs: []string{srcDir}, OutDir: outDir}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inner")
}

func TestRunFailsWhenNoProtoFilesFound(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	err := Run(Options{SourceDirs: []string{srcDir}, OutDir: outDir}, nil)
	require.Error(t, err)
	assert.True(t, IsIOFailure(err))
}
