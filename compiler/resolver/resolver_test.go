package resolver

import (
	"testing"

	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/compiler/errs"
	"github.com/pbj-lang/pbj/compiler/parser"
	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

func filesOf(fs ...*ast.File) []*ast.File { return fs }

func TestGlobalResolutionAcrossFiles(t *testing.T) {
	fruitSrc := `
syntax = "proto3";
package example.fruit;
message Apple {
  string variety = 1;
}
`
	mainSrc := `
syntax = "proto3";
package example.main;
import "fruit.proto";
message Omnibus {
  example.fruit.Apple apple = 1;
}
`
	fruitFile, _, err := parser.Parse("fruit.proto", fruitSrc)
	if err != nil {
		t.Fatal(err)
	}
	mainFile, _, err := parser.Parse("main.proto", mainSrc)
	if err != nil {
		t.Fatal(err)
	}

	global, err := BuildGlobal(filesOf(fruitFile, mainFile))
	if err != nil {
		t.Fatal(err)
	}
	fc, err := NewFileContext(global, mainFile, filesOf(fruitFile, mainFile))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.ResolveFieldTypes(mainFile.Messages[0]); err != nil {
		t.Fatal(err)
	}
	got := mainFile.Messages[0].Fields[0].Single.Def
	if got.Type != pbjwire.TypeMessage {
		t.Fatalf("expected TypeMessage, got %v", got.Type)
	}
	if got.TypeName != "example.fruit.Apple" {
		t.Fatalf("TypeName = %q", got.TypeName)
	}
}

func TestUnresolvedTypeNamesFileAndImports(t *testing.T) {
	src := `
syntax = "proto3";
package example;
import "other.proto";
message M {
  Nope ref = 1;
}
`
	otherSrc := `
syntax = "proto3";
package other;
message Something {}
`
	f, _, err := parser.Parse("m.proto", src)
	if err != nil {
		t.Fatal(err)
	}
	other, _, err := parser.Parse("other.proto", otherSrc)
	if err != nil {
		t.Fatal(err)
	}
	global, err := BuildGlobal(filesOf(f, other))
	if err != nil {
		t.Fatal(err)
	}
	fc, err := NewFileContext(global, f, filesOf(f, other))
	if err != nil {
		t.Fatal(err)
	}
	err = fc.ResolveFieldTypes(f.Messages[0])
	if !errs.IsUnresolvedType(err) {
		t.Fatalf("want UnresolvedType, got %v", err)
	}
}

func TestMissingImportNamesFileAndPath(t *testing.T) {
	src := `
syntax = "proto3";
import "does_not_exist.proto";
message M {}
`
	f, _, err := parser.Parse("m.proto", src)
	if err != nil {
		t.Fatal(err)
	}
	global, err := BuildGlobal(filesOf(f))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewFileContext(global, f, filesOf(f))
	if !errs.IsMissingImport(err) {
		t.Fatalf("want MissingImport, got %v", err)
	}
}

func TestEnumVsMessageDisambiguation(t *testing.T) {
	src := `
syntax = "proto3";
package example;
enum Color {
  UNKNOWN = 0;
  RED = 1;
}
message M {
  Color color = 1;
}
`
	f, _, err := parser.Parse("m.proto", src)
	if err != nil {
		t.Fatal(err)
	}
	global, err := BuildGlobal(filesOf(f))
	if err != nil {
		t.Fatal(err)
	}
	fc, err := NewFileContext(global, f, filesOf(f))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.ResolveFieldTypes(f.Messages[0]); err != nil {
		t.Fatal(err)
	}
	got := f.Messages[0].Fields[0].Single.Def
	if got.Type != pbjwire.TypeEnum {
		t.Fatalf("expected TypeEnum, got %v", got.Type)
	}
}
