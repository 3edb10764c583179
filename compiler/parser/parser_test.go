package parser

import (
	"testing"

	"github.com/pbj-lang/pbj/compiler/errs"
	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

func TestParseBasicMessage(t *testing.T) {
	src := `
syntax = "proto3";
package example;

import "other.proto";

message Omnibus {
  int32 int32_field = 1;
  repeated int32 int32_list = 2;
  string memo = 3;
}
`
	f, _, err := Parse("test.proto", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Package != "example" {
		t.Fatalf("package = %q", f.Package)
	}
	if len(f.Imports) != 1 || f.Imports[0].Path != "other.proto" {
		t.Fatalf("imports = %+v", f.Imports)
	}
	if len(f.Messages) != 1 {
		t.Fatalf("want 1 message, got %d", len(f.Messages))
	}
	msg := f.Messages[0]
	if msg.Name != "Omnibus" || len(msg.Fields) != 3 {
		t.Fatalf("got %+v", msg)
	}
	if msg.Fields[1].Single.Def.Repeated != true {
		t.Fatalf("expected int32_list to be repeated")
	}
}

func TestParseOneof(t *testing.T) {
	src := `
syntax = "proto3";
message Omnibus {
  oneof fruit {
    string apple = 4;
    int32 banana = 5;
  }
}
`
	f, _, err := Parse("t.proto", src)
	if err != nil {
		t.Fatal(err)
	}
	fields := f.Messages[0].Fields
	if len(fields) != 1 || fields[0].OneOf == nil {
		t.Fatalf("expected one oneof field, got %+v", fields)
	}
	if len(fields[0].OneOf.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(fields[0].OneOf.Variants))
	}
	if fields[0].OneOf.Variants[0].Def.OneOf != "fruit" {
		t.Fatalf("variant not tagged with owning oneof")
	}
}

func TestParseOptionComments(t *testing.T) {
	src := `
syntax = "proto3";
// <<<pbj.java_package = "com.example.gen">>>
package example;

// <<<pbj.comparable = "a, b">>>
message Ordered {
  int32 a = 1;
  int32 b = 2;
}
`
	f, _, err := Parse("t.proto", src)
	if err != nil {
		t.Fatal(err)
	}
	if f.JavaPackage != "com.example.gen" {
		t.Fatalf("java package = %q", f.JavaPackage)
	}
	cmp := f.Messages[0].Comparable
	if cmp == nil || len(cmp.Fields) != 2 || cmp.Fields[0] != "a" || cmp.Fields[1] != "b" {
		t.Fatalf("comparable = %+v", cmp)
	}
}

func TestParseUnknownOptionCommentWarnsNotFails(t *testing.T) {
	src := `
syntax = "proto3";
// <<<unknown.thing = "x">>>
message M { int32 a = 1; }
`
	_, diag, err := Parse("t.proto", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diag.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", diag.Warnings)
	}
}

func TestParseMapFieldUnsupported(t *testing.T) {
	src := `
syntax = "proto3";
message M {
  map<string, int32> counts = 1;
}
`
	_, _, err := Parse("t.proto", src)
	if !errs.IsUnsupportedFeature(err) {
		t.Fatalf("expected UnsupportedFeature, got %v", err)
	}
}

func TestParseServiceUnsupported(t *testing.T) {
	src := `
syntax = "proto3";
service Greeter { }
`
	_, _, err := Parse("t.proto", src)
	if !errs.IsUnsupportedFeature(err) {
		t.Fatalf("expected UnsupportedFeature, got %v", err)
	}
}

func TestParseDuplicateFieldNumberFails(t *testing.T) {
	src := `
syntax = "proto3";
message M {
  int32 a = 1;
  int32 b = 1;
}
`
	_, _, err := Parse("t.proto", src)
	if err == nil {
		t.Fatalf("expected duplicate field number error")
	}
}

func TestParseNestedMessageAndEnum(t *testing.T) {
	src := `
syntax = "proto3";
message Outer {
  message Inner {
    int32 x = 1;
  }
  enum Color {
    UNKNOWN = 0;
    RED = 1;
  }
  Inner inner = 1;
  Color color = 2;
}
`
	f, _, err := Parse("t.proto", src)
	if err != nil {
		t.Fatal(err)
	}
	outer := f.Messages[0]
	if len(outer.Nested) != 1 || outer.Nested[0].Name != "Inner" {
		t.Fatalf("nested = %+v", outer.Nested)
	}
	if len(outer.NestedEnum) != 1 || outer.NestedEnum[0].Name != "Color" {
		t.Fatalf("nested enum = %+v", outer.NestedEnum)
	}
	if outer.Fields[1].Single.Def.Type != pbjwire.TypeMessage {
		t.Fatalf("unresolved type reference should parse as placeholder TypeMessage")
	}
}
