// Package gen implements the emitter pipeline of spec §4.6: for each
// message, the model, schema, parser, and writer emitters, each a pure
// function of a *MessageContext (the message with its file, resolution
// context and global table) → generated Go source.
//
// Grounded on cmd/protoc-gen-go/internal_gengo/oneof.go and reflect.go
// (teacher) for the oneof sum-type and per-field constant table shapes,
// and compiler/main.go's (g *Generator) generateMessage for the
// per-message emission sequencing.
package gen

import (
	"strings"
	"unicode"

	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

// exportedName converts a proto field_name (snake_case or already mixed)
// to an exported Go identifier, grounded on protogen/names.go's
// camelCase/cleanGoName helpers (teacher), trimmed to PBJ's narrower
// proto3-only input.
func exportedName(protoName string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range protoName {
		switch {
		case r == '_':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// goTypeName maps a message-local dotted name (e.g. "Outer.Inner" for a
// nested message, or "Color" for a top-level one — package-qualification
// already stripped by the caller) to the flattened Go type identifier the
// model emitter generates for it, since Go has no nested-type syntax:
// "Outer.Inner" -> "Outer_Inner".
func goTypeName(localDotted string) string {
	parts := strings.Split(localDotted, ".")
	for i, p := range parts {
		parts[i] = exportedName(p)
	}
	return strings.Join(parts, "_")
}

// scalarGoType returns the Go in-memory type for a non-message,
// non-repeated, non-optional scalar FieldType (spec §3 model semantics).
func scalarGoType(t pbjwire.FieldType) string {
	switch t {
	case pbjwire.TypeDouble:
		return "float64"
	case pbjwire.TypeFloat:
		return "float32"
	case pbjwire.TypeInt32, pbjwire.TypeSint32, pbjwire.TypeSfixed32:
		return "int32"
	case pbjwire.TypeInt64, pbjwire.TypeSint64, pbjwire.TypeSfixed64:
		return "int64"
	case pbjwire.TypeUint32, pbjwire.TypeFixed32:
		return "uint32"
	case pbjwire.TypeUint64, pbjwire.TypeFixed64:
		return "uint64"
	case pbjwire.TypeBool:
		return "bool"
	case pbjwire.TypeString:
		return "string"
	case pbjwire.TypeBytes:
		return "pbjbytes.Bytes"
	case pbjwire.TypeEnum:
		return "int32"
	default:
		return "any"
	}
}

// fieldTypeConstName returns the bare pbjwire.Type* identifier (without
// the package prefix) for t, used when emitting a FieldDescriptor literal
// into generated schema code.
func fieldTypeConstName(t pbjwire.FieldType) string {
	switch t {
	case pbjwire.TypeDouble:
		return "TypeDouble"
	case pbjwire.TypeFloat:
		return "TypeFloat"
	case pbjwire.TypeInt32:
		return "TypeInt32"
	case pbjwire.TypeInt64:
		return "TypeInt64"
	case pbjwire.TypeUint32:
		return "TypeUint32"
	case pbjwire.TypeUint64:
		return "TypeUint64"
	case pbjwire.TypeSint32:
		return "TypeSint32"
	case pbjwire.TypeSint64:
		return "TypeSint64"
	case pbjwire.TypeFixed32:
		return "TypeFixed32"
	case pbjwire.TypeFixed64:
		return "TypeFixed64"
	case pbjwire.TypeSfixed32:
		return "TypeSfixed32"
	case pbjwire.TypeSfixed64:
		return "TypeSfixed64"
	case pbjwire.TypeBool:
		return "TypeBool"
	case pbjwire.TypeString:
		return "TypeString"
	case pbjwire.TypeBytes:
		return "TypeBytes"
	case pbjwire.TypeEnum:
		return "TypeEnum"
	default:
		return "TypeMessage"
	}
}

// wireTypeConst returns the pbjwire.WireType* constant identifier for t.
func wireTypeConst(t pbjwire.FieldType) string {
	switch t.WireType() {
	case pbjwire.WireVarint:
		return "pbjwire.WireVarint"
	case pbjwire.WireFixed64:
		return "pbjwire.WireFixed64"
	case pbjwire.WireBytes:
		return "pbjwire.WireBytes"
	case pbjwire.WireFixed32:
		return "pbjwire.WireFixed32"
	default:
		return "pbjwire.WireVarint"
	}
}

// readFuncName and writeFuncName/sizeFuncName return the runtime/pbjwire
// function names dispatching on FieldType, used both by the parser and
// writer emitters so the two stay in lock-step (spec §9 "size-write
// lock-step").
func readFuncName(t pbjwire.FieldType) string {
	switch t {
	case pbjwire.TypeDouble:
		return "pbjwire.ReadDouble"
	case pbjwire.TypeFloat:
		return "pbjwire.ReadFloat"
	case pbjwire.TypeInt32:
		return "pbjwire.ReadInt32"
	case pbjwire.TypeInt64:
		return "pbjwire.ReadInt64"
	case pbjwire.TypeUint32:
		return "pbjwire.ReadUint32"
	case pbjwire.TypeUint64:
		return "pbjwire.ReadUint64"
	case pbjwire.TypeSint32:
		return "pbjwire.ReadZigZag32"
	case pbjwire.TypeSint64:
		return "pbjwire.ReadZigZag64"
	case pbjwire.TypeFixed32:
		return "pbjwire.ReadFixed32"
	case pbjwire.TypeFixed64:
		return "pbjwire.ReadFixed64"
	case pbjwire.TypeSfixed32:
		return "pbjwire.ReadSfixed32"
	case pbjwire.TypeSfixed64:
		return "pbjwire.ReadSfixed64"
	case pbjwire.TypeBool:
		return "pbjwire.ReadBool"
	case pbjwire.TypeString:
		return "pbjwire.ReadString"
	case pbjwire.TypeEnum:
		return "pbjwire.ReadEnum"
	default:
		return "pbjwire.ReadInt64"
	}
}

func writeFuncName(t pbjwire.FieldType) string {
	switch t {
	case pbjwire.TypeDouble:
		return "pbjwire.WriteDouble"
	case pbjwire.TypeFloat:
		return "pbjwire.WriteFloat"
	case pbjwire.TypeInt32:
		return "pbjwire.WriteInt32"
	case pbjwire.TypeInt64:
		return "pbjwire.WriteInt64"
	case pbjwire.TypeUint32:
		return "pbjwire.WriteUint32"
	case pbjwire.TypeUint64:
		return "pbjwire.WriteUint64"
	case pbjwire.TypeSint32:
		return "pbjwire.WriteZigZag32"
	case pbjwire.TypeSint64:
		return "pbjwire.WriteZigZag64"
	case pbjwire.TypeFixed32:
		return "pbjwire.WriteFixed32"
	case pbjwire.TypeFixed64:
		return "pbjwire.WriteFixed64"
	case pbjwire.TypeSfixed32:
		return "pbjwire.WriteSfixed32"
	case pbjwire.TypeSfixed64:
		return "pbjwire.WriteSfixed64"
	case pbjwire.TypeBool:
		return "pbjwire.WriteBool"
	case pbjwire.TypeString:
		return "pbjwire.WriteString"
	case pbjwire.TypeEnum:
		return "pbjwire.WriteEnum"
	default:
		return "pbjwire.WriteInt64"
	}
}

// readExprFor and writeExprFor return a func(...) expression usable as
// pbjwire.ReadOptional/WriteOptional's readInner/writeInner argument for
// field type t whose in-memory Go type is goType. Every kind but ENUM can
// reference the bare pbjwire.Read*/Write* function directly; ENUM needs an
// inline closure converting between the wire-level int32 and the named Go
// enum type, since pbjwire.ReadEnum/WriteEnum operate on plain int32.
func readExprFor(t pbjwire.FieldType, goType string) string {
	if t == pbjwire.TypeEnum {
		return "func(in pbjio.ReadableSequentialData) (" + goType + ", error) { raw, err := pbjwire.ReadEnum(in); return " + goType + "(raw), err }"
	}
	return readFuncName(t)
}

func writeExprFor(t pbjwire.FieldType, goType string) string {
	if t == pbjwire.TypeEnum {
		return "func(out pbjio.WritableSequentialData, v " + goType + ") error { return pbjwire.WriteEnum(out, int32(v)) }"
	}
	return writeFuncName(t)
}

// fixedWireSize reports the constant on-wire size of t if it is one of
// the fixed-width kinds (spec §3: fixed64/sfixed64/double always 8 bytes,
// fixed32/sfixed32/float always 4), so the writer/parser emitters can
// inline a literal instead of calling a size function for these.
func fixedWireSize(t pbjwire.FieldType) (int, bool) {
	switch t {
	case pbjwire.TypeDouble, pbjwire.TypeFixed64, pbjwire.TypeSfixed64:
		return 8, true
	case pbjwire.TypeFloat, pbjwire.TypeFixed32, pbjwire.TypeSfixed32:
		return 4, true
	default:
		return 0, false
	}
}

func sizeFuncName(t pbjwire.FieldType) string {
	switch t {
	case pbjwire.TypeInt32:
		return "pbjwire.SizeOfInt32"
	case pbjwire.TypeInt64:
		return "pbjwire.SizeOfInt64"
	case pbjwire.TypeUint32:
		return "pbjwire.SizeOfUint32"
	case pbjwire.TypeUint64:
		return "pbjwire.SizeOfUint64"
	case pbjwire.TypeSint32:
		return "pbjwire.SizeOfZigZag32"
	case pbjwire.TypeSint64:
		return "pbjwire.SizeOfZigZag64"
	case pbjwire.TypeBool:
		return "pbjwire.SizeOfBool"
	case pbjwire.TypeString:
		return "pbjwire.SizeOfString"
	case pbjwire.TypeEnum:
		return "pbjwire.SizeOfEnum"
	default:
		return "pbjwire.SizeOfInt64"
	}
}
