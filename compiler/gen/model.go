package gen

import (
	"strconv"
	"strings"

	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

// EmitModel renders the .model package file for one top-level message:
// an immutable struct per message (top-level plus every nested message,
// flattened to Outer_Inner Go names), one OneOfKind enumeration and
// OneOf-valued field per oneof, and — for messages carrying a
// `pbj.comparable` directive — a total-order CompareTo method built from
// pbjruntime.Compare/CompareXxx (spec §4.6, §3 "FieldDefinition").
//
// Grounded on cmd/protoc-gen-go/internal_gengo's message.go (struct field
// emission) and oneof.go (the Kind-enum-plus-tagged-value shape), adapted
// from that package's pre-generics isXxx_Yyy wrapper interfaces to
// pbjruntime.OneOf[K, V] instantiated with V = any.
func EmitModel(mc *MessageContext) []byte {
	b := newFileBuilder()
	for _, m := range collectMessages(mc.Msg) {
		emitMessageStruct(mc, b, m)
	}
	for _, e := range collectNestedEnums(mc.Msg) {
		emitEnumType(b, goTypeName(localName(mc, e.owner)+"."+e.def.Name), e.def)
	}
	return b.render("model")
}

// EmitTopLevelEnumModel renders the standalone .model file for one
// top-level enum declaration (spec §4.7: "for every top-level enum, run
// the enum emitter").
func EmitTopLevelEnumModel(e *ast.EnumDef) []byte {
	b := newFileBuilder()
	emitEnumType(b, goTypeName(e.Name), e)
	return b.render("model")
}

// collectMessages returns top and every message nested within it,
// depth-first, in declaration order — the set of Go structs one message's
// model file defines.
func collectMessages(top *ast.MessageDef) []*ast.MessageDef {
	out := []*ast.MessageDef{top}
	for _, n := range top.Nested {
		out = append(out, collectMessages(n)...)
	}
	return out
}

type nestedEnum struct {
	owner *ast.MessageDef
	def   *ast.EnumDef
}

func collectNestedEnums(top *ast.MessageDef) []nestedEnum {
	var out []nestedEnum
	for _, e := range top.NestedEnum {
		out = append(out, nestedEnum{owner: top, def: e})
	}
	for _, n := range top.Nested {
		out = append(out, collectNestedEnums(n)...)
	}
	return out
}

// localName returns m's message-local dotted path (not including the
// proto package), the same shape ast.MessageDef.QualifiedName produces.
func localName(mc *MessageContext, m *ast.MessageDef) string {
	return m.QualifiedName()
}

func emitMessageStruct(mc *MessageContext, b *fileBuilder, m *ast.MessageDef) {
	goName := goTypeName(localName(mc, m))
	b.P("// ", goName, " is the generated immutable model for message ", m.QualifiedName(), ".")
	b.P("type ", goName, " struct {")
	for _, f := range m.Fields {
		if f.Single != nil {
			emitStructField(mc, b, goName, f.Single.Def)
		} else {
			emitOneOfField(mc, b, goName, f.OneOf)
		}
	}
	b.P("}")
	b.P()
	for _, f := range m.Fields {
		if f.OneOf != nil {
			emitOneOfKind(b, goName, f.OneOf)
		}
	}
	if m.Comparable != nil {
		emitComparable(mc, b, goName, m)
	}
}

func emitStructField(mc *MessageContext, b *fileBuilder, ownerGoName string, def ast.FieldDefinition) {
	goType := fieldGoType(mc, b, def)
	if def.Repeated {
		goType = "[]" + goType
	} else if def.Optional {
		b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjwire")
		goType = "pbjwire.Optional[" + goType + "]"
	}
	b.P("\t", exportedName(def.Name), " ", goType)
}

// fieldGoType returns the bare (non-repeated, non-optional) Go type for a
// field definition, importing the owning foreign package as needed.
func fieldGoType(mc *MessageContext, b *fileBuilder, def ast.FieldDefinition) string {
	switch def.Type {
	case pbjwire.TypeMessage, pbjwire.TypeEnum:
		fi := mc.resolveForeign(def.TypeName, roleModel)
		b.importForeign(fi)
		if def.Type == pbjwire.TypeEnum {
			return fi.qualifiedType()
		}
		return "*" + fi.qualifiedType()
	case pbjwire.TypeBytes:
		b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjbytes")
		return "pbjbytes.Bytes"
	default:
		return scalarGoType(def.Type)
	}
}

func emitOneOfField(mc *MessageContext, b *fileBuilder, ownerGoName string, of *ast.OneOfField) {
	kindType := ownerGoName + exportedName(of.Name) + "Kind"
	b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjruntime")
	b.P("\t", exportedName(of.Name), " pbjruntime.OneOf[", kindType, ", any]")
}

func emitOneOfKind(b *fileBuilder, ownerGoName string, of *ast.OneOfField) {
	kindType := ownerGoName + exportedName(of.Name) + "Kind"
	b.P("// ", kindType, " enumerates the variants of the ", of.Name, " oneof on ", ownerGoName, ".")
	b.P("type ", kindType, " int32")
	b.P()
	b.P("const (")
	b.P("\t", kindType, "Unset ", kindType, " = 0")
	for _, v := range of.Variants {
		b.P("\t", kindType, exportedName(v.Def.Name), " ", kindType, " = ", strconv.Itoa(v.Def.FieldNumber))
	}
	b.P(")")
	b.P()
}

func emitComparable(mc *MessageContext, b *fileBuilder, goName string, m *ast.MessageDef) {
	byName := map[string]ast.FieldDefinition{}
	for _, f := range m.Fields {
		if f.Single != nil {
			byName[f.Single.Def.Name] = f.Single.Def
		}
	}
	b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjruntime")
	b.P("// CompareTo implements the total order declared by this message's")
	b.P("// pbj.comparable option-comment, over fields (", strings.Join(m.Comparable.Fields, ", "), ") in that order.")
	b.P("func (x *", goName, ") CompareTo(o *", goName, ") int {")
	b.P("\treturn pbjruntime.Compare(")
	for _, fname := range m.Comparable.Fields {
		def, ok := byName[fname]
		if !ok {
			continue
		}
		b.P("\t\t", compareExprFor(def, exportedName(fname)), ",")
	}
	b.P("\t)")
	b.P("}")
	b.P()
}

// compareExprFor builds the pbjruntime.CompareXxx call for one
// pbj.comparable field; driver.validateComparable has already rejected
// message-typed fields, so every def reaching here is a scalar, enum,
// or bytes field with a legal conversion to one of CompareXxx's params.
func compareExprFor(def ast.FieldDefinition, field string) string {
	switch def.Type {
	case pbjwire.TypeFloat, pbjwire.TypeDouble:
		return "pbjruntime.CompareFloat64(float64(x." + field + "), float64(o." + field + "))"
	case pbjwire.TypeBool:
		return "pbjruntime.CompareBool(x." + field + ", o." + field + ")"
	case pbjwire.TypeString:
		return "pbjruntime.CompareString(x." + field + ", o." + field + ")"
	case pbjwire.TypeBytes:
		return "pbjruntime.CompareBytes(x." + field + ".AsSlice(), o." + field + ".AsSlice())"
	case pbjwire.TypeUint32, pbjwire.TypeUint64, pbjwire.TypeFixed32, pbjwire.TypeFixed64:
		return "pbjruntime.CompareUint64(uint64(x." + field + "), uint64(o." + field + "))"
	default:
		return "pbjruntime.CompareInt64(int64(x." + field + "), int64(o." + field + "))"
	}
}

func emitEnumType(b *fileBuilder, goName string, e *ast.EnumDef) {
	b.P("// ", goName, " is the generated enumeration for enum ", e.Name, ".")
	b.P("type ", goName, " int32")
	b.P()
	b.P("const (")
	for _, v := range e.Values {
		b.P("\t", goName, "_", exportedName(v.Name), " ", goName, " = ", strconv.Itoa(int(v.Ordinal)))
	}
	b.P(")")
	b.P()
	b.P("// ProtoOrdinal returns the wire-format ordinal of this value.")
	b.P("func (v ", goName, ") ProtoOrdinal() int32 { return int32(v) }")
	b.P()
	b.P("// FromOrdinal", goName, " maps a wire-format ordinal back to a ", goName, " value;")
	b.P("// unrecognized ordinals round-trip as their raw numeric value (proto3 open enums).")
	b.P("func FromOrdinal", goName, "(ordinal int32) ", goName, " { return ", goName, "(ordinal) }")
	b.P()
}
