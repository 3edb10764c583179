package gen

import (
	"strconv"

	"github.com/pbj-lang/pbj/compiler/ast"
)

// EmitSchema renders the .schemas package file for one top-level message:
// a package-level pbjruntime.FieldTable constant per message (top-level
// plus every nested message), populated with a FieldDescriptor per
// declared field (spec §3 "Schema table", §4.6 "Schema emitter": "a
// constant table mapping field number -> FieldDefinition... plus a
// getField lookup").
//
// Grounded on cmd/protoc-gen-go/internal_gengo/reflect.go's static,
// package-level field-descriptor table (teacher), adapted from that
// package's runtime-reflection-driven shape to a plain constant map since
// PBJ's schema tables need no reflection: field lookup is the only
// capability spec §3 asks of them.
func EmitSchema(mc *MessageContext) []byte {
	b := newFileBuilder()
	b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjruntime")
	b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjwire")
	for _, m := range collectMessages(mc.Msg) {
		emitFieldTable(mc, b, m)
	}
	return b.render("schemas")
}

func emitFieldTable(mc *MessageContext, b *fileBuilder, m *ast.MessageDef) {
	goName := goTypeName(localName(mc, m))
	b.P("// ", goName, "Fields is the field-number -> descriptor table for ", m.QualifiedName(), ".")
	b.P("var ", goName, "Fields = pbjruntime.FieldTable{")
	for _, f := range m.Fields {
		if f.Single != nil {
			emitFieldDescriptor(b, f.Single.Def)
		} else {
			for _, v := range f.OneOf.Variants {
				emitFieldDescriptor(b, v.Def)
			}
		}
	}
	b.P("}")
	b.P()
}

func emitFieldDescriptor(b *fileBuilder, def ast.FieldDefinition) {
	b.P("\t", strconv.Itoa(def.FieldNumber), ": {")
	b.P("\t\tName:        ", quoteGo(def.Name), ",")
	b.P("\t\tType:        ", wireFieldTypeConst(def), ",")
	b.P("\t\tRepeated:    ", boolLit(def.Repeated), ",")
	b.P("\t\tOptional:    ", boolLit(def.Optional), ",")
	b.P("\t\tOneOf:       ", quoteGo(def.OneOf), ",")
	b.P("\t\tFieldNumber: ", strconv.Itoa(def.FieldNumber), ",")
	b.P("\t},")
}

func quoteGo(s string) string { return strconv.Quote(s) }

func boolLit(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// wireFieldTypeConst names the pbjwire.FieldType constant for def's type,
// used inside a generated FieldDescriptor literal.
func wireFieldTypeConst(def ast.FieldDefinition) string {
	return "pbjwire." + fieldTypeConstName(def.Type)
}
