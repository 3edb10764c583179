package gen

import (
	"strconv"

	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

// EmitWriter renders the .writers package file for one top-level message:
// a Write<GoName> and Measure<GoName> function per message (top-level
// plus nested), each walking fields in declaration order and keeping the
// two in lock-step by sharing the same per-field size/write expression
// builders (spec §4.6 writer emitter, §9 "size-write lock-step").
//
// Grounded on protobuf3/encode.go's per-kind encode helpers (teacher) and
// cmd/protoc-gen-go/internal_gengo/message.go's per-field emission loop,
// adapted from a single reflection-driven encoder to one generated
// write/measure pair per message.
func EmitWriter(mc *MessageContext) []byte {
	b := newFileBuilder()
	b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjwire")
	for _, m := range collectMessages(mc.Msg) {
		emitWriteFunc(mc, b, m)
		emitMeasureFunc(mc, b, m)
	}
	return b.render("writers")
}

func emitWriteFunc(mc *MessageContext, b *fileBuilder, m *ast.MessageDef) {
	goName := goTypeName(localName(mc, m))
	modelFi := mc.resolveForeign(mc.ProtoPackage+"."+m.QualifiedName(), roleModel)
	modelType := modelFi.qualifiedType()
	b.importForeign(modelFi)

	b.P("// Write", goName, " writes x in declaration-order field sequence,")
	b.P("// eliding default-valued non-oneOf scalar fields (spec default-value elision).")
	b.P("func Write", goName, "(out pbjio.WritableSequentialData, x *", modelType, ") error {")
	for _, f := range m.Fields {
		if f.Single != nil {
			for _, line := range writeFieldLines(mc, b, f.Single.Def) {
				b.P("\t", line)
			}
		} else {
			for _, line := range writeOneOfLines(mc, b, goName, f.OneOf) {
				b.P("\t", line)
			}
		}
	}
	b.P("\treturn nil")
	b.P("}")
	b.P()
	b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjio")
}

func emitMeasureFunc(mc *MessageContext, b *fileBuilder, m *ast.MessageDef) {
	goName := goTypeName(localName(mc, m))
	modelFi := mc.resolveForeign(mc.ProtoPackage+"."+m.QualifiedName(), roleModel)
	modelType := modelFi.qualifiedType()

	b.P("// Measure", goName, " returns the exact byte count Write", goName, " would emit for x,")
	b.P("// mirroring it field-for-field (spec §9 size-write lock-step).")
	b.P("func Measure", goName, "(x *", modelType, ") int {")
	b.P("\tn := 0")
	for _, f := range m.Fields {
		if f.Single != nil {
			for _, line := range measureFieldLines(mc, b, f.Single.Def) {
				b.P("\t", line)
			}
		} else {
			for _, line := range measureOneOfLines(mc, b, goName, f.OneOf) {
				b.P("\t", line)
			}
		}
	}
	b.P("\treturn n")
	b.P("}")
	b.P()
}

func isDefaultExpr(b *fileBuilder, def ast.FieldDefinition, expr string) string {
	switch def.Type {
	case pbjwire.TypeBool:
		return expr
	case pbjwire.TypeString:
		b.importRuntime("strings")
		return "strings.TrimSpace(" + expr + ") != \"\""
	case pbjwire.TypeBytes:
		return expr + ".Length() > 0"
	case pbjwire.TypeMessage:
		return expr + " != nil"
	default:
		return expr + " != 0"
	}
}

func writeFieldLines(mc *MessageContext, b *fileBuilder, def ast.FieldDefinition) []string {
	exported := exportedName(def.Name)
	expr := "x." + exported
	fn := def.FieldNumber

	switch {
	case def.Optional:
		goType := fieldGoType(mc, b, def)
		wt := wireTypeConst(def.Type)
		sizeExpr := sizeExprName(def.Type, goType)
		return []string{
			"if err := pbjwire.WriteOptional(out, " + strconv.Itoa(fn) + ", " + expr + ", " + wt + ", " + writeExprFor(def.Type, goType) + ", " + sizeExpr + "); err != nil {",
			"\treturn err",
			"}",
		}
	case def.Repeated:
		return writeRepeatedLines(mc, b, def, expr, fn)
	default:
		cond := isDefaultExpr(b, def, expr)
		lines := []string{"if " + cond + " {"}
		lines = append(lines, indentAll(writeSingularLines(mc, b, def, expr, fn))...)
		lines = append(lines, "}")
		return lines
	}
}

func writeOneOfLines(mc *MessageContext, b *fileBuilder, ownerGoName string, of *ast.OneOfField) []string {
	exported := exportedName(of.Name)
	kindType := ownerGoName + exported + "Kind"
	field := "x." + exported
	var lines []string
	lines = append(lines, "switch "+field+".Kind {")
	for _, v := range of.Variants {
		goType := fieldGoType(mc, b, v.Def)
		lines = append(lines, "case "+kindType+exportedName(v.Def.Name)+":")
		valExpr := field + ".Value.(" + goType + ")"
		lines = append(lines, indentAll(writeSingularLines(mc, b, v.Def, valExpr, v.Def.FieldNumber))...)
	}
	lines = append(lines, "}")
	return lines
}

// writeSingularLines emits the tag+value write for one field already
// known to be present (non-oneOf: gated by a default check; oneOf: gated
// by the Kind switch).
func writeSingularLines(mc *MessageContext, b *fileBuilder, def ast.FieldDefinition, expr string, fieldNumber int) []string {
	wt := def.Type.WireType()
	switch def.Type {
	case pbjwire.TypeMessage:
		fi := mc.resolveForeign(def.TypeName, roleWriter)
		b.importForeign(fi)
		measureFi := mc.resolveForeign(def.TypeName, roleWriter)
		return []string{
			"if err := pbjwire.WriteMessage(out, " + strconv.Itoa(fieldNumber) + ", " + measureFi.qualifiedFunc("Measure") + "(" + expr + "), func(out pbjio.WritableSequentialData) error {",
			"\treturn " + fi.qualifiedFunc("Write") + "(out, " + expr + ")",
			"}); err != nil {",
			"\treturn err",
			"}",
		}
	case pbjwire.TypeEnum:
		return []string{
			"if err := pbjwire.WriteTag(out, " + strconv.Itoa(fieldNumber) + ", " + wireTypeConstRaw(wt) + "); err != nil {",
			"\treturn err",
			"}",
			"if err := pbjwire.WriteEnum(out, int32(" + expr + ")); err != nil {",
			"\treturn err",
			"}",
		}
	case pbjwire.TypeBytes:
		b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjbytes")
		return []string{
			"if err := pbjwire.WriteTag(out, " + strconv.Itoa(fieldNumber) + ", " + wireTypeConstRaw(wt) + "); err != nil {",
			"\treturn err",
			"}",
			"if err := pbjwire.WriteBytesRaw(out, " + expr + ".AsSlice()); err != nil {",
			"\treturn err",
			"}",
		}
	default:
		return []string{
			"if err := pbjwire.WriteTag(out, " + strconv.Itoa(fieldNumber) + ", " + wireTypeConstRaw(wt) + "); err != nil {",
			"\treturn err",
			"}",
			"if err := " + writeFuncName(def.Type) + "(out, " + expr + "); err != nil {",
			"\treturn err",
			"}",
		}
	}
}

func writeRepeatedLines(mc *MessageContext, b *fileBuilder, def ast.FieldDefinition, expr string, fieldNumber int) []string {
	goType := fieldGoType(mc, b, def)
	if def.Type.IsPackable() {
		codec := valueCodecLiteral(def.Type, goType)
		return []string{
			"if err := pbjwire.WritePacked(out, " + strconv.Itoa(fieldNumber) + ", " + expr + ", " + codec + "); err != nil {",
			"\treturn err",
			"}",
		}
	}
	switch def.Type {
	case pbjwire.TypeMessage:
		fi := mc.resolveForeign(def.TypeName, roleWriter)
		b.importForeign(fi)
		return []string{
			"for _, elem := range " + expr + " {",
			"\tif err := pbjwire.WriteMessage(out, " + strconv.Itoa(fieldNumber) + ", " + fi.qualifiedFunc("Measure") + "(elem), func(out pbjio.WritableSequentialData) error {",
			"\t\treturn " + fi.qualifiedFunc("Write") + "(out, elem)",
			"\t}); err != nil {",
			"\t\treturn err",
			"\t}",
			"}",
		}
	case pbjwire.TypeBytes:
		b.importRuntime("github.com/pbj-lang/pbj/runtime/pbjbytes")
		return []string{
			"if err := pbjwire.WriteUnpacked(out, " + strconv.Itoa(fieldNumber) + ", pbjwire.WireBytes, " + expr + ", func(out pbjio.WritableSequentialData, v " + goType + ") error {",
			"\treturn pbjwire.WriteBytesRaw(out, v.AsSlice())",
			"}); err != nil {",
			"\treturn err",
			"}",
		}
	default: // string
		return []string{
			"if err := pbjwire.WriteUnpacked(out, " + strconv.Itoa(fieldNumber) + ", pbjwire.WireBytes, " + expr + ", pbjwire.WriteString); err != nil {",
			"\treturn err",
			"}",
		}
	}
}

func measureFieldLines(mc *MessageContext, b *fileBuilder, def ast.FieldDefinition) []string {
	exported := exportedName(def.Name)
	expr := "x." + exported
	fn := def.FieldNumber

	switch {
	case def.Optional:
		wt := wireTypeConst(def.Type)
		sizeExpr := sizeExprName(def.Type, fieldGoType(mc, b, def))
		return []string{"n += pbjwire.SizeOfOptional(" + strconv.Itoa(fn) + ", " + expr + ", " + wt + ", " + sizeExpr + ")"}
	case def.Repeated:
		return measureRepeatedLines(mc, b, def, expr, fn)
	default:
		cond := isDefaultExpr(b, def, expr)
		lines := []string{"if " + cond + " {"}
		lines = append(lines, indentAll(measureSingularLines(mc, b, def, expr, fn))...)
		lines = append(lines, "}")
		return lines
	}
}

func measureOneOfLines(mc *MessageContext, b *fileBuilder, ownerGoName string, of *ast.OneOfField) []string {
	exported := exportedName(of.Name)
	kindType := ownerGoName + exported + "Kind"
	field := "x." + exported
	var lines []string
	lines = append(lines, "switch "+field+".Kind {")
	for _, v := range of.Variants {
		goType := fieldGoType(mc, b, v.Def)
		lines = append(lines, "case "+kindType+exportedName(v.Def.Name)+":")
		valExpr := field + ".Value.(" + goType + ")"
		lines = append(lines, indentAll(measureSingularLines(mc, b, v.Def, valExpr, v.Def.FieldNumber))...)
	}
	lines = append(lines, "}")
	return lines
}

func measureSingularLines(mc *MessageContext, b *fileBuilder, def ast.FieldDefinition, expr string, fieldNumber int) []string {
	wt := def.Type.WireType()
	switch def.Type {
	case pbjwire.TypeMessage:
		fi := mc.resolveForeign(def.TypeName, roleWriter)
		b.importForeign(fi)
		return []string{"n += pbjwire.SizeOfMessage(" + strconv.Itoa(fieldNumber) + ", " + fi.qualifiedFunc("Measure") + "(" + expr + "))"}
	case pbjwire.TypeEnum:
		return []string{"n += pbjwire.SizeOfTag(" + strconv.Itoa(fieldNumber) + ", " + wireTypeConstRaw(wt) + ") + pbjwire.SizeOfEnum(int32(" + expr + "))"}
	case pbjwire.TypeBytes:
		return []string{"n += pbjwire.SizeOfTag(" + strconv.Itoa(fieldNumber) + ", " + wireTypeConstRaw(wt) + ") + pbjwire.SizeOfBytes(" + expr + ".AsSlice())"}
	default:
		if width, ok := fixedWireSize(def.Type); ok {
			return []string{"n += pbjwire.SizeOfTag(" + strconv.Itoa(fieldNumber) + ", " + wireTypeConstRaw(wt) + ") + " + strconv.Itoa(width)}
		}
		return []string{"n += pbjwire.SizeOfTag(" + strconv.Itoa(fieldNumber) + ", " + wireTypeConstRaw(wt) + ") + " + sizeFuncName(def.Type) + "(" + expr + ")"}
	}
}

func measureRepeatedLines(mc *MessageContext, b *fileBuilder, def ast.FieldDefinition, expr string, fieldNumber int) []string {
	goType := fieldGoType(mc, b, def)
	if def.Type.IsPackable() {
		codec := valueCodecLiteral(def.Type, goType)
		return []string{"n += pbjwire.SizeOfPacked(" + strconv.Itoa(fieldNumber) + ", " + expr + ", " + codec + ")"}
	}
	switch def.Type {
	case pbjwire.TypeMessage:
		fi := mc.resolveForeign(def.TypeName, roleWriter)
		return []string{
			"for _, elem := range " + expr + " {",
			"\tn += pbjwire.SizeOfMessage(" + strconv.Itoa(fieldNumber) + ", " + fi.qualifiedFunc("Measure") + "(elem))",
			"}",
		}
	case pbjwire.TypeBytes:
		return []string{
			"for _, elem := range " + expr + " {",
			"\tn += pbjwire.SizeOfTag(" + strconv.Itoa(fieldNumber) + ", pbjwire.WireBytes) + pbjwire.SizeOfBytes(elem.AsSlice())",
			"}",
		}
	default: // string
		return []string{
			"for _, elem := range " + expr + " {",
			"\tn += pbjwire.SizeOfTag(" + strconv.Itoa(fieldNumber) + ", pbjwire.WireBytes) + pbjwire.SizeOfString(elem)",
			"}",
		}
	}
}

func wireTypeConstRaw(wt pbjwire.WireType) string {
	switch wt {
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

func indentAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "\t" + l
	}
	return out
}
