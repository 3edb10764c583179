// Package parser implements the Protobuf 3 recursive-descent parser
// (spec §4.4): proto → syntax?, package?, import*, topLevelDef*; topLevelDef
// ∈ {messageDef, enumDef, serviceDef*, optionStatement}; messageDef →
// ident, messageBody; messageBody → (field | oneof | messageDef | enumDef |
// reserved | mapField | optionStatement)*.
package parser

import (
	"strconv"
	"strings"

	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/compiler/errs"
	"github.com/pbj-lang/pbj/compiler/lexer"
	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

// Diagnostics collects non-fatal warnings (e.g. an ignored unknown
// option-comment, spec §4.4) produced during a Parse call.
type Diagnostics struct {
	Warnings []string
}

// Parser consumes tokens from a lexer.Lexer and builds an ast.File.
type Parser struct {
	lex  *lexer.Lexer
	file string
	cur  lexer.Token
	// pendingOptions accumulates recognized PBJ option-comments seen since
	// the last declaration, to be attached to whichever declaration comes
	// next (spec §4.4 "recognizes a PBJ-specific option-comment form...
	// above a definition").
	pendingOptions map[string]string
	javaPackage    string
	diag           *Diagnostics
}

// Parse tokenizes and parses one .proto source file.
func Parse(file, src string) (*ast.File, *Diagnostics, error) {
	p := &Parser{
		lex:            lexer.New(file, src),
		file:           file,
		pendingOptions: map[string]string{},
		diag:           &Diagnostics{},
	}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	f := &ast.File{Path: file}
	for p.cur.Kind != lexer.TokenEOF {
		if err := p.topLevel(f); err != nil {
			return nil, p.diag, err
		}
	}
	f.JavaPackage = p.javaPackage
	return f, p.diag, nil
}

func (p *Parser) advance() error {
	for {
		tok, err := p.lex.Next()
		if err != nil {
			return err
		}
		if tok.Kind == lexer.TokenComment {
			continue // plain comments carry no semantic content
		}
		if tok.Kind == lexer.TokenOptionComment {
			p.recordOptionComment(tok)
			continue
		}
		p.cur = tok
		return nil
	}
}

func (p *Parser) recordOptionComment(tok lexer.Token) {
	switch tok.OptKey {
	case "pbj.java_package":
		// File-scoped: may appear anywhere in the file (spec §4.4, §6).
		p.javaPackage = tok.OptValue
	case "pbj.comparable":
		// Message-scoped: must directly precede the message declaration
		// it targets, so it rides the clearable pendingOptions map.
		p.pendingOptions[tok.OptKey] = tok.OptValue
	default:
		p.diag.Warnings = append(p.diag.Warnings, tok.Pos.String()+": ignoring unrecognized option-comment "+tok.OptKey)
	}
}

// takePendingOptions returns and clears the options accumulated for the
// declaration about to be parsed.
func (p *Parser) takePendingOptions() map[string]string {
	opts := p.pendingOptions
	p.pendingOptions = map[string]string{}
	return opts
}

func (p *Parser) expectSymbol(sym string) error {
	if p.cur.Kind != lexer.TokenSymbol || p.cur.Text != sym {
		return errs.NewSchemaParseError(p.cur.Pos, "expected %q, got %q", sym, p.cur.Text)
	}
	return p.advance()
}

func (p *Parser) expectIdent() (string, error) {
	if p.cur.Kind != lexer.TokenIdent {
		return "", errs.NewSchemaParseError(p.cur.Pos, "expected identifier, got %q", p.cur.Text)
	}
	name := p.cur.Text
	return name, p.advance()
}

func (p *Parser) isIdent(name string) bool {
	return p.cur.Kind == lexer.TokenIdent && p.cur.Text == name
}

func (p *Parser) topLevel(f *ast.File) error {
	switch {
	case p.isIdent("syntax"):
		return p.parseSyntax(f)
	case p.isIdent("package"):
		return p.parsePackage(f)
	case p.isIdent("import"):
		return p.parseImport(f)
	case p.isIdent("option"):
		return p.parseOptionStatement()
	case p.isIdent("message"):
		msg, err := p.parseMessage(nil, p.takePendingOptions())
		if err != nil {
			return err
		}
		f.Messages = append(f.Messages, msg)
		return nil
	case p.isIdent("enum"):
		e, err := p.parseEnum()
		if err != nil {
			return err
		}
		f.Enums = append(f.Enums, e)
		return nil
	case p.isIdent("service"):
		return errs.NewUnsupportedFeature(p.cur.Pos, "service definitions (gRPC codegen)")
	case p.cur.Kind == lexer.TokenSymbol && p.cur.Text == ";":
		return p.advance()
	default:
		return errs.NewSchemaParseError(p.cur.Pos, "unexpected top-level token %q", p.cur.Text)
	}
}

func (p *Parser) parseSyntax(f *ast.File) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectSymbol("="); err != nil {
		return err
	}
	if p.cur.Kind != lexer.TokenString {
		return errs.NewSchemaParseError(p.cur.Pos, "expected string literal after syntax =")
	}
	f.Syntax = p.cur.Text
	if f.Syntax != "proto3" {
		return errs.NewSchemaParseError(p.cur.Pos, "only syntax = \"proto3\" is supported, got %q", f.Syntax)
	}
	if err := p.advance(); err != nil {
		return err
	}
	return p.expectSymbol(";")
}

func (p *Parser) parsePackage(f *ast.File) error {
	if err := p.advance(); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	f.Package = name
	return p.expectSymbol(";")
}

func (p *Parser) parseImport(f *ast.File) error {
	if err := p.advance(); err != nil {
		return err
	}
	public := false
	if p.isIdent("public") {
		public = true
		if err := p.advance(); err != nil {
			return err
		}
	}
	if p.cur.Kind != lexer.TokenString {
		return errs.NewSchemaParseError(p.cur.Pos, "expected string literal after import")
	}
	path := normalizeImportPath(p.cur.Text)
	if err := p.advance(); err != nil {
		return err
	}
	f.Imports = append(f.Imports, ast.Import{Path: path, Public: public})
	return p.expectSymbol(";")
}

// normalizeImportPath strips surrounding quotes (already done by the
// lexer's string scanning) and converts path separators, per spec §4.5
// "File-name normalization."
func normalizeImportPath(raw string) string {
	return strings.ReplaceAll(strings.Trim(raw, `"'`), "\\", "/")
}

// parseOptionStatement consumes a plain `option name = value;` statement.
// PBJ recognizes options only via the `<<<...>>>` comment form (spec
// §4.4); a plain option statement is accepted syntactically and ignored
// semantically so well-formed proto3 files that use ordinary options
// (e.g. `option go_package = ...`) do not fail to parse.
func (p *Parser) parseOptionStatement() error {
	if err := p.advance(); err != nil {
		return err
	}
	for !(p.cur.Kind == lexer.TokenSymbol && p.cur.Text == ";") {
		if p.cur.Kind == lexer.TokenEOF {
			return errs.NewSchemaParseError(p.cur.Pos, "unterminated option statement")
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.advance()
}

func (p *Parser) parseEnum() (*ast.EnumDef, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	e := &ast.EnumDef{Name: name}
	for !(p.cur.Kind == lexer.TokenSymbol && p.cur.Text == "}") {
		if p.isIdent("option") {
			if err := p.parseOptionStatement(); err != nil {
				return nil, err
			}
			continue
		}
		if p.cur.Kind == lexer.TokenSymbol && p.cur.Text == ";" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		valName, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expectSymbol("="); err != nil {
			return nil, err
		}
		ordinal, err := p.expectInt()
		if err != nil {
			return nil, err
		}
		if err := p.skipFieldOptionsIfAny(); err != nil {
			return nil, err
		}
		if err := p.expectSymbol(";"); err != nil {
			return nil, err
		}
		e.Values = append(e.Values, ast.EnumValue{Name: valName, Ordinal: int32(ordinal)})
	}
	hasZero := false
	for _, v := range e.Values {
		if v.Ordinal == 0 {
			hasZero = true
		}
	}
	if !hasZero {
		return nil, errs.NewSchemaParseError(p.cur.Pos, "enum %s has no value with ordinal 0", name)
	}
	return e, p.advance()
}

func (p *Parser) expectInt() (int64, error) {
	if p.cur.Kind != lexer.TokenInt {
		return 0, errs.NewSchemaParseError(p.cur.Pos, "expected integer, got %q", p.cur.Text)
	}
	n, err := strconv.ParseInt(p.cur.Text, 0, 64)
	if err != nil {
		return 0, errs.NewSchemaParseError(p.cur.Pos, "invalid integer literal %q", p.cur.Text)
	}
	return n, p.advance()
}

// skipFieldOptionsIfAny consumes a bracketed `[...]` option list attached
// to a field or enum value, discarding its contents: PBJ's own option
// surface is exclusively the comment form (spec §4.4, §6).
func (p *Parser) skipFieldOptionsIfAny() error {
	if !(p.cur.Kind == lexer.TokenSymbol && p.cur.Text == "[") {
		return nil
	}
	depth := 0
	for {
		if p.cur.Kind == lexer.TokenEOF {
			return errs.NewSchemaParseError(p.cur.Pos, "unterminated field option list")
		}
		if p.cur.Kind == lexer.TokenSymbol && p.cur.Text == "[" {
			depth++
		}
		if p.cur.Kind == lexer.TokenSymbol && p.cur.Text == "]" {
			depth--
			if depth == 0 {
				return p.advance()
			}
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

var scalarTypes = map[string]pbjwire.FieldType{
	"double":   pbjwire.TypeDouble,
	"float":    pbjwire.TypeFloat,
	"int32":    pbjwire.TypeInt32,
	"int64":    pbjwire.TypeInt64,
	"uint32":   pbjwire.TypeUint32,
	"uint64":   pbjwire.TypeUint64,
	"sint32":   pbjwire.TypeSint32,
	"sint64":   pbjwire.TypeSint64,
	"fixed32":  pbjwire.TypeFixed32,
	"fixed64":  pbjwire.TypeFixed64,
	"sfixed32": pbjwire.TypeSfixed32,
	"sfixed64": pbjwire.TypeSfixed64,
	"bool":     pbjwire.TypeBool,
	"string":   pbjwire.TypeString,
	"bytes":    pbjwire.TypeBytes,
}

func (p *Parser) parseMessage(parent *ast.MessageDef, opts map[string]string) (*ast.MessageDef, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	msg := &ast.MessageDef{Name: name, Parent: parent}
	if cmp, ok := opts["pbj.comparable"]; ok {
		fields := strings.Split(cmp, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		msg.Comparable = &ast.Comparable{Fields: fields}
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	for !(p.cur.Kind == lexer.TokenSymbol && p.cur.Text == "}") {
		switch {
		case p.cur.Kind == lexer.TokenSymbol && p.cur.Text == ";":
			if err := p.advance(); err != nil {
				return nil, err
			}
		case p.isIdent("option"):
			if err := p.parseOptionStatement(); err != nil {
				return nil, err
			}
		case p.isIdent("reserved"):
			if err := p.skipReserved(); err != nil {
				return nil, err
			}
		case p.isIdent("message"):
			nested, err := p.parseMessage(msg, p.takePendingOptions())
			if err != nil {
				return nil, err
			}
			msg.Nested = append(msg.Nested, nested)
		case p.isIdent("enum"):
			e, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			msg.NestedEnum = append(msg.NestedEnum, e)
		case p.isIdent("oneof"):
			oneof, err := p.parseOneof()
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, ast.Field{OneOf: oneof})
		case p.isIdent("map"):
			return nil, errs.NewUnsupportedFeature(p.cur.Pos, "mapField")
		default:
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, ast.Field{Single: field})
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (p *Parser) skipReserved() error {
	for !(p.cur.Kind == lexer.TokenSymbol && p.cur.Text == ";") {
		if p.cur.Kind == lexer.TokenEOF {
			return errs.NewSchemaParseError(p.cur.Pos, "unterminated reserved statement")
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.advance()
}

func (p *Parser) parseOneof() (*ast.OneOfField, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	oneof := &ast.OneOfField{Name: name}
	for !(p.cur.Kind == lexer.TokenSymbol && p.cur.Text == "}") {
		if p.cur.Kind == lexer.TokenSymbol && p.cur.Text == ";" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		if field.Def.Repeated {
			return nil, &ast.ValidationError{Field: field.Def.Name, Message: "a oneof variant cannot be repeated"}
		}
		field.Def.OneOf = name
		oneof.Variants = append(oneof.Variants, *field)
	}
	return oneof, p.advance()
}

// parseField parses one `[repeated] Type ident = number [options];`.
func (p *Parser) parseField() (*ast.SingleField, error) {
	repeated := false
	optional := false
	if p.isIdent("repeated") {
		repeated = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else if p.isIdent("optional") {
		optional = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.cur.Kind != lexer.TokenIdent {
		return nil, errs.NewSchemaParseError(p.cur.Pos, "expected type name, got %q", p.cur.Text)
	}
	typeName := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	fieldName, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol("="); err != nil {
		return nil, err
	}
	number, err := p.expectInt()
	if err != nil {
		return nil, err
	}
	if err := p.skipFieldOptionsIfAny(); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(";"); err != nil {
		return nil, err
	}

	def := ast.FieldDefinition{
		Name:        fieldName,
		Repeated:    repeated,
		Optional:    optional,
		FieldNumber: int(number),
	}
	if ft, ok := scalarTypes[typeName]; ok {
		def.Type = ft
	} else {
		// Could be an enum or a message; compiler/resolver disambiguates
		// once the symbol table is available (spec §4.5). TypeMessage is
		// the placeholder pending resolution.
		def.Type = pbjwire.TypeMessage
		def.TypeName = typeName
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &ast.SingleField{Def: def}, nil
}
