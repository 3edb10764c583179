// Package ast is the schema-time data model produced by compiler/parser:
// FieldDefinition, Field (SingleField/OneOfField), MessageSchema, and enum
// declarations (spec §3).
package ast

import (
	"strconv"

	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

// FieldDefinition is the immutable tuple (name, type, repeated, optional,
// oneOf, fieldNumber) from spec §3. repeated and oneOf are mutually
// exclusive; optional implies the field is wire-encoded as a wrapper
// message (spec §4.1).
type FieldDefinition struct {
	Name        string
	Type        pbjwire.FieldType
	Repeated    bool
	Optional    bool
	OneOf       string // owning oneof's name, or "" if not part of one
	FieldNumber int
	// TypeName is the (possibly still-unqualified) referenced
	// type name for FieldType == TypeMessage or TypeEnum; resolved to a
	// fully-qualified name by compiler/resolver before emission.
	TypeName string
}

// Validate checks the invariants spec §3 states for a FieldDefinition.
func (f FieldDefinition) Validate() error {
	if f.Name == "" {
		return fieldError(f, "field name must not be empty")
	}
	if f.FieldNumber < 1 {
		return fieldError(f, "field number must be >= 1")
	}
	if f.Repeated && f.OneOf != "" {
		return fieldError(f, "a field cannot be both repeated and part of a oneof")
	}
	return nil
}

func fieldError(f FieldDefinition, msg string) error {
	return &ValidationError{Field: f.Name, Message: msg}
}

// ValidationError reports a FieldDefinition or MessageSchema invariant
// violation discovered after parsing, during schema construction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "pbj: field " + e.Field + ": " + e.Message
}

// SingleField is a scalar, bytes, string, enum, or sub-message field
// (spec §3 "Field (schema-time)").
type SingleField struct {
	Def FieldDefinition
}

// OneOfField groups the mutually exclusive variants of a oneof. Each
// variant's FieldDefinition.OneOf equals OneOfField.Name.
type OneOfField struct {
	Name     string
	Variants []SingleField
}

// Field is the schema-time union of SingleField and OneOfField (spec §3).
// Exactly one of Single or OneOf is non-nil.
type Field struct {
	Single *SingleField
	OneOf  *OneOfField
}

// FieldNumbers returns every field number this Field occupies (one for a
// SingleField, one per variant for a OneOfField), used to check
// message-wide uniqueness.
func (f Field) FieldNumbers() []int {
	if f.Single != nil {
		return []int{f.Single.Def.FieldNumber}
	}
	nums := make([]int, len(f.OneOf.Variants))
	for i, v := range f.OneOf.Variants {
		nums[i] = v.Def.FieldNumber
	}
	return nums
}

// EnumValue is a single `NAME = ordinal;` declaration inside an enum.
type EnumValue struct {
	Name    string
	Ordinal int32
}

// EnumDef is a top-level or nested enum declaration. Ordinal 0 is always
// present for proto3 enums (validated by compiler/parser).
type EnumDef struct {
	Name   string
	Values []EnumValue
}

// Comparable holds the decoded `pbj.comparable = "f1, f2, ..."` directive
// for a message, or is nil if the message carries no such directive
// (spec §4.6 model emitter, §6 option-comments table).
type Comparable struct {
	Fields []string
}

// MessageDef is a message declaration: an ordered list of fields plus
// nested message and enum declarations (spec §3 "MessageSchema").
type MessageDef struct {
	Name       string
	Fields     []Field
	Nested     []*MessageDef
	NestedEnum []*EnumDef
	Comparable *Comparable
	// Parent is the enclosing message, or nil for a top-level message.
	Parent *MessageDef
}

// QualifiedName returns the dotted nested-name path from the top-level
// message down to this one (not including the file's package).
func (m *MessageDef) QualifiedName() string {
	if m.Parent == nil {
		return m.Name
	}
	return m.Parent.QualifiedName() + "." + m.Name
}

// Validate checks field-number uniqueness and nested-name uniqueness
// within this message's scope (spec §3 "MessageSchema" invariants).
func (m *MessageDef) Validate() error {
	seen := map[int]string{}
	for _, f := range m.Fields {
		for _, n := range f.FieldNumbers() {
			if prior, ok := seen[n]; ok {
				return &ValidationError{Field: m.Name, Message: "duplicate field number " + strconv.Itoa(n) + " (also used by " + prior + ")"}
			}
			seen[n] = fieldDisplayName(f)
		}
	}
	names := map[string]bool{}
	for _, n := range m.Nested {
		if names[n.Name] {
			return &ValidationError{Field: m.Name, Message: "duplicate nested name " + n.Name}
		}
		names[n.Name] = true
	}
	for _, e := range m.NestedEnum {
		if names[e.Name] {
			return &ValidationError{Field: m.Name, Message: "duplicate nested name " + e.Name}
		}
		names[e.Name] = true
	}
	return nil
}

func fieldDisplayName(f Field) string {
	if f.Single != nil {
		return f.Single.Def.Name
	}
	return f.OneOf.Name
}

// File is the parsed representation of one .proto source file
// (spec §4.4 grammar: "proto → syntax?, package?, import*, topLevelDef*").
type File struct {
	Path        string
	Package     string
	Syntax      string
	Imports     []Import
	Messages    []*MessageDef
	Enums       []*EnumDef
	JavaPackage string // pbj.java_package override, or "" if unset
}

// Import is one `import` statement; Public marks `import public "...";`.
type Import struct {
	Path   string
	Public bool
}
