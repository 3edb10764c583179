// Package errs implements the compile-time error taxonomy (spec §7):
// SchemaParseError, UnresolvedType, MissingImport, and UnsupportedFeature.
// Grounded on internal/errors/errors.go (teacher)'s marker-interface error
// pattern, applied here to the four compile-time kinds instead of the
// teacher's RequiredNotSet/InvalidUTF8 runtime kinds.
package errs

import (
	"errors"
	"fmt"
)

// Position locates an error within a source file.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// SchemaParseError reports malformed .proto source.
type SchemaParseError struct {
	Pos     Position
	Message string
}

func (e *SchemaParseError) Error() string {
	return fmt.Sprintf("%s: schema parse error: %s", e.Pos, e.Message)
}

func (e *SchemaParseError) SchemaParse() bool { return true }

func NewSchemaParseError(pos Position, format string, args ...any) *SchemaParseError {
	return &SchemaParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// UnresolvedType reports a message/enum reference that could not be
// resolved. Per spec §4.5 it must name the type, the source file, and the
// list of imports — never an opaque context-object identity.
type UnresolvedType struct {
	TypeName string
	File     string
	Imports  []string
}

func (e *UnresolvedType) Error() string {
	return fmt.Sprintf("%s: cannot resolve type %q (imports: %v)", e.File, e.TypeName, e.Imports)
}

func (e *UnresolvedType) UnresolvedTypeError() bool { return true }

// MissingImport reports an import statement with no matching source file.
// Per spec §4.5 the suggestion must be platform-agnostic ("use forward
// slashes").
type MissingImport struct {
	ImportPath string
	File       string
}

func (e *MissingImport) Error() string {
	return fmt.Sprintf("%s: missing import %q (use forward slashes in import paths)", e.File, e.ImportPath)
}

func (e *MissingImport) MissingImportError() bool { return true }

// UnsupportedFeature reports use of map<>, proto2 groups, services, or
// extensions, all explicitly out of scope (spec §1, §6).
type UnsupportedFeature struct {
	Feature string
	Pos     Position
}

func (e *UnsupportedFeature) Error() string {
	return fmt.Sprintf("%s: %s not supported", e.Pos, e.Feature)
}

func (e *UnsupportedFeature) UnsupportedFeatureError() bool { return true }

func NewUnsupportedFeature(pos Position, feature string) *UnsupportedFeature {
	return &UnsupportedFeature{Pos: pos, Feature: feature}
}

// IsSchemaParseError, IsUnresolvedType, IsMissingImport, and
// IsUnsupportedFeature let callers discriminate a wrapped error's kind
// without a type assertion.
func IsSchemaParseError(err error) bool {
	var e interface{ SchemaParse() bool }
	return errors.As(err, &e) && e.SchemaParse()
}

func IsUnresolvedType(err error) bool {
	var e interface{ UnresolvedTypeError() bool }
	return errors.As(err, &e) && e.UnresolvedTypeError()
}

func IsMissingImport(err error) bool {
	var e interface{ MissingImportError() bool }
	return errors.As(err, &e) && e.MissingImportError()
}

func IsUnsupportedFeature(err error) bool {
	var e interface{ UnsupportedFeatureError() bool }
	return errors.As(err, &e) && e.UnsupportedFeatureError()
}
