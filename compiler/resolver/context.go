package resolver

import (
	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/compiler/errs"
	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

// FileContext is the per-file resolution view spec §4.5 describes:
// "unqualified references are first looked up under the file's own
// package, then under each imported file's package, in declaration
// order."
type FileContext struct {
	global      *GlobalTable
	file        *ast.File
	importFiles []*ast.File // resolved import targets, in declaration order
}

// NewFileContext builds the per-file view for f, resolving each of its
// imports to the ast.File it designates. allFiles is every file the
// compiler is processing this run (spec §4.5 "a missing import halts with
// an error naming the missing file").
func NewFileContext(global *GlobalTable, f *ast.File, allFiles []*ast.File) (*FileContext, error) {
	if !global.Frozen() {
		panic("resolver: FileContext built from an unfrozen GlobalTable")
	}
	fc := &FileContext{global: global, file: f}
	for _, imp := range f.Imports {
		target, err := ResolveImportedFile(allFiles, f.Path, imp.Path)
		if err != nil {
			return nil, err
		}
		fc.importFiles = append(fc.importFiles, target)
	}
	return fc, nil
}

// Resolve finds the fully-qualified symbol a reference (as written in a
// field's type position) designates, per spec §4.5's lookup order: own
// package first, then each import's package in declaration order. If
// resolution fails, the returned error names the type, the source file,
// and the list of imports (never an opaque context-object identity).
func (fc *FileContext) Resolve(ref string) (Symbol, error) {
	candidates := fc.candidateNames(ref)
	for _, c := range candidates {
		if s, ok := fc.global.Lookup(c); ok {
			return s, nil
		}
	}
	imports := make([]string, len(fc.file.Imports))
	for i, imp := range fc.file.Imports {
		imports[i] = imp.Path
	}
	return Symbol{}, &errs.UnresolvedType{TypeName: ref, File: fc.file.Path, Imports: imports}
}

// candidateNames enumerates the fully-qualified names ref could resolve
// to, own package first then each import's package in order, plus ref
// itself (for an already fully-qualified or no-package reference).
func (fc *FileContext) candidateNames(ref string) []string {
	var out []string
	if fc.file.Package != "" {
		out = append(out, qualify(fc.file.Package, ref))
	}
	for _, imp := range fc.importFiles {
		if imp.Package != "" {
			out = append(out, qualify(imp.Package, ref))
		}
	}
	out = append(out, ref)
	return out
}

// ResolveFieldTypes walks every field of msg (and its nested messages)
// resolving placeholder TypeMessage references left by compiler/parser
// into either TypeMessage or TypeEnum with a fully-qualified TypeName,
// per spec §3 "Symbol table" (kind ∈ {message, enum}).
func (fc *FileContext) ResolveFieldTypes(msg *ast.MessageDef) error {
	for i := range msg.Fields {
		field := &msg.Fields[i]
		if field.Single != nil {
			if err := fc.resolveOne(&field.Single.Def); err != nil {
				return err
			}
		}
		if field.OneOf != nil {
			for j := range field.OneOf.Variants {
				if err := fc.resolveOne(&field.OneOf.Variants[j].Def); err != nil {
					return err
				}
			}
		}
	}
	for _, nested := range msg.Nested {
		if err := fc.ResolveFieldTypes(nested); err != nil {
			return err
		}
	}
	return nil
}

func (fc *FileContext) resolveOne(def *ast.FieldDefinition) error {
	if def.Type != pbjwire.TypeMessage || def.TypeName == "" {
		return nil
	}
	sym, err := fc.Resolve(def.TypeName)
	if err != nil {
		return err
	}
	def.TypeName = sym.FullyQualified
	if sym.Kind == KindEnum {
		def.Type = pbjwire.TypeEnum
	} else {
		def.Type = pbjwire.TypeMessage
	}
	return nil
}

// JavaPackage returns the effective output package for this file: its own
// pbj.java_package override if set, else basePackage + "." + file's
// declared proto package (spec §6 CLI surface, --base-package).
func (fc *FileContext) JavaPackage(basePackage string) string {
	if fc.file.JavaPackage != "" {
		return fc.file.JavaPackage
	}
	if basePackage == "" {
		return fc.file.Package
	}
	if fc.file.Package == "" {
		return basePackage
	}
	return basePackage + "." + fc.file.Package
}
