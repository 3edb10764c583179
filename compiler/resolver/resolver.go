// Package resolver implements the two-stage symbol resolution of spec
// §4.5: a global pass that indexes every message/enum across every input
// file by fully-qualified name, and a per-file context that resolves the
// unqualified or partially-qualified references used within one file.
//
// Grounded on internal/filedesc (teacher)'s frozen, process-wide registry
// shape and other_examples/bdb3718e (axonops schema registry
// resolver.go)'s global/per-file split.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/compiler/errs"
)

// Kind discriminates a Symbol between a message and an enum declaration
// (spec §3 "Symbol table").
type Kind int

const (
	KindMessage Kind = iota
	KindEnum
)

// Symbol is one entry of the global symbol table: fully-qualified type
// name → (declaring file, unqualified name, kind, optional java_package
// override).
type Symbol struct {
	FullyQualified string
	File           string
	Package        string // the declaring file's proto package, "" if none
	Unqualified    string
	Kind           Kind
	JavaPackage    string // "" if the declaring file set none
	Message        *ast.MessageDef // non-nil iff Kind == KindMessage
	Enum           *ast.EnumDef    // non-nil iff Kind == KindEnum
}

// GlobalTable is the process-wide, write-once symbol table populated by
// BuildGlobal and frozen before any emission begins (spec §3: "populated
// in a first pass over every input file; frozen before emission begins").
type GlobalTable struct {
	byName map[string]Symbol
	frozen bool
}

// BuildGlobal runs the global pass over every parsed input file, indexing
// every top-level and nested message/enum by its fully-qualified name
// (file's package + dotted nested path).
func BuildGlobal(files []*ast.File) (*GlobalTable, error) {
	g := &GlobalTable{byName: map[string]Symbol{}}
	for _, f := range files {
		if err := g.indexFile(f); err != nil {
			return nil, err
		}
	}
	g.frozen = true
	return g, nil
}

func (g *GlobalTable) indexFile(f *ast.File) error {
	for _, m := range f.Messages {
		if err := g.indexMessage(f, m); err != nil {
			return err
		}
	}
	for _, e := range f.Enums {
		g.put(Symbol{
			FullyQualified: qualify(f.Package, e.Name),
			File:           f.Path,
			Package:        f.Package,
			Unqualified:    e.Name,
			Kind:           KindEnum,
			JavaPackage:    f.JavaPackage,
			Enum:           e,
		})
	}
	return nil
}

func (g *GlobalTable) indexMessage(f *ast.File, m *ast.MessageDef) error {
	fqn := qualify(f.Package, m.QualifiedName())
	g.put(Symbol{
		FullyQualified: fqn,
		File:           f.Path,
		Package:        f.Package,
		Unqualified:    m.Name,
		Kind:           KindMessage,
		JavaPackage:    f.JavaPackage,
		Message:        m,
	})
	for _, n := range m.Nested {
		if err := g.indexMessage(f, n); err != nil {
			return err
		}
	}
	for _, e := range m.NestedEnum {
		g.put(Symbol{
			FullyQualified: qualify(f.Package, m.QualifiedName()+"."+e.Name),
			File:           f.Path,
			Package:        f.Package,
			Unqualified:    e.Name,
			Kind:           KindEnum,
			JavaPackage:    f.JavaPackage,
			Enum:           e,
		})
	}
	return nil
}

func (g *GlobalTable) put(s Symbol) {
	g.byName[s.FullyQualified] = s
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// Lookup finds a symbol by its exact fully-qualified name.
func (g *GlobalTable) Lookup(fqn string) (Symbol, bool) {
	s, ok := g.byName[fqn]
	return s, ok
}

// Frozen reports whether the table has completed its global pass; every
// FileContext built from a GlobalTable requires Frozen() to be true.
func (g *GlobalTable) Frozen() bool { return g.frozen }

// ResolveImportedFile maps an import path to the ast.File it designates,
// by matching normalized paths (spec §4.5 "File-name normalization").
// A file matches when its path equals the import path or ends with "/"
// followed by it, so a file found under a source directory matches an
// import written relative to that directory. Case-insensitive matching is
// accepted.
func ResolveImportedFile(files []*ast.File, importerPath, importPath string) (*ast.File, error) {
	norm := normalizePath(importPath)
	for _, f := range files {
		fp := normalizePath(f.Path)
		if fp == norm || strings.EqualFold(fp, norm) || strings.HasSuffix(fp, "/"+norm) {
			return f, nil
		}
	}
	return nil, &errs.MissingImport{ImportPath: importPath, File: importerPath}
}

// normalizePath always renders forward slashes, on every host OS: proto
// import paths are slash-separated string literals in source (spec §4.5),
// not OS filesystem paths, so there is no Windows-backslash case to
// preserve — filepath.ToSlash here is a no-op off Windows and the intended
// behavior on it.
func normalizePath(p string) string {
	p = strings.Trim(p, `"'`)
	p = strings.ReplaceAll(p, "\\", "/")
	return filepath.ToSlash(p)
}
