package gen

import "sort"

// fileBuilder accumulates one generated file's body text plus the set of
// package imports it ends up needing, so the package clause and import
// block can be rendered last, after every field/case has had a chance to
// pull in a foreign model/schema/parser/writer package.
type fileBuilder struct {
	body    Source
	imports map[string]string // alias -> import path
}

func newFileBuilder() *fileBuilder {
	return &fileBuilder{imports: map[string]string{}}
}

func (b *fileBuilder) P(v ...interface{}) { b.body.P(v...) }

// importRuntime records an unaliased runtime/stdlib import.
func (b *fileBuilder) importRuntime(path string) {
	b.imports[path] = path
}

// importForeign records an aliased cross-package import for a foreignImport
// that isn't SameFile.
func (b *fileBuilder) importForeign(fi foreignImport) {
	if fi.SameFile {
		return
	}
	b.imports[fi.Alias] = fi.ImportPath
}

// render assembles the final file: package clause, sorted import block,
// then the accumulated body.
func (b *fileBuilder) render(pkgName string) []byte {
	var out Source
	out.P("package ", pkgName)
	out.P()
	if len(b.imports) > 0 {
		out.P("import (")
		aliases := make([]string, 0, len(b.imports))
		for a := range b.imports {
			aliases = append(aliases, a)
		}
		sort.Strings(aliases)
		for _, a := range aliases {
			path := b.imports[a]
			if a == path {
				out.P("\t\"", path, "\"")
			} else {
				out.P("\t", a, " \"", path, "\"")
			}
		}
		out.P(")")
		out.P()
	}
	out.P(string(b.body.Bytes()))
	return out.Bytes()
}
