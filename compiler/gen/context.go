package gen

import (
	"strings"

	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/compiler/resolver"
)

// MessageContext bundles everything an emitter needs to generate one
// message's four artifacts: the message itself, the file it was declared
// in (for package/java_package), the per-file resolution view (for
// foreign type lookups), and the global table (to look up a referenced
// type's declaring package for import-path computation).
type MessageContext struct {
	Msg           *ast.MessageDef
	File          *ast.File
	FC            *resolver.FileContext
	Global        *resolver.GlobalTable
	BasePackage   string // --base-package
	ProtoPackage  string // effective proto package (file.Package)
}

// foreignImport resolves a field's TypeName (already fully qualified by
// compiler/resolver) to the information needed to reference it from
// another role-package: its unqualified Go type name, and — if it is
// declared in a different proto package than the message being emitted —
// the import path and alias to reach it.
type foreignImport struct {
	GoType   string
	SameFile bool // same proto package as the emitting message
	ImportPath string
	Alias      string
}

// EffectivePackage returns the output package of the file this message
// was declared in: its own pbj.java_package override if set, else
// BasePackage + "." + ProtoPackage.
func (mc *MessageContext) EffectivePackage() string {
	return effectivePackage(mc.BasePackage, mc.ProtoPackage, mc.File.JavaPackage)
}

func (mc *MessageContext) resolveForeign(fqn string, r role) foreignImport {
	sym, ok := mc.Global.Lookup(fqn)
	pkg := mc.ProtoPackage
	javaPkg := ""
	local := fqn
	if ok {
		pkg = sym.Package
		javaPkg = sym.JavaPackage
		local = sym.FullyQualified
		if pkg != "" {
			local = strings.TrimPrefix(local, pkg+".")
		}
	}
	fi := foreignImport{GoType: goTypeName(local)}
	if pkg == mc.ProtoPackage {
		fi.SameFile = true
		return fi
	}
	effective := effectivePackage(mc.BasePackage, pkg, javaPkg)
	fi.ImportPath = pkgPath(effective, r)
	fi.Alias = pkgAlias(effective, r)
	return fi
}

// qualifiedType returns the Go expression referring to a foreign type
// (e.g. "examplefruitmodel.Apple" or "Apple" if declared alongside the
// emitting message).
func (fi foreignImport) qualifiedType() string {
	if fi.SameFile {
		return fi.GoType
	}
	return fi.Alias + "." + fi.GoType
}

// qualifiedFunc returns the Go expression referring to a prefix+GoType
// function declared alongside fi's type (e.g. "ParseApple" or
// "examplefruitparsers.ParseApple").
func (fi foreignImport) qualifiedFunc(prefix string) string {
	if fi.SameFile {
		return prefix + fi.GoType
	}
	return fi.Alias + "." + prefix + fi.GoType
}
