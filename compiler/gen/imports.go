package gen

import "strings"

// role names the four sub-packages spec §6 requires per message
// ("in their own sub-packages (.model, .schemas, .parsers, .writers)").
type role string

const (
	roleModel   role = "model"
	roleSchema  role = "schemas"
	roleParser  role = "parsers"
	roleWriter  role = "writers"
)

// effectivePackage computes a declaring file's output package: its own
// pbj.java_package override if set, else basePackage + "." + its declared
// proto package (spec §6 CLI surface, --base-package) — the same rule
// resolver.FileContext.JavaPackage applies, restated here over a Symbol's
// (Package, JavaPackage) pair so gen never needs the ast.File back.
func effectivePackage(basePackage string, protoPackage string, javaPackageOverride string) string {
	if javaPackageOverride != "" {
		return javaPackageOverride
	}
	if basePackage == "" {
		return protoPackage
	}
	if protoPackage == "" {
		return basePackage
	}
	return basePackage + "." + protoPackage
}

// pkgPath computes the Go import path for (effectivePackage, r): the
// effective output package's dotted segments joined with the role's
// sub-package name (spec §6 "in their own sub-packages (.model, .schemas,
// .parsers, .writers)"). --base-package does double duty as both the
// java_package-style prefix and the Go module prefix generated code is
// rooted at — see the compiler/gen entry in DESIGN.md.
func pkgPath(effectivePackage string, r role) string {
	var segs []string
	if effectivePackage != "" {
		segs = append(segs, strings.Split(effectivePackage, ".")...)
	}
	segs = append(segs, string(r))
	return strings.Join(segs, "/")
}

// pkgAlias derives a unique, collision-resistant Go import alias for a
// foreign (effectivePackage, r) pair: the dotted package flattened,
// followed by the role name, e.g. "example.fruit" + model ->
// "examplefruitmodel".
func pkgAlias(effectivePackage string, r role) string {
	flat := strings.ReplaceAll(effectivePackage, ".", "")
	return flat + string(r)
}

// dirPath mirrors pkgPath but as an OS directory path relative to the
// output root (spec §6 "files are laid out in a directory structure
// mirroring the declared (or overridden) package dotted path").
func dirPath(effectivePackage string, r role) string {
	return pkgPath(effectivePackage, r)
}
