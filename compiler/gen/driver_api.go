package gen

import "strings"

// OutputRole is the driver-facing equivalent of the package-private role
// type, exported so compiler/driver can ask where to write each of a
// message's four generated files without reaching into gen's internals.
type OutputRole int

const (
	ModelRole OutputRole = iota
	SchemaRole
	ParserRole
	WriterRole
)

func (r OutputRole) internal() role {
	switch r {
	case ModelRole:
		return roleModel
	case SchemaRole:
		return roleSchema
	case ParserRole:
		return roleParser
	default:
		return roleWriter
	}
}

// OutputDir returns the directory, relative to the --out root, that one of
// mc's four generated files belongs in (spec §6 "Generated-source
// placement": a directory structure mirroring the declared or overridden
// package dotted path, one sub-package per role).
func (mc *MessageContext) OutputDir(r OutputRole) string {
	return dirPath(mc.EffectivePackage(), r.internal())
}

// MessageFileName returns the base file name (no directory, no
// extension) for the single file a top-level message's nested tree is
// emitted into, e.g. "Outer" -> "outer".
func MessageFileName(topLevelName string) string {
	return strings.ToLower(topLevelName)
}

// EnumFileName returns the base file name for a top-level enum's lone
// .model file.
func EnumFileName(enumName string) string {
	return strings.ToLower(enumName)
}

// EffectivePackageOf mirrors MessageContext.EffectivePackage for a
// top-level enum, which carries no MessageContext of its own: the
// declaring file's pbj.java_package override if set, else basePackage +
// "." + its declared proto package.
func EffectivePackageOf(basePackage, protoPackage, javaPackageOverride string) string {
	return effectivePackage(basePackage, protoPackage, javaPackageOverride)
}

// EnumOutputDir returns the directory, relative to the --out root, a
// top-level enum's .model file belongs in.
func EnumOutputDir(effectivePackage string) string {
	return dirPath(effectivePackage, roleModel)
}
