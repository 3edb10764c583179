// Package driver implements the compiler driver of spec §4.7: discover
// every .proto file under the source directories, run the global and
// per-file resolution passes, invoke all four emitters for every
// top-level message (and the enum emitter for every top-level enum), and
// write the results under the output root.
//
// Grounded on compiler/main.go's top-level main() phase sequencing
// (teacher: WrapTypes -> SetPackageNames -> BuildTypeNameMap ->
// GenerateAllFiles), adapted to PBJ's own phases (global resolve ->
// per-file resolve -> per-message emit -> write tree), and on
// internal/cmd/generate-protos/main.go's filepath.Walk-based .proto
// discovery (teacher).
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pbj-lang/pbj/compiler/ast"
	"github.com/pbj-lang/pbj/compiler/gen"
	"github.com/pbj-lang/pbj/compiler/parser"
	"github.com/pbj-lang/pbj/compiler/resolver"
	"github.com/pbj-lang/pbj/runtime/pbjwire"
)

// Options is the driver's input, matching spec §6's minimum CLI surface.
type Options struct {
	SourceDirs  []string
	OutDir      string
	BasePackage string
}

// Logger is the minimal leveled-logging surface the driver needs; cmd/pbjc
// supplies one backed by github.com/op/go-logging.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}

// Run executes one compile: discover sources, resolve symbols, emit every
// message and top-level enum concurrently (spec §5 "may be run in
// parallel per message"), and write the generated tree. A nil Logger
// disables progress/warning output.
func Run(opts Options, log Logger) error {
	if log == nil {
		log = nopLogger{}
	}

	paths, err := discoverProtoFiles(opts.SourceDirs)
	if err != nil {
		return &IOFailure{Err: err}
	}
	if len(paths) == 0 {
		return &IOFailure{Err: fmt.Errorf("no .proto files found under %v", opts.SourceDirs)}
	}

	files := make([]*ast.File, 0, len(paths))
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return &IOFailure{Err: err}
		}
		f, diag, err := parser.Parse(p, string(src))
		if err != nil {
			return err
		}
		for _, w := range diag.Warnings {
			log.Warningf("%s: %s", p, w)
		}
		files = append(files, f)
	}

	global, err := resolver.BuildGlobal(files)
	if err != nil {
		return err
	}

	type messageUnit struct {
		file *ast.File
		fc   *resolver.FileContext
		msg  *ast.MessageDef
	}
	type enumUnit struct {
		file *ast.File
		enum *ast.EnumDef
	}
	var messageUnits []messageUnit
	var enumUnits []enumUnit

	for _, f := range files {
		fc, err := resolver.NewFileContext(global, f, files)
		if err != nil {
			return err
		}
		for _, m := range f.Messages {
			if err := fc.ResolveFieldTypes(m); err != nil {
				return err
			}
			if err := validateMessage(m); err != nil {
				return err
			}
			messageUnits = append(messageUnits, messageUnit{file: f, fc: fc, msg: m})
		}
		for _, e := range f.Enums {
			enumUnits = append(enumUnits, enumUnit{file: f, enum: e})
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, u := range messageUnits {
		u := u
		g.Go(func() error {
			mc := &gen.MessageContext{
				Msg:          u.msg,
				File:         u.file,
				FC:           u.fc,
				Global:       global,
				BasePackage:  opts.BasePackage,
				ProtoPackage: u.file.Package,
			}
			if err := writeMessageArtifacts(opts.OutDir, mc); err != nil {
				return fmt.Errorf("message %s (file %s): %w", u.msg.QualifiedName(), u.file.Path, err)
			}
			log.Infof("generated message %s", u.msg.QualifiedName())
			return nil
		})
	}
	for _, u := range enumUnits {
		u := u
		g.Go(func() error {
			if err := writeEnumArtifact(opts.OutDir, opts.BasePackage, u.file, u.enum); err != nil {
				return fmt.Errorf("enum %s (file %s): %w", u.enum.Name, u.file.Path, err)
			}
			log.Infof("generated enum %s", u.enum.Name)
			return nil
		})
	}

	return g.Wait()
}

// validateMessage checks spec §3's MessageSchema and FieldDefinition
// invariants (field-number uniqueness, nested-name uniqueness, no field
// both repeated and part of a oneof) across a top-level message and its
// full nested tree, before any emitter runs.
func validateMessage(m *ast.MessageDef) error {
	if err := m.Validate(); err != nil {
		return err
	}
	byName := map[string]ast.FieldDefinition{}
	for _, f := range m.Fields {
		switch {
		case f.Single != nil:
			if err := f.Single.Def.Validate(); err != nil {
				return err
			}
			byName[f.Single.Def.Name] = f.Single.Def
		case f.OneOf != nil:
			for _, v := range f.OneOf.Variants {
				if err := v.Def.Validate(); err != nil {
					return err
				}
			}
		}
	}
	if m.Comparable != nil {
		if err := validateComparable(m, byName); err != nil {
			return err
		}
	}
	for _, n := range m.Nested {
		if err := validateMessage(n); err != nil {
			return err
		}
	}
	return nil
}

// validateComparable checks a `pbj.comparable` directive's field list
// against m's own (non-oneOf) fields: every name must refer to a field
// of m ("unknown field names in the directive fail the compile", spec
// §4.6), and message-typed fields are rejected outright — a pointer has
// no content-level total order the generated CompareTo could use, unlike
// every other field kind pbjruntime.Compare* already covers.
func validateComparable(m *ast.MessageDef, byName map[string]ast.FieldDefinition) error {
	for _, fname := range m.Comparable.Fields {
		def, ok := byName[fname]
		if !ok {
			return &ast.ValidationError{Field: m.Name, Message: "pbj.comparable names unknown field " + fname}
		}
		if def.Type == pbjwire.TypeMessage {
			return &ast.ValidationError{Field: m.Name, Message: "pbj.comparable field " + fname + " is message-typed and has no total order"}
		}
	}
	return nil
}

// discoverProtoFiles walks every source directory collecting .proto
// files, sorted for reproducible emission order.
func discoverProtoFiles(dirs []string) ([]string, error) {
	var out []string
	for _, d := range dirs {
		err := filepath.Walk(d, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if strings.HasSuffix(path, ".proto") {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func writeMessageArtifacts(outDir string, mc *gen.MessageContext) error {
	artifacts := []struct {
		role gen.OutputRole
		emit func() []byte
	}{
		{gen.ModelRole, func() []byte { return gen.EmitModel(mc) }},
		{gen.SchemaRole, func() []byte { return gen.EmitSchema(mc) }},
		{gen.ParserRole, func() []byte { return gen.EmitParser(mc) }},
		{gen.WriterRole, func() []byte { return gen.EmitWriter(mc) }},
	}
	name := gen.MessageFileName(mc.Msg.Name) + ".go"
	for _, a := range artifacts {
		dir := filepath.Join(outDir, filepath.FromSlash(mc.OutputDir(a.role)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOFailure{Err: err}
		}
		if err := writeGenerated(filepath.Join(dir, name), a.emit()); err != nil {
			return err
		}
	}
	return nil
}

func writeEnumArtifact(outDir, basePackage string, f *ast.File, e *ast.EnumDef) error {
	effective := gen.EffectivePackageOf(basePackage, f.Package, f.JavaPackage)
	dir := filepath.Join(outDir, filepath.FromSlash(gen.EnumOutputDir(effective)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOFailure{Err: err}
	}
	name := gen.EnumFileName(e.Name) + ".go"
	return writeGenerated(filepath.Join(dir, name), gen.EmitTopLevelEnumModel(e))
}

// writeGenerated writes data to path, with the written file guaranteed
// closed on every exit path (spec §5 "owned by their emitter and closed
// on scope exit with guaranteed release on every exit path").
func writeGenerated(path string, data []byte) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return &IOFailure{Err: ferr}
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = &IOFailure{Err: cerr}
		}
	}()
	if _, werr := f.Write(data); werr != nil {
		return &IOFailure{Err: werr}
	}
	return nil
}
