// Command pbjc is the PBJ schema compiler's command-line entry point
// (spec §6 "CLI surface"): one or more source directories in, a generated
// Go source tree out.
//
// Grounded on kryptco-kr's single-binary-many-flags CLI idiom
// (src/kr/kr.go's cli.App/cli.Flag/Action shape, here generalized from
// that package's v1 API and multi-subcommand surface to
// github.com/urfave/cli/v2 and a single Action, since pbjc has no
// subcommands) and src/krd/main.go's go-logging setup
// (logging.SetupLogging, here inlined without the syslog branch a
// foreground compiler invocation has no use for).
package main

import (
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"

	"github.com/pbj-lang/pbj/compiler/driver"
	"github.com/pbj-lang/pbj/compiler/errs"
)

const (
	exitSuccess      = 0
	exitCompileError = 1
	exitIOError      = 2
)

var log = logging.MustGetLogger("pbjc")

var stderrFormat = logging.MustStringFormatter(
	`%{color}%{level:.4s}%{color:reset} %{message}`,
)

func setupLogging(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)
	leveled := logging.AddModuleLevel(backend)
	level := logging.WARNING
	if verbose {
		level = logging.INFO
	}
	leveled.SetLevel(level, "pbjc")
	logging.SetBackend(leveled)
}

// cliLogger adapts the package logger to driver.Logger.
type cliLogger struct{}

func (cliLogger) Infof(format string, args ...interface{})    { log.Infof(format, args...) }
func (cliLogger) Warningf(format string, args ...interface{}) { log.Warningf(format, args...) }

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	app := &cli.App{
		Name:      "pbjc",
		Usage:     "compile Protobuf 3 schemas into Go model/schema/parser/writer sources",
		UsageText: "pbjc [options] <source-dir>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Usage:    "output root directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "base-package",
				Usage: "prefix prepended to each file's package when it sets no pbj.java_package",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every generated file, not just warnings",
			},
		},
	}

	exitCode := exitSuccess
	app.Action = func(c *cli.Context) error {
		setupLogging(c.Bool("verbose"))

		sourceDirs := c.Args().Slice()
		if len(sourceDirs) == 0 {
			exitCode = exitCompileError
			return fmt.Errorf("at least one source directory is required")
		}

		opts := driver.Options{
			SourceDirs:  sourceDirs,
			OutDir:      c.String("out"),
			BasePackage: c.String("base-package"),
		}

		err := driver.Run(opts, cliLogger{})
		if err == nil {
			return nil
		}
		exitCode = classifyError(err)
		return err
	}

	if err := app.Run(args); err != nil {
		log.Errorf("%s", err)
		if exitCode == exitSuccess {
			exitCode = exitCompileError
		}
	}
	return exitCode
}

// classifyError maps a driver.Run failure to spec §6's exit codes: 2 for
// an I/O failure (reading sources, creating directories, writing
// generated files), 1 for every compile-time error (malformed schema,
// unresolved type, missing import, unsupported feature).
func classifyError(err error) int {
	if driver.IsIOFailure(err) {
		return exitIOError
	}
	if errs.IsSchemaParseError(err) || errs.IsUnresolvedType(err) ||
		errs.IsMissingImport(err) || errs.IsUnsupportedFeature(err) {
		return exitCompileError
	}
	return exitCompileError
}
