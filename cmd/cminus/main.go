// Command cminus compiles one source file to tiny-machine assembly.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/trace"

	"github.com/urfave/cli/v2"

	"github.com/ChandlerJayCalkins/cminus/internal/ast"
	"github.com/ChandlerJayCalkins/cminus/internal/codegen"
	"github.com/ChandlerJayCalkins/cminus/internal/config"
	"github.com/ChandlerJayCalkins/cminus/internal/diag"
	"github.com/ChandlerJayCalkins/cminus/internal/driverutil"
	"github.com/ChandlerJayCalkins/cminus/internal/parser"
	"github.com/ChandlerJayCalkins/cminus/internal/scanner"
	"github.com/ChandlerJayCalkins/cminus/internal/sema"
)

func main() {
	app := &cli.App{
		Name:      "cminus",
		Usage:     "compile a C-Minus source file to tiny-machine assembly",
		ArgsUsage: "<source-file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "d", Usage: "enable parser debug trace"},
			&cli.BoolFlag{Name: "D", Usage: "enable symbol-table debug trace"},
			&cli.BoolFlag{Name: "p", Usage: "print the AST after parsing"},
			&cli.BoolFlag{Name: "P", Usage: "print the typed AST if error count is zero"},
			&cli.BoolFlag{Name: "M", Usage: "print the typed+memory AST if error count is zero"},
			&cli.StringFlag{Name: "color", Value: "auto", Usage: "colorize diagnostics: auto, always, never"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("ERROR(ARGLIST): expecting exactly one source file", 1)
	}
	sourcePath := c.Args().First()

	var colorMode config.ColorMode
	if err := colorMode.UnmarshalText([]byte(c.String("color"))); err != nil {
		return cli.Exit(err, 1)
	}
	useColor := colorMode == config.ColorAlways
	if colorMode == config.ColorAuto {
		if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			useColor = true
		}
	}

	sink := diag.NewSink(os.Stderr, useColor)

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		sink.TaggedError("ARGLIST", "source file %q could not be opened", sourcePath)
		sink.Summary()
		return cli.Exit("", 1)
	}

	traceFlags := config.NewBitMask[config.TraceFlag]()
	traceFlags.Set(config.TraceScanner, c.Bool("d"))
	traceFlags.Set(config.TraceParse, c.Bool("d"))
	traceFlags.Set(config.TraceSymtab, c.Bool("D"))

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	_, task := trace.NewTask(c.Context, "Compile")
	defer task.End()

	tree := ast.NewTree()
	scan := scanner.New(string(src), log, traceFlags.Enabled(config.TraceScanner))
	p := parser.New(scan, tree, sink, log, traceFlags.Enabled(config.TraceParse))
	root := p.ParseProgram()

	if c.Bool("p") {
		ast.Fprint(os.Stdout, tree, root, false, false)
	}

	analyzer := sema.New(tree, sink,
		sema.WithLogger(log),
		sema.WithSymtabTrace(traceFlags.Enabled(config.TraceSymtab)),
	)
	analyzer.Analyze(root)

	if c.Bool("P") && sink.Errors() == 0 {
		ast.Fprint(os.Stdout, tree, root, true, false)
	}
	if c.Bool("M") && sink.Errors() == 0 {
		ast.Fprint(os.Stdout, tree, root, true, true)
		fmt.Printf("Offset for end of global space: %d\n", analyzer.GlobalFrameSize())
	}

	sink.Summary()

	if sink.Errors() == 0 {
		baseName := driverutil.OutputBaseName(sourcePath)
		out, err := os.Create(baseName + ".tm")
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer out.Close()

		emitter := codegen.New(tree, out, analyzer.GlobalFrameSize())
		emitter.Emit(root, sourcePath)
	}

	return nil
}
