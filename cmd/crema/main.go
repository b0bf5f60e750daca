// Command crema drives the compiler core end to end: lex, parse, analyze,
// emit. Flag surface and the olive.NewCLI/ParseArgs wiring pattern are
// grounded on the teacher's cmd/execute.go; this driver has no
// subcommands, only the flat flag set spec.md §6 names.
package main

import (
	"fmt"
	"os"

	"github.com/ComedicChimera/olive"

	"github.com/ainfosec/crema/internal/analyzer"
	"github.com/ainfosec/crema/internal/astprint"
	"github.com/ainfosec/crema/internal/diag"
	"github.com/ainfosec/crema/internal/emit"
	"github.com/ainfosec/crema/internal/parser"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli := olive.NewCLI("crema", "crema compiles Crema source to LLVM IR text", false)
	cli.AddStringArg("file", "f", "the input source file", true)
	cli.AddFlag("parse-only", "p", "stop after parsing and pretty-printing the AST")
	cli.AddFlag("sem-only", "s", "stop after semantic analysis")
	cli.AddStringArg("emit-ir", "S", "write LLVM IR text to PATH", false)
	cli.AddStringArg("output", "o", "the output program name", false)
	cli.AddFlag("verbose", "v", "dump the analyzed AST before emission")

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		diag.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	srcPath, _ := result.Arguments["file"].(string)
	src, err := os.ReadFile(srcPath)
	if err != nil {
		diag.PrintErrorMessage("File Error", err)
		return 1
	}

	root, err := parser.Parse(string(src))
	if err != nil {
		diag.PrintErrorMessage("Parse Error", err)
		return 1
	}

	if result.HasFlag("parse-only") {
		astprint.Block(os.Stdout, root)
		return 0
	}

	sink := diag.NewSink()
	a := analyzer.New(sink)
	ok := a.Analyze(root)
	sink.Display()

	if result.HasFlag("verbose") {
		astprint.Block(os.Stdout, root)
	}

	if !ok {
		return 1
	}
	if result.HasFlag("sem-only") {
		return 0
	}

	mod := emit.New().Emit(root)

	outPath := "out.ll"
	if v, ok := result.Arguments["emit-ir"].(string); ok && v != "" {
		outPath = v
	} else if v, ok := result.Arguments["output"].(string); ok && v != "" {
		outPath = v + ".ll"
	}

	f, err := os.Create(outPath)
	if err != nil {
		diag.PrintErrorMessage("Output Error", err)
		return 1
	}
	defer f.Close()

	if _, err := fmt.Fprint(f, mod); err != nil {
		diag.PrintErrorMessage("Output Error", err)
		return 1
	}

	return 0
}
