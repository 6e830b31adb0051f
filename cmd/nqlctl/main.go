// Command nqlctl is the ambient driver program named in SPEC_FULL.md §6: a
// thin CLI that exercises the analyzer end to end, grounded on the
// teacher's cmd/zed layout (one cmd/<tool>/ directory per binary, stdlib
// flag parsing, structured logging wired through zap).
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "repl":
		err = runRepl(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "nqlctl: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "nqlctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: nqlctl <command> [flags]

commands:
  analyze -ast <file.json> -catalog <fixture.yaml>   analyze one AST
  repl -catalog <fixture.yaml>                        interactive analysis loop
  batch -asts <file.jsonl> -catalog <fixture.yaml>    analyze a batch of ASTs`)
}
