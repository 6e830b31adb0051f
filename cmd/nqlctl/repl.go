package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/semantic"
)

const replHistoryFile = ".nqlctl_history"

// runRepl implements the interactive loop named in SPEC_FULL.md §6: one
// JSON AST object per line, analyzed immediately against one catalog,
// grounded on the teacher's own use of peterh/liner for its zq shell.
func runRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	catPath := fs.String("catalog", "", "path to a YAML catalog fixture")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *catPath == "" {
		return fmt.Errorf("repl requires -catalog")
	}
	cat, err := loadCatalog(*catPath)
	if err != nil {
		return err
	}
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	analyzer := semantic.NewAnalyzer(cat, log)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	if f, err := os.Open(replHistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(replHistoryFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("nqlctl repl: paste one JSON AST node per line; Ctrl-D to quit.")
	for {
		input, err := line.Prompt("nql> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		var root ast.Node
		if err := json.Unmarshal([]byte(input), &root); err != nil {
			fmt.Println("parse error:", err)
			continue
		}
		tree, err := analyzer.Analyze(&root)
		if err != nil {
			fmt.Println("analysis error:", err)
			continue
		}
		if tree == nil {
			fmt.Printf("%s: classified only, no QBT\n", semantic.Classify(&root))
			continue
		}
		if err := printTree(tree); err != nil {
			fmt.Println("print error:", err)
		}
	}
}
