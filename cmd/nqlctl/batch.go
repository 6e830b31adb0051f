package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gosuri/uilive"
	"go.uber.org/multierr"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/diag"
	"github.com/nql-lang/nqlsem/semantic"
)

// runBatch implements SPEC_FULL.md §6's batch driver: analyze every AST in
// a JSONL file against one catalog, showing live pass/fail progress with
// the teacher's own gosuri/uilive, and aggregate every failure's
// diagnostic with multierr rather than stopping at the first one.
func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	astsPath := fs.String("asts", "", "path to a JSONL file of AST nodes, one per line")
	catPath := fs.String("catalog", "", "path to a YAML catalog fixture")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *astsPath == "" || *catPath == "" {
		return fmt.Errorf("batch requires -asts and -catalog")
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

	f, err := os.Open(*astsPath)
	if err != nil {
		return fmt.Errorf("opening AST batch file: %w", err)
	}
	defer f.Close()

	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	var diags diag.Diagnostics
	var pass, fail, line int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		var root ast.Node
		if err := json.Unmarshal([]byte(text), &root); err != nil {
			fail++
			diags.Append(fmt.Errorf("line %d: parsing AST JSON: %w", line, err))
			fmt.Fprintf(writer, "analyzed %d/%d (%d ok, %d failed)\n", pass+fail, line, pass, fail)
			continue
		}
		if _, err := analyzer.Analyze(&root); err != nil {
			fail++
			diags.Append(fmt.Errorf("line %d: %w", line, err))
		} else {
			pass++
		}
		fmt.Fprintf(writer, "analyzed %d lines (%d ok, %d failed)\n", pass+fail, pass, fail)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading AST batch file: %w", err)
	}
	writer.Stop()

	fmt.Printf("done: %d ok, %d failed\n", pass, fail)
	if diags.Err() != nil {
		fmt.Println("diagnostics:")
		for _, e := range multierr.Errors(diags.Err()) {
			fmt.Println(" -", e)
		}
		return fmt.Errorf("%d of %d analyses failed", fail, pass+fail)
	}
	return nil
}
