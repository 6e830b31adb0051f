package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nql-lang/nqlsem/ast"
	"github.com/nql-lang/nqlsem/catalog"
	"github.com/nql-lang/nqlsem/qbt"
	"github.com/nql-lang/nqlsem/semantic"
)

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	astPath := fs.String("ast", "", "path to a JSON-encoded AST node")
	catPath := fs.String("catalog", "", "path to a YAML catalog fixture")
	verbose := fs.Bool("v", false, "emit debug-level dispatch trail to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *astPath == "" || *catPath == "" {
		return fmt.Errorf("analyze requires -ast and -catalog")
	}

	log, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	root, err := loadAST(*astPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(*catPath)
	if err != nil {
		return err
	}

	analyzer := semantic.NewAnalyzer(cat, log)
	tree, err := analyzer.Analyze(root)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if tree == nil {
		fmt.Printf("%s: classified only, no QBT\n", semantic.Classify(root))
		return nil
	}
	return printTree(tree)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func loadAST(path string) (*ast.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading AST file: %w", err)
	}
	var root ast.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing AST JSON: %w", err)
	}
	return &root, nil
}

func loadCatalog(path string) (catalog.Catalog, error) {
	cat, err := catalog.LoadFixtureFile(path)
	if err != nil {
		return nil, err
	}
	cached, err := catalog.NewCachedCatalog(cat, 256)
	if err != nil {
		return nil, fmt.Errorf("wrapping catalog in LRU cache: %w", err)
	}
	return cached, nil
}

func printTree(tree qbt.ParseTree) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(qbt.Describe(tree))
}
