package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhamidi/gramq/config"
	"github.com/dhamidi/gramq/grammar"
)

func loadGrammar(path, start string) (*grammar.Grammar, error) {
	if path == "" {
		return nil, errors.New("no grammar given: use --grammar or set grammar in " + config.DefaultPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}

	var doc *grammar.Document
	if filepath.Ext(path) == ".ebnf" {
		if start == "" {
			return nil, errors.New("--start is required for EBNF grammars")
		}
		doc, err = grammar.LoadEBNF(path, data, start)
	} else {
		doc, err = grammar.Decode(data)
		if err == nil && start != "" {
			doc.Root = start
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}

	g, err := grammar.Compile(doc)
	if err != nil {
		return nil, fmt.Errorf("compile grammar: %w", err)
	}
	return g, nil
}

// readInput reads a file, or standard input for "" and "-".
func readInput(stdin io.Reader, filename string) (string, error) {
	if filename == "" || filename == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func printErrors(w io.Writer, err error) {
	var multi interface{ Unwrap() []error }
	if errors.As(err, &multi) {
		for _, e := range multi.Unwrap() {
			fmt.Fprintln(w, e)
		}
		return
	}
	fmt.Fprintln(w, err)
}
