package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyplus/internal/diagfmt"
	"pyplus/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.py>",
	Short: "Tokenize a Python source file",
	Long:  "Tokenize a Python source file and print the token stream, indentation tokens included",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, globals.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	result.Bag.Sort()
	if err := printDiagnostics(os.Stderr, result.Bag, result.FileSet, diagPrintOptions{color: globals.color}); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errFailed
	}
	return nil
}
