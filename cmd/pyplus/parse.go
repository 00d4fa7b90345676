package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyplus/internal/diagfmt"
	"pyplus/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.py>",
	Short: "Parse a Python source file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), filePath, globals.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(out, result.Builder, result.FileID, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Builder, result.FileID)
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
	if result.SyntaxErrors > 0 {
		return errFailed
	}
	return nil
}
