package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"pyplus/internal/diag"
	"pyplus/internal/driver"
	"pyplus/internal/project"
)

var diagCmd = &cobra.Command{
	Use:   "diag <files or directories...>",
	Short: "Run the translator and print diagnostics without writing output",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|short|json|yaml)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes")
	diagCmd.Flags().Bool("fullpath", false, "print absolute paths in diagnostics")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
}

func runDiag(cmd *cobra.Command, args []string) error {
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	printOpts := diagPrintOptions{format: format, color: globals.color, withNotes: withNotes, fullPath: fullPath}

	files, err := project.ExpandSources(args)
	if err != nil || len(files) == 0 {
		if err == nil {
			err = fmt.Errorf("no .py sources under %v", args)
		}
		fs, bag := projectFailure(args[0], diag.ProjNoSources, err)
		if perr := printDiagnostics(os.Stderr, bag, fs, printOpts); perr != nil {
			return perr
		}
		return errFailed
	}

	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = filepath.Dir(files[0])
	}
	fileSet, results, err := driver.ConvertFiles(cmd.Context(), baseDir, files, driver.ConvertOptions{
		MaxDiagnostics: globals.maxDiagnostics,
	}, jobs)
	if err != nil {
		return err
	}

	bag := diag.NewBag(len(files) * globals.maxDiagnostics)
	failed := false
	for _, res := range results {
		if res == nil {
			continue
		}
		bag.Merge(res.Bag)
		if globals.timings && structuredFormat(format) {
			driver.AppendTimingDiagnostic(bag, "diag", res.Path, res.Timing)
		}
		failed = failed || res.Failed()
	}
	bag.Sort()

	// pretty выводит диагностики на stdout: это основной результат команды
	out := cmd.OutOrStdout()
	if err := printDiagnostics(out, bag, fileSet, printOpts); err != nil {
		return err
	}
	if globals.timings && !structuredFormat(format) {
		for _, res := range results {
			if res != nil {
				fmt.Fprintf(out, "%s: %.1f ms\n", res.Path, res.Timing.TotalMS)
			}
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
