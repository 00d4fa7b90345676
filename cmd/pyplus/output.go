package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pyplus/internal/diag"
	"pyplus/internal/diagfmt"
	"pyplus/internal/source"
)

type globalOptions struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

// readGlobals собирает persistent флаги корня; цвет решается для stderr.
func readGlobals(cmd *cobra.Command) (globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts globalOptions

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	if opts.color, err = colorEnabled(colorFlag, os.Stderr); err != nil {
		return opts, err
	}
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if opts.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.maxDiagnostics <= 0 {
		return opts, fmt.Errorf("--max-diagnostics must be positive, got %d", opts.maxDiagnostics)
	}
	return opts, nil
}

func colorEnabled(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(mode) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

type diagPrintOptions struct {
	format    string
	color     bool
	withNotes bool
	fullPath  bool
}

// structuredFormat — json/yaml: тайминги идут внутри потока диагностик.
func structuredFormat(format string) bool {
	return format == "json" || format == "yaml"
}

// printDiagnostics выводит отсортированный bag в выбранном формате.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts diagPrintOptions) error {
	pathMode := diagfmt.PathModeAuto
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     opts.withNotes,
	}

	switch opts.format {
	case "pretty", "":
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     opts.color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: opts.withNotes,
			Summary:   true,
		})
		return nil
	case "short":
		if bag.Len() == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diag.FormatShort(bag.Items(), fs, opts.withNotes))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, jsonOpts)
	case "yaml":
		return diagfmt.YAML(w, bag, fs, jsonOpts)
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
}

// projectFailure оформляет ошибку manifest-а как диагностику на его файле.
func projectFailure(path string, code diag.Code, err error) (*source.FileSet, *diag.Bag) {
	fs := source.NewFileSet()
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		content = nil
	}
	fileID := fs.AddVirtual(path, content)
	bag := diag.NewBag(1)
	diag.ReportError(&diag.BagReporter{Bag: bag}, code, source.Span{File: fileID}, err.Error()).Emit()
	return fs, bag
}
