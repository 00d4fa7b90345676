package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"pyplus/internal/buildpipeline"
	"pyplus/internal/diag"
	"pyplus/internal/driver"
	"pyplus/internal/project"
	"pyplus/internal/source"
	"pyplus/internal/ui"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files or directories...]",
	Short: "Convert Python sources to C++",
	Long: `Convert Python sources to C++.
Without arguments the sources and output directory come from pyplus.toml,
searched from the current directory upwards. Flags override manifest values.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("out", "o", "", "output directory (default from pyplus.toml or \"output\")")
	convertCmd.Flags().String("name", "", "output file name without extension (single source only)")
	convertCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	convertCmd.Flags().Int("indent", 0, "spaces per indentation level (default from pyplus.toml or 4)")
	convertCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	convertCmd.Flags().Bool("no-cache", false, "disable the on-disk conversion cache")
	convertCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json|yaml)")
	convertCmd.Flags().Bool("with-notes", false, "include diagnostic notes")
	convertCmd.Flags().Bool("fullpath", false, "print absolute paths in diagnostics")
}

// convertPlan — что и куда переводить после слияния manifest-а и флагов.
type convertPlan struct {
	files   []string
	baseDir string
	outDir  string
	indent  int
}

func runConvert(cmd *cobra.Command, args []string) error {
	globals, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	name, err := flags.GetString("name")
	if err != nil {
		return fmt.Errorf("failed to get name flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	printOpts := diagPrintOptions{format: format, color: globals.color, withNotes: withNotes, fullPath: fullPath}

	plan, failure := planConvert(cmd, args)
	if failure != nil {
		if err := printDiagnostics(os.Stderr, failure.bag, failure.fs, printOpts); err != nil {
			return err
		}
		return errFailed
	}
	if name != "" && len(plan.files) > 1 {
		return fmt.Errorf("--name applies to a single source, got %d", len(plan.files))
	}

	var cache *driver.DiskCache
	if !noCache {
		cache, err = driver.OpenDiskCache("pyplus")
		if err != nil && !globals.quiet {
			fmt.Fprintf(os.Stderr, "warning: conversion cache disabled: %v\n", err)
		}
	}

	req := &buildpipeline.ConvertRequest{
		Files:          plan.files,
		BaseDir:        plan.baseDir,
		OutDir:         plan.outDir,
		Name:           name,
		Indent:         plan.indent,
		MaxDiagnostics: globals.maxDiagnostics,
		Jobs:           jobs,
		Cache:          cache,
	}

	var res buildpipeline.ConvertResult
	if shouldUseTUI(mode, len(plan.files), globals.quiet) {
		res, err = ui.RunConvert(cmd.Context(), cmd.OutOrStdout(), "pyplus convert", req)
	} else {
		res, err = buildpipeline.Convert(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if globals.timings && structuredFormat(format) {
		for _, f := range res.Files {
			if f != nil && !f.Cached {
				driver.AppendTimingDiagnostic(res.Bag, "convert", f.Path, f.Timing)
			}
		}
	}
	if err := printDiagnostics(os.Stderr, res.Bag, res.FileSet, printOpts); err != nil {
		return err
	}
	if globals.timings && !structuredFormat(format) {
		if err := buildpipeline.PrintStageTimings(cmd.OutOrStdout(), res.Timings); err != nil {
			return err
		}
	}
	if !globals.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "converted %d file(s) into %s (%d fallback(s))\n",
			len(res.Written), plan.outDir, res.Fallbacks())
	}
	if res.Failed() {
		return errFailed
	}
	return nil
}

type planFailure struct {
	fs  *source.FileSet
	bag *diag.Bag
}

func newPlanFailure(path string, code diag.Code, err error) *planFailure {
	fs, bag := projectFailure(path, code, err)
	return &planFailure{fs: fs, bag: bag}
}

// planConvert сливает аргументы, pyplus.toml и флаги.
// Без аргументов manifest обязателен.
func planConvert(cmd *cobra.Command, args []string) (convertPlan, *planFailure) {
	var plan convertPlan
	flags := cmd.Flags()

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	plan.baseDir = cwd
	plan.outDir = project.DefaultOutDir
	plan.indent = project.DefaultIndent

	if len(args) == 0 {
		manifest, err := project.Discover(cwd)
		if err != nil {
			path := filepath.Join(cwd, project.ManifestName)
			if errors.Is(err, project.ErrManifestNotFound) {
				return plan, newPlanFailure(path, diag.ProjNoSources,
					fmt.Errorf("no sources given and no %s found", project.ManifestName))
			}
			return plan, newPlanFailure(path, diag.ProjManifestInvalid, err)
		}
		files, err := manifest.SourceFiles()
		if err != nil {
			return plan, newPlanFailure(manifest.Path, diag.ProjManifestInvalid, err)
		}
		plan.files = files
		plan.baseDir = manifest.Root
		plan.outDir = manifest.OutDir()
		plan.indent = manifest.Config.Convert.Indent
		if len(files) == 0 {
			return plan, newPlanFailure(manifest.Path, diag.ProjNoSources,
				fmt.Errorf("%s lists no .py sources", manifest.Path))
		}
	} else {
		files, err := project.ExpandSources(args)
		if err != nil {
			return plan, newPlanFailure(args[0], diag.IOLoadFileError, err)
		}
		if len(files) == 0 {
			return plan, newPlanFailure(args[0], diag.ProjNoSources,
				fmt.Errorf("no .py sources under %v", args))
		}
		plan.files = files
	}

	if flags.Changed("out") {
		if out, err := flags.GetString("out"); err == nil {
			plan.outDir = out
		}
	}
	if flags.Changed("indent") {
		if indent, err := flags.GetInt("indent"); err == nil && indent > 0 {
			plan.indent = indent
		} else {
			return plan, newPlanFailure(plan.baseDir, diag.ProjManifestInvalid,
				fmt.Errorf("--indent must be positive"))
		}
	}
	return plan, nil
}
