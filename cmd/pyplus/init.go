package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pyplus/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new pyplus project",
	Long: `Initialize a new pyplus project by creating a project manifest (pyplus.toml)
and a sample entry point (main.py). If [path|name] is omitted, initializes
the current directory. A non-existing name creates the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	created, err := project.Init(target)
	for _, path := range created {
		rel, relErr := filepath.Rel(wd, path)
		if relErr != nil {
			rel = path
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", filepath.ToSlash(rel))
	}
	return err
}
