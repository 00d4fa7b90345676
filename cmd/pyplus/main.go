package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyplus/internal/version"
)

// errFailed — диагностики уже напечатаны, нужен только код выхода 1.
var errFailed = errors.New("conversion reported errors")

var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

func cleanupAll() {
	profileCleanup()
	traceCleanup()
}

var rootCmd = &cobra.Command{
	Use:   "pyplus",
	Short: "Python subset to C++ converter",
	Long: `pyplus converts a typed-by-inference subset of Python into C++ source.
Statements it cannot translate are kept verbatim in comments with a TODO.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		if profileCleanup, err = setupProfiling(cmd); err != nil {
			profileCleanup = func() {}
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cleanupAll()
	},
}

// main executes the root command; any error makes the process exit with status 1.
func main() {
	registerCommands()

	if err := rootCmd.Execute(); err != nil {
		cleanupAll()
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "pyplus: %v\n", err)
		}
		os.Exit(1)
	}
}

var registerOnce sync.Once

// registerCommands подключает подкоманды и persistent флаги один раз.
func registerCommands() {
	registerOnce.Do(func() {
		rootCmd.Version = version.Version

		rootCmd.AddCommand(convertCmd)
		rootCmd.AddCommand(tokenizeCmd)
		rootCmd.AddCommand(parseCmd)
		rootCmd.AddCommand(diagCmd)
		rootCmd.AddCommand(initCmd)
		rootCmd.AddCommand(cleanCmd)
		rootCmd.AddCommand(versionCmd)

		// Глобальные флаги
		pf := rootCmd.PersistentFlags()
		pf.String("color", "auto", "colorize output (auto|on|off)")
		pf.Bool("quiet", false, "suppress non-essential output")
		pf.Bool("timings", false, "show timing information")
		pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
		pf.String("trace", "", "write trace events to a file (- for stderr)")
		pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
		pf.String("cpu-profile", "", "write a CPU profile to file")
		pf.String("mem-profile", "", "write a heap profile to file on exit")
		pf.String("runtime-trace", "", "write a Go runtime trace to file")
	})
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
