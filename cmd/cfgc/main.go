package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfgc [files...]",
	Short: "Lower an ECMAScript-5 subset program into labeled basic blocks",
	Long: `cfgc reads one or more JavaScript source files restricted to a small
ECMAScript-5 subset, flattens their control flow into a linear sequence of
labeled basic blocks connected by explicit GOTOs, and writes the result back
out as JavaScript source text.

With no arguments, cfgc reads ./test.js and writes ./test.out.js.`,
	RunE: runRoot,
}

func main() {
	rootCmd.Flags().StringVarP(&flags.out, "out", "o", "", "output path (only valid with exactly one input file)")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "path to cfg.toml (default: search upward from the working directory)")
	rootCmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "enable the on-disk lowering cache at this directory")
	rootCmd.Flags().BoolVar(&flags.stripDebugger, "strip-debugger", false, "drop debugger statements instead of passing them through")
	rootCmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colorized diagnostics")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flags holds the parsed command-line flags; runRoot layers them over the
// TOML config before lowering the input files.
var flags struct {
	out           string
	configPath    string
	cacheDir      string
	stripDebugger bool
	noColor       bool
}
