package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rickypai/natsort"
	"github.com/spf13/cobra"

	"github.com/RReverser/cfg/cache"
	"github.com/RReverser/cfg/lower"
	"github.com/RReverser/cfg/parser"
	"github.com/RReverser/cfg/printer"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("strip-debugger") {
		cfg.Lower.StripDebugger = flags.stripDebugger
	}
	if flags.cacheDir != "" {
		cfg.Lower.CacheDir = flags.cacheDir
	}
	enableColor := cfg.Output.Color && !flags.noColor

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"test.js"}
	}
	natsort.Strings(inputs)

	if flags.out != "" && len(inputs) != 1 {
		return fmt.Errorf("--out requires exactly one input file, got %d", len(inputs))
	}

	var cacheDB *cache.Cache
	if cfg.Lower.CacheDir != "" {
		cacheDB = cache.Open(cfg.Lower.CacheDir)
	}

	diag := newDiagPrinter(os.Stderr, enableColor)

	type result struct {
		path string
		err  error
	}
	results := make(chan result, len(inputs))

	const maxConcurrency = 8
	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup
	for _, in := range inputs {
		in := in
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			out := outputPath(in, flags.out, len(inputs))
			results <- result{path: in, err: lowerFile(in, out, cfg, cacheDB)}
		}()
	}
	wg.Wait()
	close(results)

	failed := false
	for r := range results {
		if r.err != nil {
			diag.Print(r.path, r.err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more files failed to lower")
	}
	return nil
}

// outputPath derives the output path for in. When out is non-empty it is
// used verbatim (only legal for a single input, enforced by the caller);
// otherwise the input's extension is replaced with ".out.js".
func outputPath(in, out string, numInputs int) string {
	if out != "" && numInputs == 1 {
		return out
	}
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + ".out.js"
}

func lowerFile(in, out string, cfg lowerConfig, cacheDB *cache.Cache) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}

	digest := cache.Digest(src)
	if cacheDB != nil {
		if cached, ok, _ := cacheDB.Get(digest); ok {
			return os.WriteFile(out, cached, 0o644)
		}
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		return err
	}
	lowered, err := lower.Lower(prog, lower.Options{DropDebugger: cfg.Lower.StripDebugger})
	if err != nil {
		return err
	}
	output, err := printer.Print(lowered)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, output, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if cacheDB != nil {
		_ = cacheDB.Put(digest, output)
	}
	return nil
}
