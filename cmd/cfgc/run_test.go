package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPathDefaultExtension(t *testing.T) {
	if got, want := outputPath("foo/bar.js", "", 2), "foo/bar.out.js"; got != want {
		t.Errorf("outputPath = %q, want %q", got, want)
	}
}

func TestOutputPathExplicitOutSingleInput(t *testing.T) {
	if got, want := outputPath("foo/bar.js", "custom.js", 1), "custom.js"; got != want {
		t.Errorf("outputPath = %q, want %q", got, want)
	}
}

func TestOutputPathIgnoresExplicitOutForMultipleInputs(t *testing.T) {
	// Guarded by runRoot's own "--out requires exactly one input" check;
	// outputPath itself just falls back to the per-file default.
	if got, want := outputPath("foo/bar.js", "custom.js", 2), "foo/bar.out.js"; got != want {
		t.Errorf("outputPath = %q, want %q", got, want)
	}
}

func TestLowerFileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "test.js")
	out := filepath.Join(dir, "test.out.js")
	if err := os.WriteFile(in, []byte("var x = 1;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := lowerFile(in, out, defaultConfig(), nil); err != nil {
		t.Fatalf("lowerFile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty lowered output")
	}
}

func TestLowerFilePropagatesParseError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.js")
	if err := os.WriteFile(in, []byte("1 = 2;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := lowerFile(in, filepath.Join(dir, "bad.out.js"), defaultConfig(), nil); err == nil {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
}
