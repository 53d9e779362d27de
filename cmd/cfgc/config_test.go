package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Lower.StripDebugger {
		t.Error("StripDebugger should default to false")
	}
	if !cfg.Output.Color {
		t.Error("Color should default to true")
	}
}

func TestFindConfigWalksUpToAncestor(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, configFileName), []byte("[lower]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	path, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig = (%q, %v, %v), want a match", path, ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, configFileName))
	if path != want {
		t.Errorf("found %q, want %q", path, want)
	}
}

func TestFindConfigNoMatch(t *testing.T) {
	_, ok, err := findConfig(t.TempDir())
	if err != nil {
		t.Fatalf("findConfig: %v", err)
	}
	if ok {
		t.Error("expected no cfg.toml to be found in an empty temp dir tree")
	}
}

func TestLoadConfigParsesValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	body := "[lower]\nstrip_debugger = true\ncache_dir = \"/tmp/cfgc-cache\"\n\n[output]\ncolor = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Lower.StripDebugger {
		t.Error("expected strip_debugger = true")
	}
	if cfg.Lower.CacheDir != "/tmp/cfgc-cache" {
		t.Errorf("CacheDir = %q", cfg.Lower.CacheDir)
	}
	if cfg.Output.Color {
		t.Error("expected color = false")
	}
}

func TestLoadConfigExplicitMissingPathIsError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("expected an error for an explicit config path that does not exist")
	}
}
