package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "judged.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
judge:
  workRoot: /var/lib/judge
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Judge.WorkRoot != "/var/lib/judge" {
		t.Errorf("workRoot = %q", cfg.Judge.WorkRoot)
	}
	if cfg.Judge.MaxConcurrency != defaultConcurrency {
		t.Errorf("maxConcurrency = %d, want default %d", cfg.Judge.MaxConcurrency, defaultConcurrency)
	}
	if cfg.Sandbox.HelperPath == "" {
		t.Error("helper path default not applied")
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Format != "json" {
		t.Errorf("logger defaults not applied: %+v", cfg.Logger)
	}
}

func TestLoadLanguageOverrides(t *testing.T) {
	path := writeConfig(t, `
languages:
  python:
    limits:
      wallClockMs: 5000
    extraCompileFlags: "-O"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lc, ok := cfg.Languages["python"]
	if !ok {
		t.Fatal("python language config missing")
	}
	if lc.Limits.WallClockMs != 5000 {
		t.Errorf("wallClockMs = %d", lc.Limits.WallClockMs)
	}
	if lc.ExtraCompileFlags != "-O" {
		t.Errorf("extraCompileFlags = %q", lc.ExtraCompileFlags)
	}
}

func TestLoadRejectsBadLimits(t *testing.T) {
	path := writeConfig(t, `
languages:
  cpp:
    limits:
      memoryMB: -5
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative memory limit")
	}
}

func TestLoadRejectsSeccompWithoutProfile(t *testing.T) {
	path := writeConfig(t, `
sandbox:
  enableSeccomp: true
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for seccomp without profile")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
