package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"kaizenblitz/internal/config"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Company.Name != "Your Company" {
		t.Fatalf("company = %q", cfg.Company.Name)
	}
	if cfg.Paths.Exports == "" || cfg.Paths.Backups == "" {
		t.Fatalf("default paths empty: %+v", cfg.Paths)
	}
}

func TestLoadReadsWorkspaceFile(t *testing.T) {
	dir := t.TempDir()
	yml := "company:\n  name: Acme Manufacturing\npaths:\n  exports: /tmp/exp\n  backups: /tmp/bak\n"
	if err := os.WriteFile(filepath.Join(dir, "kaizen.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Company.Name != "Acme Manufacturing" {
		t.Fatalf("company = %q", cfg.Company.Name)
	}
	if cfg.Paths.Exports != "/tmp/exp" || cfg.Paths.Backups != "/tmp/bak" {
		t.Fatalf("paths = %+v", cfg.Paths)
	}
}

func TestFromYAMLPartialKeepsDefaults(t *testing.T) {
	cfg, err := config.FromYAML([]byte("company:\n  name: Partial Co\n"))
	if err != nil {
		t.Fatalf("from yaml: %v", err)
	}
	if cfg.Company.Name != "Partial Co" {
		t.Fatalf("company = %q", cfg.Company.Name)
	}
	if cfg.Paths.Exports == "" {
		t.Fatalf("default export path lost")
	}
}

func TestFromYAMLRejectsGarbage(t *testing.T) {
	if _, err := config.FromYAML([]byte("{not yaml")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := config.FromYAML([]byte("company:\n  name: \"\"\n")); err == nil {
		t.Fatalf("expected validation error")
	}
}
