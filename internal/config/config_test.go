package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeToml(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "crema.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write crema.toml: %v", err)
	}
	return path
}

func TestLoadDefaultsOutputToEntryStem(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[project]
name = "hello"
entry = "src/main.crema"
`)
	proj, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Name != "hello" {
		t.Errorf("Name = %q, want %q", proj.Name, "hello")
	}
	wantEntry := filepath.Join(dir, "src/main.crema")
	if proj.EntryPath != wantEntry {
		t.Errorf("EntryPath = %q, want %q", proj.EntryPath, wantEntry)
	}
	wantOutput := filepath.Join(dir, "main.ll")
	if proj.OutputPath != wantOutput {
		t.Errorf("OutputPath = %q, want %q", proj.OutputPath, wantOutput)
	}
}

func TestLoadExplicitOutputAndRuntimePath(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[project]
name = "hello"
entry = "main.crema"
output = "build/out.ll"
runtime-path = "/opt/crema/runtime.a"
`)
	proj, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOutput := filepath.Join(dir, "build/out.ll")
	if proj.OutputPath != wantOutput {
		t.Errorf("OutputPath = %q, want %q", proj.OutputPath, wantOutput)
	}
	if proj.RuntimePath != "/opt/crema/runtime.a" {
		t.Errorf("RuntimePath = %q, want %q", proj.RuntimePath, "/opt/crema/runtime.a")
	}
}

func TestLoadMissingNameFails(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[project]
entry = "main.crema"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a missing name field")
	}
}

func TestLoadMissingProjectTableFails(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `title = "not a project file"`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a missing [project] table")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml")); err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}
