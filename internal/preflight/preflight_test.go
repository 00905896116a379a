package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRequireFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "source.csv")
	if err := os.WriteFile(f, []byte("CODICE;COMUNE\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RequireFile("CSV file", f); err != nil {
		t.Fatalf("expected existing file to pass, got %v", err)
	}
	if err := RequireFile("CSV file", filepath.Join(dir, "missing.csv")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	err := RequireFile("CSV file", dir)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.csv")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := RunAll(Paths{Source: src, Output: filepath.Join(dir, "out.json")})
	if len(results) != 2 || Failed(results) {
		t.Fatalf("expected two passing checks, got %+v", results)
	}

	results = RunAll(Paths{Source: src, Update: filepath.Join(dir, "base.json"), Output: filepath.Join(dir, "out.json")})
	if len(results) != 3 || !Failed(results) {
		t.Fatalf("expected failing update check, got %+v", results)
	}
	if results[1].Name != "Update base" || results[1].Passed {
		t.Fatalf("unexpected update result %+v", results[1])
	}
}
