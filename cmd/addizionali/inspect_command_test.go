package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestInspectSource(t *testing.T) {
	dir := isolate(t)
	src := writeTestFile(t, dir, "source.csv", testSourceCSV)

	out, _, err := runCLI(t, []string{"inspect", src}, "")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Abano Terme")
	requireContains(t, out, "VENETO")
	requireContains(t, out, "oltre")
	requireContains(t, out, "2 entries")
	if strings.Contains(out, "F205") {
		t.Fatalf("row without data should not be listed:\n%s", out)
	}
}

func TestInspectGeneratedWithIncome(t *testing.T) {
	dir := isolate(t)
	src := writeTestFile(t, dir, "source.csv", testSourceCSV)
	generated := filepath.Join(dir, "out.json")
	if _, _, err := runCLI(t, []string{src, "-o", generated}, ""); err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, _, err := runCLI(t, []string{"inspect", generated, "--code", "h501", "--income", "10000"}, "")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "H501")
	requireContains(t, out, "esente")
	requireContains(t, out, "1 entries")
	if strings.Contains(out, "A001") {
		t.Fatalf("--code filter ignored:\n%s", out)
	}
}

func TestInspectJSON(t *testing.T) {
	dir := isolate(t)
	src := writeTestFile(t, dir, "source.csv", testSourceCSV)

	out, _, err := runCLI(t, []string{"inspect", src, "--json", "--code", "A001"}, "")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var payload map[string]map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json output: %v\n%s", err, out)
	}
	entry, ok := payload["A001"]
	if !ok || entry["nome"] != "Abano Terme" {
		t.Fatalf("unexpected payload %#v", payload)
	}
	if _, ok := entry["scaglioni"]; !ok {
		t.Fatalf("expected scaglioni in %#v", entry)
	}
}

func TestInspectMissingFile(t *testing.T) {
	dir := isolate(t)
	if _, _, err := runCLI(t, []string{"inspect", filepath.Join(dir, "nope.csv")}, ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}
