package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSourceCSV = "CODICE_CATASTALE;COMUNE;PR;ALIQUOTA;FASCIA;ALIQUOTA_2;FASCIA_2;IMPORTO_ESENTE\n" +
	"H501;ROMA;RM;0,9;;;;14000\n" +
	"A001;ABANO TERME;PD;,5;scaglione fino a euro 15.000,00;,9;scaglione oltre;0\n" +
	"F205;MILANO;MI;0*;;;;\n"

// isolate points HOME and the working directory at a fresh temp dir so no
// user or project config is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("ADDIZIONALI_LOG_LEVEL", "")
	t.Setenv("ADDIZIONALI_LOG_FORMAT", "")
	t.Setenv("ADDIZIONALI_DEFAULT_RATE", "")
	t.Chdir(dir)
	return dir
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
