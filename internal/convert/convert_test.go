package convert_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"addizionali/internal/config"
	"addizionali/internal/convert"
	"addizionali/internal/fileutil"
	"addizionali/internal/logging"
	"addizionali/internal/preflight"
)

const sourceCSV = "\ufeffCODICE_CATASTALE;COMUNE;PR;ALIQUOTA;FASCIA;ALIQUOTA_2;FASCIA_2;IMPORTO_ESENTE\n" +
	"H501;ROMA;RM;0,9;;;;14000\n" +
	"A001;ABANO TERME;PD;,5;scaglione fino a euro 15.000,00;,9;scaglione oltre;0\n" +
	"F205;MILANO;MI;0*;;;;\n" +
	"D969;SANT'AGATA LI BATTIATI;CT;0,8;;;;\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func defaultConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestRunFreshJSON(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	out := filepath.Join(dir, "out.json")

	res, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: out}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Parsed != 3 || res.Written != 3 || res.Updated {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.RunID == "" {
		t.Fatal("expected run id")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	for _, want := range []string{`"nome": "Sant'Agata Li Battiati"`, `"regione": "LAZIO"`, `"limite": null`, `"esenzione": 14000`} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %s in output:\n%s", want, text)
		}
	}
	if strings.Index(text, `"A001"`) > strings.Index(text, `"H501"`) {
		t.Fatalf("expected keys sorted:\n%s", text)
	}
	if res.Bytes != int64(len(data)) {
		t.Fatalf("Bytes = %d, file has %d", res.Bytes, len(data))
	}
}

func TestRunIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	first := filepath.Join(dir, "first.ts")
	second := filepath.Join(dir, "second.ts")

	for _, out := range []string{first, second} {
		if _, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: out}, nil); err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	}
	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Fatalf("outputs differ:\n%s\n---\n%s", a, b)
	}
}

func TestRunUpdateWithSameSourceMatchesFresh(t *testing.T) {
	for _, ext := range []string{".json", ".ts"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()
			src := writeFile(t, dir, "source.csv", sourceCSV)
			fresh := filepath.Join(dir, "fresh"+ext)
			updated := filepath.Join(dir, "updated"+ext)

			if _, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: fresh}, nil); err != nil {
				t.Fatalf("fresh run: %v", err)
			}
			res, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: updated, Update: fresh}, nil)
			if err != nil {
				t.Fatalf("update run: %v", err)
			}
			if res.Stats.Added != 0 || res.Stats.Updated != 3 || res.Stats.Base != 3 || res.Stats.Total != 3 {
				t.Fatalf("unexpected stats %+v", res.Stats)
			}

			a, _ := os.ReadFile(fresh)
			b, _ := os.ReadFile(updated)
			if string(a) != string(b) {
				t.Fatalf("update output differs from fresh output:\n%s\n---\n%s", a, b)
			}
		})
	}
}

func TestRunUpdateKeepsAndDropsBaseEntries(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	base := writeFile(t, dir, "base.ts", `export const ADDIZIONALI_COMUNALI: Record<string, AddizionaleComunale> = {
  H501: { n: 'Roma', a: 0.008 },
  Z001: { n: 'Zola', a: 0.004 },
  Z002: { n: 'Broken', a: 0.004, s: [{ l: Infinity, a: 0.01 }] },
};
`)
	out := filepath.Join(dir, "out.ts")

	res, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: out, Update: base}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Key != "Z002" {
		t.Fatalf("expected Z002 rejected, got %v", res.Rejected)
	}
	if res.Stats.Base != 2 || res.Stats.Updated != 1 || res.Stats.Added != 2 || res.Stats.Total != 4 {
		t.Fatalf("unexpected stats %+v", res.Stats)
	}

	data, _ := os.ReadFile(out)
	text := string(data)
	if !strings.Contains(text, "Z001: { n: 'Zola', a: 0.004 },") {
		t.Fatalf("expected untouched base entry:\n%s", text)
	}
	if !strings.Contains(text, "H501: { n: 'Roma', pr: 'RM', r: 'LAZIO', a: 0.009, e: 14_000 },") {
		t.Fatalf("expected H501 replaced:\n%s", text)
	}
	if strings.Contains(text, "Z002") {
		t.Fatalf("rejected entry leaked into output:\n%s", text)
	}
}

func TestRunMissingInputs(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	out := filepath.Join(dir, "out.json")

	_, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: filepath.Join(dir, "missing.csv"), Output: out}, nil)
	if !errors.Is(err, preflight.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing csv, got %v", err)
	}

	_, err = convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: out, Update: filepath.Join(dir, "missing.json")}, nil)
	if !errors.Is(err, preflight.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing base, got %v", err)
	}

	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output must not be written on failure, stat err = %v", err)
	}
}

func TestRunBackupAndLocale(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	out := writeFile(t, dir, "out.json", "previous")

	cfg := defaultConfig()
	cfg.Output.IncludeLocale = false

	res, err := convert.Run(context.Background(), cfg, convert.Request{Source: src, Output: out}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Backup != fileutil.BackupPath(out) {
		t.Fatalf("expected backup at %s, got %q", fileutil.BackupPath(out), res.Backup)
	}
	prev, err := os.ReadFile(res.Backup)
	if err != nil || string(prev) != "previous" {
		t.Fatalf("backup content = %q, err = %v", prev, err)
	}

	data, _ := os.ReadFile(out)
	if strings.Contains(string(data), `"pr"`) || strings.Contains(string(data), `"regione"`) {
		t.Fatalf("expected locale fields stripped:\n%s", data)
	}
}

func TestRunRefusesLockedOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)
	out := filepath.Join(dir, "out.json")

	lock, err := fileutil.TryLock(out)
	if err != nil {
		t.Fatalf("TryLock: %v", err)
	}
	defer func() { _ = lock.Unlock() }()

	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "error", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	if _, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: out}, logger); !errors.Is(err, fileutil.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	for _, want := range []string{"ERROR convert: publish failed", "event_type=publish_failed", "run_id="} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("expected %q in logs %q", want, logs.String())
		}
	}
}

func TestRunFormatOverrideAndUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "source.csv", sourceCSV)

	if _, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: filepath.Join(dir, "out.txt")}, nil); err == nil {
		t.Fatal("expected error when format cannot be inferred")
	}

	out := filepath.Join(dir, "out.txt")
	res, err := convert.Run(context.Background(), defaultConfig(), convert.Request{Source: src, Output: out, Format: "ts"}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if res.Format != "ts" {
		t.Fatalf("expected ts format, got %q", res.Format)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "export const ADDIZIONALE_DEFAULT = 0.008;") {
		t.Fatalf("expected ts module, got:\n%s", data)
	}
}
