package output_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"addizionali/internal/model"
	"addizionali/internal/output"
)

func tsOptions() output.TSOptions {
	return output.TSOptions{
		ConstName:        "ADDIZIONALI_COMUNALI",
		DefaultConstName: "ADDIZIONALE_DEFAULT",
		DefaultRate:      0.008,
		TypeName:         "AddizionaleComunale",
		TypeImport:       "../types",
		Source:           "Add_comunale_irpef2025.csv",
	}
}

func TestEncodeTS(t *testing.T) {
	ds := model.Dataset{
		"H501": {ID: "H501", Name: "Roma", Province: "RM", Region: "LAZIO", Rate: 0.009, Exemption: 14000},
		"A001": {ID: "A001", Name: "Abano Terme", Brackets: []model.Bracket{
			{Limit: 15000, Rate: 0.005},
			{Limit: model.Unbounded, Rate: 0.008},
		}},
		"1234": {ID: "1234", Name: "L'Aquila", Rate: 0.006, Exemption: 1000},
	}

	var buf bytes.Buffer
	if err := output.EncodeTS(&buf, ds, tsOptions()); err != nil {
		t.Fatalf("EncodeTS returned error: %v", err)
	}

	want := `// Code generated by addizionali from Add_comunale_irpef2025.csv; DO NOT EDIT.

import { AddizionaleComunale } from '../types';

export const ADDIZIONALE_DEFAULT = 0.008;

export const ADDIZIONALI_COMUNALI: Record<string, AddizionaleComunale> = {
  '1234': { n: 'L\'Aquila', a: 0.006, e: 1000 },
  A001: { n: 'Abano Terme', s: [{ l: 15_000, a: 0.005 }, { l: Infinity, a: 0.008 }] },
  H501: { n: 'Roma', pr: 'RM', r: 'LAZIO', a: 0.009, e: 14_000 },
};
`
	if got := buf.String(); got != want {
		t.Fatalf("unexpected module:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeTSInlineTypeWithoutDefault(t *testing.T) {
	opts := tsOptions()
	opts.TypeImport = ""
	opts.DefaultRate = 0

	var buf bytes.Buffer
	if err := output.EncodeTS(&buf, model.Dataset{}, opts); err != nil {
		t.Fatalf("EncodeTS returned error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "export interface AddizionaleComunale {") {
		t.Fatalf("expected inline interface, got:\n%s", got)
	}
	if strings.Contains(got, "import ") || strings.Contains(got, "ADDIZIONALE_DEFAULT") {
		t.Fatalf("unexpected import or default constant:\n%s", got)
	}
	if !strings.HasSuffix(got, "= {\n};\n") {
		t.Fatalf("expected empty literal, got:\n%s", got)
	}
}

func TestTSRoundTrip(t *testing.T) {
	ds := sampleDataset()
	ds["Z999"] = model.Entry{ID: "Z999", Name: `Back\slash 'quoted'`, Rate: 0.001}

	var buf bytes.Buffer
	if err := output.EncodeTS(&buf, ds, tsOptions()); err != nil {
		t.Fatalf("EncodeTS returned error: %v", err)
	}

	got, bad, err := output.DecodeTS(&buf, "ADDIZIONALI_COMUNALI")
	if err != nil {
		t.Fatalf("DecodeTS returned error: %v", err)
	}
	if len(bad) != 0 {
		t.Fatalf("unexpected entry errors: %v", bad)
	}
	if !reflect.DeepEqual(got, ds) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, ds)
	}
}

func TestTSRoundTripQuotesNonIdentifierKeys(t *testing.T) {
	ds := model.Dataset{
		"A$1":  {ID: "A$1", Name: "Dollaro", Rate: 0.002},
		"1AB":  {ID: "1AB", Name: "Cifra", Rate: 0.003},
		"B-02": {ID: "B-02", Name: "Trattino", Rate: 0.004},
	}

	var buf bytes.Buffer
	if err := output.EncodeTS(&buf, ds, tsOptions()); err != nil {
		t.Fatalf("EncodeTS returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "  'A$1': {") {
		t.Fatalf("expected quoted key in output:\n%s", buf.String())
	}

	got, bad, err := output.DecodeTS(&buf, "ADDIZIONALI_COMUNALI")
	if err != nil {
		t.Fatalf("DecodeTS returned error: %v", err)
	}
	if len(bad) != 0 {
		t.Fatalf("unexpected entry errors: %v", bad)
	}
	if !reflect.DeepEqual(got, ds) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, ds)
	}
}

func TestDecodeTSReportsMalformedEntries(t *testing.T) {
	input := `import { AddizionaleComunale } from '../types';

export const ADDIZIONALE_DEFAULT = 0.008;

export const ADDIZIONALI_COMUNALI: Record<string, AddizionaleComunale> = {
  A001: { n: 'Abano', a: 0.005 },
  B002: { n: 'Bari', a: 0.005, s: [{ l: Infinity, a: 0.01 }] },
  C003: { n: 'Como, a: 0.007 },
  D004: { n: 'Dolo', x: 1 },
  E005: { n: 'Eboli', a: 0.007 } junk,
  // comment lines are ignored

  F006: { n: 'Fano', s: [{ l: 28_000, a: 0.006 }, { l: 15_000, a: 0.005 }] },
  G007: { n: 'Gela', a: 0.007, e: 12_500.5 },
};

export const OTHER = {
  Z000: nonsense
};
`
	ds, bad, err := output.DecodeTS(strings.NewReader(input), "ADDIZIONALI_COMUNALI")
	if err != nil {
		t.Fatalf("DecodeTS returned error: %v", err)
	}
	if len(ds) != 2 {
		t.Fatalf("expected 2 valid entries, got %+v", ds)
	}
	if got := ds["G007"].Exemption; got != 12500.5 {
		t.Fatalf("expected grouped exemption 12500.5, got %v", got)
	}

	wantLines := map[string]int{"B002": 7, "C003": 8, "D004": 9, "E005": 10, "F006": 13}
	if len(bad) != len(wantLines) {
		t.Fatalf("expected %d entry errors, got %v", len(wantLines), bad)
	}
	for _, e := range bad {
		if wantLines[e.Key] != e.Line {
			t.Fatalf("entry error %v: want line %d", e, wantLines[e.Key])
		}
	}
}

func TestDecodeTSStructuralErrors(t *testing.T) {
	if _, _, err := output.DecodeTS(strings.NewReader("export const X = {};\n"), "ADDIZIONALI_COMUNALI"); !errors.Is(err, output.ErrLiteralNotFound) {
		t.Fatalf("expected ErrLiteralNotFound, got %v", err)
	}

	input := "export const ADDIZIONALI_COMUNALI: Record<string, T> = {\n  A001: { n: 'Abano', a: 0.005 },\n"
	if _, _, err := output.DecodeTS(strings.NewReader(input), "ADDIZIONALI_COMUNALI"); err == nil {
		t.Fatal("expected error for unterminated literal")
	}
}
