// Package source reads the MEF surtax table into header-keyed records.
//
// Two containers are supported: the delimited text export (CSV) and the
// spreadsheet workbook (.xlsx) the ministry publishes alongside it. Both
// yield the same Record shape so row interpretation is container agnostic.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record is one data row keyed by upper-cased, trimmed header name.
type Record map[string]string

// First returns the value of the first alias present with a non-empty value.
func (r Record) First(aliases ...string) string {
	for _, alias := range aliases {
		if value := r[strings.ToUpper(alias)]; value != "" {
			return value
		}
	}
	return ""
}

// Options controls decoding of the source file.
type Options struct {
	Delimiter rune
	Encoding  string
	Sheet     string
}

// ErrSheetNotFound is returned when the requested worksheet is absent.
var ErrSheetNotFound = errors.New("worksheet not found")

// IsWorkbook reports whether path names a spreadsheet workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// Open reads every data row of the file at path.
func Open(path string, opts Options) ([]Record, error) {
	if IsWorkbook(path) {
		return readWorkbook(path, opts.Sheet)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer file.Close()

	records, err := ReadCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// ReadCSV decodes delimited text. A byte-order mark is honored and stripped;
// without one the configured encoding applies. An empty stream yields no
// records.
func ReadCSV(r io.Reader, opts Options) ([]Record, error) {
	decoder, err := newDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(transform.NewReader(r, decoder))
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ';'
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	columns := normalizeHeader(header)

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if rec := buildRecord(columns, row); rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func newDecoder(encoding string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return unicode.BOMOverride(charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return unicode.BOMOverride(charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

func readWorkbook(path, sheet string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, nil
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := normalizeHeader(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if rec := buildRecord(columns, row); rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}
	return columns
}

// buildRecord returns nil for rows where every cell is blank.
func buildRecord(columns, row []string) Record {
	rec := make(Record, len(columns))
	blank := true
	for i, column := range columns {
		if column == "" {
			continue
		}
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		if value != "" {
			blank = false
		}
		if _, exists := rec[column]; exists && value == "" {
			continue
		}
		rec[column] = value
	}
	if blank {
		return nil
	}
	return rec
}
