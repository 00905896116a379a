package output

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"addizionali/internal/model"
)

// Format identifies a serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatTS   Format = "ts"
)

// ErrUnknownFormat is returned when no format can be chosen for a path.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a configured name to a Format. "auto" and "" yield "".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "ts", "typescript":
		return FormatTS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FromExtension returns the format implied by the file extension of path.
func FromExtension(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".ts", ".mts":
		return FormatTS, true
	default:
		return "", false
	}
}

// Detect picks the format for path. An explicit override wins, then the
// extension, then the configured fallback.
func Detect(path, override, configured string) (Format, error) {
	if format, err := ParseFormat(override); err != nil || format != "" {
		return format, err
	}
	if format, ok := FromExtension(path); ok {
		return format, nil
	}
	format, err := ParseFormat(configured)
	if err != nil {
		return "", err
	}
	if format == "" {
		return "", fmt.Errorf("%w: cannot infer from %q, use --format", ErrUnknownFormat, filepath.Base(path))
	}
	return format, nil
}

// Encode writes ds in format f. opts only applies to FormatTS.
func Encode(w io.Writer, f Format, ds model.Dataset, opts TSOptions) error {
	switch f {
	case FormatJSON:
		return EncodeJSON(w, ds)
	case FormatTS:
		return EncodeTS(w, ds, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Decode reads a dataset previously written in format f.
func Decode(r io.Reader, f Format, constName string) (model.Dataset, []EntryError, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatTS:
		return DecodeTS(r, constName)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
