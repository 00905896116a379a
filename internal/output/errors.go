package output

import "fmt"

// EntryError describes one entry of a previously written file that could not
// be read back. Line is zero when the format has no line information.
type EntryError struct {
	Key  string
	Line int
	Err  error
}

func (e EntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("entry %s (line %d): %v", e.Key, e.Line, e.Err)
	}
	return fmt.Sprintf("entry %s: %v", e.Key, e.Err)
}

func (e EntryError) Unwrap() error { return e.Err }
