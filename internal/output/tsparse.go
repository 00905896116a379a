package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/scanner"

	"addizionali/internal/model"
)

// ErrLiteralNotFound is returned when the module does not declare the
// expected constant.
var ErrLiteralNotFound = errors.New("typed literal not found")

// DecodeTS reads back a module written by EncodeTS. Only the object literal
// assigned to constName is read; every entry must sit on its own line.
// Entries that fail to parse or validate are returned as EntryErrors.
func DecodeTS(r io.Reader, constName string) (model.Dataset, []EntryError, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	declaration := "export const " + constName
	lineNo := 0
	found := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, declaration) && strings.HasSuffix(line, "= {") {
			rest := strings.TrimPrefix(line, declaration)
			if rest == "" || rest[0] == ':' || rest[0] == ' ' || rest[0] == '=' {
				found = true
				break
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read ts: %w", err)
	}
	if !found {
		return nil, nil, fmt.Errorf("%w: %s", ErrLiteralNotFound, constName)
	}

	ds := make(model.Dataset)
	var bad []EntryError
	closed := false
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if line == "};" || line == "}" {
			closed = true
			break
		}
		key, entry, err := parseEntryLine(line)
		if err == nil {
			err = entry.Validate()
		}
		if err != nil {
			if key == "" {
				key = "?"
			}
			bad = append(bad, EntryError{Key: key, Line: lineNo, Err: err})
			continue
		}
		ds[key] = entry
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read ts: %w", err)
	}
	if !closed {
		return nil, nil, fmt.Errorf("read ts: literal %s is not terminated", constName)
	}
	return ds, bad, nil
}

// entryParser reads one `key: { ... },` line. It relies on text/scanner for
// identifiers and numerals and reads quoted strings itself, since the
// generated strings are single-quoted.
type entryParser struct {
	s   scanner.Scanner
	tok rune
	err error
}

func parseEntryLine(line string) (string, model.Entry, error) {
	p := &entryParser{}
	p.s.Init(strings.NewReader(line))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanComments | scanner.SkipComments
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = errors.New(msg)
		}
	}
	p.next()

	key, err := p.key()
	if err != nil {
		return "", model.Entry{}, err
	}
	if err := p.expect(':'); err != nil {
		return key, model.Entry{}, err
	}
	entry, err := p.entry()
	if err != nil {
		return key, model.Entry{}, err
	}
	if p.tok == ',' {
		p.next()
	}
	if p.tok != scanner.EOF {
		return key, model.Entry{}, p.unexpected("end of line")
	}
	if p.err != nil {
		return key, model.Entry{}, p.err
	}
	entry.ID = key
	return key, entry, nil
}

func (p *entryParser) next() {
	p.tok = p.s.Scan()
}

func (p *entryParser) expect(tok rune) error {
	if p.tok != tok {
		return p.unexpected(scanner.TokenString(tok))
	}
	p.next()
	return nil
}

func (p *entryParser) unexpected(want string) error {
	if p.err != nil {
		return p.err
	}
	got := scanner.TokenString(p.tok)
	if p.tok == scanner.Ident || p.tok == scanner.Int || p.tok == scanner.Float {
		got = strconv.Quote(p.s.TokenText())
	}
	return fmt.Errorf("column %d: expected %s, got %s", p.s.Position.Column, want, got)
}

func (p *entryParser) key() (string, error) {
	switch p.tok {
	case scanner.Ident:
		key := p.s.TokenText()
		p.next()
		return key, nil
	case '\'':
		return p.str()
	default:
		return "", p.unexpected("key")
	}
}

// str reads a single-quoted string whose opening quote is the current token.
func (p *entryParser) str() (string, error) {
	if p.tok != '\'' {
		return "", p.unexpected("string")
	}
	var b strings.Builder
	for {
		ch := p.s.Next()
		switch ch {
		case scanner.EOF:
			return "", errors.New("unterminated string")
		case '\'':
			p.next()
			return b.String(), nil
		case '\\':
			esc := p.s.Next()
			switch esc {
			case scanner.EOF:
				return "", errors.New("unterminated string")
			case 'n':
				b.WriteRune('\n')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

func (p *entryParser) number() (float64, error) {
	switch p.tok {
	case scanner.Int, scanner.Float:
		text := strings.ReplaceAll(p.s.TokenText(), "_", "")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, fmt.Errorf("number %q: %w", p.s.TokenText(), err)
		}
		p.next()
		return v, nil
	case scanner.Ident:
		if p.s.TokenText() == "Infinity" {
			p.next()
			return math.Inf(1), nil
		}
	}
	return 0, p.unexpected("number")
}

// object calls field for every `name: value` member of a `{ ... }` literal.
func (p *entryParser) object(field func(name string) error) error {
	if err := p.expect('{'); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for p.tok != '}' {
		if p.tok != scanner.Ident {
			return p.unexpected("field name")
		}
		name := p.s.TokenText()
		if seen[name] {
			return fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = true
		p.next()
		if err := p.expect(':'); err != nil {
			return err
		}
		if err := field(name); err != nil {
			return err
		}
		if p.tok != ',' {
			break
		}
		p.next()
	}
	return p.expect('}')
}

func (p *entryParser) entry() (model.Entry, error) {
	var e model.Entry
	err := p.object(func(name string) error {
		var err error
		switch name {
		case "n":
			e.Name, err = p.str()
		case "pr":
			e.Province, err = p.str()
		case "r":
			e.Region, err = p.str()
		case "a":
			e.Rate, err = p.finite()
		case "e":
			e.Exemption, err = p.finite()
		case "s":
			e.Brackets, err = p.brackets()
		default:
			err = fmt.Errorf("unknown field %q", name)
		}
		return err
	})
	return e, err
}

func (p *entryParser) finite() (float64, error) {
	v, err := p.number()
	if err == nil && math.IsInf(v, 0) {
		return 0, errors.New("Infinity is only valid as a bracket limit")
	}
	return v, err
}

func (p *entryParser) brackets() ([]model.Bracket, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var out []model.Bracket
	for p.tok != ']' {
		var b model.Bracket
		var hasLimit, hasRate bool
		err := p.object(func(name string) error {
			var err error
			switch name {
			case "l":
				b.Limit, err = p.number()
				hasLimit = true
			case "a":
				b.Rate, err = p.finite()
				hasRate = true
			default:
				err = fmt.Errorf("unknown bracket field %q", name)
			}
			return err
		})
		if err != nil {
			return nil, err
		}
		if !hasLimit || !hasRate {
			return nil, fmt.Errorf("bracket %d: limit and rate are required", len(out)+1)
		}
		out = append(out, b)
		if p.tok != ',' {
			break
		}
		p.next()
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("empty bracket list")
	}
	return out, nil
}
