package italnum

import (
	"regexp"
	"strconv"
	"strings"
)

const currency = `(?:euro|€)`

var (
	// amountPatterns are tried in order; the first match wins.
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)fino\s+ad?\s+` + currency + `\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)superior[ei]\s+ad?\s+` + currency + `\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)inferior[ei]\s+ad?\s+` + currency + `\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)\bda\s+` + currency + `\s*[\d.,]+\s+ad?\s+` + currency + `\s*([\d.,]+)`),
	}
	numeral = regexp.MustCompile(`^[\d.,]+$`)
)

// ParseCurrencyAmount extracts the euro amount from a band description such as
// "scaglione fino a euro 15.000,00". ok is false when no known phrase matches
// or the numeral cannot be read.
func ParseCurrencyAmount(text string) (amount float64, ok bool) {
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		return ParseAmount(match[1])
	}
	return 0, false
}

// ParseAmount reads a bare Italian numeral.
//
// A comma is always the decimal separator and any dots before it group
// thousands. Without a comma a single dot groups thousands only when exactly
// three digits follow it ("8.500"); otherwise it is a decimal point. With
// several dots and no comma the last dot is the decimal point: the MEF data
// contains "12.000.00" where "12.000,00" was meant.
func ParseAmount(raw string) (float64, bool) {
	s := strings.TrimRight(strings.TrimSpace(raw), ".,")
	if !numeral.MatchString(s) {
		return 0, false
	}

	switch dots := strings.Count(s, "."); {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dots > 1:
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	case dots == 1:
		if idx := strings.Index(s, "."); len(s)-idx-1 == 3 {
			s = strings.Replace(s, ".", "", 1)
		}
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
