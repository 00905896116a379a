package rowparse

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CapitalizeName title-cases a municipality name. Each whitespace separated
// word is title-cased and so is every apostrophe separated segment inside it:
// "ACI SANT'ANTONIO" becomes "Aci Sant'Antonio".
func CapitalizeName(name string) string {
	caser := cases.Title(language.Italian)
	words := strings.Fields(name)
	for i, word := range words {
		segments := strings.Split(word, "'")
		for j, segment := range segments {
			segments[j] = caser.String(segment)
		}
		words[i] = strings.Join(segments, "'")
	}
	return strings.Join(words, " ")
}
