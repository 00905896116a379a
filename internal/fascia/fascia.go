// Package fascia classifies the free-text band descriptions ("fasce") that
// accompany each rate in the MEF dataset.
package fascia

import "strings"

// Kind is a set of categories a description belongs to. Categories overlap:
// an exemption can also be generic, a bracket can also be unbounded.
type Kind uint8

const (
	Exemption Kind = 1 << iota
	GenericExemption
	Bracket
	UnboundedBracket
	FlatRate
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{Exemption, "esenzione"},
	{GenericExemption, "esenzione-generica"},
	{Bracket, "scaglione"},
	{UnboundedBracket, "scaglione-illimitato"},
	{FlatRate, "aliquota-unica"},
}

// Has reports whether k includes every category in other.
func (k Kind) Has(other Kind) bool {
	return other != 0 && k&other == other
}

func (k Kind) String() string {
	if k == 0 {
		return "-"
	}
	var parts []string
	for _, n := range kindNames {
		if k.Has(n.kind) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// Classify returns every category the description belongs to.
func Classify(description string) Kind {
	lower := strings.ToLower(description)
	var k Kind
	if strings.Contains(lower, "esenzione") {
		k |= Exemption
		if isGenericExemption(lower) {
			k |= GenericExemption
		}
	}
	if strings.Contains(lower, "scaglione") {
		k |= Bracket
	}
	if strings.Contains(lower, "oltre") && !strings.Contains(lower, "fino") {
		k |= UnboundedBracket
	}
	if strings.Contains(lower, "aliquota unica") {
		k |= FlatRate
	}
	return k
}

// isGenericExemption matches income-threshold exemptions that apply to every
// taxpayer. Category-specific ones (pensioners, self-employment income) are
// not modeled.
func isGenericExemption(lower string) bool {
	if strings.Contains(lower, "redditi imponibili") {
		return true
	}
	return strings.Contains(lower, "reddito complessivo") && !strings.Contains(lower, "lavoro autonomo")
}

// IsExemption reports whether the description declares an exemption.
func IsExemption(description string) bool { return Classify(description).Has(Exemption) }

// IsGenericExemption reports whether the description is an income-threshold
// exemption that can be modeled as Entry.Exemption.
func IsGenericExemption(description string) bool {
	return Classify(description).Has(GenericExemption)
}

// IsBracket reports whether the description refers to a progressive bracket.
func IsBracket(description string) bool { return Classify(description).Has(Bracket) }

// IsUnboundedBracket reports whether the description marks the open top bracket.
func IsUnboundedBracket(description string) bool {
	return Classify(description).Has(UnboundedBracket)
}
