package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
)

// Unbounded is the upper limit of the open top bracket.
var Unbounded = math.Inf(1)

// Bracket is one progressive tier: income up to Limit is taxed at Rate.
type Bracket struct {
	Limit float64
	Rate  float64
}

// IsUnbounded reports whether the bracket has no upper limit.
func (b Bracket) IsUnbounded() bool {
	return math.IsInf(b.Limit, 1)
}

type bracketJSON struct {
	Limit *float64 `json:"limite"`
	Rate  float64  `json:"aliquota"`
}

// MarshalJSON encodes the unbounded limit as null.
func (b Bracket) MarshalJSON() ([]byte, error) {
	out := bracketJSON{Rate: b.Rate}
	if !b.IsUnbounded() {
		limit := b.Limit
		out.Limit = &limit
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null limit as Unbounded.
func (b *Bracket) UnmarshalJSON(data []byte) error {
	var in bracketJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.Rate = in.Rate
	if in.Limit == nil {
		b.Limit = Unbounded
	} else {
		b.Limit = *in.Limit
	}
	return nil
}

// Entry is the surtax definition of one municipality.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Province  string    `json:"pr,omitempty"`
	Region    string    `json:"regione,omitempty"`
	Rate      float64   `json:"aliquota,omitempty"`
	Brackets  []Bracket `json:"scaglioni,omitempty"`
	Exemption float64   `json:"esenzione,omitempty"`
}

// IsProgressive reports whether the entry uses brackets instead of a flat rate.
func (e Entry) IsProgressive() bool {
	return len(e.Brackets) > 0
}

// HasExemption reports whether an exemption threshold is set.
func (e Entry) HasExemption() bool {
	return e.Exemption > 0
}

var (
	errMissingID        = errors.New("missing id")
	errMissingName      = errors.New("missing name")
	errNoRateStructure  = errors.New("neither flat rate nor brackets")
	errBothStructures   = errors.New("both flat rate and brackets")
	errInvalidExemption = errors.New("exemption must be a positive amount")
)

// Validate checks the entry invariants.
func (e Entry) Validate() error {
	if e.ID == "" {
		return errMissingID
	}
	if e.Name == "" {
		return errMissingName
	}
	if e.Exemption < 0 || math.IsNaN(e.Exemption) || math.IsInf(e.Exemption, 0) {
		return errInvalidExemption
	}
	switch {
	case e.Rate != 0 && len(e.Brackets) > 0:
		return errBothStructures
	case e.Rate == 0 && len(e.Brackets) == 0:
		return errNoRateStructure
	case e.Rate != 0:
		return validateRate(e.Rate)
	}

	unbounded := 0
	for i, b := range e.Brackets {
		if err := validateRate(b.Rate); err != nil {
			return fmt.Errorf("bracket %d: %w", i+1, err)
		}
		if math.IsNaN(b.Limit) || b.Limit <= 0 {
			return fmt.Errorf("bracket %d: invalid limit %v", i+1, b.Limit)
		}
		if i > 0 && b.Limit < e.Brackets[i-1].Limit {
			return fmt.Errorf("bracket %d: limit %v below previous %v", i+1, b.Limit, e.Brackets[i-1].Limit)
		}
		if b.IsUnbounded() {
			unbounded++
		}
	}
	if unbounded > 1 {
		return fmt.Errorf("%d unbounded brackets", unbounded)
	}
	return nil
}

func validateRate(rate float64) error {
	if math.IsNaN(rate) || rate <= 0 || rate > 1 {
		return fmt.Errorf("rate %v outside (0, 1]", rate)
	}
	return nil
}

// SortBrackets orders brackets ascending by limit, unbounded last. The sort is
// stable so equal limits keep their column order.
func SortBrackets(brackets []Bracket) {
	slices.SortStableFunc(brackets, func(a, b Bracket) int {
		switch {
		case a.Limit < b.Limit:
			return -1
		case a.Limit > b.Limit:
			return 1
		default:
			return 0
		}
	})
}

// Surtax computes the municipal surtax owed on income. rate is the flat rate,
// or the rate of the highest bracket reached; exempt is true when the income
// falls at or below the exemption threshold.
func (e Entry) Surtax(income float64) (amount, rate float64, exempt bool) {
	if income <= 0 {
		return 0, e.firstRate(), false
	}
	if e.HasExemption() && income <= e.Exemption {
		return 0, e.firstRate(), true
	}
	if !e.IsProgressive() {
		return income * e.Rate, e.Rate, false
	}

	remaining := income
	lower := 0.0
	for _, b := range e.Brackets {
		span := math.Min(remaining, b.Limit-lower)
		if span > 0 {
			amount += span * b.Rate
			rate = b.Rate
		}
		remaining -= span
		lower = b.Limit
		if remaining <= 0 {
			break
		}
	}
	return amount, rate, false
}

func (e Entry) firstRate() float64 {
	if e.IsProgressive() {
		return e.Brackets[0].Rate
	}
	return e.Rate
}
