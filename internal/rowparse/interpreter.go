package rowparse

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"addizionali/internal/config"
	"addizionali/internal/fascia"
	"addizionali/internal/italnum"
	"addizionali/internal/logging"
	"addizionali/internal/model"
	"addizionali/internal/province"
	"addizionali/internal/source"
)

// Reasons a row yields no entry.
var (
	ErrMissingCode = errors.New("missing cadastral code")
	ErrMissingName = errors.New("missing municipality name")
	ErrNoRate      = errors.New("no positive rate")
)

// Pair is one rate/description slot of a row. HasRate is false when the rate
// cell is empty or holds the "no data" sentinel.
type Pair struct {
	Slot        int
	Rate        float64
	HasRate     bool
	Description string
}

// Interpreter maps source records to entries using the configured columns.
type Interpreter struct {
	columns config.Columns
	logger  *slog.Logger
}

// New returns an Interpreter. A nil logger discards diagnostics.
func New(columns config.Columns, logger *slog.Logger) *Interpreter {
	return &Interpreter{
		columns: columns,
		logger:  logging.NewComponentLogger(logger, "rows"),
	}
}

// RateColumn returns the header of the rate column for slot (1-based).
func (in *Interpreter) RateColumn(slot int) string {
	return slotColumn(in.columns.RatePrefix, slot)
}

// DescriptionColumn returns the header of the description column for slot.
func (in *Interpreter) DescriptionColumn(slot int) string {
	return slotColumn(in.columns.DescriptionPrefix, slot)
}

func slotColumn(prefix string, slot int) string {
	if slot <= 1 {
		return prefix
	}
	return prefix + "_" + strconv.Itoa(slot)
}

// Pairs collects every slot holding a rate or a description, in column order.
func (in *Interpreter) Pairs(rec source.Record) []Pair {
	var pairs []Pair
	for slot := 1; slot <= in.columns.Slots; slot++ {
		rate, hasRate := italnum.ParseRate(rec[in.RateColumn(slot)])
		description := rec[in.DescriptionColumn(slot)]
		if !hasRate && description == "" {
			continue
		}
		pairs = append(pairs, Pair{Slot: slot, Rate: rate, HasRate: hasRate, Description: description})
	}
	return pairs
}

// Interpret builds the entry for rec. The returned error explains why a row
// was not usable; it is one of the package sentinels or an entry validation
// failure.
func (in *Interpreter) Interpret(rec source.Record) (model.Entry, error) {
	code := rec.First(in.columns.Code...)
	if code == "" {
		return model.Entry{}, ErrMissingCode
	}
	rawName := rec.First(in.columns.Name...)
	if rawName == "" {
		return model.Entry{}, ErrMissingName
	}

	pairs := in.Pairs(rec)
	exemption, hasExemption := in.explicitExemption(rec)

	var kept []Pair
	for _, pair := range pairs {
		kind := fascia.Classify(pair.Description)
		if kind.Has(fascia.Exemption) {
			if !hasExemption && kind.Has(fascia.GenericExemption) {
				if amount, ok := italnum.ParseCurrencyAmount(pair.Description); ok && amount > 0 {
					exemption, hasExemption = amount, true
				}
			}
			continue
		}
		// Zero rates beside a real description are noise in the source.
		if pair.HasRate && pair.Rate > 0 {
			kept = append(kept, pair)
		}
	}
	if len(kept) == 0 {
		return model.Entry{}, ErrNoRate
	}

	entry := model.Entry{
		ID:   code,
		Name: CapitalizeName(rawName),
	}
	if pr := province.Normalize(rec.First(in.columns.Province...)); pr != "" {
		entry.Province = pr
		if region, ok := province.Region(pr); ok {
			entry.Region = region
		}
	}
	if hasExemption {
		entry.Exemption = exemption
	}

	if progressive(kept) {
		entry.Brackets = in.brackets(code, kept)
	} else {
		entry.Rate = kept[0].Rate
	}

	if err := entry.Validate(); err != nil {
		return model.Entry{}, fmt.Errorf("entry %s: %w", code, err)
	}
	return entry, nil
}

// explicitExemption reads the exemption amount column. Unreadable or
// non-positive values count as absent.
func (in *Interpreter) explicitExemption(rec source.Record) (float64, bool) {
	raw := rec.First(in.columns.Exemption...)
	if raw == "" {
		return 0, false
	}
	amount, ok := italnum.ParseAmount(raw)
	if !ok || amount <= 0 {
		return 0, false
	}
	return amount, true
}

func progressive(pairs []Pair) bool {
	for _, pair := range pairs {
		if fascia.IsBracket(pair.Description) {
			return true
		}
	}
	return false
}

// brackets converts every kept pair into a bracket. A limit that cannot be
// read is treated as unbounded, so the same row may end up with several
// unbounded brackets; only the highest rate among them survives.
func (in *Interpreter) brackets(code string, pairs []Pair) []model.Bracket {
	out := make([]model.Bracket, 0, len(pairs))
	top := -1
	for _, pair := range pairs {
		limit := model.Unbounded
		if !fascia.IsUnboundedBracket(pair.Description) {
			if amount, ok := italnum.ParseCurrencyAmount(pair.Description); ok && amount > 0 {
				limit = amount
			} else {
				in.logger.Debug("bracket limit unreadable, treating as unbounded",
					logging.Code(code),
					logging.Int("slot", pair.Slot),
					logging.String("description", pair.Description),
				)
			}
		}
		bracket := model.Bracket{Limit: limit, Rate: pair.Rate}
		if bracket.IsUnbounded() {
			if top >= 0 {
				in.logger.Debug("dropping extra unbounded bracket",
					logging.Code(code),
					logging.Int("slot", pair.Slot),
				)
				if bracket.Rate > out[top].Rate {
					out[top] = bracket
				}
				continue
			}
			top = len(out)
		}
		out = append(out, bracket)
	}
	model.SortBrackets(out)
	return out
}
