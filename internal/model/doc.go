// Package model defines the municipal surtax entry shared by the parser, the
// merge step, and the output encoders.
//
// An Entry carries exactly one rate structure: a flat Rate or a sorted list of
// Brackets whose last element may be unbounded (Limit == +Inf). Exemption is
// the income threshold at or below which the surtax is not applied; zero means
// no exemption. Rates are ratios (0.008 for 0,8%), never percentages.
//
// Dataset maps cadastral codes to entries. It is built fresh per run, merged
// by whole-record replacement, and discarded after serialization.
package model
