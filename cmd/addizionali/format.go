package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"addizionali/internal/model"
)

// Italian number formatting for terminal output.
const italianAmount = "#.###,##"

func formatEuro(v float64) string {
	return "€ " + humanize.FormatFloat(italianAmount, v)
}

func formatPercent(rate float64) string {
	return humanize.FormatFloat(italianAmount, rate*100) + "%"
}

func describeStructure(e model.Entry) string {
	if !e.IsProgressive() {
		return formatPercent(e.Rate)
	}
	parts := make([]string, len(e.Brackets))
	for i, b := range e.Brackets {
		if b.IsUnbounded() {
			parts[i] = fmt.Sprintf("%s oltre", formatPercent(b.Rate))
			continue
		}
		parts[i] = fmt.Sprintf("%s fino a %s", formatPercent(b.Rate), formatEuro(b.Limit))
	}
	return strings.Join(parts, " | ")
}

func describeExemption(e model.Entry) string {
	if !e.HasExemption() {
		return "-"
	}
	return formatEuro(e.Exemption)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
