package italnum

import (
	"math"
	"strconv"
	"strings"
)

// NoDataSentinel marks a rate cell for which the municipality supplied no data.
const NoDataSentinel = "0*"

// ParseRate converts a comma-decimal percentage ("0,8", ",8") into a ratio
// rounded to six decimals. ok is false for empty cells, the no-data sentinel,
// and text that is not a number.
func ParseRate(raw string) (rate float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NoDataSentinel {
		return 0, false
	}
	if strings.HasPrefix(raw, ",") {
		raw = "0" + raw
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return round6(value / 100), true
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
