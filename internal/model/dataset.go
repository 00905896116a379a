package model

import (
	"maps"
	"slices"
)

// Dataset maps cadastral codes to entries.
type Dataset map[string]Entry

// Keys returns the dataset keys in ascending order.
func (d Dataset) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// WithoutLocale returns a copy of the dataset with province and region cleared.
func (d Dataset) WithoutLocale() Dataset {
	out := make(Dataset, len(d))
	for key, entry := range d {
		entry.Province = ""
		entry.Region = ""
		out[key] = entry
	}
	return out
}
