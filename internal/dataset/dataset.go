// Package dataset assembles entries from source records and overlays a fresh
// dataset onto a previously published one.
package dataset

import (
	"context"
	"errors"
	"log/slog"
	"maps"

	"addizionali/internal/logging"
	"addizionali/internal/model"
	"addizionali/internal/rowparse"
	"addizionali/internal/source"
)

// Interpreter turns one record into an entry.
type Interpreter interface {
	Interpret(rec source.Record) (model.Entry, error)
}

// Build interprets every record and keys the resulting entries by cadastral
// code. Later records win over earlier ones with the same code. Unusable
// rows are skipped and only reported at debug level.
func Build(ctx context.Context, records []source.Record, in Interpreter, logger *slog.Logger) (model.Dataset, error) {
	logger = logging.NewComponentLogger(logger, "dataset")
	out := make(model.Dataset, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := in.Interpret(rec)
		if err != nil {
			logger.DebugContext(ctx, "row skipped",
				logging.Int("row", i+2),
				logging.String("reason", skipReason(err)),
				logging.Error(err),
			)
			continue
		}
		out[entry.ID] = entry
	}
	return out, nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, rowparse.ErrMissingCode):
		return "missing_code"
	case errors.Is(err, rowparse.ErrMissingName):
		return "missing_name"
	case errors.Is(err, rowparse.ErrNoRate):
		return "no_rate"
	default:
		return "invalid_entry"
	}
}

// Stats reports the outcome of a merge.
type Stats struct {
	Base    int
	Updated int
	Added   int
	Total   int
}

// Merge overlays fresh onto base by key. Entries present in fresh replace
// the base record whole; base entries missing from fresh are kept. Neither
// input is modified.
func Merge(base, fresh model.Dataset) (model.Dataset, Stats) {
	out := make(model.Dataset, len(base)+len(fresh))
	maps.Copy(out, base)
	stats := Stats{Base: len(base)}
	for key, entry := range fresh {
		if _, exists := base[key]; exists {
			stats.Updated++
		} else {
			stats.Added++
		}
		out[key] = entry
	}
	stats.Total = len(out)
	return out, stats
}
