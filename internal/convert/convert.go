// Package convert runs a full conversion: read the MEF source, build the
// dataset, optionally overlay it on a previously published file, and write
// the result.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"addizionali/internal/config"
	"addizionali/internal/dataset"
	"addizionali/internal/fileutil"
	"addizionali/internal/logging"
	"addizionali/internal/model"
	"addizionali/internal/output"
	"addizionali/internal/preflight"
	"addizionali/internal/rowparse"
	"addizionali/internal/source"
)

// Request describes one conversion.
type Request struct {
	Source string
	Output string
	// Update is the previously published file to overlay; empty for a
	// fresh run.
	Update string
	// Format overrides the format detected from Output.
	Format string
}

// Result summarizes a completed conversion.
type Result struct {
	RunID  string
	Format output.Format
	// Parsed counts the entries built from the source.
	Parsed  int
	Updated bool
	Stats   dataset.Stats
	// Rejected lists base entries dropped because they could not be read.
	Rejected []output.EntryError
	Written  int
	Bytes    int64
	// Backup is the path the previous output was copied to, if any.
	Backup string
}

// Run executes req. Missing inputs are reported before anything is written
// and wrap preflight.ErrNotFound.
func Run(ctx context.Context, cfg *config.Config, req Request, logger *slog.Logger) (Result, error) {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	result := Result{RunID: uuid.NewString()}
	ctx = logging.WithRunID(ctx, result.RunID)
	base := logging.WithContext(ctx, logger)
	logger = logging.NewComponentLogger(base, "convert")

	if err := preflight.RequireFile("CSV file", req.Source); err != nil {
		return result, err
	}
	if req.Update != "" {
		if err := preflight.RequireFile("base file", req.Update); err != nil {
			return result, err
		}
	}
	if check := preflight.CheckDirectoryAccess("output directory", filepath.Dir(req.Output)); !check.Passed {
		return result, fmt.Errorf("output directory: %s", check.Detail)
	}

	format, err := output.Detect(req.Output, req.Format, cfg.Output.Format)
	if err != nil {
		return result, err
	}
	result.Format = format

	logger.Info("conversion started",
		logging.String("source", req.Source),
		logging.String("output", req.Output),
		logging.String("format", string(format)),
	)

	fresh, err := BuildFromSource(ctx, cfg, req.Source, base)
	if err != nil {
		return result, err
	}
	result.Parsed = len(fresh)

	final := fresh
	if req.Update != "" {
		published, rejected, err := LoadPublished(cfg, req.Update, string(format))
		if err != nil {
			err = fmt.Errorf("load base %s: %w", filepath.Base(req.Update), err)
			logFailure(logger, "base file unreadable", "base_load_failed", err, "regenerate the base file or run without --update")
			return result, err
		}
		for _, rej := range rejected {
			logging.WarnWithContext(logger, "base entry dropped", "base_entry_invalid",
				logging.Code(rej.Key),
				logging.Int("line", rej.Line),
				logging.Error(rej.Err),
				logging.String(logging.FieldImpact, "entry is missing from the output unless the source provides it"),
				logging.String(logging.FieldErrorHint, "fix or remove the entry in the base file"),
			)
		}
		result.Rejected = rejected
		final, result.Stats = dataset.Merge(published, fresh)
		result.Updated = true
	}

	if !cfg.Output.IncludeLocale {
		final = final.WithoutLocale()
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, format, final, TSOptions(cfg, req.Source)); err != nil {
		logFailure(logger, "encode failed", "encode_failed", err, "check the output settings in the config file")
		return result, err
	}

	backup, err := publish(req.Output, buf.Bytes(), cfg.Output.Backup)
	if err != nil {
		logFailure(logger, "publish failed", "publish_failed", err, "check that no other run is writing the output")
		return result, err
	}
	result.Backup = backup
	result.Written = len(final)
	result.Bytes = int64(buf.Len())

	logger.Info("conversion finished",
		logging.Int("entries", result.Written),
		logging.Int64("bytes", result.Bytes),
	)
	return result, nil
}

func logFailure(logger *slog.Logger, msg, eventType string, err error, hint string) {
	logging.ErrorWithContext(logger, msg, eventType,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
	)
}

// BuildFromSource reads a CSV or XLSX source and interprets every row.
func BuildFromSource(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) (model.Dataset, error) {
	records, err := source.Open(path, source.Options{
		Delimiter: cfg.DelimiterRune(),
		Encoding:  cfg.Input.Encoding,
		Sheet:     cfg.Input.Sheet,
	})
	if err != nil {
		return nil, err
	}
	return dataset.Build(ctx, records, rowparse.New(cfg.Columns, logger), logger)
}

// LoadPublished reads a file previously written by Run. The format comes
// from the file extension, falling back to fallback.
func LoadPublished(cfg *config.Config, path, fallback string) (model.Dataset, []output.EntryError, error) {
	format, err := output.Detect(path, "", fallback)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()
	return output.Decode(file, format, cfg.Output.ConstName)
}

// TSOptions derives the module declarations from the output config.
func TSOptions(cfg *config.Config, sourcePath string) output.TSOptions {
	opts := output.TSOptions{
		ConstName:        cfg.Output.ConstName,
		DefaultConstName: cfg.Output.DefaultConstName,
		DefaultRate:      cfg.Output.DefaultRate,
		TypeName:         cfg.Output.TypeName,
		TypeImport:       cfg.Output.TypeImport,
	}
	if sourcePath != "" {
		opts.Source = filepath.Base(sourcePath)
	}
	return opts
}

// publish locks path, backs up the current file when asked, and replaces it.
func publish(path string, data []byte, backup bool) (string, error) {
	lock, err := fileutil.TryLock(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = lock.Unlock() }()

	var backupPath string
	if backup {
		if _, err := os.Stat(path); err == nil {
			backupPath = fileutil.BackupPath(path)
			if err := fileutil.CopyFileVerified(path, backupPath); err != nil {
				return "", fmt.Errorf("backup %s: %w", filepath.Base(path), err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat output: %w", err)
		}
	}

	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return backupPath, nil
}
