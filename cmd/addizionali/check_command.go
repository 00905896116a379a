package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"addizionali/internal/convert"
	"addizionali/internal/output"
	"addizionali/internal/preflight"
)

var errChecksFailed = errors.New("checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var updatePath string
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "check <csv>",
		Short: "Verify inputs and do a dry parse without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failed := false
			emit := func(label string, kind statusKind, message string) {
				if kind == statusError {
					failed = true
				}
				fmt.Fprintln(out, renderStatusLine(label, kind, message, colorize))
			}

			for _, line := range renderSectionHeader("Files", colorize) {
				fmt.Fprintln(out, line)
			}
			if ctx.configExists {
				emit("Config", statusInfo, ctx.configPath)
			} else {
				emit("Config", statusInfo, "defaults (no config file)")
			}
			results := preflight.RunAll(preflight.Paths{Source: args[0], Update: updatePath, Output: outputPath})
			for _, r := range results {
				emit(r.Name, resultKind(r), r.Detail)
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Data", colorize) {
				fmt.Fprintln(out, line)
			}

			var format output.Format
			if outputPath != "" {
				format, err = output.Detect(outputPath, formatFlag, cfg.Output.Format)
				if err != nil {
					emit("Output format", statusError, err.Error())
				} else {
					emit("Output format", statusOK, string(format))
				}
			}

			if !results[0].Passed {
				emit("Source", statusError, "skipped (file unavailable)")
			} else if ds, err := convert.BuildFromSource(cmd.Context(), cfg, args[0], logger); err != nil {
				emit("Source", statusError, err.Error())
			} else if len(ds) == 0 {
				emit("Source", statusWarn, fmt.Sprintf("%s has no usable rows", filepath.Base(args[0])))
			} else {
				emit("Source", statusOK, fmt.Sprintf("%d entries with data", len(ds)))
			}

			if updatePath != "" && preflight.RequireFile("base file", updatePath) == nil {
				base, rejected, err := convert.LoadPublished(cfg, updatePath, string(format))
				switch {
				case err != nil:
					emit("Update base", statusError, err.Error())
				case len(rejected) > 0:
					emit("Update base", statusWarn, fmt.Sprintf("%d entries, %d unreadable and would be dropped", len(base), len(rejected)))
				default:
					emit("Update base", statusOK, fmt.Sprintf("%d entries", len(base)))
				}
			}

			if failed {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file the conversion would write")
	cmd.Flags().StringVar(&updatePath, "update", "", "Base file the conversion would update")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format override")
	return cmd
}

func resultKind(r preflight.Result) statusKind {
	if r.Passed {
		return statusOK
	}
	return statusError
}
