package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"addizionali/internal/config"
	"addizionali/internal/convert"
	"addizionali/internal/logging"
	"addizionali/internal/model"
	"addizionali/internal/output"
	"addizionali/internal/preflight"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var codes []string
	var income float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the entries of a MEF source or a generated file",
		Long: `Show the entries read from a MEF source (.csv or .xlsx) or from a file
previously generated by addizionali (.json or .ts).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			path := args[0]
			if err := preflight.RequireFile("input file", path); err != nil {
				return err
			}

			ds, err := loadAny(cmd, cfg, path, logger)
			if err != nil {
				return err
			}
			ds = selectCodes(ds, codes)

			if jsonOutput {
				return writeJSON(cmd, ds)
			}

			out := cmd.OutOrStdout()
			if len(ds) == 0 {
				fmt.Fprintln(out, "No entries")
				return nil
			}

			headers := []string{"Code", "Name", "PR", "Region", "Rate", "Exemption"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
			withSurtax := cmd.Flags().Changed("income")
			if withSurtax {
				headers = append(headers, fmt.Sprintf("Surtax on %s", formatEuro(income)))
				aligns = append(aligns, alignRight)
			}

			rows := make([][]string, 0, len(ds))
			for _, key := range ds.Keys() {
				e := ds[key]
				row := []string{key, e.Name, orDash(e.Province), orDash(e.Region), describeStructure(e), describeExemption(e)}
				if withSurtax {
					row = append(row, describeSurtax(e, income))
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, fmt.Sprintf("%d entries", len(ds))))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&codes, "code", nil, "Only show these cadastral codes (repeatable)")
	cmd.Flags().Float64Var(&income, "income", 0, "Compute the surtax owed on this taxable income")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// loadAny reads a generated file when the extension names an output format,
// and a MEF source otherwise.
func loadAny(cmd *cobra.Command, cfg *config.Config, path string, logger *slog.Logger) (model.Dataset, error) {
	if _, ok := output.FromExtension(path); ok {
		ds, rejected, err := convert.LoadPublished(cfg, path, "")
		if err != nil {
			return nil, err
		}
		for _, rej := range rejected {
			logging.WarnWithContext(logger, "entry unreadable", "entry_invalid",
				logging.Code(rej.Key),
				logging.Int("line", rej.Line),
				logging.Error(rej.Err),
				logging.String(logging.FieldImpact, "entry not shown"),
				logging.String(logging.FieldErrorHint, "regenerate the file"),
			)
		}
		return ds, nil
	}
	return convert.BuildFromSource(cmd.Context(), cfg, path, logger)
}

func selectCodes(ds model.Dataset, codes []string) model.Dataset {
	if len(codes) == 0 {
		return ds
	}
	out := make(model.Dataset, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if entry, ok := ds[code]; ok {
			out[code] = entry
		}
	}
	return out
}

func describeSurtax(e model.Entry, income float64) string {
	amount, rate, exempt := e.Surtax(income)
	if exempt {
		return "esente"
	}
	return fmt.Sprintf("%s (%s)", formatEuro(amount), formatPercent(rate))
}
