package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"addizionali/internal/convert"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var outputFlag string
	var updateFlag string
	var formatFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "addizionali <csv>",
		Short: "Convert the MEF municipal IRPEF surtax table to JSON or TypeScript",
		Long: `Convert the MEF "Addizionale Comunale IRPEF" CSV into a dataset keyed by
cadastral code. The output format follows the -o extension (.json or .ts).

With --update the new entries are overlaid on a previously generated file:
entries present in the CSV replace the old ones, all others are kept.`,
		Example: `  addizionali Add_comunale_irpef2025.csv -o comunali_2025.json
  addizionali Add_comunale_irpef2026.csv --update comunali_2025.ts -o comunali_2026.ts`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			res, err := convert.Run(cmd.Context(), cfg, convert.Request{
				Source: args[0],
				Output: outputFlag,
				Update: updateFlag,
				Format: formatFlag,
			}, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Parsed %d entries with data from %s\n", res.Parsed, filepath.Base(args[0]))
			if res.Updated {
				fmt.Fprintf(out, "Update mode: %d entries in base, %d updated, %d added, %d total in output\n",
					res.Stats.Base, res.Stats.Updated, res.Stats.Added, res.Stats.Total)
				for _, rej := range res.Rejected {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: dropped base %v\n", rej)
				}
				if n := len(res.Rejected); n > 0 {
					fmt.Fprintf(out, "Dropped %d unreadable base entries\n", n)
				}
			}
			if res.Backup != "" {
				fmt.Fprintf(out, "Previous output saved to %s\n", res.Backup)
			}
			fmt.Fprintf(out, "Written %d entries to %s (%s)\n", res.Written, outputFlag, humanize.Bytes(uint64(res.Bytes)))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (.json or .ts)")
	rootCmd.Flags().StringVar(&updateFlag, "update", "", "Previously generated file to update (rolling update)")
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json or ts (default: from the output extension)")
	_ = rootCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
