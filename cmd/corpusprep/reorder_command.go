package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"corpusprep/internal/reorder"
)

func newReorderCommand(ctx *commandContext) *cobra.Command {
	var origSrc string
	var srcs []string
	var hyps []string
	var names []string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Restore clustered hypotheses into the original source order",
		Long: `Restore per-cluster hypotheses into the line order of the original source.

Each --srcs file must contain exactly the lines of --orig-src in some order;
--hyps[i] holds the model output aligned line by line with --srcs[i]. One file
per hypothesis is written to --output-path under the matching --hyp-names entry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(srcs) != len(hyps) || len(hyps) != len(names) {
				return fmt.Errorf("%w: %d sources, %d hypotheses, %d names",
					reorder.ErrSlotCount, len(srcs), len(hyps), len(names))
			}
			if len(srcs) == 0 {
				return fmt.Errorf("at least one --srcs/--hyps/--hyp-names triple is required")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outputDir := strings.TrimSpace(outputPath)
			if outputDir == "" {
				outputDir = cfg.Output.Dir
			}

			opts := reorder.Options{
				Corpus: ctx.corpusOptions(),
				Lock:   cfg.Output.Lock,
				Logger: ctx.loggerValue(),
			}
			table, err := reorder.MatchOrder(origSrc, srcs, hyps, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			status := newStatusPrinter(out)
			if values, extra := table.Counts().Duplicates(); values > 0 {
				status.warn("Duplicates", "%d repeated line(s), %d extra occurrence(s); matched by order of appearance", values, extra)
			}
			for _, m := range table.LengthMismatches() {
				status.warn(fmt.Sprintf("Slot %d", m.Slot), "%s has %d line(s), %s has %d",
					srcs[m.Slot], m.SourceLines, hyps[m.Slot], m.HypothesisLines)
			}

			results, err := reorder.WriteOutput(table, names, outputDir, opts)
			if len(results) > 0 {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{itoa(r.Slot), r.Name, itoa(r.Lines), r.Path})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Slot", "Name", "Lines", "Path"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
				))
			}
			if err != nil {
				status.fail("Restored", "%d of %d file(s) in %s", len(results), len(names), outputDir)
				return err
			}
			status.ok("Restored", "%d file(s) in %s", len(results), outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&origSrc, "orig-src", "", "Original source corpus that defines the target line order")
	cmd.Flags().StringSliceVar(&srcs, "srcs", nil, "Scrambled source files, one per hypothesis (repeatable)")
	cmd.Flags().StringSliceVar(&hyps, "hyps", nil, "Hypothesis files aligned with --srcs (repeatable)")
	cmd.Flags().StringSliceVar(&names, "hyp-names", nil, "Output filenames for the restored hypotheses (repeatable)")
	cmd.Flags().StringVarP(&outputPath, "output-path", "o", "", "Output directory (default: output.dir from config)")
	_ = cmd.MarkFlagRequired("orig-src")
	return cmd
}
