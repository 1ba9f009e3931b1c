package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"corpusprep/internal/clusters"
)

type pairFlags struct {
	base      string
	srcLang   string
	trgLang   string
	nClusters int
}

func (p *pairFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.base, "input-file", "", "Corpus base path without the language extension")
	cmd.Flags().StringVar(&p.srcLang, "src-lang", "", "Source language extension")
	cmd.Flags().StringVar(&p.trgLang, "trg-lang", "", "Target language extension")
	cmd.Flags().IntVar(&p.nClusters, "n-clusters", 0, "Number of clusters (default: clusters.count from config)")
	_ = cmd.MarkFlagRequired("input-file")
	_ = cmd.MarkFlagRequired("src-lang")
	_ = cmd.MarkFlagRequired("trg-lang")
}

func (p *pairFlags) pair() clusters.Pair {
	return clusters.Pair{Base: p.base, SrcLang: p.srcLang, TrgLang: p.trgLang}
}

func (p *pairFlags) count(ctx *commandContext) (int, error) {
	if p.nClusters != 0 {
		return p.nClusters, nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return 0, err
	}
	return cfg.Clusters.Count, nil
}

func newSeparateCommand(ctx *commandContext) *cobra.Command {
	var flags pairFlags
	var indices string

	cmd := &cobra.Command{
		Use:   "separate",
		Short: "Split an aligned corpus pair into per-cluster files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := flags.count(ctx)
			if err != nil {
				return err
			}
			pair := flags.pair()
			counts, err := clusters.Separate(pair, indices, n, clusters.Options{
				Corpus: ctx.corpusOptions(),
				Logger: ctx.loggerValue(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(counts))
			total := 0
			for id, lines := range counts {
				total += lines
				rows = append(rows, []string{
					itoa(id),
					itoa(lines),
					pair.ClusterPath(id, pair.SrcLang),
					pair.ClusterPath(id, pair.TrgLang),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Cluster", "Lines", "Source", "Target"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
			))
			status := newStatusPrinter(out)
			var empty []string
			for id, lines := range counts {
				if lines == 0 {
					empty = append(empty, itoa(id))
				}
			}
			if len(empty) > 0 {
				status.warn("Empty", "cluster(s) %s received no lines", strings.Join(empty, ", "))
			}
			status.ok("Separated", "%d line(s) into %d cluster(s)", total, n)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&indices, "indices", "", "File with one integer cluster ID per corpus line")
	_ = cmd.MarkFlagRequired("indices")
	return cmd
}

func newConcatCommand(ctx *commandContext) *cobra.Command {
	var flags pairFlags

	cmd := &cobra.Command{
		Use:   "concat",
		Short: "Concatenate per-cluster files in cluster order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := flags.count(ctx)
			if err != nil {
				return err
			}
			outputs, err := clusters.Concat(flags.pair(), n, clusters.Options{
				Corpus: ctx.corpusOptions(),
				Logger: ctx.loggerValue(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(outputs))
			for _, o := range outputs {
				rows = append(rows, []string{o.Lang, itoa(o.Lines), o.Path})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Lang", "Lines", "Path"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
