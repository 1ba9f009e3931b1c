package reorder

import (
	"errors"
	"fmt"
	"log/slog"

	"corpusprep/internal/corpus"
	"corpusprep/internal/logging"
)

// Options controls how corpora are read and written.
type Options struct {
	Corpus corpus.Options
	// Lock holds an exclusive lock on the output directory while writing.
	Lock   bool
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	return logging.NewComponentLogger(o.Logger, "reorder")
}

// MatchOrder reads the canonical source and each scrambled source/hypothesis
// pair and returns the filled match table. Every scrambled source must hold
// exactly the canonical multiset of lines.
func MatchOrder(canonical string, srcs, hyps []string, opts Options) (*Table, error) {
	if len(srcs) != len(hyps) {
		return nil, fmt.Errorf("%w: %d sources, %d hypotheses", ErrSlotCount, len(srcs), len(hyps))
	}
	logger := opts.logger()

	lines, err := corpus.ReadLines(canonical, opts.Corpus)
	if err != nil {
		return nil, fmt.Errorf("read canonical source: %w", err)
	}
	table, err := NewTable(lines, len(srcs))
	if err != nil {
		return nil, err
	}
	logger.Info("loaded canonical source",
		logging.File(canonical),
		logging.Lines(len(lines)),
		logging.Int("distinct", len(table.counts)),
	)
	if values, extra := table.counts.Duplicates(); values > 0 {
		logging.WarnWithContext(logger, "duplicate lines in original source", "duplicate_source_lines",
			logging.File(canonical),
			logging.Int("duplicated_values", values),
			logging.Int("extra_occurrences", extra),
			logging.String(logging.FieldImpact, "duplicates are matched by order of appearance"),
			logging.String(logging.FieldErrorHint, "verify the cluster split keeps repeated lines in their original relative order"),
		)
	}

	for slot := range srcs {
		if err := fillFromFiles(table, slot, srcs[slot], hyps[slot], opts, logger); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func fillFromFiles(table *Table, slot int, srcPath, hypPath string, opts Options, logger *slog.Logger) error {
	srcLines, err := corpus.ReadLines(srcPath, opts.Corpus)
	if err != nil {
		return fmt.Errorf("read scrambled source: %w", err)
	}
	hypLines, err := corpus.ReadLines(hypPath, opts.Corpus)
	if err != nil {
		return fmt.Errorf("read scrambled hypotheses: %w", err)
	}
	if len(srcLines) != len(hypLines) {
		table.uneven = append(table.uneven, LengthMismatch{Slot: slot, SourceLines: len(srcLines), HypothesisLines: len(hypLines)})
		logging.WarnWithContext(logger, "source and hypothesis line counts differ", "hypothesis_length_mismatch",
			logging.Slot(slot),
			logging.String("source", srcPath),
			logging.String("hypotheses", hypPath),
			logging.Int("source_lines", len(srcLines)),
			logging.Int("hypothesis_lines", len(hypLines)),
			logging.String(logging.FieldImpact, "unpaired lines are ignored and restoring this slot will fail"),
		)
	}

	if err := table.Fill(slot, srcLines, hypLines); err != nil {
		var mismatch *MismatchError
		if errors.As(err, &mismatch) {
			mismatch.Path = srcPath
		}
		return err
	}
	logger.Debug("matched scrambled pair",
		logging.Slot(slot),
		logging.String("source", srcPath),
		logging.String("hypotheses", hypPath),
		logging.Lines(min(len(srcLines), len(hypLines))),
	)
	return nil
}
