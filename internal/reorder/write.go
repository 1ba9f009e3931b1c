package reorder

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"corpusprep/internal/corpus"
	"corpusprep/internal/logging"
)

// Result describes one restored hypothesis file.
type Result struct {
	Slot  int
	Name  string
	Path  string
	Lines int
}

// WriteOutput writes slot i of table to outputDir/names[i] in canonical
// order. Each file is published only after its slot passed the occurrence
// count check, so a failure never leaves a partial file under a final name.
func WriteOutput(table *Table, names []string, outputDir string, opts Options) ([]Result, error) {
	if len(names) != table.Slots() {
		return nil, fmt.Errorf("%w: %d slots, %d output filenames", ErrSlotCount, table.Slots(), len(names))
	}
	if err := validateNames(names); err != nil {
		return nil, err
	}
	if strings.TrimSpace(outputDir) == "" {
		outputDir = "."
	}
	logger := opts.logger()

	if opts.Lock {
		lock, err := corpus.LockDir(outputDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				logger.Warn("release output lock", logging.Error(err))
			}
		}()
	}

	start := time.Now()
	results := make([]Result, 0, len(names))
	for slot, name := range names {
		dest := filepath.Join(outputDir, name)
		written, err := writeSlot(table, slot, dest)
		if err != nil {
			logging.ErrorWithContext(logger, "restore failed", "restore_failed",
				logging.Slot(slot),
				logging.File(dest),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "earlier slots were written; no partial file exists for this one"),
			)
			return results, err
		}
		logger.Info("wrote restored hypotheses",
			logging.Slot(slot),
			logging.File(dest),
			logging.Lines(written),
		)
		results = append(results, Result{Slot: slot, Name: name, Path: dest, Lines: written})
	}
	logger.Debug("restore complete",
		logging.Int("slots", len(results)),
		logging.Bool("locked", opts.Lock),
		logging.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

func writeSlot(table *Table, slot int, dest string) (int, error) {
	w, err := corpus.Create(dest)
	if err != nil {
		return 0, err
	}
	defer w.Abort()

	if err := table.walk(slot, w.WriteLine); err != nil {
		return 0, fmt.Errorf("restore %s: %w", dest, err)
	}
	if err := w.Commit(); err != nil {
		return 0, err
	}
	return w.Lines(), nil
}

func validateNames(names []string) error {
	seen := make(map[string]int, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("output filename %d is empty", i)
		}
		key := filepath.Clean(name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("output filenames %d and %d both resolve to %q", prev, i, key)
		}
		seen[key] = i
	}
	return nil
}
