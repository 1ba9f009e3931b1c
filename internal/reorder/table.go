package reorder

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
)

// maxReportedDifferences bounds the detail carried by a MismatchError message.
const maxReportedDifferences = 5

// OccurrenceKey identifies the Index-th occurrence (zero based, in corpus
// order) of Line.
type OccurrenceKey struct {
	Index int
	Line  string
}

// Table maps every canonical occurrence to one optional hypothesis per
// scrambled pair. A nil slot has not been filled.
type Table struct {
	lines   []string
	counts  Counter
	slots   int
	entries map[OccurrenceKey][]*string
	uneven  []LengthMismatch
}

// LengthMismatch records a scrambled pair whose hypothesis file has a
// different line count than its source.
type LengthMismatch struct {
	Slot            int
	SourceLines     int
	HypothesisLines int
}

// NewTable creates a table with an empty slot row for each occurrence in
// canonical.
func NewTable(canonical []string, slots int) (*Table, error) {
	if slots <= 0 {
		return nil, fmt.Errorf("%w: at least one scrambled source is required", ErrSlotCount)
	}
	counts := CountLines(canonical)
	entries := make(map[OccurrenceKey][]*string, len(canonical))
	for line, n := range counts {
		for i := range n {
			entries[OccurrenceKey{Index: i, Line: line}] = make([]*string, slots)
		}
	}
	return &Table{lines: canonical, counts: counts, slots: slots, entries: entries}, nil
}

// Lines returns the canonical corpus. Callers must not modify it.
func (t *Table) Lines() []string { return t.lines }

// Slots returns the number of scrambled pairs the table holds.
func (t *Table) Slots() int { return t.slots }

// Counts returns a copy of the canonical per-value counts.
func (t *Table) Counts() Counter {
	out := make(Counter, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// LengthMismatches lists the pairs that were matched zip-shortest.
func (t *Table) LengthMismatches() []LengthMismatch { return t.uneven }

// Lookup returns the hypothesis stored for key in slot.
func (t *Table) Lookup(key OccurrenceKey, slot int) (string, bool) {
	entry, ok := t.entries[key]
	if !ok || slot < 0 || slot >= t.slots || entry[slot] == nil {
		return "", false
	}
	return *entry[slot], true
}

// Unfilled counts the occurrences that still lack a hypothesis in slot.
func (t *Table) Unfilled(slot int) int {
	n := 0
	for _, entry := range t.entries {
		if entry[slot] == nil {
			n++
		}
	}
	return n
}

// Fill stores the hypotheses of one scrambled pair in slot. srcLines must be
// a permutation of the canonical lines. Pairs are consumed up to the shorter
// of the two slices.
func (t *Table) Fill(slot int, srcLines, hypLines []string) error {
	if slot < 0 || slot >= t.slots {
		return fmt.Errorf("slot %d out of range [0,%d)", slot, t.slots)
	}
	if diffs := diffCounts(t.counts, CountLines(srcLines)); len(diffs) > 0 {
		return &MismatchError{Slot: slot, Differences: diffs}
	}

	running := make(Counter, len(t.counts))
	for i := range min(len(srcLines), len(hypLines)) {
		src := srcLines[i]
		key := OccurrenceKey{Index: running.Next(src), Line: src}
		entry, ok := t.entries[key]
		if !ok {
			return fmt.Errorf("%w: scrambled line %d %q has no canonical occurrence %d", ErrReferenceMismatch, i+1, src, key.Index)
		}
		hyp := hypLines[i]
		entry[slot] = &hyp
	}
	return nil
}

// Restore returns the hypotheses of slot in canonical order.
func (t *Table) Restore(slot int) ([]string, error) {
	out := make([]string, 0, len(t.lines))
	err := t.walk(slot, func(hyp string) error {
		out = append(out, hyp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walk re-derives each canonical line's occurrence index and emits the slot's
// hypothesis for it. The final running counter must equal the canonical
// counts.
func (t *Table) walk(slot int, emit func(string) error) error {
	if slot < 0 || slot >= t.slots {
		return fmt.Errorf("slot %d out of range [0,%d)", slot, t.slots)
	}
	running := make(Counter, len(t.counts))
	for i, line := range t.lines {
		key := OccurrenceKey{Index: running.Next(line), Line: line}
		entry, ok := t.entries[key]
		if !ok {
			return fmt.Errorf("%w: canonical line %d %q occurrence %d has no entry", ErrCountMismatch, i+1, line, key.Index)
		}
		hyp := entry[slot]
		if hyp == nil {
			return fmt.Errorf("%w: slot %d, canonical line %d %q", ErrMissingSlot, slot, i+1, line)
		}
		if err := emit(*hyp); err != nil {
			return err
		}
	}
	if !running.Equal(t.counts) {
		return fmt.Errorf("%w: slot %d", ErrCountMismatch, slot)
	}
	return nil
}

// Difference is one line value whose count differs between two corpora.
type Difference struct {
	Line     string
	Expected int
	Actual   int
}

// MismatchError reports a scrambled source that is not a permutation of the
// canonical source.
type MismatchError struct {
	Slot        int
	Path        string
	Differences []Difference
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	b.WriteString(ErrReferenceMismatch.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	} else {
		fmt.Fprintf(&b, ": slot %d", e.Slot)
	}
	fmt.Fprintf(&b, ": %d distinct lines differ", len(e.Differences))
	for i, d := range e.Differences {
		if i == maxReportedDifferences {
			b.WriteString("; ...")
			break
		}
		if i == 0 {
			b.WriteString(" (")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%q expected %d found %d", d.Line, d.Expected, d.Actual)
	}
	if len(e.Differences) > 0 {
		b.WriteString(")")
	}
	return b.String()
}

func (e *MismatchError) Unwrap() error { return ErrReferenceMismatch }

// diffCounts lists the values whose counts differ, sorted by line text.
func diffCounts(expected, actual Counter) []Difference {
	sorted := treemap.NewWithStringComparator()
	for line, n := range expected {
		if actual[line] != n {
			sorted.Put(line, Difference{Line: line, Expected: n, Actual: actual[line]})
		}
	}
	for line, n := range actual {
		if _, ok := expected[line]; !ok && n != 0 {
			sorted.Put(line, Difference{Line: line, Actual: n})
		}
	}
	if sorted.Empty() {
		return nil
	}
	out := make([]Difference, 0, sorted.Size())
	it := sorted.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Difference))
	}
	return out
}
