package reorder

import "errors"

var (
	// ErrReferenceMismatch reports a scrambled source whose lines are not a
	// permutation of the canonical source.
	ErrReferenceMismatch = errors.New("references do not match")
	// ErrCountMismatch reports that restoring a slot did not consume every
	// canonical occurrence exactly once.
	ErrCountMismatch = errors.New("reference counter does not match the written lines")
	// ErrMissingSlot reports a canonical occurrence with no hypothesis.
	ErrMissingSlot = errors.New("no hypothesis for canonical line")
	// ErrSlotCount reports mismatched numbers of sources, hypotheses and
	// output names.
	ErrSlotCount = errors.New("number of hypotheses, sources and output filenames does not match")
)
