// Package reorder restores per-cluster model hypotheses into the canonical
// line order of the source corpus they were produced from.
//
// MatchOrder reads the canonical source and K scrambled source/hypothesis
// pairs and builds a Table that maps every canonical line occurrence to the
// hypothesis aligned with it in each pair. Duplicate lines are told apart by
// occurrence index: the j-th copy of a value in canonical order is paired with
// the j-th copy of the same value in every scrambled file. WriteOutput then
// drains the table slot by slot into one file per pair.
//
// Scrambled sources must be permutations of the canonical source; anything
// else is rejected before output is written.
package reorder
