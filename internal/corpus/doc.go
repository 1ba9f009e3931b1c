// Package corpus reads and writes the line-oriented text files every
// corpusprep utility operates on.
//
// Readers decode the configured character encoding, drop a leading byte order
// mark, optionally apply Unicode normalization, and strip trailing whitespace
// from each line. Files ending in .gz are decompressed transparently. Writers
// terminate every line with a single newline and publish the file with an
// atomic rename once the caller commits, so aborted runs never leave partial
// output under the final name.
package corpus
