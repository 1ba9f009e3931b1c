package reorder

// Counter maps a line value to the number of times it has been seen. Used
// as a running counter, Next yields consecutive occurrence indices per value.
type Counter map[string]int

// CountLines tallies every value in lines.
func CountLines(lines []string) Counter {
	c := make(Counter, len(lines))
	for _, line := range lines {
		c[line]++
	}
	return c
}

// Next returns the occurrence index for line and advances the counter.
func (c Counter) Next(line string) int {
	idx := c[line]
	c[line] = idx + 1
	return idx
}

// Equal reports whether both counters hold the same positive counts.
func (c Counter) Equal(other Counter) bool {
	if c.distinct() != other.distinct() {
		return false
	}
	for line, n := range c {
		if n != 0 && other[line] != n {
			return false
		}
	}
	return true
}

// Duplicates returns how many values occur more than once and how many
// surplus copies they account for.
func (c Counter) Duplicates() (values, extra int) {
	for _, n := range c {
		if n > 1 {
			values++
			extra += n - 1
		}
	}
	return values, extra
}

func (c Counter) distinct() int {
	n := 0
	for _, v := range c {
		if v != 0 {
			n++
		}
	}
	return n
}
