// Package rng implements the deterministic random-number source shared
// by SCHED and MMU (spec.md §3.1): a preloaded integer vector consumed
// with a wrap-around cursor, so two independent simulations over the
// same random file and the same policy produce byte-identical output.
package rng

// Source is a deterministic, cursor-driven sequence of signed integers.
type Source struct {
	values []int64
	cursor int
}

// New wraps an already-loaded vector of random numbers. The vector is
// typically the tail of a random file whose first integer (the count)
// has already been consumed by the loader.
func New(values []int64) *Source {
	cp := make([]int64, len(values))
	copy(cp, values)
	return &Source{values: cp}
}

// Len reports how many values the source cycles through.
func (s *Source) Len() int {
	return len(s.values)
}

// NextBounded returns 1 + (sequence[cursor] mod modulus), the SCHED
// convention for drawing a static priority or a CPU/IO burst, and
// advances the cursor.
func (s *Source) NextBounded(modulus int) int {
	v := s.values[s.cursor]
	s.advance()
	m := int64(modulus)
	r := v % m
	if r < 0 {
		r += m
	}
	return 1 + int(r)
}

// NextRaw returns the raw signed value at the cursor and advances it.
// MMU's Random pager reduces the result modulo n_frames itself.
func (s *Source) NextRaw() int64 {
	v := s.values[s.cursor]
	s.advance()
	return v
}

func (s *Source) advance() {
	s.cursor = (s.cursor + 1) % len(s.values)
}
