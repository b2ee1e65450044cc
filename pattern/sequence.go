package pattern

// Sequence is a slice source of comparable elements. Offsets count elements.
// Use Sequence[rune] to search text by character position.
type Sequence[E comparable] []E

// FindFirstFrom implements Matcher by comparing a pattern-sized window at
// every start position from offset onward.
func (s Sequence[E]) FindFirstFrom(pattern []E, offset int) (Match[[]E], bool) {
	return scan(s, pattern, offset, func(a, b E) bool { return a == b })
}

// SequenceFunc is a slice source whose elements are compared with Equal.
type SequenceFunc[E any] struct {
	Elems []E
	Equal func(a, b E) bool
}

// FindFirstFrom implements Matcher.
func (s SequenceFunc[E]) FindFirstFrom(pattern []E, offset int) (Match[[]E], bool) {
	return scan(s.Elems, pattern, offset, s.Equal)
}

func scan[E any](source, pattern []E, offset int, equal func(a, b E) bool) (Match[[]E], bool) {
	n := len(pattern)
	if n == 0 || offset < 0 || offset > len(source) {
		return Match[[]E]{}, false
	}
	for start := offset; start+n <= len(source); start++ {
		if window(source[start:start+n], pattern, equal) {
			end := start + n
			return Match[[]E]{Index: start, Length: n, View: source[start:end:end]}, true
		}
	}
	return Match[[]E]{}, false
}

func window[E any](candidate, pattern []E, equal func(a, b E) bool) bool {
	for i := range pattern {
		if !equal(candidate[i], pattern[i]) {
			return false
		}
	}
	return true
}
