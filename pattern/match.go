package pattern

// Match is one occurrence of a pattern in a source.
// View is the matched part of the source, Index and Length locate it.
type Match[V any] struct {
	Index  int
	Length int
	View   V
}

// Start is the index of the first matched element.
func (m Match[V]) Start() int {
	return m.Index
}

// End is the index just past the last matched element.
func (m Match[V]) End() int {
	return m.Index + m.Length
}

// Range returns the half-open interval [Start, End).
func (m Match[V]) Range() [2]int {
	return [2]int{m.Index, m.Index + m.Length}
}
