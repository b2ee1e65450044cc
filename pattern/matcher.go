package pattern

// Matcher is a searchable source.
//
// FindFirstFrom returns the earliest occurrence of pattern that starts at or
// after offset. It reports false when offset is negative or past the end of
// the source, when pattern is empty, or when there is no such occurrence.
type Matcher[V any] interface {
	FindFirstFrom(pattern V, offset int) (Match[V], bool)
}

// FindFirst returns the earliest occurrence of pattern in m.
func FindFirst[V any](m Matcher[V], pattern V) (Match[V], bool) {
	return m.FindFirstFrom(pattern, 0)
}

// FindFirstFrom returns the earliest occurrence of pattern starting at or after offset.
func FindFirstFrom[V any](m Matcher[V], pattern V, offset int) (Match[V], bool) {
	return m.FindFirstFrom(pattern, offset)
}

// FindEvery returns every non-overlapping occurrence of pattern in m.
func FindEvery[V any](m Matcher[V], pattern V) []Match[V] {
	return FindEveryFrom(m, pattern, 0)
}

// FindEveryFrom returns every non-overlapping occurrence of pattern starting
// at or after offset, in ascending order. Each search resumes at the end of
// the previous match, so "aa" in "aaaa" matches at 0 and 2 only.
//
// The result is never nil; no occurrences gives an empty slice.
func FindEveryFrom[V any](m Matcher[V], pattern V, offset int) []Match[V] {
	matches := make([]Match[V], 0)
	cursor := offset
	for {
		found, ok := m.FindFirstFrom(pattern, cursor)
		if !ok {
			break
		}
		matches = append(matches, found)
		cursor = found.End()
	}
	return matches
}

// FindAny returns the earliest occurrence of any of patterns in m.
func FindAny[V any](m Matcher[V], patterns []V) (Match[V], bool) {
	return FindAnyFrom(m, patterns, 0)
}

// FindAnyFrom returns the occurrence with the smallest start index among the
// first occurrences of each pattern at or after offset. When two patterns
// start at the same index the one listed first wins.
func FindAnyFrom[V any](m Matcher[V], patterns []V, offset int) (Match[V], bool) {
	var earliest Match[V]
	found := false
	for _, p := range patterns {
		current, ok := m.FindFirstFrom(p, offset)
		if !ok {
			continue
		}
		if !found || current.Index < earliest.Index {
			earliest = current
			found = true
		}
	}
	return earliest, found
}

// FindAll returns every occurrence of every pattern in m.
func FindAll[V any](m Matcher[V], patterns []V) []Match[V] {
	return FindAllFrom(m, patterns, 0)
}

// FindAllFrom runs FindEveryFrom for each pattern and concatenates the results
// in pattern order. The result is grouped by pattern, not sorted by position:
// all matches of patterns[0] come before any match of patterns[1].
//
// FindAllFrom returns nil when patterns is empty and an empty, non-nil slice
// when patterns were searched but none occurred.
func FindAllFrom[V any](m Matcher[V], patterns []V, offset int) []Match[V] {
	if len(patterns) == 0 {
		return nil
	}
	matches := make([]Match[V], 0)
	for _, p := range patterns {
		matches = append(matches, FindEveryFrom(m, p, offset)...)
	}
	return matches
}
