// Package pattern finds exact occurrences of a pattern inside a source sequence.
//
// A source implements Matcher, which has a single primitive: find the first
// occurrence of a pattern at or after an offset. Everything else (every match,
// the earliest of several patterns, every match of several patterns) is built
// from that primitive by the free functions in this package.
//
// Two kinds of source are provided. Text and Bytes search UTF-8 text with the
// standard library substring search and use byte offsets. Sequence searches a
// slice of any comparable element type with a windowed linear scan and uses
// element offsets; SequenceFunc does the same with caller-supplied equality.
//
// An empty pattern never matches.
//
// Matches returned for slice sources alias the source. Do not modify a source
// while holding matches taken from it.
package pattern
