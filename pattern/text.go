package pattern

import (
	"bytes"
	"strings"
)

// Text is a string source. Offsets are byte offsets into the UTF-8 encoding;
// an offset inside a multi-byte rune is not rejected.
type Text string

// FindFirstFrom implements Matcher using strings.Index.
func (t Text) FindFirstFrom(pattern string, offset int) (Match[string], bool) {
	if pattern == "" || offset < 0 || offset > len(t) {
		return Match[string]{}, false
	}
	i := strings.Index(string(t[offset:]), pattern)
	if i < 0 {
		return Match[string]{}, false
	}
	start := offset + i
	end := start + len(pattern)
	return Match[string]{Index: start, Length: len(pattern), View: string(t[start:end])}, true
}

// Bytes is a byte slice source holding text. It behaves like Text without
// converting the data to a string first.
type Bytes []byte

// FindFirstFrom implements Matcher using bytes.Index.
// The view shares memory with b and has its capacity capped at its length.
func (b Bytes) FindFirstFrom(pattern []byte, offset int) (Match[[]byte], bool) {
	if len(pattern) == 0 || offset < 0 || offset > len(b) {
		return Match[[]byte]{}, false
	}
	i := bytes.Index(b[offset:], pattern)
	if i < 0 {
		return Match[[]byte]{}, false
	}
	start := offset + i
	end := start + len(pattern)
	return Match[[]byte]{Index: start, Length: len(pattern), View: b[start:end:end]}, true
}
