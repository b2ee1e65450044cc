package pattern

// Strings converts string-kinded values into patterns for a Text source.
func Strings[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// ByteStrings converts string-kinded values into patterns for a Bytes source.
func ByteStrings[T ~string](values ...T) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out
}
