package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextMultiByte(t *testing.T) {
	source := Text("héllo wörld")

	m, ok := FindFirst(source, "wörld")
	require.True(t, ok)

	// offsets are bytes: "é" is two bytes
	assert.Equal(t, 7, m.Start())
	assert.Equal(t, 13, m.End())
	assert.Equal(t, "wörld", string(source[m.Start():m.End()]))
}

func TestBytes(t *testing.T) {
	source := Bytes("hello world")

	t.Run("find first", func(t *testing.T) {
		m, ok := FindFirst(source, []byte("world"))
		require.True(t, ok)
		assert.Equal(t, [2]int{6, 11}, m.Range())
		assert.Equal(t, []byte("world"), m.View)
	})

	t.Run("find every", func(t *testing.T) {
		matches := FindEvery(source, []byte("l"))
		assert.Equal(t, [][2]int{{2, 3}, {3, 4}, {9, 10}}, ranges(matches))
	})

	t.Run("find all", func(t *testing.T) {
		matches := FindAll(source, ByteStrings("l", "o"))
		assert.Equal(t, [][2]int{{2, 3}, {3, 4}, {9, 10}, {4, 5}, {7, 8}}, ranges(matches))
	})

	t.Run("empty pattern", func(t *testing.T) {
		_, ok := FindFirst(source, []byte{})
		assert.False(t, ok)
	})

	t.Run("offset past end", func(t *testing.T) {
		_, ok := FindFirstFrom(source, []byte("d"), len(source)+1)
		assert.False(t, ok)
	})
}

func TestBytesViewDoesNotGrowIntoSource(t *testing.T) {
	source := Bytes("abcdef")

	m, ok := FindFirst(source, []byte("bc"))
	require.True(t, ok)

	assert.Equal(t, 2, cap(m.View))
	_ = append(m.View, 'X')
	assert.Equal(t, "abcdef", string(source))
}

func TestStrings(t *testing.T) {
	type term string

	patterns := Strings(term("world"), term("foo"))
	m, ok := FindAny(Text("hello world"), patterns)

	require.True(t, ok)
	assert.Equal(t, "world", m.View)
	assert.Equal(t, []string{"world", "foo"}, patterns)
}
