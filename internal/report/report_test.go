package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trevor-leach/multisearch/api"
	"github.com/trevor-leach/multisearch/internal/scan"
)

var results = []scan.Result{
	{Path: "a.txt", Matches: []api.Match{
		{Term: "l", Location: [2]int{2, 3}},
		{Term: "o", Location: [2]int{4, 5}},
	}},
	{Path: "broken.txt", Err: errors.New("boom")},
	{Path: "b.txt", Matches: []api.Match{
		{Term: "world", Location: [2]int{6, 11}},
	}},
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, FormatTSV, "never")
	require.NoError(t, err)

	require.NoError(t, w.Write(results))

	assert.Equal(t, strings.Join([]string{
		"Path\tTerm\tStart\tEnd",
		"a.txt\tl\t2\t3",
		"a.txt\to\t4\t5",
		"b.txt\tworld\t6\t11",
		"",
	}, "\n"), buf.String())
	assert.Equal(t, 3, w.Count())
}

func TestWriteTSVNoMatches(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, FormatTSV, "never")
	require.NoError(t, err)

	require.NoError(t, w.Write([]scan.Result{{Path: "a.txt"}}))
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, w.Count())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, FormatJSON, "always")
	require.NoError(t, err)

	require.NoError(t, w.Write(results))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.JSONEq(t, `{"path":"a.txt","term":"l","start":2,"end":3}`, lines[0])
	assert.JSONEq(t, `{"path":"b.txt","term":"world","start":6,"end":11}`, lines[2])
}

func TestWriteColored(t *testing.T) {
	var buf bytes.Buffer
	w, err := New(&buf, FormatTSV, "always")
	require.NoError(t, err)

	require.NoError(t, w.Write(results[:1]))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "a.txt")
}

func TestNewInvalid(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Format("xml"), "never")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, FormatTSV, "sometimes")
	assert.Error(t, err)
}
