package api

import (
	"errors"
	"fmt"
	"strings"
)

// Match represents a search hit.
// It contains the searched-for term, and the location where it was found.
// Location is a 2 element int array with the start byte index (inclusive),
// and the end byte index (exclusive).
type Match struct {
	Term     string
	Location [2]int
}

// Mode selects how a Searcher combines its terms.
type Mode int

const (
	// ModeFirst reports the first occurrence of each term, in term order.
	ModeFirst Mode = iota + 1
	// ModeAny reports only the earliest occurrence of any term.
	ModeAny
	// ModeAll reports every non-overlapping occurrence of each term,
	// grouped by term in term order.
	ModeAll
)

var (
	// ErrNoSearchTerms is returned when a searcher is built without terms.
	ErrNoSearchTerms = errors.New("no search terms specified")

	// ErrUnknownMode is returned for a mode name that is not first, any or all.
	ErrUnknownMode = errors.New("unknown search mode")
)

var modeNames = map[Mode]string{
	ModeFirst: "first",
	ModeAny:   "any",
	ModeAll:   "all",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range modeNames {
		if n == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Searcher is a widget that can search some text for a set of search terms.
// Search must not be called concurrently with AddSearchTerm.
type Searcher interface {
	AddSearchTerm(searchTerm string)
	Terms() []string
	Search(source []byte) []Match
}
