// Package exact implements api.Searcher with exact byte-for-byte matching
// on top of the pattern package.
package exact

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/trevor-leach/multisearch/api"
	"github.com/trevor-leach/multisearch/api/ahocorasick"
	"github.com/trevor-leach/multisearch/pattern"
)

// DefaultPrefilterThreshold is the number of terms at which Search starts
// using a trie pass to skip terms that do not occur in the source.
const DefaultPrefilterThreshold = 8

// Searcher searches a byte source for a fixed list of terms.
type Searcher struct {
	mode      api.Mode
	terms     []string
	patterns  [][]byte
	seen      map[string]bool
	offset    int
	sorted    bool
	threshold int
	trie      *ahocorasick.SearchTrie
	validUTF8 bool
	logger    *slog.Logger
}

var _ api.Searcher = (*Searcher)(nil)

// Option configures a Searcher.
type Option func(*Searcher) error

// WithOffset sets the byte offset at which every search starts.
func WithOffset(offset int) Option {
	return func(s *Searcher) error {
		if offset < 0 {
			return fmt.Errorf("offset must be non-negative, got %d", offset)
		}
		s.offset = offset
		return nil
	}
}

// WithSorted makes Search return hits ordered by start position. Hits that
// start at the same position keep term order.
func WithSorted(sorted bool) Option {
	return func(s *Searcher) error {
		s.sorted = sorted
		return nil
	}
}

// WithPrefilterThreshold sets the term count from which the trie prefilter
// is used. Zero disables it.
func WithPrefilterThreshold(n int) Option {
	return func(s *Searcher) error {
		if n < 0 {
			return fmt.Errorf("prefilter threshold must be non-negative, got %d", n)
		}
		s.threshold = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Searcher for terms. Empty and repeated terms are dropped;
// the remaining terms keep their order.
func New(mode api.Mode, terms []string, opts ...Option) (*Searcher, error) {
	if mode < api.ModeFirst || mode > api.ModeAll {
		return nil, fmt.Errorf("%w: %s", api.ErrUnknownMode, mode)
	}

	s := &Searcher{
		mode:      mode,
		seen:      make(map[string]bool),
		threshold: DefaultPrefilterThreshold,
		trie:      ahocorasick.New(nil),
		validUTF8: true,
		logger:    slog.Default(),
	}
	for _, term := range terms {
		s.AddSearchTerm(term)
	}
	if len(s.terms) == 0 {
		return nil, api.ErrNoSearchTerms
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// AddSearchTerm adds another search term.
func (s *Searcher) AddSearchTerm(searchTerm string) {
	if searchTerm == "" || s.seen[searchTerm] {
		return
	}
	s.seen[searchTerm] = true
	s.terms = append(s.terms, searchTerm)
	s.patterns = append(s.patterns, []byte(searchTerm))
	s.trie.AddSearchTerm(searchTerm)
	if !utf8.ValidString(searchTerm) {
		s.validUTF8 = false
	}
}

// Terms returns the search terms in the order they were added.
func (s *Searcher) Terms() []string {
	return slices.Clone(s.terms)
}

// Mode returns the search mode.
func (s *Searcher) Mode() api.Mode {
	return s.mode
}

// Search finds the terms in source according to the searcher's mode.
// It only reads source and may be called from several goroutines at once.
func (s *Searcher) Search(source []byte) []api.Match {
	patterns := s.candidates(source)
	src := pattern.Bytes(source)

	var found []pattern.Match[[]byte]
	switch s.mode {
	case api.ModeFirst:
		for _, p := range patterns {
			if m, ok := pattern.FindFirstFrom(src, p, s.offset); ok {
				found = append(found, m)
			}
		}
	case api.ModeAny:
		if m, ok := pattern.FindAnyFrom(src, patterns, s.offset); ok {
			found = append(found, m)
		}
	case api.ModeAll:
		found = pattern.FindAllFrom(src, patterns, s.offset)
	}

	matches := make([]api.Match, len(found))
	for i, m := range found {
		matches[i] = api.Match{Term: string(m.View), Location: m.Range()}
	}
	if s.sorted {
		slices.SortStableFunc(matches, func(a, b api.Match) int {
			return cmp.Compare(a.Location[0], b.Location[0])
		})
	}
	return matches
}

// candidates returns the patterns worth searching for. Below the prefilter
// threshold that is every pattern; above it, only those the trie saw.
func (s *Searcher) candidates(source []byte) [][]byte {
	if s.threshold == 0 || len(s.patterns) < s.threshold || !s.validUTF8 {
		return s.patterns
	}

	present := s.trie.Present(bytes.NewReader(source))
	if len(present) == len(s.patterns) {
		return s.patterns
	}

	kept := make([][]byte, 0, len(present))
	for i, term := range s.terms {
		if present[term] {
			kept = append(kept, s.patterns[i])
		}
	}
	s.logger.Debug("prefilter skipped terms", "terms", len(s.terms), "skipped", len(s.terms)-len(kept))
	return kept
}
