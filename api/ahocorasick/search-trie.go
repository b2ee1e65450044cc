// Package ahocorasick answers which of a set of terms occur in a text,
// in a single pass over the input.
package ahocorasick

import (
	"container/list"
	"encoding/json"
	"io"
)

// SearchTrie see https://en.wikipedia.org/wiki/Aho%E2%80%93Corasick_algorithm
// and  http://se.ethz.ch/~meyer/publications/string/string_matching.pdf
type SearchTrie struct {
	root     *SearchTrie
	char     rune
	isWord   bool // if this node represents a full word
	children map[rune]*SearchTrie
	lps      *SearchTrie     // longest proper suffix.
	ot       map[string]bool // set of suffixes that are full words in this trie.
	words    int             // number of distinct words, root only
}

// New returns an initialized SearchTrie.
func New(searchStrings []string) *SearchTrie {
	s := newNode(nil, 0)
	s.root = s
	s.buildTrie(searchStrings)
	s.buildFailureFn()

	return s
}

func newNode(root *SearchTrie, char rune) *SearchTrie {
	return &SearchTrie{
		root:     root,
		char:     char,
		children: make(map[rune]*SearchTrie),
		ot:       make(map[string]bool),
	}
}

// Len returns the number of distinct terms in the trie.
func (s *SearchTrie) Len() int {
	return s.root.words
}

// isRoot gets whether s is the root of the trie or not.
func (s *SearchTrie) isRoot() bool {
	return s == s.root
}

// failureFn gets the longest proper suffix for the node, or the root node.
func (s *SearchTrie) failureFn() *SearchTrie {
	if nil == s.lps {
		return s.root
	}

	return s.lps
}

// getChild gets the child corresponding to the specified rune,
// or the root node.
func (s *SearchTrie) getChild(char rune) *SearchTrie {
	if child, ok := s.children[char]; ok {
		return child
	}
	return s.root
}

// Present reads r to the end, or until every term has been seen, and
// returns the set of terms that occur in it.
func (s *SearchTrie) Present(r io.RuneReader) map[string]bool {
	found := make(map[string]bool)
	if s.root.words == 0 {
		return found
	}

	n := s.root
	for {
		char, _, err := r.ReadRune()
		if nil != err {
			break
		}

		for !n.isRoot() && n.children[char] == nil {
			n = n.failureFn()
		}
		n = n.getChild(char)

		for t := range n.ot {
			found[t] = true
		}
		if len(found) == s.root.words {
			break
		}
	}
	return found
}

// AddSearchTerm adds another search string to the trie and recomputes the
// failure links.
func (s *SearchTrie) AddSearchTerm(searchTerm string) {
	if s.root.enterInTrie(searchTerm) {
		s.root.buildFailureFn()
	}
}

func (s *SearchTrie) buildTrie(searchStrings []string) {
	for _, str := range searchStrings {
		s.enterInTrie(str)
	}
}

// enterInTrie reports whether str was a new word.
func (s *SearchTrie) enterInTrie(str string) bool {
	if "" == str {
		return false
	}

	current := s
	for _, char := range str {
		next, ok := current.children[char]
		if !ok {
			next = newNode(s.root, char)
			current.children[char] = next
		}
		current = next
	}
	if current.isWord {
		return false
	}
	current.isWord = true
	current.ot[str] = true
	s.root.words++
	return true
}

// buildFailureFn does a breadth-first (in order of increasing length)
// to calculate each node's lps (longest proper suffix), and merges
// the suffix's outputs into the node's.
func (s *SearchTrie) buildFailureFn() {
	var nodes list.List
	for _, child := range s.children {
		child.lps = nil
		nodes.PushBack(child)
	}
	for e := nodes.Front(); e != nil; e = e.Next() {
		node := e.Value.(*SearchTrie)
		for char, child := range node.children {
			node.completeFailureFn(char, child)
			nodes.PushBack(child)
		}
	}
}

func (s *SearchTrie) completeFailureFn(char rune, np *SearchTrie) {
	m := s.failureFn()
	for !m.isRoot() && m.children[char] == nil {
		m = m.failureFn()
	}
	mp := m.getChild(char)
	if mp == np {
		mp = s.root
	}
	np.lps = mp
	for k := range mp.ot {
		np.ot[k] = true
	}
}

// MarshalJSON writes the trie as json, for debugging purposes
func (s *SearchTrie) MarshalJSON() ([]byte, error) {
	var m = make(map[string]interface{})
	var children = make(map[string]*SearchTrie)
	var ot = make([]string, 0, len(s.ot))

	if nil != s.lps && !s.lps.isRoot() {
		m["lps"] = string(s.lps.char)
	}

	if s.isWord {
		m["isWord"] = s.isWord
	}

	for k := range s.ot {
		ot = append(ot, k)
	}
	m["ot"] = ot

	for k, v := range s.children {
		children[string(k)] = v
	}
	m["children"] = children

	return json.Marshal(m)
}
