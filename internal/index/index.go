// Package index builds and caches the mnemonic-to-page index of an
// instruction manual.
//
// The builder scans a plain-text rendering of the manual page by page,
// extracts instruction mnemonics from a fixed heading layout, expands
// mnemonic families (e.g. condition-suffixed branches) and resolves
// duplicates. The cache persists the result keyed by a content hash of the
// source text so large manuals are scanned once, not per lookup.
package index

import (
	"strings"

	"github.com/mandex/mandex/internal/errors"
)

// Entry maps one lower-cased mnemonic to the manual's printed page number.
type Entry struct {
	Mnemonic string `json:"mnemonic"`
	Page     int    `json:"page"`
}

// Index is an ordered mnemonic-to-page mapping. Each mnemonic appears at
// most once; order is preserved for deterministic serialization.
type Index struct {
	entries []Entry
	pages   map[string]int
}

// New creates an Index from entries. Later entries override earlier ones
// for the same mnemonic; the surviving entry keeps the later position.
func New(entries []Entry) *Index {
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		last[e.Mnemonic] = i
	}

	ix := &Index{
		entries: make([]Entry, 0, len(last)),
		pages:   make(map[string]int, len(last)),
	}
	for i, e := range entries {
		if last[e.Mnemonic] != i {
			continue
		}
		ix.entries = append(ix.entries, e)
		ix.pages[e.Mnemonic] = e.Page
	}
	return ix
}

// Resolve returns the page number for a mnemonic. The lookup is
// case-insensitive since all indexed mnemonics are lower-cased.
// Returns a MnemonicNotFound error for unknown mnemonics.
func (ix *Index) Resolve(mnemonic string) (int, error) {
	page, ok := ix.pages[strings.ToLower(mnemonic)]
	if !ok {
		return 0, errors.MnemonicNotFound(mnemonic)
	}
	return page, nil
}

// Mnemonics returns all known mnemonics in index order, for completion.
func (ix *Index) Mnemonics() []string {
	names := make([]string, len(ix.entries))
	for i, e := range ix.entries {
		names[i] = e.Mnemonic
	}
	return names
}

// Entries returns a copy of the ordered entries.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Len returns the number of indexed mnemonics.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Equal reports whether two indexes hold the same entries in the same order.
func (ix *Index) Equal(other *Index) bool {
	if other == nil || len(ix.entries) != len(other.entries) {
		return false
	}
	for i, e := range ix.entries {
		if other.entries[i] != e {
			return false
		}
	}
	return true
}
