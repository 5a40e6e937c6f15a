// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import "github.com/pdiddy/paper-digest/pkg/types"

// Entries is an insertion-ordered mapping from paper ID to summarized paper.
// Re-inserting an existing ID replaces the value in place. When max is
// positive the oldest entries are evicted to stay within it.
type Entries struct {
	items []types.SummarizedPaper
	index map[string]int
	max   int
}

// NewEntries returns an Entries bounded by max (0 means unbounded) holding papers in order.
func NewEntries(max int, papers ...types.SummarizedPaper) *Entries {
	e := &Entries{index: make(map[string]int), max: max}
	for _, p := range papers {
		e.Put(p)
	}
	return e
}

// Put inserts or replaces p.
func (e *Entries) Put(p types.SummarizedPaper) {
	if p.Authors == nil {
		p.Authors = []string{}
	}
	if i, ok := e.index[p.ID]; ok {
		e.items[i] = p
		return
	}
	e.index[p.ID] = len(e.items)
	e.items = append(e.items, p)
	if e.max > 0 && len(e.items) > e.max {
		e.evict(len(e.items) - e.max)
	}
}

func (e *Entries) evict(n int) {
	for _, p := range e.items[:n] {
		delete(e.index, p.ID)
	}
	e.items = append([]types.SummarizedPaper(nil), e.items[n:]...)
	for i, p := range e.items {
		e.index[p.ID] = i
	}
}

// Get returns the paper stored under id.
func (e *Entries) Get(id string) (types.SummarizedPaper, bool) {
	i, ok := e.index[id]
	if !ok {
		return types.SummarizedPaper{}, false
	}
	return e.items[i], true
}

// Len returns the number of entries.
func (e *Entries) Len() int {
	if e == nil {
		return 0
	}
	return len(e.items)
}

// Papers returns the entries in insertion order.
func (e *Entries) Papers() []types.SummarizedPaper {
	if e == nil {
		return nil
	}
	return append([]types.SummarizedPaper(nil), e.items...)
}

// Last returns up to n of the most recently inserted entries, oldest first.
func (e *Entries) Last(n int) []types.SummarizedPaper {
	if e == nil || n <= 0 {
		return nil
	}
	start := len(e.items) - n
	if start < 0 {
		start = 0
	}
	return append([]types.SummarizedPaper(nil), e.items[start:]...)
}
