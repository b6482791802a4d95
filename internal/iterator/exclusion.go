package iterator

import (
	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// exclusion wraps an include stream I and an exclude stream E,
// producing I's documents minus E's. E contributes nothing to score:
// exclusion is a set filter, not a ranking feature.
type exclusion struct {
	include DocIterator
	exclude DocIterator
}

// NewExclusion returns include with every document also produced by
// exclude filtered out. If exclude is already exhausted, include is
// returned unwrapped: the exclusion stage is a pure optimization when
// known inert.
func NewExclusion(include, exclude DocIterator) DocIterator {
	if exclude.Value() == docid.EOF {
		return include
	}
	return &exclusion{include: include, exclude: exclude}
}

func (e *exclusion) Value() docid.ID    { return e.include.Value() }
func (e *exclusion) Cost() Cost         { return e.include.Cost() }
func (e *exclusion) Score() order.Score { return e.include.Score() }

// alignPastExclusions advances include, and exclude alongside it,
// until include either reaches EOF or lands on a document exclude does
// not also produce.
func (e *exclusion) alignPastExclusions() {
	for e.include.Value() != docid.EOF {
		if e.exclude.Value() < e.include.Value() {
			e.exclude.Seek(e.include.Value())
		}
		if e.exclude.Value() != e.include.Value() {
			return
		}
		if !e.include.Next() {
			return
		}
	}
}

func (e *exclusion) Next() bool {
	if !e.include.Next() {
		return false
	}
	if e.exclude.Value() != docid.EOF && e.exclude.Value() < e.include.Value() {
		e.exclude.Seek(e.include.Value())
	}
	e.alignPastExclusions()
	return e.include.Value() != docid.EOF
}

func (e *exclusion) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return e.include.Value()
	}
	e.include.Seek(target)
	if e.exclude.Value() != docid.EOF && e.exclude.Value() < e.include.Value() {
		e.exclude.Seek(e.include.Value())
	}
	e.alignPastExclusions()
	return e.include.Value()
}
