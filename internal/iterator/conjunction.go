package iterator

import (
	"sort"

	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// conjunction is a leapfrog intersection of N sub-iterators, ordered
// ascending by cost at construction so the cheapest drives candidate
// selection (the lead).
type conjunction struct {
	subs  []DocIterator
	lead  DocIterator
	rest  []DocIterator
	cost  ConstCost
	value docid.ID
	bun   order.Bundle
}

// NewConjunction builds the intersection of subs. An empty input
// yields the shared empty iterator; a single input is returned as-is
// (unwrapped), matching the construction contract.
func NewConjunction(bun order.Bundle, subs ...DocIterator) DocIterator {
	if len(subs) == 0 {
		return Empty()
	}
	if len(subs) == 1 {
		return subs[0]
	}

	ordered := append([]DocIterator(nil), subs...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Cost().Estimate() < ordered[j].Cost().Estimate()
	})

	return &conjunction{
		subs:  ordered,
		lead:  ordered[0],
		rest:  ordered[1:],
		cost:  ConstCost(ordered[0].Cost().Estimate()),
		value: docid.Invalid,
		bun:   bun,
	}
}

func (c *conjunction) Value() docid.ID { return c.value }
func (c *conjunction) Cost() Cost      { return c.cost }

func (c *conjunction) Score() order.Score {
	if c.bun.Empty() || c.value == docid.EOF || c.value == docid.Invalid {
		return order.NoScore()
	}
	buf := c.bun.NewBuffer()
	first := true
	for _, s := range c.subs {
		sc := s.Score()
		if sc.IsDefault() {
			continue
		}
		if first {
			copy(buf, sc.Evaluate())
			first = false
			continue
		}
		c.bun.Merge(buf, sc.Evaluate())
	}
	if first {
		return order.NoScore()
	}
	return order.BufferScore(buf)
}

// seekRest seeks every non-lead sub-iterator to >= candidate, and
// returns the first doc-id strictly greater than candidate produced by
// any of them, or docid.Invalid if every sub-iterator agreed on
// candidate.
func (c *conjunction) seekRest(candidate docid.ID) docid.ID {
	for _, s := range c.rest {
		got := s.Seek(candidate)
		if got == docid.EOF {
			return docid.EOF
		}
		if got > candidate {
			return got
		}
	}
	return docid.Invalid
}

// advance runs the leapfrog loop until every sub-iterator agrees on a
// candidate or the conjunction is exhausted, storing the result in
// c.value.
func (c *conjunction) advance(candidate docid.ID) {
	for {
		if candidate == docid.EOF {
			c.value = docid.EOF
			return
		}
		got := c.lead.Seek(candidate)
		if got == docid.EOF {
			c.value = docid.EOF
			return
		}
		rest := c.seekRest(got)
		if rest == docid.Invalid {
			c.value = got
			return
		}
		candidate = rest
	}
}

func (c *conjunction) Next() bool {
	if c.value == docid.EOF {
		return false
	}
	if !c.lead.Next() {
		c.value = docid.EOF
		return false
	}
	c.advance(c.lead.Value())
	return c.value != docid.EOF
}

func (c *conjunction) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return c.value
	}
	if c.value != docid.Invalid && target <= c.value {
		return c.value
	}
	c.advance(target)
	return c.value
}
