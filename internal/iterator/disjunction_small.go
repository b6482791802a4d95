package iterator

import (
	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// SmallDisjunctionThreshold is the sub-iterator count at or below which
// a linear scan for the minimum doc-id beats heap overhead. Above it,
// callers should prefer the block or heap min-match variants.
const SmallDisjunctionThreshold = 5

// smallDisjunction linearly scans all sub-iterators to find the
// minimum doc-id at each step. Used for a handful of streams where a
// heap's bookkeeping dominates the scan itself.
type smallDisjunction struct {
	subs  []DocIterator
	cost  ConstCost
	value docid.ID
	bun   order.Bundle
}

func newSmallDisjunction(bun order.Bundle, subs []DocIterator) DocIterator {
	var cost int64
	for _, s := range subs {
		cost += s.Cost().Estimate()
	}
	return &smallDisjunction{
		subs:  subs,
		cost:  ConstCost(cost),
		value: docid.Invalid,
		bun:   bun,
	}
}

func (d *smallDisjunction) Value() docid.ID { return d.value }
func (d *smallDisjunction) Cost() Cost      { return d.cost }

func (d *smallDisjunction) Score() order.Score {
	if d.bun.Empty() || d.value == docid.EOF || d.value == docid.Invalid {
		return order.NoScore()
	}
	buf := d.bun.NewBuffer()
	first := true
	for _, s := range d.subs {
		if s.Value() != d.value {
			continue
		}
		sc := s.Score()
		if sc.IsDefault() {
			continue
		}
		if first {
			copy(buf, sc.Evaluate())
			first = false
			continue
		}
		d.bun.Merge(buf, sc.Evaluate())
	}
	if first {
		return order.NoScore()
	}
	return order.BufferScore(buf)
}

func (d *smallDisjunction) settle() {
	min := docid.EOF
	for _, s := range d.subs {
		if v := s.Value(); v < min {
			min = v
		}
	}
	d.value = min
}

func (d *smallDisjunction) Next() bool {
	if d.value == docid.EOF {
		return false
	}
	for _, s := range d.subs {
		if s.Value() == d.value {
			s.Next()
		}
	}
	d.settle()
	return d.value != docid.EOF
}

func (d *smallDisjunction) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return d.value
	}
	if d.value != docid.Invalid && target <= d.value {
		return d.value
	}
	for _, s := range d.subs {
		if s.Value() < target {
			s.Seek(target)
		}
	}
	d.settle()
	return d.value
}
