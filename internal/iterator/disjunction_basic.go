package iterator

import (
	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// basicDisjunction is a dedicated two-way merge, used when exactly two
// sub-iterators participate and a heap is overkill.
type basicDisjunction struct {
	a, b  DocIterator
	cost  ConstCost
	value docid.ID
	bun   order.Bundle
}

func newBasicDisjunction(bun order.Bundle, a, b DocIterator) DocIterator {
	return &basicDisjunction{
		a:     a,
		b:     b,
		cost:  ConstCost(a.Cost().Estimate() + b.Cost().Estimate()),
		value: docid.Invalid,
		bun:   bun,
	}
}

func (d *basicDisjunction) Value() docid.ID { return d.value }
func (d *basicDisjunction) Cost() Cost      { return d.cost }

func (d *basicDisjunction) Score() order.Score {
	if d.bun.Empty() || d.value == docid.EOF || d.value == docid.Invalid {
		return order.NoScore()
	}
	buf := d.bun.NewBuffer()
	first := true
	for _, it := range [2]DocIterator{d.a, d.b} {
		if it.Value() != d.value {
			continue
		}
		sc := it.Score()
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

func (d *basicDisjunction) settle() {
	av, bv := d.a.Value(), d.b.Value()
	if av == docid.EOF && bv == docid.EOF {
		d.value = docid.EOF
		return
	}
	if av <= bv {
		d.value = av
		return
	}
	d.value = bv
}

func (d *basicDisjunction) Next() bool {
	if d.value == docid.EOF {
		return false
	}
	if d.a.Value() == d.value {
		d.a.Next()
	}
	if d.b.Value() == d.value {
		d.b.Next()
	}
	d.settle()
	return d.value != docid.EOF
}

func (d *basicDisjunction) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return d.value
	}
	if d.value != docid.Invalid && target <= d.value {
		return d.value
	}
	if d.a.Value() < target {
		d.a.Seek(target)
	}
	if d.b.Value() < target {
		d.b.Seek(target)
	}
	d.settle()
	return d.value
}
