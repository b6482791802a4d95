package iterator

import (
	"container/heap"

	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// pqItem is one slot in the min-match disjunction's heap, adapted from
// the priority-queue item shape used to drive shortest-path search:
// here the priority is the sub-iterator's current document, with cost
// as a stable tiebreaker.
type pqItem struct {
	it   DocIterator
	doc  docid.ID
	cost int64
}

// docHeap orders by (doc_id asc, cost asc), matching the heap ordering
// key the design calls out for multi-iterator ties.
type docHeap []*pqItem

func (h docHeap) Len() int { return len(h) }
func (h docHeap) Less(i, j int) bool {
	if h[i].doc != h[j].doc {
		return h[i].doc < h[j].doc
	}
	return h[i].cost < h[j].cost
}
func (h docHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *docHeap) Push(x any)   { *h = append(*h, x.(*pqItem)) }
func (h *docHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// minMatchDisjunction requires at least minCount of its sub-iterators
// to agree on a document before emitting it. It partitions the heap
// into a head (smaller doc-ids) and a lead list (sub-iterators already
// known to match the current candidate).
type minMatchDisjunction struct {
	head     docHeap
	minCount int
	bun      order.Bundle
	cost     ConstCost

	value   docid.ID
	lead    []*pqItem
	matched int
}

func newMinMatchDisjunction(bun order.Bundle, subs []DocIterator, minCount int) DocIterator {
	h := make(docHeap, 0, len(subs))
	var cost int64
	for _, s := range subs {
		cost += s.Cost().Estimate()
		// Sub-iterators start at docid.Invalid; prime each with one
		// Next so the heap holds real candidates, not the sentinel.
		if !s.Next() {
			continue
		}
		h = append(h, &pqItem{it: s, doc: s.Value(), cost: s.Cost().Estimate()})
	}
	heap.Init(&h)
	return &minMatchDisjunction{
		head:     h,
		minCount: minCount,
		bun:      bun,
		cost:     ConstCost(cost),
		value:    docid.Invalid,
	}
}

func (d *minMatchDisjunction) Value() docid.ID { return d.value }
func (d *minMatchDisjunction) Cost() Cost      { return d.cost }
func (d *minMatchDisjunction) MatchCount() int { return d.matched }

func (d *minMatchDisjunction) Score() order.Score {
	if d.bun.Empty() || d.value == docid.EOF || d.value == docid.Invalid {
		return order.NoScore()
	}
	buf := d.bun.NewBuffer()
	first := true
	for _, item := range d.lead {
		sc := item.it.Score()
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

// pushBack returns the current lead set to the head heap, each
// advanced one step, and clears lead.
func (d *minMatchDisjunction) pushBack() {
	for _, item := range d.lead {
		if !item.it.Next() {
			continue
		}
		item.doc = item.it.Value()
		item.cost = item.it.Cost().Estimate()
		heap.Push(&d.head, item)
	}
	d.lead = d.lead[:0]
}

// advance runs the head/lead partition loop until a candidate with at
// least minCount matches is found, or the heap is exhausted.
func (d *minMatchDisjunction) advance() {
	for {
		if d.head.Len() == 0 {
			d.value = docid.EOF
			d.matched = 0
			return
		}

		d.lead = d.lead[:0]
		top := heap.Pop(&d.head).(*pqItem)
		candidate := top.doc
		d.lead = append(d.lead, top)

		for d.head.Len() > 0 && d.head[0].doc == candidate {
			d.lead = append(d.lead, heap.Pop(&d.head).(*pqItem))
		}

		if len(d.lead) >= d.minCount {
			d.value = candidate
			d.matched = len(d.lead)
			return
		}

		d.pushBack()
	}
}

func (d *minMatchDisjunction) Next() bool {
	if d.value == docid.EOF {
		return false
	}
	d.pushBack()
	d.advance()
	return d.value != docid.EOF
}

func (d *minMatchDisjunction) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return d.value
	}
	if d.value != docid.Invalid && target <= d.value {
		return d.value
	}

	for _, item := range d.lead {
		got := item.it.Seek(target)
		if got == docid.EOF {
			continue
		}
		item.doc = got
		item.cost = item.it.Cost().Estimate()
		heap.Push(&d.head, item)
	}
	d.lead = d.lead[:0]

	for i := 0; i < d.head.Len(); {
		if d.head[i].doc < target {
			got := d.head[i].it.Seek(target)
			if got == docid.EOF {
				heap.Remove(&d.head, i)
				continue
			}
			d.head[i].doc = got
			heap.Fix(&d.head, i)
			continue
		}
		i++
	}

	d.advance()
	return d.value
}
