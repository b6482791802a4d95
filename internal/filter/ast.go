package filter

import (
	"context"

	"github.com/ritamzico/boolq/internal/iterator"
	"github.com/ritamzico/boolq/internal/order"
	"github.com/ritamzico/boolq/internal/segment"
)

// And owns an ordered sequence of children, all of which must match
// (subject to exclusion via negated children).
type And struct {
	Children []Filter
	boost    float64
}

// NewAnd builds an And node with default boost 1.
func NewAnd(children ...Filter) *And {
	return &And{Children: children, boost: 1}
}

func (n *And) Type() Type      { return TypeAnd }
func (n *And) Boost() float64  { return n.boost }
func (n *And) SetBoost(b float64) *And { n.boost = b; return n }
func (n *And) Add(f Filter) *And       { n.Children = append(n.Children, f); return n }

func (n *And) Hash() uint64 {
	parts := make([]any, 0, len(n.Children)+1)
	parts = append(parts, n.boost)
	for _, c := range n.Children {
		parts = append(parts, c.Hash())
	}
	return hashBytes(uint64(TypeAnd), parts...)
}

func (n *And) Equal(other Filter) bool {
	o, ok := other.(*And)
	if !ok || o.boost != n.boost || len(o.Children) != len(n.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

func (n *And) Prepare(ctx context.Context, reader segment.Reader, bun order.Bundle, boost float64) (Prepared, error) {
	return prepareAnd(ctx, reader, bun, n, boost)
}

// Or owns an ordered sequence of children and a minimum match count: 0
// means "match every document", 1 is a plain union, N is a conjunction
// in disguise.
type Or struct {
	Children []Filter
	boost    float64
	minMatch int
}

// NewOr builds an Or node with default boost 1 and min_match_count 1.
func NewOr(children ...Filter) *Or {
	return &Or{Children: children, boost: 1, minMatch: 1}
}

func (n *Or) Type() Type     { return TypeOr }
func (n *Or) Boost() float64 { return n.boost }
func (n *Or) MinMatch() int  { return n.minMatch }

func (n *Or) SetBoost(b float64) *Or { n.boost = b; return n }
func (n *Or) SetMinMatch(m int) *Or  { n.minMatch = m; return n }
func (n *Or) Add(f Filter) *Or       { n.Children = append(n.Children, f); return n }

func (n *Or) Hash() uint64 {
	parts := make([]any, 0, len(n.Children)+2)
	parts = append(parts, n.boost, n.minMatch)
	for _, c := range n.Children {
		parts = append(parts, c.Hash())
	}
	return hashBytes(uint64(TypeOr), parts...)
}

func (n *Or) Equal(other Filter) bool {
	o, ok := other.(*Or)
	if !ok || o.boost != n.boost || o.minMatch != n.minMatch || len(o.Children) != len(n.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

func (n *Or) Prepare(ctx context.Context, reader segment.Reader, bun order.Bundle, boost float64) (Prepared, error) {
	return prepareOr(ctx, reader, bun, n, boost)
}

// Not owns exactly one child and negates it.
type Not struct {
	Inner Filter
	boost float64
}

// NewNot wraps inner with default boost 1.
func NewNot(inner Filter) *Not {
	return &Not{Inner: inner, boost: 1}
}

func (n *Not) Type() Type              { return TypeNot }
func (n *Not) Boost() float64          { return n.boost }
func (n *Not) SetBoost(b float64) *Not { n.boost = b; return n }

func (n *Not) Hash() uint64 {
	var inner uint64
	if n.Inner != nil {
		inner = n.Inner.Hash()
	}
	return hashBytes(uint64(TypeNot), n.boost, inner)
}

func (n *Not) Equal(other Filter) bool {
	o, ok := other.(*Not)
	if !ok || o.boost != n.boost {
		return false
	}
	if n.Inner == nil || o.Inner == nil {
		return n.Inner == o.Inner
	}
	return n.Inner.Equal(o.Inner)
}

func (n *Not) Prepare(ctx context.Context, reader segment.Reader, bun order.Bundle, boost float64) (Prepared, error) {
	return prepareNot(ctx, reader, bun, n, boost)
}

// All matches every document in the segment.
type All struct {
	boost float64
}

// NewAll builds an All node with default boost 1.
func NewAll() *All { return &All{boost: 1} }

func (n *All) Type() Type              { return TypeAll }
func (n *All) Boost() float64          { return n.boost }
func (n *All) SetBoost(b float64) *All { n.boost = b; return n }

func (n *All) Hash() uint64 { return hashBytes(uint64(TypeAll), n.boost) }

func (n *All) Equal(other Filter) bool {
	o, ok := other.(*All)
	return ok && o.boost == n.boost
}

func (n *All) Prepare(ctx context.Context, reader segment.Reader, bun order.Bundle, boost float64) (Prepared, error) {
	q := &allQuery{boost: n.boost * boost}
	if p, ok := reader.(AllDocsProvider); ok {
		q.provider = p
	}
	return q, nil
}

// Empty matches no document.
type Empty struct{}

// NewEmpty builds an Empty node.
func NewEmpty() *Empty { return &Empty{} }

func (n *Empty) Type() Type     { return TypeEmpty }
func (n *Empty) Boost() float64 { return 1 }
func (n *Empty) Hash() uint64   { return hashBytes(uint64(TypeEmpty)) }

func (n *Empty) Equal(other Filter) bool {
	_, ok := other.(*Empty)
	return ok
}

func (n *Empty) Prepare(context.Context, segment.Reader, order.Bundle, float64) (Prepared, error) {
	return emptyPrepared{}, nil
}

// emptyPrepared is the shared empty plan: its Execute always yields
// the shared EOF iterator.
type emptyPrepared struct{}

func (emptyPrepared) Execute(context.Context, segment.Segment, order.Bundle) (iterator.DocIterator, error) {
	return iterator.Empty(), nil
}

// allQuery is the prepared form of All: it yields a leaf iterator that
// the caller's segment is responsible for providing (this core has no
// notion of "every document in the segment" without a collaborator).
// Since that collaborator is out of scope, allQuery delegates to a
// reader-supplied AllDocsProvider captured at prepare time.
type allQuery struct {
	boost    float64
	provider AllDocsProvider
}

// AllDocsProvider is the external collaborator that knows how to
// produce an iterator over every document in a segment. It is supplied
// through the reader: a segment.Reader that also implements
// AllDocsProvider is detected and used at prepare time, since this
// core has no posting-list storage of its own.
type AllDocsProvider interface {
	AllDocs(ctx context.Context, seg segment.Segment, bun order.Bundle, boost float64) (iterator.DocIterator, error)
}

func (q *allQuery) Execute(ctx context.Context, seg segment.Segment, bun order.Bundle) (iterator.DocIterator, error) {
	if q.provider == nil {
		return iterator.Empty(), nil
	}
	return q.provider.AllDocs(ctx, seg, bun, q.boost)
}
