package filter

import (
	"context"
	"testing"

	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/iterator"
	"github.com/ritamzico/boolq/internal/order"
	"github.com/ritamzico/boolq/internal/segment"
)

// termLeaf is a fixture leaf filter standing in for a caller-defined
// posting-list producer (a term/range/prefix filter in a real index).
// It ignores the reader/segment arguments and always yields the same
// fixed sorted doc-id list, scored uniformly by value when scored is
// set.
type termLeaf struct {
	name  string
	ids   []docid.ID
	value float64
	boost float64
}

func newTermLeaf(name string, value float64, ids ...docid.ID) *termLeaf {
	return &termLeaf{name: name, ids: ids, value: value, boost: 1}
}

func (l *termLeaf) Type() Type     { return TypeLeaf }
func (l *termLeaf) Boost() float64 { return l.boost }
func (l *termLeaf) SetBoost(b float64) *termLeaf {
	l.boost = b
	return l
}

func (l *termLeaf) Hash() uint64 { return hashBytes(uint64(TypeLeaf), l.name, l.boost) }

func (l *termLeaf) Equal(other Filter) bool {
	o, ok := other.(*termLeaf)
	return ok && o.name == l.name && o.boost == l.boost
}

func (l *termLeaf) Prepare(ctx context.Context, reader segment.Reader, bun order.Bundle, boost float64) (Prepared, error) {
	return &termPrepared{ids: l.ids, value: l.value * l.boost * boost, scored: !bun.Empty()}, nil
}

type termPrepared struct {
	ids    []docid.ID
	value  float64
	scored bool
}

func (p *termPrepared) Execute(ctx context.Context, seg segment.Segment, bun order.Bundle) (iterator.DocIterator, error) {
	if !p.scored {
		return newFixtureIterator(p.ids, nil), nil
	}
	score := func(docid.ID) []byte { return order.EncodeFloat64(p.value) }
	return newFixtureIterator(p.ids, score), nil
}

// fixtureIterator mirrors internal/iterator's own sliceIterator test
// fixture, reimplemented here since that one is unexported to its
// package.
type fixtureIterator struct {
	ids   []docid.ID
	pos   int
	score func(docid.ID) []byte
}

func newFixtureIterator(ids []docid.ID, score func(docid.ID) []byte) *fixtureIterator {
	return &fixtureIterator{ids: ids, pos: -1, score: score}
}

func (f *fixtureIterator) Value() docid.ID {
	if f.pos < 0 {
		return docid.Invalid
	}
	if f.pos >= len(f.ids) {
		return docid.EOF
	}
	return f.ids[f.pos]
}

func (f *fixtureIterator) Next() bool {
	if f.pos >= len(f.ids) {
		return false
	}
	f.pos++
	return f.pos < len(f.ids)
}

func (f *fixtureIterator) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return f.Value()
	}
	if f.Value() != docid.Invalid && target <= f.Value() {
		return f.Value()
	}
	if f.pos < 0 {
		f.pos = 0
	}
	for f.pos < len(f.ids) && f.ids[f.pos] < target {
		f.pos++
	}
	return f.Value()
}

func (f *fixtureIterator) Cost() iterator.Cost { return iterator.ConstCost(len(f.ids)) }

func (f *fixtureIterator) Score() order.Score {
	if f.score == nil || f.Value() == docid.Invalid || f.Value() == docid.EOF {
		return order.NoScore()
	}
	return order.BufferScore(f.score(f.Value()))
}

// fixtureReader is a minimal segment.Reader/segment.Segment/AllDocsProvider
// fixture: one opaque segment, with AllDocs served from a fixed id list.
type fixtureReader struct {
	seg    segment.Segment
	allIDs []docid.ID
}

func newFixtureReader(allIDs ...docid.ID) *fixtureReader {
	return &fixtureReader{seg: struct{}{}, allIDs: allIDs}
}

func (r *fixtureReader) Segments() []segment.Segment { return []segment.Segment{r.seg} }

func (r *fixtureReader) AllDocs(ctx context.Context, seg segment.Segment, bun order.Bundle, boost float64) (iterator.DocIterator, error) {
	return newFixtureIterator(r.allIDs, nil), nil
}

func drainIDs(t *testing.T, it iterator.DocIterator) []docid.ID {
	t.Helper()
	var got []docid.ID
	for it.Next() {
		got = append(got, it.Value())
	}
	return got
}

func assertDocIDs(t *testing.T, got, want []docid.ID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func fids(vs ...int) []docid.ID {
	out := make([]docid.ID, len(vs))
	for i, v := range vs {
		out[i] = docid.ID(v)
	}
	return out
}
