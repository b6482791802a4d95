package iterator

import (
	"testing"

	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// sliceIterator is a fixture posting-list iterator over a fixed sorted
// slice of doc-ids, mirroring the teacher's unexported fixture
// builders in internal/query/test_helpers.go (buildLinearGraph,
// buildDiamondGraph) adapted to this module's domain.
type sliceIterator struct {
	ids   []docid.ID
	pos   int // index of the current value, -1 before first Next/Seek
	score func(docid.ID) []byte
}

func newSliceIterator(ids ...docid.ID) *sliceIterator {
	return &sliceIterator{ids: ids, pos: -1}
}

func newScoredSliceIterator(score func(docid.ID) []byte, ids ...docid.ID) *sliceIterator {
	return &sliceIterator{ids: ids, pos: -1, score: score}
}

func (s *sliceIterator) Value() docid.ID {
	if s.pos < 0 {
		return docid.Invalid
	}
	if s.pos >= len(s.ids) {
		return docid.EOF
	}
	return s.ids[s.pos]
}

func (s *sliceIterator) Next() bool {
	if s.pos >= len(s.ids) {
		return false
	}
	s.pos++
	return s.pos < len(s.ids)
}

func (s *sliceIterator) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return s.Value()
	}
	if s.Value() != docid.Invalid && target <= s.Value() {
		return s.Value()
	}
	if s.pos < 0 {
		s.pos = 0
	}
	for s.pos < len(s.ids) && s.ids[s.pos] < target {
		s.pos++
	}
	return s.Value()
}

func (s *sliceIterator) Cost() Cost { return ConstCost(len(s.ids)) }

func (s *sliceIterator) Score() order.Score {
	if s.score == nil || s.Value() == docid.Invalid || s.Value() == docid.EOF {
		return order.NoScore()
	}
	return order.BufferScore(s.score(s.Value()))
}

func drain(t *testing.T, it DocIterator) []docid.ID {
	t.Helper()
	var got []docid.ID
	for it.Next() {
		got = append(got, it.Value())
	}
	return got
}

func assertIDs(t *testing.T, got, want []docid.ID) {
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

func ids(vs ...int) []docid.ID {
	out := make([]docid.ID, len(vs))
	for i, v := range vs {
		out[i] = docid.ID(v)
	}
	return out
}
