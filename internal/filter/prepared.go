package filter

import (
	"context"

	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/iterator"
	"github.com/ritamzico/boolq/internal/order"
	"github.com/ritamzico/boolq/internal/segment"
)

// boolQuery is the shared shape of every composite prepared query:
// prepared inclusion and exclusion sub-queries plus the residual boost
// folded in during planning.
type boolQuery struct {
	incl  []Prepared
	excl  []Prepared
	boost float64
}

func prepareChildren(ctx context.Context, reader segment.Reader, bun order.Bundle, boost float64, children []Filter) ([]Prepared, error) {
	out := make([]Prepared, 0, len(children))
	for _, c := range children {
		p, err := c.Prepare(ctx, reader, bun, boost)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// isInert reports whether a freshly constructed iterator is already
// known to produce nothing: EOF before any Next/Seek call.
func isInert(it iterator.DocIterator) bool {
	return it.Value() == docid.EOF
}

// executeAllRaw executes every prepared sub-query against seg without
// dropping inert ones. Conjunction needs every branch present: one
// inert sub-iterator makes the whole intersection empty, and the
// leapfrog loop already produces that result correctly on its own.
func executeAllRaw(ctx context.Context, seg segment.Segment, bun order.Bundle, subs []Prepared) ([]iterator.DocIterator, error) {
	out := make([]iterator.DocIterator, 0, len(subs))
	for _, s := range subs {
		it, err := s.Execute(ctx, seg, bun)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// executeAll executes every prepared sub-query against seg, dropping
// any that come back already inert (EOF before being driven at all).
// Safe for union (disjunction) sides, where a dead branch contributes
// nothing, and required for min-match survivor counting.
func executeAll(ctx context.Context, seg segment.Segment, bun order.Bundle, subs []Prepared) ([]iterator.DocIterator, error) {
	out := make([]iterator.DocIterator, 0, len(subs))
	for _, s := range subs {
		it, err := s.Execute(ctx, seg, bun)
		if err != nil {
			return nil, err
		}
		if isInert(it) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// unorderedDisjunction builds a disjunction over subs with no scoring,
// used for the exclusion side of and_query/or_query: exclusion must
// never perturb ranking.
func unorderedDisjunction(subs []iterator.DocIterator) iterator.DocIterator {
	return newDisjunction(order.Bundle{}, subs)
}

// newDisjunction dispatches among the basic/small/block disjunction
// variants by sub-iterator count, matching the design's "implementation
// choice, left to the planner's heuristics" guidance.
func newDisjunction(bun order.Bundle, subs []iterator.DocIterator) iterator.DocIterator {
	live := make([]iterator.DocIterator, 0, len(subs))
	for _, s := range subs {
		live = append(live, s)
	}
	switch {
	case len(live) == 0:
		return iterator.Empty()
	case len(live) == 1:
		return live[0]
	case len(live) == 2:
		return iterator.NewBasicDisjunction(bun, live[0], live[1])
	case len(live) <= iterator.SmallDisjunctionThreshold:
		return iterator.NewSmallDisjunction(bun, live)
	default:
		return iterator.NewBlockDisjunction(bun, live, iterator.BlockTraits{
			ScoreEnabled: !bun.Empty(),
			Mode:         iterator.Match,
		})
	}
}

// andQuery is the prepared form of a planned And: a conjunction over
// inclusion sub-queries with the exclusion side subtracted.
type andQuery struct{ boolQuery }

func (q *andQuery) Execute(ctx context.Context, seg segment.Segment, bun order.Bundle) (iterator.DocIterator, error) {
	inclIters, err := executeAllRaw(ctx, seg, bun, q.incl)
	if err != nil {
		return nil, err
	}
	include := iterator.NewConjunction(bun, inclIters...)

	if len(q.excl) == 0 {
		return include, nil
	}
	exclIters, err := executeAll(ctx, seg, order.Bundle{}, q.excl)
	if err != nil {
		return nil, err
	}
	exclude := unorderedDisjunction(exclIters)
	if isInert(exclude) {
		return include, nil
	}
	return iterator.NewExclusion(include, exclude), nil
}

// orQuery is the prepared form of a planned Or with adjusted_min_match
// == 1: a plain disjunction over inclusion sub-queries, minus the
// exclusion side.
type orQuery struct{ boolQuery }

func (q *orQuery) Execute(ctx context.Context, seg segment.Segment, bun order.Bundle) (iterator.DocIterator, error) {
	inclIters, err := executeAll(ctx, seg, bun, q.incl)
	if err != nil {
		return nil, err
	}
	include := newDisjunction(bun, inclIters)

	if len(q.excl) == 0 {
		return include, nil
	}
	exclIters, err := executeAll(ctx, seg, order.Bundle{}, q.excl)
	if err != nil {
		return nil, err
	}
	exclude := unorderedDisjunction(exclIters)
	if isInert(exclude) {
		return include, nil
	}
	return iterator.NewExclusion(include, exclude), nil
}

// minMatchQuery is the prepared form of a planned Or with adjusted_min_match
// strictly between 1 and len(incl): a heap-based min-match disjunction.
type minMatchQuery struct {
	boolQuery
	minMatch int
}

func (q *minMatchQuery) Execute(ctx context.Context, seg segment.Segment, bun order.Bundle) (iterator.DocIterator, error) {
	survivors, err := executeAll(ctx, seg, bun, q.incl)
	if err != nil {
		return nil, err
	}

	var include iterator.DocIterator
	switch {
	case len(survivors) < q.minMatch:
		include = iterator.Empty()
	case len(survivors) == q.minMatch:
		include = iterator.NewConjunction(bun, survivors...)
	case len(survivors) == 1:
		include = survivors[0]
	default:
		include = iterator.NewMinMatchDisjunction(bun, survivors, q.minMatch)
	}

	if len(q.excl) == 0 {
		return include, nil
	}
	exclIters, err := executeAll(ctx, seg, order.Bundle{}, q.excl)
	if err != nil {
		return nil, err
	}
	exclude := unorderedDisjunction(exclIters)
	if isInert(exclude) {
		return include, nil
	}
	return iterator.NewExclusion(include, exclude), nil
}
