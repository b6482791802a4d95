package filter

import (
	"context"

	"github.com/ritamzico/boolq/internal/order"
	"github.com/ritamzico/boolq/internal/segment"
)

// prepareAnd implements And planning per the design's §4.9 And steps,
// ported directly from And::prepare.
func prepareAnd(ctx context.Context, reader segment.Reader, bun order.Bundle, n *And, boost float64) (Prepared, error) {
	incl, excl, ok := groupFilters(n.Children, false)
	if !ok {
		return emptyPrepared{}, nil
	}

	if len(incl) == 0 && len(excl) > 0 {
		incl = append(incl, &All{})
	}

	if len(incl) == 0 || incl[len(incl)-1].Type() == TypeEmpty {
		return emptyPrepared{}, nil
	}

	var allBoost float64
	allCount := 0
	for _, f := range incl {
		if f.Type() == TypeAll {
			allCount++
			allBoost += f.Boost()
		}
	}

	if allCount != 0 {
		nonAll := make([]Filter, 0, len(incl)-allCount)
		for _, f := range incl {
			if f.Type() != TypeAll {
				nonAll = append(nonAll, f)
			}
		}
		nonAllCount := len(nonAll)

		if nonAllCount == 1 {
			leftBoost := nonAll[0].Boost()
			if n.boost != 0 && leftBoost != 0 && !bun.Empty() {
				boost = (boost*n.boost*allBoost + boost*n.boost*leftBoost) / (leftBoost * n.boost)
			} else {
				boost = 0
			}
			incl = nonAll
		} else {
			incl = append(nonAll, (&All{}).SetBoost(allBoost))
		}
	}

	boost *= n.boost

	if len(incl) == 1 && len(excl) == 0 {
		return incl[0].Prepare(ctx, reader, bun, boost)
	}

	preparedIncl, err := prepareChildren(ctx, reader, bun, boost, incl)
	if err != nil {
		return nil, err
	}
	preparedExcl, err := prepareChildren(ctx, reader, order.Bundle{}, boost, excl)
	if err != nil {
		return nil, err
	}

	return &andQuery{boolQuery{incl: preparedIncl, excl: preparedExcl, boost: boost}}, nil
}

// prepareOr implements Or planning per the design's §4.9 Or steps,
// ported directly from Or::prepare.
func prepareOr(ctx context.Context, reader segment.Reader, bun order.Bundle, n *Or, boost float64) (Prepared, error) {
	boost *= n.boost

	if n.minMatch == 0 {
		return (&All{}).Prepare(ctx, reader, bun, boost)
	}

	incl, excl, ok := groupFilters(n.Children, true)
	if !ok {
		return emptyPrepared{}, nil
	}

	if len(incl) > 0 && incl[len(incl)-1].Type() == TypeEmpty {
		incl = incl[:len(incl)-1]
	}
	if len(incl) == 0 {
		return emptyPrepared{}, nil
	}

	var allBoost float64
	allCount := 0
	var inclAll Filter
	for _, f := range incl {
		if f.Type() == TypeAll {
			allCount++
			allBoost += f.Boost()
			inclAll = f
		}
	}

	optimizedMatch := 0
	if allCount != 0 {
		if bun.Empty() && len(incl) > 1 && n.minMatch <= allCount {
			incl = []Filter{inclAll}
			optimizedMatch = allCount - 1
		} else {
			nonAll := make([]Filter, 0, len(incl)-allCount)
			for _, f := range incl {
				if f.Type() != TypeAll {
					nonAll = append(nonAll, f)
				}
			}
			incl = append(nonAll, (&All{}).SetBoost(allBoost))
			optimizedMatch = allCount - 1
		}
	}

	adjustedMinMatch := 1
	if optimizedMatch < n.minMatch {
		adjustedMinMatch = n.minMatch - optimizedMatch
	}

	if adjustedMinMatch > len(incl) {
		return emptyPrepared{}, nil
	}

	if len(incl) == 1 && len(excl) == 0 {
		return incl[0].Prepare(ctx, reader, bun, boost)
	}

	preparedIncl, err := prepareChildren(ctx, reader, bun, boost, incl)
	if err != nil {
		return nil, err
	}
	preparedExcl, err := prepareChildren(ctx, reader, order.Bundle{}, boost, excl)
	if err != nil {
		return nil, err
	}

	bq := boolQuery{incl: preparedIncl, excl: preparedExcl, boost: boost}
	switch {
	case adjustedMinMatch == len(incl):
		return &andQuery{bq}, nil
	case adjustedMinMatch == 1:
		return &orQuery{bq}, nil
	default:
		return &minMatchQuery{boolQuery: bq, minMatch: adjustedMinMatch}, nil
	}
}

// prepareNot implements Not planning per the design's §4.9 Not steps,
// ported directly from Not::prepare: optimize_not chain-collapses, an
// odd residual negation builds a synthetic And{incl: All, excl: inner}
// directly (bypassing prepareAnd's own boost-folding, matching the
// source's direct and_query construction), an even residual simply
// prepares the inner filter.
func prepareNot(ctx context.Context, reader segment.Reader, bun order.Bundle, n *Not, boost float64) (Prepared, error) {
	inner, negated := optimizeNot(n)
	if inner == nil {
		return emptyPrepared{}, nil
	}

	boost *= n.boost

	if !negated {
		return inner.Prepare(ctx, reader, bun, boost)
	}

	all := &All{}
	preparedAll, err := all.Prepare(ctx, reader, bun, boost)
	if err != nil {
		return nil, err
	}
	preparedInner, err := inner.Prepare(ctx, reader, order.Bundle{}, boost)
	if err != nil {
		return nil, err
	}

	return &andQuery{boolQuery{
		incl:  []Prepared{preparedAll},
		excl:  []Prepared{preparedInner},
		boost: boost,
	}}, nil
}
