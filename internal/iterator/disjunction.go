package iterator

import "github.com/ritamzico/boolq/internal/order"

// NewBasicDisjunction builds the dedicated two-way merge for exactly
// two sub-iterators.
func NewBasicDisjunction(bun order.Bundle, a, b DocIterator) DocIterator {
	return newBasicDisjunction(bun, a, b)
}

// NewSmallDisjunction builds a linear-scan union over a handful of
// sub-iterators.
func NewSmallDisjunction(bun order.Bundle, subs []DocIterator) DocIterator {
	if len(subs) == 1 {
		return subs[0]
	}
	return newSmallDisjunction(bun, subs)
}

// NewBlockDisjunction builds a bit-block windowed union over many
// sub-iterators.
func NewBlockDisjunction(bun order.Bundle, subs []DocIterator, traits BlockTraits) DocIterator {
	if len(subs) == 1 {
		return subs[0]
	}
	return newBlockDisjunction(bun, subs, traits)
}

// NewMinMatchDisjunction builds the heap-based min-match union: at
// least minCount of subs must agree on a document for it to be
// emitted. A minCount of 1 or less yields a plain block disjunction
// instead, and a minCount of len(subs) or more yields a conjunction.
func NewMinMatchDisjunction(bun order.Bundle, subs []DocIterator, minCount int) DocIterator {
	if minCount <= 1 {
		return NewBlockDisjunction(bun, subs, BlockTraits{ScoreEnabled: !bun.Empty(), Mode: Match})
	}
	if minCount >= len(subs) {
		return NewConjunction(bun, subs...)
	}
	return newMinMatchDisjunction(bun, subs, minCount)
}
