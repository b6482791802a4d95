// Package filter implements the boolean filter AST, the compile-time
// planner that rewrites it into a prepared query, and the prepared
// query types that execute against a segment to yield a doc-iterator.
package filter

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/ritamzico/boolq/internal/iterator"
	"github.com/ritamzico/boolq/internal/order"
	"github.com/ritamzico/boolq/internal/segment"
)

// Type tags the AST variant set. It is a closed enumeration: And, Or,
// Not, All, Empty, and Leaf (anything user-defined implementing Filter
// that is not one of the five composite shapes).
type Type int

const (
	TypeAnd Type = iota
	TypeOr
	TypeNot
	TypeAll
	TypeEmpty
	TypeLeaf
)

// FilterError is the error type for misuse of the AST or planner
// contracts. No planning step in this package returns one: a Not whose
// chain ends in a nil target is not reported as an error. It never
// models "no document can match", which is the empty prepared query
// value.
type FilterError struct {
	Kind    string
	Message string
}

func (e FilterError) Error() string {
	return fmt.Sprintf("filter error (%v): %v", e.Kind, e.Message)
}

// Filter is any AST node: the five composite shapes plus caller-defined
// leaves (term/range/prefix and similar posting-list producers, which
// live entirely outside this module per its external-interfaces
// contract).
type Filter interface {
	// Type reports which AST variant this node is.
	Type() Type
	// Boost is this node's own multiplicative score factor.
	Boost() float64
	// Hash is a structural hash over (type, boost, payload, children).
	Hash() uint64
	// Equal reports structural equality with another filter.
	Equal(other Filter) bool
	// Prepare compiles this node (as a leaf, or as the root of a
	// sub-tree reached directly rather than through And/Or/Not
	// planning) into a prepared query.
	Prepare(ctx context.Context, reader segment.Reader, bun order.Bundle, boost float64) (Prepared, error)
}

// Prepared is the output of planning: a compiled, read-only,
// freely-shareable plan that yields a doc-iterator per segment.
type Prepared interface {
	// Execute produces a doc-iterator over seg. Must not mutate any
	// shared state; safe to call concurrently from distinct goroutines
	// against distinct segments.
	Execute(ctx context.Context, seg segment.Segment, bun order.Bundle) (iterator.DocIterator, error)
}

func hashBytes(seed uint64, parts ...any) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%v", seed)
	for _, p := range parts {
		fmt.Fprintf(h, "|%v", p)
	}
	return h.Sum64()
}
