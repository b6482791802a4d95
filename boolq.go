// Package boolq is a boolean query compiler and evaluator for an
// inverted-index search engine: it rewrites a tree of filter nodes
// into an optimized evaluation plan and executes that plan by
// composing document iterators over one index segment's posting
// lists.
package boolq

import (
	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/engine"
	"github.com/ritamzico/boolq/internal/filter"
	"github.com/ritamzico/boolq/internal/iterator"
	"github.com/ritamzico/boolq/internal/order"
	"github.com/ritamzico/boolq/internal/segment"
)

type (
	// DocID identifies a document within a single segment.
	DocID = docid.ID

	// Filter is any boolean filter AST node: And, Or, Not, All, Empty,
	// or a caller-defined leaf.
	Filter = filter.Filter

	// Prepared is a compiled, read-only, freely-shareable query plan.
	Prepared = filter.Prepared

	// DocIterator is the sorted doc-id stream produced by executing a
	// Prepared query against a segment.
	DocIterator = iterator.DocIterator

	// Bundle is an ordered list of sort definitions shaping the score
	// buffer merged across sub-iterators.
	Bundle = order.Bundle

	// SortDefinition owns one fixed-width region of the score buffer.
	SortDefinition = order.SortDefinition

	// Segment is an opaque per-segment handle from the index layer.
	Segment = segment.Segment

	// Reader is an index reader: an iterable collection of segments.
	Reader = segment.Reader

	// AllDocsProvider is the external collaborator an All filter
	// delegates to for "every document in this segment".
	AllDocsProvider = filter.AllDocsProvider
)

const (
	// Invalid is returned by Value() before an iterator has been
	// advanced at least once.
	Invalid = docid.Invalid
	// Min is the smallest real doc-id a segment can produce.
	Min = docid.Min
	// EOF is returned once an iterator is permanently exhausted.
	EOF = docid.EOF

	// Aggregate sums sub-iterator score contributions at a document.
	Aggregate = order.Aggregate
	// Max keeps the largest sub-iterator score contribution.
	Max = order.Max
)

// And builds an And node with default boost 1.
func And(children ...Filter) *filter.And { return filter.NewAnd(children...) }

// Or builds an Or node with default boost 1 and min_match_count 1.
func Or(children ...Filter) *filter.Or { return filter.NewOr(children...) }

// Not negates inner, with default boost 1.
func Not(inner Filter) *filter.Not { return filter.NewNot(inner) }

// All matches every document in the segment.
func All() *filter.All { return filter.NewAll() }

// Empty matches no document.
func Empty() *filter.Empty { return filter.NewEmpty() }

// Evaluator binds an index reader to filter planning and prepared
// query execution.
type Evaluator = engine.Evaluator

// NewEvaluator builds an Evaluator over reader.
func NewEvaluator(reader Reader) *Evaluator {
	return &Evaluator{Reader: reader}
}
