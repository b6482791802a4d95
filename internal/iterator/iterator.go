// Package iterator implements the sorted doc-id stream protocol and
// every concrete set-algebra variant over it: exclusion, conjunction,
// and the three disjunction shapes (basic, small, block) plus the
// heap-based min-match disjunction.
package iterator

import (
	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// Cost is the attribute handle exposing an iterator's upper-bound
// match estimate, used to order conjunction sub-iterators and to size
// disjunction fan-out decisions.
type Cost interface {
	Estimate() int64
}

// ConstCost is a Cost that never changes after construction.
type ConstCost int64

func (c ConstCost) Estimate() int64 { return int64(c) }

// DocIterator is the sorted stream every leaf and composite iterator
// in this module implements. value() is monotonically non-decreasing
// across Next/Seek on a single instance; once EOF is returned it is
// returned forever.
type DocIterator interface {
	// Value returns the current position: docid.Invalid before the
	// first Next/Seek, docid.EOF once exhausted.
	Value() docid.ID
	// Next advances to the next real id. Returns false exactly when
	// the iterator transitions to EOF.
	Next() bool
	// Seek advances so that Value() >= target, returning the new
	// Value(). A target <= the current value is a no-op that returns
	// the current value unmoved. target == docid.Invalid is a no-op.
	// target == docid.EOF drives the iterator to EOF.
	Seek(target docid.ID) docid.ID
	// Cost is the upper-bound match estimate.
	Cost() Cost
	// Score is the lazily computed per-document relevance buffer.
	Score() order.Score
}

// MatchCounter is implemented by iterators that can report how many
// sub-iterators fired on the current document: min-match and block
// disjunctions.
type MatchCounter interface {
	MatchCount() int
}

// emptyIterator is the shared no-op sentinel: EOF from construction,
// zero cost, no score. One instance is reused across every empty
// prepared query per the design's "one shared no-op empty iterator is
// acceptable" guidance.
type emptyIterator struct{}

func (emptyIterator) Value() docid.ID        { return docid.EOF }
func (emptyIterator) Next() bool             { return false }
func (emptyIterator) Seek(docid.ID) docid.ID { return docid.EOF }
func (emptyIterator) Cost() Cost             { return ConstCost(0) }
func (emptyIterator) Score() order.Score     { return order.NoScore() }

var sharedEmpty = emptyIterator{}

// Empty returns the shared empty doc-iterator.
func Empty() DocIterator { return sharedEmpty }
