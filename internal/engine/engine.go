// Package engine adapts the teacher's thin execution entry point
// (InferenceEngine.Execute) to this module's domain: a compiled filter
// plus an index reader, executed per segment to yield one doc-iterator
// per segment that the caller drives directly.
package engine

import (
	"context"

	"github.com/ritamzico/boolq/internal/filter"
	"github.com/ritamzico/boolq/internal/iterator"
	"github.com/ritamzico/boolq/internal/order"
	"github.com/ritamzico/boolq/internal/segment"
)

// Evaluator binds an index reader to the filter planner and prepared
// query execution, the direct analogue of the teacher's
// InferenceEngine binding a graph to query execution.
type Evaluator struct {
	Reader segment.Reader
}

// Prepare compiles root into a prepared query against e.Reader under
// bun, with boost 1.
func (e *Evaluator) Prepare(ctx context.Context, root filter.Filter, bun order.Bundle) (filter.Prepared, error) {
	if e.Reader == nil {
		return nil, segment.NilReader()
	}
	return root.Prepare(ctx, e.Reader, bun, 1)
}

// Execute prepares root and executes it against every segment
// e.Reader exposes, returning one doc-iterator per segment in the same
// order segment.Reader.Segments() reports them. Per this core's scope,
// merging multiple segments' streams into one is the caller's concern.
func (e *Evaluator) Execute(ctx context.Context, root filter.Filter, bun order.Bundle) ([]iterator.DocIterator, error) {
	prepared, err := e.Prepare(ctx, root, bun)
	if err != nil {
		return nil, err
	}
	return e.ExecutePrepared(ctx, prepared, bun)
}

// ExecutePrepared executes an already-prepared query against every
// segment e.Reader exposes. Prepared queries are read-only and freely
// shareable, so the same value may be passed here repeatedly or from
// multiple goroutines.
func (e *Evaluator) ExecutePrepared(ctx context.Context, prepared filter.Prepared, bun order.Bundle) ([]iterator.DocIterator, error) {
	if e.Reader == nil {
		return nil, segment.NilReader()
	}
	segs := e.Reader.Segments()
	out := make([]iterator.DocIterator, 0, len(segs))
	for _, seg := range segs {
		it, err := prepared.Execute(ctx, seg, bun)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}
