// Package segment declares the external collaborator contracts this
// module reaches out to but never implements: index readers and their
// per-segment sub-readers. Concrete posting-list storage, codecs, and
// tokenization live entirely outside this module's scope.
package segment

import "fmt"

// Segment is an opaque per-segment handle passed to a prepared query's
// Execute. Its shape is owned by the index layer; this module never
// inspects it directly, only threads it through to leaf filters.
type Segment interface{}

// Reader is an index reader: an iterable collection of segments that a
// prepared query is built against once and executed per segment.
type Reader interface {
	// Segments returns every segment this reader exposes, in no
	// particular order. The slice is the reader's own and must not be
	// mutated by callers.
	Segments() []Segment
}

// SegmentError reports misuse of the segment/reader contracts (a nil
// reader handed to prepare, an unrecognized segment handed to
// execute). It never models ordinary "no results" outcomes, which are
// values (empty prepared query, EOF iterator) per the error-handling
// design.
type SegmentError struct {
	Kind    string
	Message string
}

func (e SegmentError) Error() string {
	return fmt.Sprintf("segment error (%v): %v", e.Kind, e.Message)
}

// NilReader reports that prepare was called with a nil index reader.
func NilReader() error {
	return SegmentError{
		Kind:    "NilReader",
		Message: "index reader must not be nil",
	}
}
