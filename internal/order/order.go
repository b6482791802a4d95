// Package order implements the score buffer and merge-mode contract
// that doc-iterators use to combine per-leaf relevance signals.
//
// Scores are opaque byte blocks, shaped by a Bundle of SortDefinitions,
// the way the teacher's serialization package treats a fixed-shape byte
// encoding as an opaque unit its callers never peek inside.
package order

import (
	"encoding/binary"
	"math"
)

// Mode selects how several sub-iterator score contributions at the
// same document are combined into one.
type Mode int

const (
	// Aggregate sums contributions. It is the zero value, so a Bundle
	// whose Mode is left unset aggregates.
	Aggregate Mode = iota
	// Max keeps the largest contribution. Every iterator merging under
	// a Bundle whose Mode is Max uses it.
	Max
)

// SortDefinition owns a fixed-width region of the score buffer and the
// arithmetic for combining and comparing values in that region. A real
// implementation (e.g. BM25, a field boost) lives outside this module;
// this type only describes the shape every such implementation must
// fill in.
type SortDefinition struct {
	// Width is the number of bytes this definition occupies in the
	// score buffer.
	Width int

	// Merge combines an existing buffer region with a freshly
	// evaluated one under the given mode, writing the result into dst.
	Merge func(mode Mode, dst, src []byte)

	// Less reports whether the value encoded in a ranks behind the
	// value encoded in b (used only by callers that rank results; this
	// module never sorts on its own).
	Less func(a, b []byte) bool
}

// Float64Sort is a SortDefinition over a single float64 score, summed
// under Aggregate and maxed under Max. It is the simplest concrete
// definition and is what this module's tests use for scored fixtures.
var Float64Sort = SortDefinition{
	Width: 8,
	Merge: func(mode Mode, dst, src []byte) {
		d := math.Float64frombits(binary.LittleEndian.Uint64(dst))
		s := math.Float64frombits(binary.LittleEndian.Uint64(src))
		var r float64
		switch mode {
		case Max:
			if s > d {
				r = s
			} else {
				r = d
			}
		default:
			r = d + s
		}
		binary.LittleEndian.PutUint64(dst, math.Float64bits(r))
	},
	Less: func(a, b []byte) bool {
		return math.Float64frombits(binary.LittleEndian.Uint64(a)) <
			math.Float64frombits(binary.LittleEndian.Uint64(b))
	},
}

// EncodeFloat64 writes v as a Float64Sort-compatible buffer.
func EncodeFloat64(v float64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

// DecodeFloat64 reads a Float64Sort-compatible buffer.
func DecodeFloat64(buf []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf))
}

// Bundle is an ordered list of sort definitions. An empty bundle means
// unordered evaluation: no scores are computed and iterators may skip
// score setup entirely.
type Bundle struct {
	Defs []SortDefinition
	Mode Mode
}

// Empty reports whether the bundle carries no sort definitions.
func (b Bundle) Empty() bool {
	return len(b.Defs) == 0
}

// Width returns the total byte width of a score buffer shaped by this
// bundle.
func (b Bundle) Width() int {
	w := 0
	for _, d := range b.Defs {
		w += d.Width
	}
	return w
}

// NewBuffer allocates a zeroed score buffer of this bundle's width.
func (b Bundle) NewBuffer() []byte {
	return make([]byte, b.Width())
}

// Merge combines src into dst in place, region by region, using each
// definition's own merge arithmetic under the bundle's mode.
func (b Bundle) Merge(dst, src []byte) {
	off := 0
	for _, d := range b.Defs {
		d.Merge(b.Mode, dst[off:off+d.Width], src[off:off+d.Width])
		off += d.Width
	}
}

// noScore is the shared sentinel returned by Score when no order was
// prepared, or when it is otherwise cheaper to elide score evaluation.
var noScore = noScoreValue{}

type noScoreValue struct{}

// Score is the attribute handle a doc-iterator exposes for its current
// document's score buffer.
type Score interface {
	// IsDefault reports whether this is the no-score sentinel;
	// implementers probe this to elide evaluation work.
	IsDefault() bool
	// Evaluate returns the score buffer for the iterator's current
	// document. The returned slice is borrowed and valid only until
	// the next next/seek call on the owning iterator.
	Evaluate() []byte
}

// NoScore returns the shared no-score sentinel.
func NoScore() Score { return noScore }

func (noScoreValue) IsDefault() bool  { return true }
func (noScoreValue) Evaluate() []byte { return nil }

// BufferScore wraps a concrete, already-evaluated byte buffer as a
// Score attribute.
type BufferScore []byte

func (s BufferScore) IsDefault() bool  { return false }
func (s BufferScore) Evaluate() []byte { return s }
