package iterator

import (
	"math/bits"

	"github.com/ritamzico/boolq/internal/docid"
	"github.com/ritamzico/boolq/internal/order"
)

// MatchMode selects what a block disjunction's window emits.
type MatchMode int

const (
	// Match emits any document at least one sub-iterator produced:
	// ordinary union.
	Match MatchMode = iota
	// MinMatch emits only documents at least MinCount sub-iterators
	// produced.
	MinMatch
)

// BlockTraits configures a block disjunction at construction, the
// compile-time specialization points the design calls out
// (score_enabled, match_mode, read_ahead, block_count).
type BlockTraits struct {
	ScoreEnabled bool
	Mode         MatchMode
	MinCount     int
	ReadAhead    bool
	BlockWidth   uint64 // power of two, e.g. 64 or 128
}

// DefaultBlockWidth is used when a caller leaves BlockWidth unset.
const DefaultBlockWidth = 128

// BlockDisjunctionThreshold is a sub-iterator count above which the
// bit-block windowed variant beats a linear scan, since advancing every
// sub-iterator per document becomes wasteful. The filter package's
// disjunction dispatch does not consult it: it switches to the block
// variant above SmallDisjunctionThreshold.
const BlockDisjunctionThreshold = 16

// blockDisjunction unions many sub-iterators by materializing a
// bit-block window of BlockWidth real ids at a time: every sub-iterator
// whose next value falls in the window ORs a bit into the window's
// presence bitmap, and (if scored) accumulates into a per-slot score
// buffer.
type blockDisjunction struct {
	subs   []DocIterator
	traits BlockTraits
	bun    order.Bundle
	cost   ConstCost

	base    docid.ID // first real id representable by the current window
	bitmap  []uint64
	counts  []int32 // match_count per slot, kept in every mode
	scores  [][]byte
	slot    int // current slot within the window, -1 before first populate
	value   docid.ID
	matched int
}

func newBlockDisjunction(bun order.Bundle, subs []DocIterator, traits BlockTraits) DocIterator {
	if traits.BlockWidth == 0 {
		traits.BlockWidth = DefaultBlockWidth
	}
	var cost int64
	for _, s := range subs {
		cost += s.Cost().Estimate()
	}
	words := int(traits.BlockWidth / 64)
	if words == 0 {
		words = 1
	}
	d := &blockDisjunction{
		subs:   subs,
		traits: traits,
		bun:    bun,
		cost:   ConstCost(cost),
		bitmap: make([]uint64, words),
		counts: make([]int32, traits.BlockWidth),
		value:  docid.Invalid,
		slot:   -1,
	}
	if traits.ScoreEnabled && !bun.Empty() {
		d.scores = make([][]byte, traits.BlockWidth)
	}
	return d
}

func (d *blockDisjunction) Value() docid.ID { return d.value }
func (d *blockDisjunction) Cost() Cost      { return d.cost }

func (d *blockDisjunction) MatchCount() int { return d.matched }

func (d *blockDisjunction) Score() order.Score {
	if d.scores == nil || d.value == docid.EOF || d.value == docid.Invalid {
		return order.NoScore()
	}
	if d.scores[d.slot] == nil {
		return order.NoScore()
	}
	return order.BufferScore(d.scores[d.slot])
}

// smallestFrontier returns the smallest real id >= floor across every
// sub-iterator, or docid.EOF if all are exhausted.
func (d *blockDisjunction) smallestFrontier(floor docid.ID) docid.ID {
	best := docid.EOF
	for _, s := range d.subs {
		v := s.Value()
		if v < floor {
			v = s.Seek(floor)
		}
		if v < best {
			best = v
		}
	}
	return best
}

func (d *blockDisjunction) bitSet(i uint64) bool {
	return d.bitmap[i/64]&(1<<(i%64)) != 0
}

func (d *blockDisjunction) setBit(i uint64) {
	d.bitmap[i/64] |= 1 << (i % 64)
}

// populate fills a new window starting at base. Every in-window value
// of every sub-iterator is recorded: a sub's matches must be fully
// drained regardless of ReadAhead, or those documents would be dropped
// permanently once the window transitions past base+width. ReadAhead
// only selects the order matches are pulled from the subs in: eager
// drains one sub's whole window run before moving to the next (fewer,
// longer-lived loops), read-ahead off round-robins one step across all
// subs per pass (shorter, more uniform loop bodies, friendlier to
// branch prediction) — the design's CPU/branch-prediction trade
// (spec §4.6 step 3), not a correctness switch.
func (d *blockDisjunction) populate(base docid.ID) {
	d.base = base
	for i := range d.bitmap {
		d.bitmap[i] = 0
	}
	for i := range d.counts {
		d.counts[i] = 0
	}
	if d.scores != nil {
		for i := range d.scores {
			d.scores[i] = nil
		}
	}

	width := docid.ID(d.traits.BlockWidth)
	if d.traits.ReadAhead {
		for _, s := range d.subs {
			for d.recordIfInWindow(s, base, width) {
			}
		}
		d.slot = -1
		return
	}

	active := append([]DocIterator(nil), d.subs...)
	for len(active) > 0 {
		next := active[:0]
		for _, s := range active {
			if d.recordIfInWindow(s, base, width) {
				next = append(next, s)
			}
		}
		active = next
	}
	d.slot = -1
}

// recordIfInWindow seeks s to base if it has fallen behind, and, if its
// current value lands inside [base, base+width), records it (bitmap,
// count, score) and advances s one step, reporting true so the caller
// knows to consider s again. Reports false once s is exhausted or has
// moved past the window.
func (d *blockDisjunction) recordIfInWindow(s DocIterator, base, width docid.ID) bool {
	v := s.Value()
	if v == docid.Invalid || v < base {
		v = s.Seek(base)
	}
	if v == docid.EOF || v >= base+width {
		return false
	}
	off := uint64(v - base)
	d.setBit(off)
	d.counts[off]++
	if d.scores != nil {
		sc := s.Score()
		if !sc.IsDefault() {
			if d.scores[off] == nil {
				buf := d.bun.NewBuffer()
				copy(buf, sc.Evaluate())
				d.scores[off] = buf
			} else {
				d.bun.Merge(d.scores[off], sc.Evaluate())
			}
		}
	}
	return s.Next()
}

// fires reports whether slot off within the current window should be
// emitted under the configured match mode.
func (d *blockDisjunction) fires(off uint64) bool {
	if !d.bitSet(off) {
		return false
	}
	if d.traits.Mode == MinMatch {
		return int(d.counts[off]) >= d.traits.MinCount
	}
	return true
}

// advanceWithinWindow finds the next fired slot at or after from,
// returns (offset, true) or (0, false) if the rest of the window is
// empty.
func (d *blockDisjunction) advanceWithinWindow(from uint64) (uint64, bool) {
	width := d.traits.BlockWidth
	for off := from; off < width; {
		word := off / 64
		shift := off % 64
		w := d.bitmap[word] >> shift
		if w == 0 {
			off = (word + 1) * 64
			continue
		}
		next := off + uint64(bits.TrailingZeros64(w))
		if next >= width {
			break
		}
		if d.fires(next) {
			return next, true
		}
		off = next + 1
	}
	return 0, false
}

func (d *blockDisjunction) emit(off uint64) {
	d.slot = int(off)
	d.value = d.base + docid.ID(off)
	d.matched = int(d.counts[off])
}

func (d *blockDisjunction) advanceToWindowContaining(target docid.ID) {
	for {
		frontier := d.smallestFrontier(target)
		if frontier == docid.EOF {
			d.value = docid.EOF
			d.matched = 0
			return
		}
		width := docid.ID(d.traits.BlockWidth)
		base := (frontier / width) * width
		if base == 0 {
			base = 1
		}
		d.populate(base)
		if off, ok := d.advanceWithinWindow(0); ok {
			d.emit(off)
			return
		}
		target = d.base + docid.ID(d.traits.BlockWidth)
	}
}

func (d *blockDisjunction) Next() bool {
	if d.value == docid.EOF {
		return false
	}
	if d.slot >= 0 {
		if off, ok := d.advanceWithinWindow(uint64(d.slot) + 1); ok {
			d.emit(off)
			return true
		}
	}
	target := d.base + docid.ID(d.traits.BlockWidth)
	if d.value == docid.Invalid {
		// Nothing populated yet: search starting from the very first
		// real id instead of skipping past an uninitialized base.
		target = docid.Min
	}
	d.advanceToWindowContaining(target)
	return d.value != docid.EOF
}

func (d *blockDisjunction) Seek(target docid.ID) docid.ID {
	if target == docid.Invalid {
		return d.value
	}
	if d.value != docid.Invalid && target <= d.value {
		return d.value
	}
	width := docid.ID(d.traits.BlockWidth)
	if d.slot >= 0 && target >= d.base && target < d.base+width {
		off := uint64(target - d.base)
		if fired, ok := d.advanceWithinWindow(off); ok {
			d.emit(fired)
			return d.value
		}
	}
	d.advanceToWindowContaining(target)
	return d.value
}
