package filter

import "testing"

func TestOptimizeNotCollapsesChain(t *testing.T) {
	leaf := newTermLeaf("a", 1, fids(1)...)

	inner, negated := optimizeNot(NewNot(leaf))
	if inner != Filter(leaf) || !negated {
		t.Fatalf("single Not: got inner=%v negated=%v, want leaf/true", inner, negated)
	}

	inner, negated = optimizeNot(NewNot(NewNot(leaf)))
	if inner != Filter(leaf) || negated {
		t.Fatalf("double Not: got inner=%v negated=%v, want leaf/false", inner, negated)
	}

	inner, negated = optimizeNot(NewNot(NewNot(NewNot(leaf))))
	if inner != Filter(leaf) || !negated {
		t.Fatalf("triple Not: got inner=%v negated=%v, want leaf/true", inner, negated)
	}
}

func TestGroupFiltersPlainChildrenGoToIncl(t *testing.T) {
	a := newTermLeaf("a", 1, fids(1)...)
	b := newTermLeaf("b", 1, fids(2)...)

	incl, excl, ok := groupFilters([]Filter{a, b}, false)
	if !ok || len(excl) != 0 || len(incl) != 2 {
		t.Fatalf("got incl=%v excl=%v ok=%v", incl, excl, ok)
	}
}

func TestGroupFiltersNotPushesToExcl(t *testing.T) {
	a := newTermLeaf("a", 1, fids(1)...)
	b := newTermLeaf("b", 1, fids(2)...)

	incl, excl, ok := groupFilters([]Filter{a, NewNot(b)}, false)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if len(incl) != 1 || !incl[0].Equal(a) {
		t.Fatalf("incl = %v, want [a]", incl)
	}
	if len(excl) != 1 || !excl[0].Equal(b) {
		t.Fatalf("excl = %v, want [b]", excl)
	}
}

func TestGroupFiltersDoubleNotGoesToIncl(t *testing.T) {
	a := newTermLeaf("a", 1, fids(1)...)

	incl, excl, ok := groupFilters([]Filter{NewNot(NewNot(a))}, false)
	if !ok || len(excl) != 0 || len(incl) != 1 || !incl[0].Equal(a) {
		t.Fatalf("got incl=%v excl=%v ok=%v, want incl=[a] excl=[]", incl, excl, ok)
	}
}

func TestGroupFiltersNotAllAnnihilates(t *testing.T) {
	_, _, ok := groupFilters([]Filter{NewNot(NewAll())}, false)
	if ok {
		t.Fatalf("expected Not(All) to annihilate the inclusion set (ok=false)")
	}
}

// TestGroupFiltersNotEmptyIsNotSpecialCased exercises the resolution
// recorded in DESIGN.md: Not(Empty) takes the same generic odd-parity
// branch as any other non-All negated inner, landing in excl (plus a
// zero-boost All sentinel in incl for an Or-parent). It is not an
// annihilating case the way Not(All) is.
func TestGroupFiltersNotEmptyIsNotSpecialCased(t *testing.T) {
	a := newTermLeaf("a", 1, fids(1)...)

	incl, excl, ok := groupFilters([]Filter{a, NewNot(NewEmpty())}, false)
	if !ok {
		t.Fatalf("expected ok=true, Not(Empty) is not an annihilating case")
	}
	if len(incl) != 1 || !incl[0].Equal(a) {
		t.Fatalf("incl = %v, want [a]", incl)
	}
	if len(excl) != 1 || excl[0].Type() != TypeEmpty {
		t.Fatalf("excl = %v, want [Empty]", excl)
	}
}

func TestGroupFiltersOrParentAddsZeroBoostAllSentinel(t *testing.T) {
	a := newTermLeaf("a", 1, fids(1)...)
	b := newTermLeaf("b", 1, fids(2)...)

	incl, excl, ok := groupFilters([]Filter{a, NewNot(b)}, true)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if len(excl) != 1 || !excl[0].Equal(b) {
		t.Fatalf("excl = %v, want [b]", excl)
	}
	if len(incl) != 2 || !incl[0].Equal(a) {
		t.Fatalf("incl = %v, want [a, zero-boost All]", incl)
	}
	sentinel, isAll := incl[1].(*All)
	if !isAll || sentinel.Boost() != 0 {
		t.Fatalf("incl[1] = %v, want a zero-boost All sentinel", incl[1])
	}
}

func TestGroupFiltersRemembersEmptyAndReappendsLast(t *testing.T) {
	a := newTermLeaf("a", 1, fids(1)...)
	empty := NewEmpty()

	incl, _, ok := groupFilters([]Filter{empty, a}, false)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if len(incl) != 2 || !incl[0].Equal(a) || incl[1].Type() != TypeEmpty {
		t.Fatalf("incl = %v, want [a, Empty] (Empty reappended last)", incl)
	}
}
