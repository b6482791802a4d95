package filter

// This file implements the AST → prepared-query rewrite: grouping
// children into inclusion/exclusion sets with Not-chain collapsing
// (optimize_not), and the And/Or/Not planning steps built on top of
// it. The algorithms here are grounded directly in the original
// planner (arangodb/iresearch's boolean_filter.cpp group_filters /
// And::prepare / Or::prepare / Not::prepare) rather than guessed from
// prose, per the resolution recorded in DESIGN.md: only a direct Not
// child gets its chain walked; a Not(Empty) is not a special case in
// its own right, it is handled by the same "push inner to excl" branch
// as any other negated-but-not-All inner filter.

var allDocsZeroBoost = (&All{}).SetBoost(0)

// groupFilters partitions children into inclusion and exclusion sets.
// A direct Empty child is remembered and re-appended last to incl. A
// direct Not child has its chain collapsed by optimizeNot: even parity
// pushes the innermost filter straight into incl; odd parity pushes it
// into excl (an Or-parent additionally gets a zero-boost All sentinel
// appended to incl, to preserve "anti-match contributes every document
// but no score"), unless the innermost is All, which annihilates the
// entire inclusion set (ok=false: the caller must treat this as an
// immediate empty result).
func groupFilters(children []Filter, isOrParent bool) (incl, excl []Filter, ok bool) {
	var emptyFilter Filter

	for _, child := range children {
		if child.Type() == TypeEmpty {
			emptyFilter = child
			continue
		}

		not, isNot := child.(*Not)
		if !isNot {
			incl = append(incl, child)
			continue
		}

		inner, negated := optimizeNot(not)
		if inner == nil {
			continue
		}

		if !negated {
			incl = append(incl, inner)
			continue
		}

		if inner.Type() == TypeAll {
			return nil, nil, false
		}

		excl = append(excl, inner)
		if isOrParent {
			incl = append(incl, allDocsZeroBoost)
		}
	}

	if emptyFilter != nil {
		incl = append(incl, emptyFilter)
	}

	return incl, excl, true
}

// optimizeNot walks a chain of Not wrappers starting at node, counting
// parity, and returns the innermost non-Not filter together with
// whether the overall chain negates it (odd count). A chain that
// bottoms out at a nil inner filter returns a nil inner.
func optimizeNot(node *Not) (inner Filter, negated bool) {
	negated = true
	f := node.Inner
	for f != nil && f.Type() == TypeNot {
		negated = !negated
		f = f.(*Not).Inner
	}
	return f, negated
}
