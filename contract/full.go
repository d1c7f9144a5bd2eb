package contract

import "github.com/sbl8/wick/core"

// FullContraction returns the vacuum expectation value of t: for every
// valid pairing, a term with no operators, one delta per contracted pair
// and coefficient sign * t.Coeff().
//
// A term with at most one operator, or one already in normal order, is
// returned unchanged. A term whose creation and annihilation counts differ
// has no perfect matching and yields the empty sum.
func FullContraction(t core.Term) *core.Sum {
	if t.Len() <= 1 || t.IsNormalOrder() {
		return core.NewSum(t)
	}

	creates, annihilates := t.Counts()
	if creates != annihilates {
		return core.NewSum()
	}

	ops := t.Operators()
	result := core.NewSum()
	for _, p := range GeneratePairings(ops) {
		term := core.NewTerm(Sign(p, t.Statistics())*t.Coeff()).WithStatistics(t.Statistics())
		for _, pr := range p {
			term = term.WithDelta(core.NewDelta(ops[pr.I].Index, ops[pr.J].Index))
		}
		result.PushAndMerge(term)
	}
	return result
}
