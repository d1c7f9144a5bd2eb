package contract

import (
	"math"

	"github.com/sbl8/wick/core"
)

// Expand rewrites t as the sum of all normal-ordered terms reachable by
// repeatedly resolving the first out-of-order adjacent pair a_i a+_j into
// the exchanged product plus the contraction delta(i,j).
//
// The exchanged product is negated only under Fermi-Dirac statistics; no
// commutator term is added for other statistics. A contraction branch whose
// coefficient is within core.PruneTolerance of zero is discarded.
func Expand(t core.Term) *core.Sum {
	result := core.NewSum()
	expand(t, result)
	return result
}

func expand(t core.Term, result *core.Sum) {
	if t.Len() <= 1 {
		result.PushAndMerge(t)
		return
	}
	i := core.FirstContractable(t.Operators())
	if i < 0 {
		result.PushAndMerge(t)
		return
	}

	swapped := t.Clone()
	swapped.SwapAdjacent(i)
	if t.IsFermi() {
		swapped.Scale(-1)
	}
	expand(swapped, result)

	contracted := t.Clone()
	contracted.AddDelta(core.NewDelta(t.Operator(i).Index, t.Operator(i+1).Index))
	contracted.RemoveAdjacent(i)
	if math.Abs(contracted.Coeff()) <= core.PruneTolerance {
		return
	}
	expand(contracted, result)
}
