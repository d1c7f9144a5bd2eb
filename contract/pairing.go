// Package contract implements Wick contraction of second-quantized operator
// strings.
//
// Two algorithms are provided over a core.Term:
//   - FullContraction: the vacuum expectation value, a signed sum of
//     products of Kronecker deltas with every operator contracted
//   - Expand: the general re-expansion into normal-ordered terms plus all
//     partial contractions, by repeated swap-and-contract
//
// Both are pure functions. Each recursive branch owns its own copy of the
// evolving term; the only shared state is the core.Sum results are merged
// into. Catalog maps a Mode to its algorithm for dispatch by the engine.
package contract

import "github.com/sbl8/wick/core"

// Pair is a contraction between operator positions I and J.
type Pair struct {
	I, J int
}

// Pairing is one complete set of contractions over an operator string.
type Pairing []Pair

// GeneratePairings enumerates every perfect matching of ops in which each
// pair is an annihilator followed later by a creator.
//
// The search always takes the lowest free position. A creator there cannot
// start a contraction, so that branch yields nothing; an annihilator is
// tried against every later free position it can contract with.
func GeneratePairings(ops []core.Operator) []Pairing {
	free := make([]int, len(ops))
	for i := range free {
		free[i] = i
	}
	return generatePairings(ops, free)
}

func generatePairings(ops []core.Operator, free []int) []Pairing {
	if len(free) == 0 {
		return []Pairing{{}}
	}

	i := free[0]
	a := ops[i]
	if a.Action == core.Create {
		return nil
	}

	var results []Pairing
	for k := 1; k < len(free); k++ {
		j := free[k]
		if !core.CanContract(a, ops[j]) {
			continue
		}

		rest := make([]int, 0, len(free)-2)
		rest = append(rest, free[1:k]...)
		rest = append(rest, free[k+1:]...)

		for _, sub := range generatePairings(ops, rest) {
			p := make(Pairing, 0, len(sub)+1)
			p = append(p, Pair{I: i, J: j})
			p = append(p, sub...)
			results = append(results, p)
		}
	}
	return results
}

// CountCrossings counts the interleaved pairs in p.
//
// Pairs (i,j) and (k,l), each normalized so the first position is smaller,
// cross when i < k < j < l or k < i < l < j. Nested and disjoint pairs do
// not cross. The parity of the count equals the parity of the
// transpositions that bring every contracted pair together.
func CountCrossings(p Pairing) int {
	norm := make([]Pair, len(p))
	for n, pr := range p {
		if pr.I > pr.J {
			pr.I, pr.J = pr.J, pr.I
		}
		norm[n] = pr
	}

	count := 0
	for a := 0; a < len(norm); a++ {
		for b := a + 1; b < len(norm); b++ {
			i, j := norm[a].I, norm[a].J
			k, l := norm[b].I, norm[b].J
			if (i < k && k < j && j < l) || (k < i && i < l && l < j) {
				count++
			}
		}
	}
	return count
}

// Sign returns (-1)^crossings for Fermi-Dirac statistics and +1 otherwise.
func Sign(p Pairing, stats core.Statistics) float64 {
	if stats != core.FermiDirac || CountCrossings(p)%2 == 0 {
		return 1
	}
	return -1
}
