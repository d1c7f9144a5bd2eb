package core

import "math"

// Coefficient tolerances
const (
	// MergeTolerance is the magnitude below which a coefficient counts as
	// zero when merging terms into a Sum.
	MergeTolerance = 1e-15

	// PruneTolerance is the magnitude at or below which a contraction
	// branch is discarded before recursing.
	PruneTolerance = 1e-12
)

// Sum is an ordered sum of terms with like terms merged on insertion.
type Sum struct {
	terms []Term
}

// NewSum merges terms into a new Sum in order.
func NewSum(terms ...Term) *Sum {
	s := &Sum{}
	for _, t := range terms {
		s.PushAndMerge(t)
	}
	return s
}

// Plus is a + b as a Sum.
func Plus(a, b Term) *Sum { return NewSum(a, b) }

// PushAndMerge adds t to the sum. A negligible coefficient is dropped; a
// term similar to an existing one adds its coefficient to it in place.
func (s *Sum) PushAndMerge(t Term) {
	if math.Abs(t.coeff) < MergeTolerance {
		return
	}
	for i := range s.terms {
		if s.terms[i].IsSimilar(t) {
			s.terms[i].coeff += t.coeff
			return
		}
	}
	s.terms = append(s.terms, t.Clone())
}

// Simplify removes terms that cancelled to within MergeTolerance.
func (s *Sum) Simplify() {
	kept := s.terms[:0]
	for _, t := range s.terms {
		if math.Abs(t.coeff) > MergeTolerance {
			kept = append(kept, t)
		}
	}
	clear(s.terms[len(kept):])
	s.terms = kept
}

// Add merges every term of other into s and returns s.
func (s *Sum) Add(other *Sum) *Sum {
	if other == nil {
		return s
	}
	for _, t := range other.terms {
		s.PushAndMerge(t)
	}
	return s
}

// Terms returns copies of the terms in insertion order.
func (s *Sum) Terms() []Term {
	if s == nil {
		return nil
	}
	out := make([]Term, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of terms.
func (s *Sum) Len() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}

// IsZero reports an empty sum, the algebraic zero.
func (s *Sum) IsZero() bool { return s.Len() == 0 }
