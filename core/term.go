package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Term is a coefficient times a product of Kronecker deltas and an ordered
// operator string: c * delta... * op1 op2 ... opN.
//
// The operator order carries the sign of the product and must be preserved.
// All operators share the term's statistics. Term behaves as a value: the
// accessors return copies and Clone must be used before mutating a term
// that is shared with another branch of a computation.
type Term struct {
	coeff  float64
	ops    []Operator
	deltas []Delta
	stats  Statistics
}

// NewTerm builds a Fermi-Dirac term from a coefficient and an operator string.
func NewTerm(coeff float64, ops ...Operator) Term {
	return Term{coeff: coeff, ops: slices.Clone(ops), stats: FermiDirac}
}

// Scalar is c * op.
func Scalar(c float64, op Operator) Term { return NewTerm(c, op) }

// Product is a * b with unit coefficient.
func Product(a, b Operator) Term { return NewTerm(1, a, b) }

// Times appends op to a copy of t, giving t * op.
func (t Term) Times(op Operator) Term {
	out := t.Clone()
	out.ops = append(out.ops, op)
	return out
}

// Mul is t * other: coefficients multiply, operators and deltas concatenate.
// Terms of different statistics cannot be combined.
func (t Term) Mul(other Term) (Term, error) {
	if t.stats != other.stats {
		return Term{}, &StatisticsMismatchError{Left: t.stats, Right: other.stats}
	}
	out := t.Clone()
	out.coeff *= other.coeff
	out.ops = append(out.ops, other.ops...)
	out.deltas = append(out.deltas, other.deltas...)
	return out, nil
}

// WithStatistics returns a copy of t tagged with s.
func (t Term) WithStatistics(s Statistics) Term {
	out := t.Clone()
	out.stats = s
	return out
}

// WithCoeff returns a copy of t with coefficient c.
func (t Term) WithCoeff(c float64) Term {
	out := t.Clone()
	out.coeff = c
	return out
}

// WithDelta returns a copy of t with d appended as is, without substitution.
func (t Term) WithDelta(d Delta) Term {
	out := t.Clone()
	out.deltas = append(out.deltas, d)
	return out
}

// Clone returns a deep copy of t.
func (t Term) Clone() Term {
	return Term{
		coeff:  t.coeff,
		ops:    slices.Clone(t.ops),
		deltas: slices.Clone(t.deltas),
		stats:  t.stats,
	}
}

func (t Term) Coeff() float64          { return t.coeff }
func (t Term) Statistics() Statistics  { return t.stats }
func (t Term) Len() int                { return len(t.ops) }
func (t Term) Operator(i int) Operator { return t.ops[i] }
func (t Term) Operators() []Operator   { return slices.Clone(t.ops) }
func (t Term) Deltas() []Delta         { return slices.Clone(t.deltas) }

// IsScalar reports a term with neither operators nor deltas.
func (t Term) IsScalar() bool { return len(t.ops) == 0 && len(t.deltas) == 0 }

// IsFermi reports Fermi-Dirac statistics.
func (t Term) IsFermi() bool { return t.stats == FermiDirac }

// Counts returns the number of creation and annihilation operators.
func (t Term) Counts() (creates, annihilates int) {
	for _, op := range t.ops {
		if op.Action == Create {
			creates++
		} else {
			annihilates++
		}
	}
	return creates, annihilates
}

// AppendOperator appends op in place.
func (t *Term) AppendOperator(op Operator) { t.ops = append(t.ops, op) }

// Scale multiplies the coefficient in place.
func (t *Term) Scale(f float64) { t.coeff *= f }

// AddDelta adds d in place, folding it into an existing delta when possible.
//
// A delta between an index and itself is dropped. If an existing delta
// starts at d.B, its first index is rewritten to d.A instead of appending a
// second delta, so chains such as delta(r,q) delta(q,p) collapse to
// delta(r,p).
func (t *Term) AddDelta(d Delta) {
	if d.IsTrivial() {
		return
	}
	for i := range t.deltas {
		if t.deltas[i].A == d.B {
			t.deltas[i].A = d.A
			return
		}
	}
	t.deltas = append(t.deltas, d)
}

// SwapAdjacent exchanges operators i and i+1 in place.
func (t *Term) SwapAdjacent(i int) {
	t.ops[i], t.ops[i+1] = t.ops[i+1], t.ops[i]
}

// RemoveAdjacent deletes operators i and i+1 in place.
func (t *Term) RemoveAdjacent(i int) {
	t.ops = slices.Delete(t.ops, i, i+2)
}

// IsNormalOrder reports that no annihilator immediately precedes a creator.
func (t Term) IsNormalOrder() bool {
	return FirstContractable(t.ops) < 0
}

// FirstContractable returns the position i of the first adjacent pair
// (ops[i], ops[i+1]) that can contract, or -1.
func FirstContractable(ops []Operator) int {
	for i := 0; i+1 < len(ops); i++ {
		if CanContract(ops[i], ops[i+1]) {
			return i
		}
	}
	return -1
}

// IsSimilar reports whether t and other differ at most in coefficient:
// same statistics, the same operator string position by position, and the
// same deltas up to order within each delta and order of the deltas.
func (t Term) IsSimilar(other Term) bool {
	if t.stats != other.stats {
		return false
	}
	if !slices.Equal(t.ops, other.ops) {
		return false
	}
	if len(t.deltas) != len(other.deltas) {
		return false
	}
	return slices.Equal(canonicalDeltas(t.deltas), canonicalDeltas(other.deltas))
}

type deltaKey struct{ a, b string }

func canonicalDeltas(ds []Delta) []deltaKey {
	keys := make([]deltaKey, len(ds))
	for i, d := range ds {
		a, b := d.Canonical()
		keys[i] = deltaKey{a, b}
	}
	slices.SortFunc(keys, func(x, y deltaKey) int {
		if c := strings.Compare(x.a, y.a); c != 0 {
			return c
		}
		return strings.Compare(x.b, y.b)
	})
	return keys
}

func (t Term) String() string {
	if t.coeff == 0 {
		return "0"
	}
	var parts []string
	if t.coeff != 1 || t.IsScalar() {
		parts = append(parts, strconv.FormatFloat(t.coeff, 'g', -1, 64))
	}
	for _, d := range t.deltas {
		parts = append(parts, d.String())
	}
	for _, op := range t.ops {
		if op.Action == Create {
			parts = append(parts, fmt.Sprintf("%s+(%s)", t.stats.Symbol(), op.Index.name))
		} else {
			parts = append(parts, fmt.Sprintf("%s(%s)", t.stats.Symbol(), op.Index.name))
		}
	}
	return strings.Join(parts, " ")
}
