package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIndex(t *testing.T, name string) Index {
	t.Helper()
	idx, err := NewIndex(name, General, Physical)
	require.NoError(t, err)
	return idx
}

func TestNewIndexSpaceVacuumTable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		space  Space
		vacuum Vacuum
		ok     bool
	}{
		{General, Physical, true},
		{Occupied, Physical, false},
		{Virtual, Physical, false},
		{DoublyOccupied, Physical, false},
		{General, Fermi, false},
		{Occupied, Fermi, true},
		{Virtual, Fermi, true},
		{DoublyOccupied, Fermi, true},
		{General, MultiReference, true},
		{Occupied, MultiReference, true},
		{Virtual, MultiReference, true},
		{DoublyOccupied, MultiReference, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.space, tt.vacuum), func(t *testing.T) {
			idx, err := NewIndex("i", tt.space, tt.vacuum)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidIndex))
				var ie *InvalidIndexError
				require.True(t, errors.As(err, &ie))
				assert.Equal(t, tt.space, ie.Space)
				assert.Equal(t, tt.vacuum, ie.Vacuum)
				assert.True(t, idx.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "i", idx.Name())
			assert.Equal(t, tt.space, idx.Space())
			assert.Equal(t, tt.vacuum, idx.Vacuum())
		})
	}
}

func TestNewIndexRejectsEmptyName(t *testing.T) {
	t.Parallel()
	_, err := NewIndex("  ", General, Physical)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestIndexEquality(t *testing.T) {
	t.Parallel()
	assert.Equal(t, mustIndex(t, "p"), GeneralIndex("p"))
	occ, err := NewIndex("p", Occupied, Fermi)
	require.NoError(t, err)
	assert.NotEqual(t, GeneralIndex("p"), occ)
}

func TestCanContract(t *testing.T) {
	t.Parallel()
	p, q := GeneralIndex("p"), GeneralIndex("q")
	tests := []struct {
		name string
		a, b Operator
		want bool
	}{
		{"annihilate then create", Ann(p), Cre(q), true},
		{"create then annihilate", Cre(p), Ann(q), false},
		{"create then create", Cre(p), Cre(q), false},
		{"annihilate then annihilate", Ann(p), Ann(q), false},
		{"same index", Ann(p), Cre(p), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanContract(tt.a, tt.b))
		})
	}
}

func TestOperatorAdjoint(t *testing.T) {
	t.Parallel()
	p := GeneralIndex("p")
	assert.Equal(t, Cre(p), Ann(p).Adjoint())
	assert.Equal(t, Ann(p), Cre(p).Adjoint())
	assert.Equal(t, Ann(p), Ann(p).Adjoint().Adjoint())
}

func TestDeltaEqualIgnoresOrder(t *testing.T) {
	t.Parallel()
	p, q, r := GeneralIndex("p"), GeneralIndex("q"), GeneralIndex("r")
	assert.True(t, NewDelta(p, q).Equal(NewDelta(q, p)))
	assert.False(t, NewDelta(p, q).Equal(NewDelta(p, r)))

	a, b := NewDelta(q, p).Canonical()
	assert.Equal(t, "p", a)
	assert.Equal(t, "q", b)
}

func TestIsNormalOrder(t *testing.T) {
	t.Parallel()
	p1, p2 := GeneralIndex("p1"), GeneralIndex("p2")
	tests := []struct {
		name string
		term Term
		want bool
	}{
		{"empty", NewTerm(1), true},
		{"single", NewTerm(1, Ann(p1)), true},
		{"create annihilate", Product(Cre(p1), Ann(p2)), true},
		{"annihilate create", Product(Ann(p2), Cre(p1)), false},
		{"creators then annihilators", NewTerm(1, Cre(p1), Cre(p2), Ann(p1), Ann(p2)), true},
		{"inversion in the middle", NewTerm(1, Cre(p1), Ann(p1), Cre(p2), Ann(p2)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.IsNormalOrder())
		})
	}
}

func TestAddDeltaSubstitution(t *testing.T) {
	t.Parallel()
	p, q, r := GeneralIndex("p"), GeneralIndex("q"), GeneralIndex("r")

	term := NewTerm(1)
	term.AddDelta(NewDelta(q, p))
	term.AddDelta(NewDelta(r, q))
	require.Len(t, term.Deltas(), 1)
	assert.Equal(t, NewDelta(r, p), term.Deltas()[0])

	term.AddDelta(NewDelta(p, p))
	assert.Len(t, term.Deltas(), 1, "self delta is dropped")

	term.AddDelta(NewDelta(q, GeneralIndex("s")))
	assert.Len(t, term.Deltas(), 2)
}

func TestTermMulStatisticsMismatch(t *testing.T) {
	t.Parallel()
	p, q := GeneralIndex("p"), GeneralIndex("q")
	fermi := Scalar(2, Ann(p))
	bose := Scalar(3, Cre(q)).WithStatistics(BoseEinstein)

	_, err := fermi.Mul(bose)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatisticsMismatch)
	var se *StatisticsMismatchError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, FermiDirac, se.Left)
	assert.Equal(t, BoseEinstein, se.Right)

	prod, err := fermi.Mul(Scalar(3, Cre(q)))
	require.NoError(t, err)
	assert.Equal(t, 6.0, prod.Coeff())
	assert.Equal(t, []Operator{Ann(p), Cre(q)}, prod.Operators())
}

func TestTermBuildersDoNotAlias(t *testing.T) {
	t.Parallel()
	p, q, r := GeneralIndex("p"), GeneralIndex("q"), GeneralIndex("r")
	base := Product(Ann(p), Cre(q))
	left := base.Times(Ann(r))
	right := base.Times(Cre(r))

	assert.Equal(t, 2, base.Len())
	assert.Equal(t, Ann(r), left.Operator(2))
	assert.Equal(t, Cre(r), right.Operator(2))

	ops := left.Operators()
	ops[0] = Cre(r)
	assert.Equal(t, Ann(p), left.Operator(0))

	c := left.Clone()
	c.SwapAdjacent(0)
	assert.Equal(t, Ann(p), left.Operator(0))
	c.RemoveAdjacent(0)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, left.Len())
}

func TestTermCounts(t *testing.T) {
	t.Parallel()
	p, q := GeneralIndex("p"), GeneralIndex("q")
	cr, an := NewTerm(1, Ann(p), Cre(q), Cre(p)).Counts()
	assert.Equal(t, 2, cr)
	assert.Equal(t, 1, an)
}

func TestTermIsSimilar(t *testing.T) {
	t.Parallel()
	p, q, r, s := GeneralIndex("p"), GeneralIndex("q"), GeneralIndex("r"), GeneralIndex("s")

	a := NewTerm(1, Cre(p)).WithDelta(NewDelta(q, r)).WithDelta(NewDelta(s, p))
	b := NewTerm(-2, Cre(p)).WithDelta(NewDelta(p, s)).WithDelta(NewDelta(r, q))
	assert.True(t, a.IsSimilar(b))

	assert.False(t, a.IsSimilar(b.WithStatistics(Arbitrary)))
	assert.False(t, a.IsSimilar(NewTerm(1, Ann(p)).WithDelta(NewDelta(q, r)).WithDelta(NewDelta(s, p))))
	assert.False(t, a.IsSimilar(NewTerm(1, Cre(p)).WithDelta(NewDelta(q, r))))
	assert.False(t, Product(Cre(p), Cre(q)).IsSimilar(Product(Cre(q), Cre(p))), "operator order is significant")
}

func TestTermString(t *testing.T) {
	t.Parallel()
	p, q := GeneralIndex("p"), GeneralIndex("q")
	assert.Equal(t, "a+(p) a(q)", Product(Cre(p), Ann(q)).String())
	assert.Equal(t, "-1 delta(p,q)", NewTerm(-1).WithDelta(NewDelta(p, q)).String())
	assert.Equal(t, "1", NewTerm(1).String())
	assert.Equal(t, "0", NewTerm(0, Cre(p)).String())
}

func TestParseAttributes(t *testing.T) {
	t.Parallel()
	v, err := ParseVacuum("Fermi")
	require.NoError(t, err)
	assert.Equal(t, Fermi, v)

	s, err := ParseSpace("virtual")
	require.NoError(t, err)
	assert.Equal(t, Virtual, s)

	st, err := ParseStatistics("BOSE")
	require.NoError(t, err)
	assert.Equal(t, BoseEinstein, st)

	_, err = ParseSpace("bogus")
	assert.Error(t, err)
}
