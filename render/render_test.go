package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
)

var (
	p1 = core.GeneralIndex("p_1")
	p2 = core.GeneralIndex("p_2")
	p3 = core.GeneralIndex("p_3")
	p4 = core.GeneralIndex("p_4")
)

func TestLaTeX(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		term core.Term
		want string
	}{
		{"unit scalar", core.NewTerm(1), "1"},
		{"negative scalar", core.NewTerm(-1), "-1"},
		{"scaled scalar", core.NewTerm(0.5), "0.5"},
		{"operators in order", core.NewTerm(3, core.Ann(p2), core.Cre(p1)), "3a_{p2}a^{p1}"},
		{"negative unit", core.NewTerm(-1, core.Cre(p1)), "-a^{p1}"},
		{"delta", core.NewTerm(1).WithDelta(core.NewDelta(p1, p2)), `\delta^{p1}_{p2}`},
		{"trivial delta hidden", core.NewTerm(2, core.Cre(p3)).WithDelta(core.NewDelta(p1, p1)), "2a^{p3}"},
		{"only trivial delta", core.NewTerm(1).WithDelta(core.NewDelta(p1, p1)), "1"},
		{"negative only trivial delta", core.NewTerm(-1).WithDelta(core.NewDelta(p1, p1)), "-1"},
		{"bosons", core.NewTerm(1, core.Cre(p1)).WithStatistics(core.BoseEinstein), "b^{p1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LaTeX(tt.term))
		})
	}
}

func TestTensor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		term core.Term
		want string
	}{
		{"creator then annihilator", core.NewTerm(2, core.Cre(p1), core.Ann(p2)), "2a^{p1}_{p2}"},
		{"annihilators reversed", core.NewTerm(1, core.Cre(p1), core.Cre(p2), core.Ann(p3), core.Ann(p4)), "a^{p1p2}_{p4p3}"},
		{"negative unit", core.NewTerm(-1, core.Ann(p1)), "-a_{p1}"},
		{"not normal-ordered falls back", core.NewTerm(3, core.Ann(p2), core.Cre(p1)), "3a_{p2}a^{p1}"},
		{"scalar", core.NewTerm(1), "1"},
		{"negative scalar", core.NewTerm(-1), "-1"},
		{"delta and operator", core.NewTerm(-1, core.Cre(p1)).WithDelta(core.NewDelta(p3, p4)), `-\delta^{p3}_{p4}a^{p1}`},
		{"only trivial delta", core.NewTerm(-1).WithDelta(core.NewDelta(p2, p2)), "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tensor(tt.term))
		})
	}
}

func TestSum(t *testing.T) {
	t.Parallel()
	two := core.NewTerm(2, core.Cre(p1), core.Ann(p2))
	three := core.NewTerm(3, core.Ann(p2), core.Cre(p1))
	s := core.Plus(two, three)

	assert.Equal(t, "2a^{p1}_{p2} + 3a_{p2}a^{p1}", Sum(s, FormatTensor))
	assert.Equal(t, "2a^{p1}a_{p2} + 3a_{p2}a^{p1}", Sum(s, FormatLaTeX))
	assert.Equal(t, "0", Sum(core.NewSum(), FormatLaTeX))
	assert.Equal(t, "0", Sum(nil, FormatTensor))
}

func TestSumFullContraction(t *testing.T) {
	t.Parallel()
	term := core.NewTerm(1, core.Ann(p3), core.Ann(p4), core.Cre(p1), core.Cre(p2))
	got := Sum(contract.FullContraction(term), FormatTensor)
	assert.Equal(t, `-\delta^{p3}_{p1}\delta^{p4}_{p2} + \delta^{p3}_{p2}\delta^{p4}_{p1}`, got)
}

func TestSumSameIndexContraction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		coeff  float64
		format Format
		want   string
	}{
		{"latex", 1, FormatLaTeX, "1"},
		{"latex negative", -1, FormatLaTeX, "-1"},
		{"tensor", 1, FormatTensor, "1"},
		{"tensor negative", -1, FormatTensor, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			term := core.NewTerm(tt.coeff, core.Ann(p1), core.Cre(p1))
			s := contract.FullContraction(term)
			require.Equal(t, 1, s.Len())
			assert.Equal(t, tt.want, Sum(s, tt.format))
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Format{
		"latex": FormatLaTeX, "TeX": FormatLaTeX, "": FormatLaTeX,
		"tensor": FormatTensor, "JSON": FormatJSON,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		if in != "" && in != "TeX" {
			assert.Equal(t, strings.ToLower(in), got.String())
		}
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}
