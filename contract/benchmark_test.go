package contract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sbl8/wick/core"
)

// blockString builds a1 .. aN c(N+1) .. c(2N), the worst case for both
// algorithms: every annihilator can contract with every creator.
func blockString(n int) core.Term {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "a%d ", i)
	}
	for i := n + 1; i <= 2*n; i++ {
		fmt.Fprintf(&b, "c%d ", i)
	}
	return core.NewTerm(1, parseOps(b.String())...)
}

func BenchmarkGeneratePairings_3(b *testing.B) { benchmarkPairings(b, 3) }
func BenchmarkGeneratePairings_5(b *testing.B) { benchmarkPairings(b, 5) }

func BenchmarkFullContraction_4(b *testing.B) { benchmarkMode(b, FullContraction, 4) }
func BenchmarkExpand_2(b *testing.B)          { benchmarkMode(b, Expand, 2) }
func BenchmarkExpand_3(b *testing.B)          { benchmarkMode(b, Expand, 3) }

func benchmarkPairings(b *testing.B, n int) {
	ops := blockString(n).Operators()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GeneratePairings(ops)
	}
}

func benchmarkMode(b *testing.B, fn Func, n int) {
	term := blockString(n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fn(term)
	}
}
