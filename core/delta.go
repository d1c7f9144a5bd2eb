package core

import "fmt"

// Delta is the Kronecker delta between two indices. It is unordered:
// Delta(p, q) equals Delta(q, p).
type Delta struct {
	A Index
	B Index
}

// NewDelta identifies a with b.
func NewDelta(a, b Index) Delta { return Delta{A: a, B: b} }

// Canonical returns the two index names in lexicographic order.
func (d Delta) Canonical() (string, string) {
	if d.A.name < d.B.name {
		return d.A.name, d.B.name
	}
	return d.B.name, d.A.name
}

// Equal compares canonical forms.
func (d Delta) Equal(other Delta) bool {
	a1, b1 := d.Canonical()
	a2, b2 := other.Canonical()
	return a1 == a2 && b1 == b2
}

// IsTrivial reports a delta between an index and itself.
func (d Delta) IsTrivial() bool { return d.A == d.B }

func (d Delta) String() string {
	return fmt.Sprintf("delta(%s,%s)", d.A.name, d.B.name)
}
