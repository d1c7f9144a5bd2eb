package core

import "fmt"

// Operator is a creation or annihilation operator on an Index.
type Operator struct {
	Index  Index
	Action Action
}

// NewOperator pairs an index with an action.
func NewOperator(idx Index, action Action) Operator {
	return Operator{Index: idx, Action: action}
}

// Cre returns the creation operator a+ on idx.
func Cre(idx Index) Operator { return Operator{Index: idx, Action: Create} }

// Ann returns the annihilation operator a on idx.
func Ann(idx Index) Operator { return Operator{Index: idx, Action: Annihilate} }

// Adjoint maps a+ to a and a to a+, keeping the index.
func (o Operator) Adjoint() Operator {
	return Operator{Index: o.Index, Action: o.Action.Adjoint()}
}

func (o Operator) Name() string { return o.Index.name }

func (o Operator) String() string {
	label := ""
	if o.Action == Create {
		label = "+"
	}
	return fmt.Sprintf("%s%s [Vacuum: %s, Space: %s, Action: %s]",
		o.Index.name, label, o.Index.vacuum, o.Index.space, o.Action)
}

// CanContract reports whether a followed by b forms a nonzero contraction.
// The predicate is ordered: an annihilator must precede its creator.
func CanContract(a, b Operator) bool {
	return a.Action == Annihilate && b.Action == Create
}
