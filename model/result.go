// Package model defines the persisted form of a contraction result.
//
// A Result is a flat, self-describing document: every index carries its
// space and vacuum by name, so a result file can be loaded and rendered
// without the source program that produced it.
//
// Two encodings are supported:
//   - JSON through the struct tags, used by `wick run --format json`
//   - a compact little-endian binary format (.wres) with a magic header,
//     version and CRC32 trailer, see Serialize
package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
)

// IndexRecord is a serialized core.Index.
type IndexRecord struct {
	Name   string `json:"name"`
	Space  string `json:"space"`
	Vacuum string `json:"vacuum"`
}

// OperatorRecord is a serialized core.Operator.
type OperatorRecord struct {
	Index  IndexRecord `json:"index"`
	Create bool        `json:"create"`
}

// DeltaRecord is a serialized core.Delta.
type DeltaRecord struct {
	A IndexRecord `json:"a"`
	B IndexRecord `json:"b"`
}

// TermRecord is a serialized core.Term without its statistics, which the
// enclosing Result carries once.
type TermRecord struct {
	Coeff     float64          `json:"coeff"`
	Deltas    []DeltaRecord    `json:"deltas,omitempty"`
	Operators []OperatorRecord `json:"operators,omitempty"`
}

// Result is the document written by `wick run --out`.
type Result struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Mode       string       `json:"mode"`
	Statistics string       `json:"statistics"`
	Terms      []TermRecord `json:"terms"`
}

// FromSum records sum under a fresh ID. The statistics are taken from the
// first term, FermiDirac for an empty sum.
func FromSum(name string, mode contract.Mode, sum *core.Sum) *Result {
	terms := sum.Terms()
	stats := core.FermiDirac
	if len(terms) > 0 {
		stats = terms[0].Statistics()
	}

	r := &Result{
		ID:         uuid.New(),
		Name:       name,
		Mode:       mode.String(),
		Statistics: stats.String(),
		Terms:      make([]TermRecord, 0, len(terms)),
	}
	for _, t := range terms {
		r.Terms = append(r.Terms, recordTerm(t))
	}
	return r
}

// ContractionMode parses the recorded mode.
func (r *Result) ContractionMode() (contract.Mode, error) {
	return contract.ParseMode(r.Mode)
}

// ToSum rebuilds the sum, validating every index against its vacuum.
func (r *Result) ToSum() (*core.Sum, error) {
	stats, err := core.ParseStatistics(r.Statistics)
	if err != nil {
		return nil, err
	}

	sum := core.NewSum()
	for i, tr := range r.Terms {
		t, err := tr.term(stats)
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
		sum.PushAndMerge(t)
	}
	return sum, nil
}

func recordIndex(idx core.Index) IndexRecord {
	return IndexRecord{
		Name:   idx.Name(),
		Space:  idx.Space().String(),
		Vacuum: idx.Vacuum().String(),
	}
}

func recordTerm(t core.Term) TermRecord {
	tr := TermRecord{Coeff: t.Coeff()}
	for _, d := range t.Deltas() {
		tr.Deltas = append(tr.Deltas, DeltaRecord{A: recordIndex(d.A), B: recordIndex(d.B)})
	}
	for _, op := range t.Operators() {
		tr.Operators = append(tr.Operators, OperatorRecord{
			Index:  recordIndex(op.Index),
			Create: op.Action == core.Create,
		})
	}
	return tr
}

func (ir IndexRecord) index() (core.Index, error) {
	sp, err := core.ParseSpace(ir.Space)
	if err != nil {
		return core.Index{}, err
	}
	vac, err := core.ParseVacuum(ir.Vacuum)
	if err != nil {
		return core.Index{}, err
	}
	return core.NewIndex(ir.Name, sp, vac)
}

func (tr TermRecord) term(stats core.Statistics) (core.Term, error) {
	ops := make([]core.Operator, 0, len(tr.Operators))
	for _, or := range tr.Operators {
		idx, err := or.Index.index()
		if err != nil {
			return core.Term{}, err
		}
		action := core.Annihilate
		if or.Create {
			action = core.Create
		}
		ops = append(ops, core.NewOperator(idx, action))
	}

	t := core.NewTerm(tr.Coeff, ops...).WithStatistics(stats)
	for _, dr := range tr.Deltas {
		a, err := dr.A.index()
		if err != nil {
			return core.Term{}, err
		}
		b, err := dr.B.index()
		if err != nil {
			return core.Term{}, err
		}
		t = t.WithDelta(core.NewDelta(a, b))
	}
	return t, nil
}
