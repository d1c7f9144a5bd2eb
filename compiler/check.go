package compiler

import (
	"fmt"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
)

// Severity ranks a diagnostic.
type Severity uint8

const (
	Warning Severity = iota
	Info
)

func (s Severity) String() string {
	if s == Info {
		return "info"
	}
	return "warning"
}

// Diagnostic is a non-fatal finding about a compiled program.
type Diagnostic struct {
	Line     int
	Term     string
	Severity Severity
	Msg      string
}

func (d Diagnostic) String() string {
	msg := d.Msg
	if d.Term != "" {
		msg = "term " + d.Term + ": " + msg
	}
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Severity, msg)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, msg)
}

// CheckOptions tunes Check.
type CheckOptions struct {
	// Mode, when set, replaces every entry's mode as `wick run --full` does.
	Mode *contract.Mode
	// IgnoreUnused suppresses the unused-index warnings.
	IgnoreUnused bool
}

// Check inspects a program for terms that will contract to zero or fail,
// and for declarations nothing uses. Duplicate names are already rejected
// by the parsers.
func Check(p *Program, opts CheckOptions) []Diagnostic {
	var diags []Diagnostic
	used := make(map[string]bool, len(p.Indices))

	for _, e := range p.Entries {
		mode := e.Mode
		if opts.Mode != nil {
			mode = *opts.Mode
		}

		ops := e.Term.Operators()
		for _, op := range ops {
			used[op.Name()] = true
		}

		if vac, mixed := termVacuum(ops); mixed {
			diags = append(diags, Diagnostic{
				Line: e.Line, Term: e.Name, Severity: Warning,
				Msg: "operators reference indices of different vacua",
			})
		} else if vac != core.Physical {
			diags = append(diags, Diagnostic{
				Line: e.Line, Term: e.Name, Severity: Warning,
				Msg: fmt.Sprintf("%s is not supported by the engine", vac),
			})
		}

		// terms returned unchanged are never contracted
		reordered := len(ops) > 1 && !e.Term.IsNormalOrder()
		cre, ann := e.Term.Counts()
		if mode == contract.ModeFull && reordered && cre != ann {
			diags = append(diags, Diagnostic{
				Line: e.Line, Term: e.Name, Severity: Warning,
				Msg: fmt.Sprintf("%d creators and %d annihilators: full contraction is zero", cre, ann),
			})
		}

		if len(ops) > 1 && e.Term.IsNormalOrder() {
			diags = append(diags, Diagnostic{
				Line: e.Line, Term: e.Name, Severity: Info,
				Msg: "already normal-ordered, returned unchanged",
			})
		}
	}

	if !opts.IgnoreUnused {
		for _, name := range p.Order {
			if !used[name] {
				diags = append(diags, Diagnostic{
					Severity: Warning,
					Msg:      fmt.Sprintf("index %q is declared but never used", name),
				})
			}
		}
	}
	return diags
}

// termVacuum reports the common vacuum of ops, Physical when ops is empty.
func termVacuum(ops []core.Operator) (core.Vacuum, bool) {
	if len(ops) == 0 {
		return core.Physical, false
	}
	vac := ops[0].Index.Vacuum()
	for _, op := range ops[1:] {
		if op.Index.Vacuum() != vac {
			return vac, true
		}
	}
	return vac, false
}
