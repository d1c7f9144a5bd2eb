// Package compiler turns wick source files into terms ready for contraction.
//
// Two source formats are accepted:
//   - .wick: a line-oriented DSL with index, term, statistics, mode and
//     iterate directives
//   - .yaml/.yml: the same program as a YAML document
//
// Compilation pipeline:
//  1. Parse the source into a Program of declared indices and named terms
//  2. Validate every index against its vacuum through core.NewIndex
//  3. Check the program for terms whose contraction is trivially zero or
//     suspicious, reported as diagnostics rather than errors
//
// DSL example:
//
//	statistics fermi
//	iterate k 1 4 {
//	  index p$k general physical
//	}
//	term vev 1.0 a(p3) a(p4) a+(p1) a+(p2)
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
	"github.com/sbl8/wick/engine"
)

// Entry is one named term of a program.
type Entry struct {
	Name string
	Mode contract.Mode
	Term core.Term
	Line int
}

// Program is a compiled source file.
type Program struct {
	Indices map[string]core.Index
	Order   []string // index names in declaration order
	Entries []Entry
}

func newProgram() *Program {
	return &Program{Indices: make(map[string]core.Index)}
}

// Jobs converts the entries into engine jobs. A non-nil override replaces
// every entry's mode.
func (p *Program) Jobs(override *contract.Mode) []engine.Job {
	jobs := make([]engine.Job, len(p.Entries))
	for i, e := range p.Entries {
		mode := e.Mode
		if override != nil {
			mode = *override
		}
		jobs[i] = engine.Job{Name: e.Name, Term: e.Term, Mode: mode}
	}
	return jobs
}

// Lookup returns the entry named name.
func (p *Program) Lookup(name string) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func (p *Program) declare(name string, idx core.Index) error {
	if _, ok := p.Indices[name]; ok {
		return fmt.Errorf("index %q already declared", name)
	}
	p.Indices[name] = idx
	p.Order = append(p.Order, name)
	return nil
}

func (p *Program) add(e Entry) error {
	if _, ok := p.Lookup(e.Name); ok {
		return fmt.Errorf("term %q already defined", e.Name)
	}
	p.Entries = append(p.Entries, e)
	return nil
}

// LoadFile reads and parses a source file, choosing the format by extension.
func LoadFile(path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(src)
	default:
		return Parse(src)
	}
}

// parseOperator parses a(NAME) as an annihilator and a+(NAME) as a creator
// on a declared index.
func parseOperator(tok string, indices map[string]core.Index) (core.Operator, error) {
	open := strings.IndexByte(tok, '(')
	if open < 0 || !strings.HasSuffix(tok, ")") {
		return core.Operator{}, fmt.Errorf("invalid operator %q: want a(i) or a+(i)", tok)
	}

	var action core.Action
	switch tok[:open] {
	case "a":
		action = core.Annihilate
	case "a+", "a^":
		action = core.Create
	default:
		return core.Operator{}, fmt.Errorf("invalid operator %q: unknown symbol %q", tok, tok[:open])
	}

	name := tok[open+1 : len(tok)-1]
	idx, ok := indices[name]
	if !ok {
		return core.Operator{}, fmt.Errorf("undeclared index %q", name)
	}
	return core.NewOperator(idx, action), nil
}

// parseIndex validates a (name, space, vacuum) declaration.
func parseIndex(name, space, vacuum string) (core.Index, error) {
	sp, err := core.ParseSpace(space)
	if err != nil {
		return core.Index{}, err
	}
	vac, err := core.ParseVacuum(vacuum)
	if err != nil {
		return core.Index{}, err
	}
	return core.NewIndex(name, sp, vac)
}
