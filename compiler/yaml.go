package compiler

import (
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
)

// yamlValidate checks decoded YAML documents before they are compiled.
var yamlValidate = validator.New()

// yamlProgram is the YAML form of a program:
//
//	statistics: fermi
//	mode: full
//	indices:
//	  - {name: p1, space: general, vacuum: physical}
//	terms:
//	  - name: vev
//	    coeff: 1.0
//	    ops: ["a(p3)", "a(p4)", "a+(p1)", "a+(p2)"]
type yamlProgram struct {
	Statistics string      `yaml:"statistics"`
	Mode       string      `yaml:"mode"`
	Indices    []yamlIndex `yaml:"indices" validate:"dive"`
	Terms      []yamlTerm  `yaml:"terms" validate:"min=1,dive"`
}

type yamlIndex struct {
	Name   string `yaml:"name" validate:"required"`
	Space  string `yaml:"space" validate:"required"`
	Vacuum string `yaml:"vacuum" validate:"required"`

	line int
}

type yamlTerm struct {
	Name       string   `yaml:"name" validate:"required"`
	Coeff      *float64 `yaml:"coeff"`
	Mode       string   `yaml:"mode"`
	Statistics string   `yaml:"statistics"`
	Ops        []string `yaml:"ops" validate:"dive,required"`

	line int
}

func (i *yamlIndex) UnmarshalYAML(n *yaml.Node) error {
	type plain yamlIndex
	if err := n.Decode((*plain)(i)); err != nil {
		return err
	}
	i.line = n.Line
	return nil
}

func (t *yamlTerm) UnmarshalYAML(n *yaml.Node) error {
	type plain yamlTerm
	if err := n.Decode((*plain)(t)); err != nil {
		return err
	}
	t.line = n.Line
	return nil
}

// ParseYAML compiles a YAML program. Document-level defaults for statistics
// and mode apply to every term that does not set its own. An omitted coeff
// is 1.
func ParseYAML(src []byte) (*Program, error) {
	var doc yamlProgram
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, wrapAt(0, "invalid yaml", err)
	}
	for _, idx := range doc.Indices {
		if err := yamlValidate.Struct(idx); err != nil {
			return nil, wrapAt(idx.line, "invalid index", err)
		}
	}
	for _, t := range doc.Terms {
		if err := yamlValidate.Struct(t); err != nil {
			return nil, wrapAt(t.line, "invalid term", err)
		}
	}
	if err := yamlValidate.Struct(doc); err != nil {
		return nil, wrapAt(0, "invalid program", err)
	}

	stats := core.FermiDirac
	if doc.Statistics != "" {
		s, err := core.ParseStatistics(doc.Statistics)
		if err != nil {
			return nil, wrapAt(0, "invalid statistics", err)
		}
		stats = s
	}
	mode, err := contract.ParseMode(doc.Mode)
	if err != nil {
		return nil, wrapAt(0, "invalid mode", err)
	}

	prog := newProgram()
	for _, yi := range doc.Indices {
		idx, err := parseIndex(yi.Name, yi.Space, yi.Vacuum)
		if err != nil {
			return nil, wrapAt(yi.line, "invalid index", err)
		}
		if err := prog.declare(yi.Name, idx); err != nil {
			return nil, wrapAt(yi.line, "invalid index", err)
		}
	}

	for _, yt := range doc.Terms {
		entry, err := yt.compile(prog.Indices, stats, mode)
		if err != nil {
			return nil, wrapAt(yt.line, "invalid term", err)
		}
		if err := prog.add(entry); err != nil {
			return nil, wrapAt(yt.line, "invalid term", err)
		}
	}
	return prog, nil
}

func (t yamlTerm) compile(indices map[string]core.Index, stats core.Statistics, mode contract.Mode) (Entry, error) {
	coeff := 1.0
	if t.Coeff != nil {
		coeff = *t.Coeff
	}
	if t.Statistics != "" {
		s, err := core.ParseStatistics(t.Statistics)
		if err != nil {
			return Entry{}, err
		}
		stats = s
	}
	if t.Mode != "" {
		m, err := contract.ParseMode(t.Mode)
		if err != nil {
			return Entry{}, err
		}
		mode = m
	}

	ops := make([]core.Operator, 0, len(t.Ops))
	for _, tok := range t.Ops {
		op, err := parseOperator(tok, indices)
		if err != nil {
			return Entry{}, err
		}
		ops = append(ops, op)
	}

	return Entry{
		Name: t.Name,
		Mode: mode,
		Term: core.NewTerm(coeff, ops...).WithStatistics(stats),
		Line: t.line,
	}, nil
}
