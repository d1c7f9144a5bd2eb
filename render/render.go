// Package render prints terms and sums as LaTeX or tensor notation.
//
// LaTeX keeps the operator string as written:
//
//	2\delta^{p}_{q}a^{r}a_{s}
//
// Tensor notation groups a normal-ordered string under one symbol, creators
// up and annihilators down in reverse order:
//
//	2\delta^{p}_{q}a^{r}_{s}
//
// A term that is not normal-ordered has no tensor form and falls back to
// LaTeX. Index names are reduced to their letters and digits.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sbl8/wick/core"
)

// Format selects an output notation.
type Format uint8

const (
	FormatLaTeX Format = iota
	FormatTensor
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatLaTeX:
		return "latex"
	case FormatTensor:
		return "tensor"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat accepts "latex", "tensor" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latex", "tex", "":
		return FormatLaTeX, nil
	case "tensor":
		return FormatTensor, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// LaTeX renders t with its operators in order.
func LaTeX(t core.Term) string {
	var b strings.Builder
	switch c := t.Coeff(); c {
	case 1:
	case -1:
		b.WriteString("-")
	default:
		b.WriteString(coeff(c))
	}

	writeDeltas(&b, t.Deltas())
	sym := t.Statistics().Symbol()
	for _, op := range t.Operators() {
		script := "_"
		if op.Action == core.Create {
			script = "^"
		}
		fmt.Fprintf(&b, "%s%s{%s}", sym, script, clean(op.Name()))
	}

	// only trivial deltas, or nothing at all
	out := b.String()
	if out == "" || out == "-" {
		return out + "1"
	}
	return out
}

// Tensor renders a normal-ordered t as a single tensor. Other terms are
// rendered by LaTeX.
func Tensor(t core.Term) string {
	if !t.IsNormalOrder() {
		return LaTeX(t)
	}

	var b strings.Builder
	switch c := t.Coeff(); c {
	case 1:
	case -1:
		b.WriteString("-")
	default:
		b.WriteString(coeff(c))
	}
	writeDeltas(&b, t.Deltas())

	var ups, downs []string
	for _, op := range t.Operators() {
		if op.Action == core.Create {
			ups = append(ups, clean(op.Name()))
		} else {
			downs = append([]string{clean(op.Name())}, downs...)
		}
	}
	if len(ups) > 0 || len(downs) > 0 {
		b.WriteString(t.Statistics().Symbol())
		if len(ups) > 0 {
			fmt.Fprintf(&b, "^{%s}", strings.Join(ups, ""))
		}
		if len(downs) > 0 {
			fmt.Fprintf(&b, "_{%s}", strings.Join(downs, ""))
		}
	}

	out := b.String()
	if out == "" || out == "-" {
		// a bare scalar
		return out + "1"
	}
	return out
}

// Sum joins the rendered terms of s with their signs. An empty sum is "0".
// FormatJSON is not a text notation and renders like FormatTensor.
func Sum(s *core.Sum, f Format) string {
	term := Tensor
	if f == FormatLaTeX {
		term = LaTeX
	}

	var b strings.Builder
	for _, t := range s.Terms() {
		tex := term(t)
		if tex == "" || tex == "0" {
			continue
		}
		if b.Len() > 0 {
			if t.Coeff() > 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(tex)
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

func writeDeltas(b *strings.Builder, ds []core.Delta) {
	for _, d := range ds {
		if d.IsTrivial() {
			continue
		}
		fmt.Fprintf(b, `\delta^{%s}_{%s}`, clean(d.A.Name()), clean(d.B.Name()))
	}
}

func coeff(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}

// clean keeps the letters and digits of an index name.
func clean(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
}
