package contract

import (
	"fmt"
	"strings"

	"github.com/sbl8/wick/core"
)

// Func computes a contraction of a term.
type Func func(core.Term) *core.Sum

// Mode selects the contraction algorithm.
type Mode uint8

const (
	ModeGeneral Mode = iota // normal order plus all partial contractions
	ModeFull                // full contraction only
)

// Catalog maps modes to their algorithms.
var Catalog = map[Mode]Func{
	ModeGeneral: Expand,
	ModeFull:    FullContraction,
}

// Lookup returns the algorithm for m, or nil if m is unknown.
func Lookup(m Mode) Func {
	return Catalog[m]
}

func (m Mode) String() string {
	switch m {
	case ModeGeneral:
		return "general"
	case ModeFull:
		return "full"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode accepts "general" or "full".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general", "expand", "":
		return ModeGeneral, nil
	case "full", "vev":
		return ModeFull, nil
	}
	return 0, fmt.Errorf("unknown contraction mode %q", s)
}
