package core

import (
	"fmt"
	"strings"
)

// Vacuum is the reference state operators act on.
//
// Physical is the true vacuum |0>, where a+|0> = |a> and a|0> = 0.
// Fermi is the Hartree-Fock reference |HF>.
type Vacuum uint8

const (
	Physical Vacuum = iota
	Fermi
	MultiReference
)

// Space is the orbital space an index runs over.
type Space uint8

const (
	General        Space = iota // p, q, r, s; Physical vacuum only
	Occupied                    // i, j, k
	Virtual                     // a, b, c
	DoublyOccupied              // core / frozen core
)

// Action is the second-quantization action of an operator.
type Action uint8

const (
	Create Action = iota
	Annihilate
)

// Statistics of the particles an operator string describes.
type Statistics uint8

const (
	FermiDirac Statistics = iota
	BoseEinstein
	Arbitrary
)

func (v Vacuum) String() string {
	switch v {
	case Physical:
		return "PhysicalVacuum"
	case Fermi:
		return "FermiVacuum"
	case MultiReference:
		return "MultiReferenceVacuum"
	default:
		return fmt.Sprintf("Vacuum(%d)", uint8(v))
	}
}

func (s Space) String() string {
	switch s {
	case General:
		return "GeneralSpace"
	case Occupied:
		return "OccupiedSpace"
	case Virtual:
		return "VirtualSpace"
	case DoublyOccupied:
		return "DoublyOccupiedSpace"
	default:
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
}

// AllowedIn reports whether the space may be used under vacuum v.
func (s Space) AllowedIn(v Vacuum) bool {
	switch v {
	case Physical:
		return s == General
	case Fermi:
		return s != General
	case MultiReference:
		return true
	default:
		return false
	}
}

func (a Action) String() string {
	if a == Create {
		return "Create"
	}
	return "Annihilate"
}

// Adjoint flips creation and annihilation.
func (a Action) Adjoint() Action {
	if a == Create {
		return Annihilate
	}
	return Create
}

func (s Statistics) String() string {
	switch s {
	case FermiDirac:
		return "FermiDirac"
	case BoseEinstein:
		return "BoseEinstein"
	case Arbitrary:
		return "Arbitrary"
	default:
		return fmt.Sprintf("Statistics(%d)", uint8(s))
	}
}

// Symbol is the operator letter used when rendering a term.
func (s Statistics) Symbol() string {
	switch s {
	case FermiDirac:
		return "a"
	case BoseEinstein:
		return "b"
	default:
		return "c"
	}
}

// ParseVacuum accepts "physical", "fermi" or "multireference" in any case.
func ParseVacuum(s string) (Vacuum, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical", "physicalvacuum":
		return Physical, nil
	case "fermi", "fermivacuum":
		return Fermi, nil
	case "multireference", "mr", "multireferencevacuum":
		return MultiReference, nil
	}
	return 0, fmt.Errorf("unknown vacuum %q", s)
}

// ParseSpace accepts "general", "occupied", "virtual" or "doublyoccupied" in any case.
func ParseSpace(s string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general", "generalspace":
		return General, nil
	case "occupied", "occupiedspace":
		return Occupied, nil
	case "virtual", "virtualspace":
		return Virtual, nil
	case "doublyoccupied", "core", "doublyoccupiedspace":
		return DoublyOccupied, nil
	}
	return 0, fmt.Errorf("unknown space %q", s)
}

// ParseStatistics accepts "fermi", "bose" or "arbitrary" in any case.
func ParseStatistics(s string) (Statistics, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fermi", "fermidirac", "fermion":
		return FermiDirac, nil
	case "bose", "boseeinstein", "boson":
		return BoseEinstein, nil
	case "arbitrary":
		return Arbitrary, nil
	}
	return 0, fmt.Errorf("unknown statistics %q", s)
}
