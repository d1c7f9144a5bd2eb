package core

import "strings"

// Index labels an orbital in second quantization.
//
// An Index is only valid once NewIndex has checked its space against its
// vacuum; after that it is an immutable value and is copied freely.
type Index struct {
	name   string
	space  Space
	vacuum Vacuum
}

// NewIndex validates the (space, vacuum) combination and returns the index.
func NewIndex(name string, space Space, vacuum Vacuum) (Index, error) {
	if strings.TrimSpace(name) == "" {
		return Index{}, &InvalidIndexError{Space: space, Vacuum: vacuum, Msg: "empty name"}
	}
	if !space.AllowedIn(vacuum) {
		return Index{}, &InvalidIndexError{Name: name, Space: space, Vacuum: vacuum}
	}
	return Index{name: name, space: space, vacuum: vacuum}, nil
}

// GeneralIndex returns a General-space index over the physical vacuum.
func GeneralIndex(name string) Index {
	return Index{name: name, space: General, vacuum: Physical}
}

func (i Index) Name() string   { return i.name }
func (i Index) Space() Space   { return i.space }
func (i Index) Vacuum() Vacuum { return i.vacuum }
func (i Index) String() string { return i.name }

// IsZero reports whether i is the zero Index, which NewIndex never returns.
func (i Index) IsZero() bool { return i.name == "" }
