package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIndex       = errors.New("invalid index")
	ErrStatisticsMismatch = errors.New("statistics mismatch")
)

// InvalidIndexError reports an index whose space is not legal under its vacuum.
type InvalidIndexError struct {
	Name   string
	Space  Space
	Vacuum Vacuum
	Msg    string
}

func (e *InvalidIndexError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s %q: %s", ErrInvalidIndex, e.Name, e.Msg)
	}
	return fmt.Sprintf("%s %q: illegal space %s for vacuum %s", ErrInvalidIndex, e.Name, e.Space, e.Vacuum)
}

func (e *InvalidIndexError) Unwrap() error { return ErrInvalidIndex }

// StatisticsMismatchError reports an attempt to combine terms of different statistics.
type StatisticsMismatchError struct {
	Left  Statistics
	Right Statistics
}

func (e *StatisticsMismatchError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: cannot combine %s with %s", ErrStatisticsMismatch, e.Left, e.Right)
}

func (e *StatisticsMismatchError) Unwrap() error { return ErrStatisticsMismatch }
