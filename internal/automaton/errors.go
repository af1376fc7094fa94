package automaton

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidState indicates a cell value outside [0, states).
	ErrInvalidState = errors.New("automaton: state out of range")
	// ErrSignatureOutOfRange indicates a signature outside [0, states^cells).
	ErrSignatureOutOfRange = errors.New("automaton: signature out of range")
	// ErrNoMatchingRule indicates no rule matched a cell's neighbour histogram.
	ErrNoMatchingRule = errors.New("automaton: no matching rule")
	// ErrDomainTooLarge indicates states^cells exceeds the enumeration ceiling.
	ErrDomainTooLarge = errors.New("automaton: domain too large")
	// ErrInvalidShape indicates non-positive dimensions or state count.
	ErrInvalidShape = errors.New("automaton: invalid shape")
	// ErrInvalidRule indicates a rule referencing a state outside [0, states).
	ErrInvalidRule = errors.New("automaton: invalid rule")
)

// StepError reports the configuration and cell for which a transition failed.
type StepError struct {
	Signature Signature
	Cell      int
	Histogram Histogram
	Err       error
}

func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("signature ")
	b.WriteString(strconv.FormatUint(uint64(e.Signature), 10))
	b.WriteString(" cell ")
	b.WriteString(strconv.Itoa(e.Cell))
	if len(e.Histogram) > 0 {
		b.WriteString(" histogram ")
		b.WriteString(e.Histogram.String())
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *StepError) Unwrap() error { return e.Err }

func invalidShapef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidShape, fmt.Sprintf(format, args...))
}

func invalidRulef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRule, fmt.Sprintf(format, args...))
}
