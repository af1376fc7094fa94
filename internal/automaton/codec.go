package automaton

import (
	"fmt"
	"math/bits"
)

// State is the value held by a single cell, in [0, states).
type State uint8

// MaxStates is the largest state count a State can represent.
const MaxStates = 256

// Signature is the mixed-radix integer encoding of a whole configuration,
// most significant digit first (cell 0 is the leading digit).
type Signature uint64

// DomainSize returns states^length, the number of distinct configurations of
// length cells. It fails with ErrDomainTooLarge when the result does not fit
// in a Signature.
func DomainSize(states, length int) (uint64, error) {
	if states < 1 || states > MaxStates {
		return 0, invalidShapef("states=%d", states)
	}
	if length < 0 {
		return 0, invalidShapef("length=%d", length)
	}
	size := uint64(1)
	for range length {
		hi, lo := bits.Mul64(size, uint64(states))
		if hi != 0 {
			return 0, fmt.Errorf("%w: %d^%d overflows 64 bits", ErrDomainTooLarge, states, length)
		}
		size = lo
	}
	return size, nil
}

// Encode interprets cells as base-states digits and returns their signature.
func Encode(cells []State, states int) (Signature, error) {
	if states < 1 || states > MaxStates {
		return 0, invalidShapef("states=%d", states)
	}
	radix := uint64(states)
	var sig uint64
	for i, c := range cells {
		if int(c) >= states {
			return 0, fmt.Errorf("%w: cell %d holds %d with %d states", ErrInvalidState, i, c, states)
		}
		hi, lo := bits.Mul64(sig, radix)
		sum, carry := bits.Add64(lo, uint64(c), 0)
		if hi != 0 || carry != 0 {
			return 0, fmt.Errorf("%w: %d cells of %d states overflow 64 bits", ErrDomainTooLarge, len(cells), states)
		}
		sig = sum
	}
	return Signature(sig), nil
}

// Decode expands sig into exactly length cells, left-padding with state 0.
// Signatures that need more than length digits are rejected.
func Decode(sig Signature, states, length int) ([]State, error) {
	cells := make([]State, max(length, 0))
	if err := decodeInto(cells, sig, states); err != nil {
		return nil, err
	}
	return cells, nil
}

// decodeInto writes the digits of sig into dst, least significant digit last.
func decodeInto(dst []State, sig Signature, states int) error {
	if states < 1 || states > MaxStates {
		return invalidShapef("states=%d", states)
	}
	clear(dst)
	if states == 1 {
		if sig != 0 {
			return fmt.Errorf("%w: %d with a single state", ErrSignatureOutOfRange, sig)
		}
		return nil
	}
	radix := uint64(states)
	i := len(dst) - 1
	for v := uint64(sig); v > 0; v /= radix {
		if i < 0 {
			return fmt.Errorf("%w: %d needs more than %d base-%d digits", ErrSignatureOutOfRange, sig, len(dst), states)
		}
		dst[i] = State(v % radix)
		i--
	}
	return nil
}
