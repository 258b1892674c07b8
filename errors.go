package summit

import (
	"errors"
	"fmt"
)

// ErrEmptyLeaves is returned from [New]
// when the configuration carries no initial leaves.
var ErrEmptyLeaves = errors.New("cannot build a tree from zero leaves")

// HeightExceededError is returned when an operation
// would require a tree taller than [MaxHeight].
type HeightExceededError struct {
	Height int
}

func (e HeightExceededError) Error() string {
	return fmt.Sprintf(
		"required height %d exceeds the maximum of %d", e.Height, MaxHeight,
	)
}

// SumOverflowError is returned when two sibling values
// cannot be added without exceeding the representable range.
// The failing operation leaves the tree unchanged.
type SumOverflowError struct {
	Left, Right uint64
}

func (e SumOverflowError) Error() string {
	return fmt.Sprintf(
		"sum of sibling values %d and %d overflows the value range",
		e.Left, e.Right,
	)
}

// IndexOutOfRangeError is returned from any read or mutation
// addressing an index outside the current storage.
type IndexOutOfRangeError struct {
	Index, Max int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range; max is %d", e.Index, e.Max)
}

// MalformedProofError is returned from [*Tree.VerifyProof]
// when a proof's path length does not match the tree height.
// This is a structural mismatch, not a membership failure,
// so it surfaces as an error rather than a false verification result.
type MalformedProofError struct {
	PathLen, Height int
}

func (e MalformedProofError) Error() string {
	return fmt.Sprintf(
		"proof path has %d entries but the tree height is %d",
		e.PathLen, e.Height,
	)
}
