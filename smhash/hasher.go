package smhash

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Hasher is the user-defined capability for combining two child nodes
// into their parent's hash.
// The tree passes each child's hash together with its accumulated value,
// so that the resulting digest commits to the sums as well as the hashes;
// an implementation that ignores the values produces a plain Merkle tree
// with no verifiable accounting.
//
// Combine must be deterministic,
// and it must be sensitive to the order of its arguments.
//
// Combine must be safe to call concurrently.
type Hasher interface {
	Combine(
		leftHash fr.Element, leftValue uint64,
		rightHash fr.Element, rightValue uint64,
	) fr.Element
}
