package stest

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/summit-engine/summit"
)

// LeavesForTest returns n distinct leaves with pseudorandom values,
// derived from a seed based on the test name.
func LeavesForTest(t *testing.T, n int) []summit.Leaf {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and this fits well anyway since that means
	// we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	out := make([]summit.Leaf, n)
	for i := range out {
		out[i] = summit.NewLeaf(
			fmt.Sprintf("leaf-%d-%x", i, chacha.Uint64()),
			chacha.Uint64()%100_000,
		)
	}

	return out
}
