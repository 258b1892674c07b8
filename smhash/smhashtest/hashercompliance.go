package smhashtest

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
	"github.com/summit-engine/summit/smhash"
)

type HasherFactory func() smhash.Hasher

// TestHasherCompliance asserts the behavior that the tree engine
// requires from any [smhash.Hasher] implementation.
func TestHasherCompliance(t *testing.T, f HasherFactory) {
	t.Run("combine is deterministic", func(t *testing.T) {
		t.Parallel()

		h := f()

		var lh, rh fr.Element
		lh.SetUint64(11672136)
		rh.SetUint64(10566265)

		out01 := h.Combine(lh, 10, rh, 11)
		out02 := h.Combine(lh, 10, rh, 11)

		require.True(t, out01.Equal(&out02))
	})

	t.Run("combine respects child order", func(t *testing.T) {
		t.Parallel()

		h := f()

		var lh, rh fr.Element
		lh.SetUint64(1)
		rh.SetUint64(2)

		out01 := h.Combine(lh, 10, rh, 20)
		out02 := h.Combine(rh, 20, lh, 10)

		require.False(t, out01.Equal(&out02))
	})

	t.Run("combine respects values", func(t *testing.T) {
		t.Parallel()

		h := f()

		var lh, rh fr.Element
		lh.SetUint64(1)
		rh.SetUint64(2)

		out01 := h.Combine(lh, 10, rh, 20)
		out02 := h.Combine(lh, 10, rh, 21)

		require.False(t, out01.Equal(&out02))
	})

	t.Run("combine respects hashes", func(t *testing.T) {
		t.Parallel()

		h := f()

		var lh, rh1, rh2 fr.Element
		lh.SetUint64(1)
		rh1.SetUint64(2)
		rh2.SetUint64(3)

		out01 := h.Combine(lh, 10, rh1, 20)
		out02 := h.Combine(lh, 10, rh2, 20)

		require.False(t, out01.Equal(&out02))
	})
}
