package smmimc_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
	"github.com/summit-engine/summit/smhash/smmimc"
)

func TestMultiHash_deterministic(t *testing.T) {
	t.Parallel()

	var a, b, key fr.Element
	a.SetUint64(11672136)
	b.SetUint64(10566265)

	out01 := smmimc.MultiHash([]fr.Element{a, b}, key, 1)
	out02 := smmimc.MultiHash([]fr.Element{a, b}, key, 1)

	require.Len(t, out01, 1)
	require.True(t, out01[0].Equal(&out02[0]))
}

func TestMultiHash_sensitiveToKey(t *testing.T) {
	t.Parallel()

	var a, key0, key1 fr.Element
	a.SetUint64(5)
	key1.SetUint64(1)

	out01 := smmimc.MultiHash([]fr.Element{a}, key0, 1)
	out02 := smmimc.MultiHash([]fr.Element{a}, key1, 1)

	require.False(t, out01[0].Equal(&out02[0]))
}

func TestMultiHash_sensitiveToInputOrder(t *testing.T) {
	t.Parallel()

	var a, b, key fr.Element
	a.SetUint64(3)
	b.SetUint64(7)

	out01 := smmimc.MultiHash([]fr.Element{a, b}, key, 1)
	out02 := smmimc.MultiHash([]fr.Element{b, a}, key, 1)

	require.False(t, out01[0].Equal(&out02[0]))
}

func TestMultiHash_multipleOutputsDiffer(t *testing.T) {
	t.Parallel()

	var a, key fr.Element
	a.SetUint64(42)

	out := smmimc.MultiHash([]fr.Element{a}, key, 3)
	require.Len(t, out, 3)

	require.False(t, out[0].Equal(&out[1]))
	require.False(t, out[1].Equal(&out[2]))
	require.False(t, out[0].Equal(&out[2]))
}

func TestMultiHash_emptyInputIsPermutedKeyStream(t *testing.T) {
	t.Parallel()

	var key fr.Element

	// With no absorbed elements the first squeezed output
	// is the zero state, before any permutation.
	out := smmimc.MultiHash(nil, key, 1)
	require.True(t, out[0].IsZero())

	// Further outputs run the permutation and must leave zero.
	out = smmimc.MultiHash(nil, key, 2)
	require.False(t, out[1].IsZero())
}
