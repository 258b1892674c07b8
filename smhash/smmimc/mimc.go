// Package smmimc implements a MiMC Feistel sponge over the BN254 scalar
// field, the hash primitive expected by proof circuits consuming the tree.
//
// The permutation is the 220-round x^5 Feistel variant,
// with round constants derived from the seed "mimcsponge"
// as a keccak-256 chain reduced into the field.
// The first and last round constants are fixed to zero.
package smmimc

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

// NumRounds is the number of Feistel rounds in the permutation.
const NumRounds = 220

// constantsSeed is the well-known seed for the round constant chain.
const constantsSeed = "mimcsponge"

var roundConstants = sync.OnceValue(func() *[NumRounds]fr.Element {
	cs := new([NumRounds]fr.Element)

	// cs[0] and cs[NumRounds-1] stay zero.
	d := keccak256([]byte(constantsSeed))
	for i := 1; i < NumRounds-1; i++ {
		d = keccak256(d)

		// SetBytes interprets d as big-endian and reduces it into the field.
		cs[i].SetBytes(d)
	}

	return cs
})

func keccak256(in []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(in)
	return h.Sum(nil)
}

// permute applies the Feistel permutation to the state (xL, xR)
// under the key k, returning the new state.
func permute(xL, xR, k fr.Element) (fr.Element, fr.Element) {
	cs := roundConstants()

	var t, t2, t4 fr.Element
	for i := range NumRounds {
		t.Add(&xL, &k)
		if i > 0 {
			t.Add(&t, &cs[i])
		}

		// t = t^5.
		t2.Square(&t)
		t4.Square(&t2)
		t.Mul(&t4, &t)

		t.Add(&t, &xR)

		if i < NumRounds-1 {
			xR = xL
			xL = t
		} else {
			xR = t
		}
	}

	return xL, xR
}

// MultiHash absorbs elems into the sponge under the given key
// and squeezes nOutputs field elements.
func MultiHash(elems []fr.Element, key fr.Element, nOutputs int) []fr.Element {
	var r, c fr.Element

	for i := range elems {
		r.Add(&r, &elems[i])
		r, c = permute(r, c, key)
	}

	out := make([]fr.Element, 1, max(1, nOutputs))
	out[0] = r

	for len(out) < nOutputs {
		r, c = permute(r, c, key)
		out = append(out, r)
	}

	return out
}
