package smmimc

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Hasher is a [smhash.Hasher] backed by the MiMC sponge.
//
// Combine absorbs the left hash, the left value, the right hash,
// and the right value, in that order, under a zero key,
// so the parent digest commits to both children's sums.
type Hasher struct{}

func (Hasher) Combine(
	leftHash fr.Element, leftValue uint64,
	rightHash fr.Element, rightValue uint64,
) fr.Element {
	var lv, rv, key fr.Element
	lv.SetUint64(leftValue)
	rv.SetUint64(rightValue)

	out := MultiHash([]fr.Element{leftHash, lv, rightHash, rv}, key, 1)
	return out[0]
}
