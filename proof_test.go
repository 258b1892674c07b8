package summit_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
	"github.com/summit-engine/summit"
	"github.com/summit-engine/summit/internal/stest"
	"github.com/summit-engine/summit/smhash/smmimc"
)

func TestProof_twoLeaves(t *testing.T) {
	t.Parallel()

	a := summit.NewLeaf("a", 3)
	b := summit.NewLeaf("b", 5)
	tree := newTestTree(t, []summit.Leaf{a, b})

	proof, err := tree.Proof(0)
	require.NoError(t, err)

	require.Equal(t, a, proof.Leaf)
	require.Len(t, proof.Path, 1)
	require.Equal(t, summit.Right, proof.Path[0].Position)
	require.True(t, proof.Path[0].Node.Equal(b.Node))

	ok, err := tree.VerifyProof(proof)
	require.NoError(t, err)
	require.True(t, ok)

	// The same fold, done purely against the explicit root,
	// reconstructs both the hash and the sum of 8.
	ok, err = summit.Verify(smmimc.Hasher{}, proof, tree.Root())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(8), tree.RootSum())
}

func TestProof_roundTripAllIndexes(t *testing.T) {
	t.Parallel()

	// Six leaves pad to eight, so indexes 6 and 7
	// exercise proofs for zero padding leaves too.
	tree := newTestTree(t, stest.LeavesForTest(t, 6))

	for i := range tree.LeafCount() {
		proof, err := tree.Proof(i)
		require.NoError(t, err, "proof for index %d", i)
		require.Len(t, proof.Path, tree.Height())

		ok, err := tree.VerifyProof(proof)
		require.NoError(t, err, "verify for index %d", i)
		require.True(t, ok, "proof for index %d should verify", i)
	}
}

func TestProof_indexOutOfRange(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, stest.LeavesForTest(t, 2))

	var oor summit.IndexOutOfRangeError
	_, err := tree.Proof(2)
	require.ErrorAs(t, err, &oor)
	require.Equal(t, 2, oor.Index)

	_, err = tree.Proof(-1)
	require.ErrorAs(t, err, &oor)
}

func TestVerify_tamperedProofFails(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, stest.LeavesForTest(t, 4))

	proof, err := tree.Proof(1)
	require.NoError(t, err)

	var one fr.Element
	one.SetOne()

	for name, tamper := range map[string]func(*summit.InclusionProof){
		"sibling value": func(p *summit.InclusionProof) {
			p.Path[0].Node.Value++
		},
		"sibling hash": func(p *summit.InclusionProof) {
			p.Path[0].Node.Hash.Add(&p.Path[0].Node.Hash, &one)
		},
		"upper sibling value": func(p *summit.InclusionProof) {
			p.Path[1].Node.Value++
		},
		"position tag": func(p *summit.InclusionProof) {
			p.Path[0].Position = summit.Right // Was Left for index 1.
		},
		"leaf value": func(p *summit.InclusionProof) {
			p.Leaf.Node.Value++
		},
		"leaf hash": func(p *summit.InclusionProof) {
			p.Leaf.Node.Hash.Add(&p.Leaf.Node.Hash, &one)
		},
	} {
		t.Run(name, func(t *testing.T) {
			tampered := summit.InclusionProof{
				Leaf: proof.Leaf,
				Path: append([]summit.Neighbor{}, proof.Path...),
			}
			tamper(&tampered)

			ok, err := tree.VerifyProof(tampered)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestVerifyProof_malformedPathLength(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, stest.LeavesForTest(t, 4))

	proof, err := tree.Proof(0)
	require.NoError(t, err)

	truncated := summit.InclusionProof{
		Leaf: proof.Leaf,
		Path: proof.Path[:1],
	}

	_, err = tree.VerifyProof(truncated)

	var malformed summit.MalformedProofError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 1, malformed.PathLen)
	require.Equal(t, 2, malformed.Height)
}

func TestVerify_staleProofAgainstHistoricalRoot(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, stest.LeavesForTest(t, 4))

	proof, err := tree.Proof(0)
	require.NoError(t, err)
	oldRoot := tree.Root()

	// Mutating a different leaf invalidates the proof
	// against the current root, but not against the old one.
	require.NoError(t, tree.SetLeaf(summit.NewLeaf("mutated", 1), 3))

	ok, err := tree.VerifyProof(proof)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = summit.Verify(smmimc.Hasher{}, proof, oldRoot)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_overflowingPath(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, stest.LeavesForTest(t, 2))

	proof, err := tree.Proof(0)
	require.NoError(t, err)

	proof.Path[0].Node.Value = ^uint64(0)
	proof.Leaf.Node.Value = 1

	_, err = summit.Verify(smmimc.Hasher{}, proof, tree.Root())

	var overflow summit.SumOverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestProof_unaffectedByLaterMutation(t *testing.T) {
	t.Parallel()

	tree := newTestTree(t, stest.LeavesForTest(t, 4))

	proof, err := tree.Proof(2)
	require.NoError(t, err)
	sibling := proof.Path[0].Node

	require.NoError(t, tree.SetLeaf(summit.NewLeaf("changed", 50), 3))

	// The proof is a snapshot; the mutation above altered
	// the stored sibling but must not reach into the proof.
	require.True(t, proof.Path[0].Node.Equal(sibling))
}
