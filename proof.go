package summit

import (
	"fmt"

	"github.com/summit-engine/summit/smhash"
)

// Position denotes which side of a sibling pair a proof neighbor occupies.
// The node being folded sits on the opposite side.
type Position uint8

const (
	Left Position = iota
	Right
)

func (p Position) String() string {
	switch p {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Position(%d)", uint8(p))
	}
}

// Neighbor is one sibling entry in an inclusion proof path.
type Neighbor struct {
	Position Position
	Node     Node
}

// InclusionProof proves that its leaf belongs to a committed tree
// and contributed its value to the root sum.
//
// A proof is an immutable, independently owned snapshot:
// it does not observe tree mutations made after it was generated,
// and a stale proof may legitimately fail against the tree's current root.
type InclusionProof struct {
	Leaf Leaf
	Path []Neighbor
}

// Proof generates an inclusion proof for the leaf at the given index.
// The path is ordered leaf-to-root and its length equals the tree height.
//
// The proof copies the nodes it references,
// so it stays valid (for the root at generation time)
// regardless of later tree mutations.
func (t *Tree) Proof(index int) (InclusionProof, error) {
	if index < 0 || index >= len(t.leaves) {
		return InclusionProof{}, IndexOutOfRangeError{
			Index: index, Max: len(t.leaves) - 1,
		}
	}

	path := make([]Neighbor, 0, t.height)

	levelStart := 0
	li := index // Index within the current level.
	for width := len(t.leaves); width > 1; width >>= 1 {
		sibling := t.nodes[levelStart+(li^1)]

		pos := Right
		if li&1 == 1 {
			pos = Left
		}
		path = append(path, Neighbor{Position: pos, Node: sibling})

		levelStart += width
		li >>= 1
	}

	return InclusionProof{Leaf: t.leaves[index], Path: path}, nil
}

// Verify recomputes a root node from the proof's leaf and path,
// and reports whether it matches the target root in both hash and value.
//
// Verify is a pure fold over the proof:
// it reads no tree storage, so it can check proofs
// against externally supplied or historical roots.
// Overflow while folding the path is reported as [SumOverflowError].
func Verify(h smhash.Hasher, proof InclusionProof, root Node) (bool, error) {
	if h == nil {
		panic(fmt.Errorf("BUG: Verify requires a non-nil hasher"))
	}

	cur := proof.Leaf.Node
	for _, nb := range proof.Path {
		var err error
		if nb.Position == Left {
			cur, err = combine(h, nb.Node, cur)
		} else {
			cur, err = combine(h, cur, nb.Node)
		}
		if err != nil {
			return false, err
		}
	}

	return cur.Equal(root), nil
}

// VerifyProof verifies the proof against the tree's current root,
// using the tree's own hasher.
//
// A proof whose path length does not match the tree height
// fails with [MalformedProofError] before any folding.
func (t *Tree) VerifyProof(proof InclusionProof) (bool, error) {
	if len(proof.Path) != t.height {
		return false, MalformedProofError{
			PathLen: len(proof.Path), Height: t.height,
		}
	}

	return Verify(t.hasher, proof, t.Root())
}
