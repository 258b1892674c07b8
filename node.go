package summit

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

// Node is the tree's atomic unit:
// a field-element hash paired with the accumulated value
// of all leaves beneath it.
// For a leaf node, the hash and value derive from the leaf itself.
type Node struct {
	Hash  fr.Element
	Value uint64
}

// Equal reports whether n and o carry the same hash and value.
func (n Node) Equal(o Node) bool {
	return n.Value == o.Value && n.Hash.Equal(&o.Hash)
}

// zeroLeafID is the canonical identifier of the padding leaf.
const zeroLeafID = "0"

// Leaf is an identified node at the bottom of the tree.
type Leaf struct {
	ID   string
	Node Node
}

// NewLeaf returns a leaf for the given identity and value.
// The leaf hash is the keccak-256 digest of the id,
// reduced into the field.
func NewLeaf(id string, value uint64) Leaf {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write([]byte(id))

	var e fr.Element
	e.SetBytes(h.Sum(nil))

	return Leaf{
		ID:   id,
		Node: Node{Hash: e, Value: value},
	}
}

// ZeroLeaf returns the canonical padding leaf: id "0", value 0.
func ZeroLeaf() Leaf {
	return NewLeaf(zeroLeafID, 0)
}

// IsZero reports whether l equals the canonical zero leaf.
func (l Leaf) IsZero() bool {
	return l.ID == zeroLeafID && l.Node.Value == 0
}
