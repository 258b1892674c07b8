package summit

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/summit-engine/summit/smhash"
)

// MaxHeight is the tallest allowed tree, i.e. 2^64 padded leaves.
const MaxHeight = 64

// Tree is a Merkle sum tree.
//
// The leaf sequence is padded with zero leaves to a power of two,
// and every level is stored in one flattened node slice:
// leaves first, then each parent level in order, the root last.
// Storing the full tree makes every sibling an O(1) lookup,
// so mutation and proof generation walk a single
// root-to-leaf path instead of rebuilding.
//
// A Tree is single-owner: mutating methods read and then write
// a path through the node storage,
// so interleaved mutation would observe an inconsistent tree.
// Concurrent use requires an external exclusive lock.
type Tree struct {
	log *slog.Logger

	hasher smhash.Hasher

	// Padded leaf sequence; the length is always a power of two.
	leaves []Leaf

	// All nodes of every level; len(nodes) == 2*len(leaves) - 1.
	nodes []Node

	// Levels between a leaf and the root: len(leaves) == 1 << height.
	height int

	// Leaf positions currently holding the zero leaf,
	// i.e. the slots Push may reuse without growing.
	zeroes *bitset.BitSet
}

// TreeConfig is the configuration for [New].
type TreeConfig struct {
	// The initial leaves, in order.
	// Must be non-empty.
	Leaves []Leaf

	// Hasher combines two sibling nodes into their parent's hash.
	Hasher smhash.Hasher
}

// New returns a tree committing to the leaves in cfg,
// padded with zero leaves to the next power of two (minimum two).
//
// Construction fails with [ErrEmptyLeaves] when no leaves are given,
// with [HeightExceededError] when the padded size would pass 2^[MaxHeight],
// and with [SumOverflowError] when the total leaf value
// exceeds the representable range.
func New(log *slog.Logger, cfg TreeConfig) (*Tree, error) {
	if cfg.Hasher == nil {
		panic(fmt.Errorf("BUG: TreeConfig.Hasher must not be nil"))
	}

	if len(cfg.Leaves) == 0 {
		return nil, ErrEmptyLeaves
	}

	leaves, nodes, height, zeroes, err := build(cfg.Hasher, cfg.Leaves)
	if err != nil {
		return nil, err
	}

	return &Tree{
		log: log,

		hasher: cfg.Hasher,

		leaves: leaves,
		nodes:  nodes,
		height: height,
		zeroes: zeroes,
	}, nil
}

// build pads the input to a power of two
// and folds the full node slice bottom-up.
// Nothing is shared with the input slice,
// so a failed build leaves no partial state behind.
func build(h smhash.Hasher, in []Leaf) (
	leaves []Leaf, nodes []Node, height int, zeroes *bitset.BitSet, err error,
) {
	padded := 2
	height = 1
	for padded < len(in) {
		padded <<= 1
		height++
		if height > MaxHeight {
			return nil, nil, 0, nil, HeightExceededError{Height: height}
		}
	}

	leaves = make([]Leaf, 0, padded)
	leaves = append(leaves, in...)

	zl := ZeroLeaf()
	for len(leaves) < padded {
		leaves = append(leaves, zl)
	}

	zeroes = bitset.MustNew(uint(padded))
	nodes = make([]Node, 0, 2*padded-1)
	for i, l := range leaves {
		if l.IsZero() {
			zeroes.Set(uint(i))
		}
		nodes = append(nodes, l.Node)
	}

	levelStart := 0
	for width := padded; width > 1; width >>= 1 {
		for i := 0; i < width; i += 2 {
			parent, err := combine(h, nodes[levelStart+i], nodes[levelStart+i+1])
			if err != nil {
				return nil, nil, 0, nil, err
			}
			nodes = append(nodes, parent)
		}
		levelStart += width
	}

	return leaves, nodes, height, zeroes, nil
}

// combine builds the parent of two sibling nodes,
// carry-checking the value sum.
func combine(h smhash.Hasher, left, right Node) (Node, error) {
	sum, carry := bits.Add64(left.Value, right.Value, 0)
	if carry != 0 {
		return Node{}, SumOverflowError{Left: left.Value, Right: right.Value}
	}

	return Node{
		Hash:  h.Combine(left.Hash, left.Value, right.Hash, right.Value),
		Value: sum,
	}, nil
}

// Push appends one logical leaf and returns its assigned index.
//
// When a zero slot is free, the lowest one is reused
// through the O(height) path update.
// When the tree is at capacity it grows by one level,
// reconstructing every node;
// [HeightExceededError] is returned past [MaxHeight].
func (t *Tree) Push(leaf Leaf) (int, error) {
	if idx, ok := t.zeroes.NextSet(0); ok {
		if err := t.SetLeaf(leaf, int(idx)); err != nil {
			return 0, err
		}
		return int(idx), nil
	}

	if t.height >= MaxHeight {
		return 0, HeightExceededError{Height: t.height + 1}
	}

	grown := make([]Leaf, 0, len(t.leaves)+1)
	grown = append(grown, t.leaves...)
	grown = append(grown, leaf)

	leaves, nodes, height, zeroes, err := build(t.hasher, grown)
	if err != nil {
		return 0, err
	}

	t.log.Debug(
		"Grew tree to fit pushed leaf",
		"old_height", t.height,
		"new_height", height,
	)

	index := len(t.leaves)
	t.leaves = leaves
	t.nodes = nodes
	t.height = height
	t.zeroes = zeroes

	return index, nil
}

// SetLeaf replaces the leaf at the given index,
// recomputing only the nodes on the path from that leaf to the root.
//
// Every node on the new path is computed and validated
// before any storage write,
// so a failing call leaves the tree exactly as it was.
func (t *Tree) SetLeaf(leaf Leaf, index int) error {
	if index < 0 || index >= len(t.leaves) {
		return IndexOutOfRangeError{Index: index, Max: len(t.leaves) - 1}
	}

	writes, err := t.pathWrites(leaf.Node, index)
	if err != nil {
		return err
	}

	t.leaves[index] = leaf
	if leaf.IsZero() {
		t.zeroes.Set(uint(index))
	} else {
		t.zeroes.Clear(uint(index))
	}

	for _, w := range writes {
		t.nodes[w.index] = w.node
	}

	return nil
}

// Remove sets the leaf at the given index to the zero leaf,
// freeing the slot for reuse by [*Tree.Push].
// The height never shrinks, even if every leaf becomes zero.
// Removing an already-zero leaf succeeds and does not change the root.
func (t *Tree) Remove(index int) error {
	return t.SetLeaf(ZeroLeaf(), index)
}

type nodeWrite struct {
	index int
	node  Node
}

// pathWrites computes the node updates that placing n
// at the given leaf position would require,
// reading the stored siblings along the path.
// It performs no writes itself.
func (t *Tree) pathWrites(n Node, index int) ([]nodeWrite, error) {
	writes := make([]nodeWrite, 0, t.height+1)
	writes = append(writes, nodeWrite{index: index, node: n})

	cur := n
	levelStart := 0
	li := index // Index within the current level.
	for width := len(t.leaves); width > 1; width >>= 1 {
		sibling := t.nodes[levelStart+(li^1)]

		var parent Node
		var err error
		if li&1 == 0 {
			parent, err = combine(t.hasher, cur, sibling)
		} else {
			parent, err = combine(t.hasher, sibling, cur)
		}
		if err != nil {
			return nil, err
		}

		levelStart += width
		li >>= 1
		writes = append(writes, nodeWrite{index: levelStart + li, node: parent})

		cur = parent
	}

	return writes, nil
}

// Root returns the current root node.
// The root's value is the sum of all non-zero leaf values.
func (t *Tree) Root() Node {
	return t.nodes[len(t.nodes)-1]
}

// RootHash returns the current root hash.
func (t *Tree) RootHash() fr.Element {
	return t.Root().Hash
}

// RootSum returns the current root sum.
func (t *Tree) RootSum() uint64 {
	return t.Root().Value
}

// Height returns the number of levels between a leaf and the root.
func (t *Tree) Height() int {
	return t.height
}

// LeafCount returns the padded number of leaves, always a power of two.
func (t *Tree) LeafCount() int {
	return len(t.leaves)
}

// Node returns the stored node at the given index
// of the flattened level-by-level layout.
func (t *Tree) Node(index int) (Node, error) {
	if index < 0 || index >= len(t.nodes) {
		return Node{}, IndexOutOfRangeError{Index: index, Max: len(t.nodes) - 1}
	}
	return t.nodes[index], nil
}

// Leaf returns the leaf at the given index, padding included.
func (t *Tree) Leaf(index int) (Leaf, error) {
	if index < 0 || index >= len(t.leaves) {
		return Leaf{}, IndexOutOfRangeError{Index: index, Max: len(t.leaves) - 1}
	}
	return t.leaves[index], nil
}

// ZeroIndexes returns the leaf positions currently holding the zero leaf,
// in ascending order.
func (t *Tree) ZeroIndexes() []uint {
	out := make([]uint, 0, t.zeroes.Count())
	for i, ok := t.zeroes.NextSet(0); ok; i, ok = t.zeroes.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}
