// Package summit implements a Merkle sum tree:
// a binary hash tree in which every node carries both
// a field-element hash and the accumulated value of the leaves beneath it.
// The root therefore commits simultaneously to the leaf set
// and to the total of all leaf values,
// and an [InclusionProof] lets a verifier recompute both
// from a single leaf and its sibling path,
// without seeing any other leaf.
//
// SUMMIT stands for SUm-Merkle Membership and Inclusion Tree.
//
// The pairwise hash primitive is injected through the smhash package;
// the smhash/smmimc subpackage provides a MiMC sponge suitable
// for zero-knowledge proof circuits.
//
// A [Tree] is a single-owner structure with no internal synchronization;
// concurrent use requires an external lock held for the full mutation.
package summit
