// Package smwire provides the canonical binary encoding of tree values,
// for hosts that carry nodes, leaves,
// and inclusion proofs across a process boundary.
//
// All integers are big-endian and all field elements
// are their 32-byte canonical form.
// Append functions extend dst in place;
// Parse functions consume from the front of the input
// and return the remainder,
// failing with typed errors on hostile or truncated input.
package smwire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/summit-engine/summit"
)

const (
	hashSize = fr.Bytes
	nodeSize = hashSize + 8
)

// TruncatedError indicates the input ended
// before a complete value could be read.
type TruncatedError struct {
	Want, Have int
}

func (e TruncatedError) Error() string {
	return fmt.Sprintf("input truncated: need %d bytes, have %d", e.Want, e.Have)
}

// InvalidFieldError indicates a structurally invalid encoded field.
type InvalidFieldError struct {
	Field, Detail string
}

func (e InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

// AppendNode appends the encoding of n to dst:
// the canonical field element, then the value.
func AppendNode(dst []byte, n summit.Node) []byte {
	h := n.Hash.Bytes()
	dst = append(dst, h[:]...)
	return binary.BigEndian.AppendUint64(dst, n.Value)
}

// ParseNode parses a node from the front of in,
// returning the unconsumed remainder.
func ParseNode(in []byte) (summit.Node, []byte, error) {
	if len(in) < nodeSize {
		return summit.Node{}, nil, TruncatedError{Want: nodeSize, Have: len(in)}
	}

	var n summit.Node
	if err := n.Hash.SetBytesCanonical(in[:hashSize]); err != nil {
		return summit.Node{}, nil, InvalidFieldError{
			Field: "hash", Detail: "not a canonical field element",
		}
	}
	n.Value = binary.BigEndian.Uint64(in[hashSize:nodeSize])

	return n, in[nodeSize:], nil
}

// AppendLeaf appends the encoding of l to dst:
// a 2-byte id length, the id bytes, then the value.
// The leaf hash is not encoded;
// it is rederived from the id when parsing,
// so a decoded leaf is always internally consistent.
func AppendLeaf(dst []byte, l summit.Leaf) ([]byte, error) {
	if len(l.ID) > math.MaxUint16 {
		return nil, InvalidFieldError{
			Field: "id", Detail: fmt.Sprintf("length %d exceeds 2-byte limit", len(l.ID)),
		}
	}

	dst = binary.BigEndian.AppendUint16(dst, uint16(len(l.ID)))
	dst = append(dst, l.ID...)
	return binary.BigEndian.AppendUint64(dst, l.Node.Value), nil
}

// ParseLeaf parses a leaf from the front of in,
// returning the unconsumed remainder.
func ParseLeaf(in []byte) (summit.Leaf, []byte, error) {
	if len(in) < 2 {
		return summit.Leaf{}, nil, TruncatedError{Want: 2, Have: len(in)}
	}

	idLen := int(binary.BigEndian.Uint16(in))
	in = in[2:]

	if len(in) < idLen+8 {
		return summit.Leaf{}, nil, TruncatedError{Want: idLen + 8, Have: len(in)}
	}

	id := string(in[:idLen])
	value := binary.BigEndian.Uint64(in[idLen : idLen+8])

	return summit.NewLeaf(id, value), in[idLen+8:], nil
}

// AppendProof appends the encoding of p to dst:
// the leaf, a 1-byte path length,
// then each neighbor as a 1-byte position and a node.
func AppendProof(dst []byte, p summit.InclusionProof) ([]byte, error) {
	if len(p.Path) > summit.MaxHeight {
		return nil, InvalidFieldError{
			Field: "path",
			Detail: fmt.Sprintf(
				"length %d exceeds the maximum height %d",
				len(p.Path), summit.MaxHeight,
			),
		}
	}

	dst, err := AppendLeaf(dst, p.Leaf)
	if err != nil {
		return nil, err
	}

	dst = append(dst, byte(len(p.Path)))
	for _, nb := range p.Path {
		dst = append(dst, byte(nb.Position))
		dst = AppendNode(dst, nb.Node)
	}

	return dst, nil
}

// ParseProof parses an inclusion proof from the front of in,
// returning the unconsumed remainder.
func ParseProof(in []byte) (summit.InclusionProof, []byte, error) {
	leaf, in, err := ParseLeaf(in)
	if err != nil {
		return summit.InclusionProof{}, nil, err
	}

	if len(in) < 1 {
		return summit.InclusionProof{}, nil, TruncatedError{Want: 1, Have: 0}
	}
	pathLen := int(in[0])
	in = in[1:]

	if pathLen > summit.MaxHeight {
		return summit.InclusionProof{}, nil, InvalidFieldError{
			Field: "path",
			Detail: fmt.Sprintf(
				"length %d exceeds the maximum height %d",
				pathLen, summit.MaxHeight,
			),
		}
	}

	path := make([]summit.Neighbor, 0, pathLen)
	for range pathLen {
		if len(in) < 1 {
			return summit.InclusionProof{}, nil, TruncatedError{Want: 1, Have: 0}
		}

		pos := summit.Position(in[0])
		if pos != summit.Left && pos != summit.Right {
			return summit.InclusionProof{}, nil, InvalidFieldError{
				Field: "position", Detail: fmt.Sprintf("unknown tag %d", in[0]),
			}
		}
		in = in[1:]

		var n summit.Node
		n, in, err = ParseNode(in)
		if err != nil {
			return summit.InclusionProof{}, nil, err
		}

		path = append(path, summit.Neighbor{Position: pos, Node: n})
	}

	return summit.InclusionProof{Leaf: leaf, Path: path}, in, nil
}
