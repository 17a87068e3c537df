// Package der decodes a DER-encoded byte stream into a tree of tagged nodes.
// It is deliberately untyped: it does not know about SEQUENCE-of-what or
// OPTIONAL fields, it only knows tag/length/value framing (ITU-T X.690
// §8-10, restricted to the definite-length DER subset). Higher layers (the
// key importers in pkg/key) walk the tree to pull out the fields they need.
package der

import (
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// constructedMask is the bit in the identifier octet (X.690 §8.1.2.5) that
// marks an element as constructed (its content is itself a sequence of
// nested TLVs) rather than primitive (its content is the raw value).
const constructedMask = 0x20

// Node is one decoded DER element.
//
// Tag is the raw identifier octet as it appeared on the wire (class bits,
// constructed bit, and tag number all preserved — callers distinguish
// universal SEQUENCE from a context-specific constructed tag like [0] by
// masking this byte themselves, the same way they would reading a hex dump).
//
// Bytes holds the element's raw content octets. For a constructed element
// this is still populated (it's the concatenation of the child elements'
// full encodings) so a caller that doesn't care about substructure can use
// it directly; Elements holds the same content already decoded into child
// nodes for callers that do.
type Node struct {
	Tag      byte
	Bytes    []byte
	Elements []*Node
}

// IsConstructed reports whether this node's content is itself a nested
// sequence of DER elements.
func (n *Node) IsConstructed() bool {
	return n.Tag&constructedMask != 0
}

// TagNumber returns the low 5 (or fewer, for high-tag-number form) bits of
// the identifier octet, stripping class and constructed bits. This module
// never needs to decode the high-tag-number form — every tag the key
// importers look for (SEQUENCE, INTEGER, OCTET STRING, BIT STRING, OID, and
// small context tags like [0]/[1]) fits in the low-tag-number form.
func (n *Node) TagNumber() byte {
	return n.Tag & 0x1F
}

// Decode parses a single DER element from buf and fails if any input is
// left over, per spec: a single SEC1/PKCS#8/SPKI structure is always one
// top-level SEQUENCE.
func Decode(buf []byte) (*Node, error) {
	s := cryptobyte.String(buf)
	node, err := decodeNode(&s)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, ErrBadDer
	}
	return node, nil
}

func decodeNode(s *cryptobyte.String) (*Node, error) {
	var contents cryptobyte.String
	var tag cbasn1.Tag
	if !s.ReadAnyASN1(&contents, &tag) {
		return nil, ErrBadDer
	}

	node := &Node{
		Tag:   byte(tag),
		Bytes: append([]byte(nil), contents...),
	}

	if byte(tag)&constructedMask != 0 {
		for !contents.Empty() {
			child, err := decodeNode(&contents)
			if err != nil {
				return nil, ErrBadDer
			}
			node.Elements = append(node.Elements, child)
		}
	}

	return node, nil
}
