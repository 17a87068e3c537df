package key

import (
	"math/big"

	"github.com/backkem/mattercore/pkg/der"
)

// DER universal and context tags the importers need to recognize. Full
// identifier octets (class + constructed + number bits), not bare tag
// numbers, since SEC1's [0]/[1] fields share tag numbers 0/1 with ASN.1
// universal tags and must be told apart by class.
const (
	tagInteger         byte = 0x02
	tagBitString       byte = 0x03
	tagOctetString     byte = 0x04
	tagOID             byte = 0x06
	tagSequence        byte = 0x30
	contextConstructed0 byte = 0xA0 // [0], EXPLICIT
)

// importSec1 parses a SEC1 ECPrivateKey (RFC 5915 §3):
//
//	SEQUENCE { INTEGER version=1, OCTET STRING privateKey,
//	           [0] ECParameters OPTIONAL, [1] BIT STRING publicKey OPTIONAL }
//
// The optional [1] publicKey is ignored per spec §4.E — the provider
// re-derives it from the scalar rather than trusting the wire value.
func importSec1(data []byte) (curve string, scalar []byte, err error) {
	root, err := der.Decode(data)
	if err != nil {
		return "", nil, err
	}
	if root.Tag != tagSequence || len(root.Elements) < 2 {
		return "", nil, ErrBadFormat
	}

	version := root.Elements[0]
	if version.Tag != tagInteger || !isSmallInt(version.Bytes, 1) {
		return "", nil, ErrBadVersion
	}

	priv := root.Elements[1]
	if priv.Tag != tagOctetString {
		return "", nil, ErrBadFormat
	}
	scalar = append([]byte(nil), priv.Bytes...)

	for _, el := range root.Elements[2:] {
		if el.Tag != contextConstructed0 || len(el.Elements) == 0 {
			continue
		}
		oidNode := el.Elements[0]
		if oidNode.Tag != tagOID {
			continue
		}
		oid, err := decodeOID(oidNode.Bytes)
		if err != nil {
			return "", nil, err
		}
		name, ok := curveNameByOID(oid)
		if !ok {
			return "", nil, ErrUnknownCurve
		}
		curve = name
	}

	return curve, scalar, nil
}

// importPkcs8 parses a PKCS#8 PrivateKeyInfo (RFC 5208 §5) carrying an EC
// key (RFC 5480 §2.1.1):
//
//	SEQUENCE { INTEGER version=0,
//	           SEQUENCE { OID id-ecPublicKey, OID namedCurve },
//	           OCTET STRING privateKey }
//
// privateKey's content is itself a SEC1-like SEQUENCE whose element at
// index 1 (an OCTET STRING) is the private scalar.
func importPkcs8(data []byte) (curve string, scalar []byte, err error) {
	root, err := der.Decode(data)
	if err != nil {
		return "", nil, err
	}
	if root.Tag != tagSequence || len(root.Elements) < 3 {
		return "", nil, ErrBadFormat
	}

	version := root.Elements[0]
	if version.Tag != tagInteger || !isSmallInt(version.Bytes, 0) {
		return "", nil, ErrBadVersion
	}

	algID := root.Elements[1]
	curve, err = ecAlgorithmIdentifierCurve(algID)
	if err != nil {
		return "", nil, err
	}

	wrapper := root.Elements[2]
	if wrapper.Tag != tagOctetString {
		return "", nil, ErrBadFormat
	}
	inner, err := der.Decode(wrapper.Bytes)
	if err != nil {
		return "", nil, err
	}
	if inner.Tag != tagSequence || len(inner.Elements) < 2 {
		return "", nil, ErrBadFormat
	}
	scalarNode := inner.Elements[1]
	if scalarNode.Tag != tagOctetString {
		return "", nil, ErrBadFormat
	}

	return curve, append([]byte(nil), scalarNode.Bytes...), nil
}

// importSpki parses a SubjectPublicKeyInfo (RFC 5280 §4.1.2.7) carrying an
// EC public key:
//
//	SEQUENCE { SEQUENCE { OID id-ecPublicKey, OID namedCurve },
//	           BIT STRING publicKey }
func importSpki(data []byte) (curve string, x, y []byte, err error) {
	root, err := der.Decode(data)
	if err != nil {
		return "", nil, nil, err
	}
	if root.Tag != tagSequence || len(root.Elements) < 2 {
		return "", nil, nil, ErrBadFormat
	}

	curve, err = ecAlgorithmIdentifierCurve(root.Elements[0])
	if err != nil {
		return "", nil, nil, err
	}

	bits := root.Elements[1]
	if bits.Tag != tagBitString || len(bits.Bytes) == 0 {
		return "", nil, nil, ErrBadFormat
	}
	x, y, err = parsePublicPoint(bits.Bytes[1:])
	if err != nil {
		return "", nil, nil, err
	}
	return curve, x, y, nil
}

// ecAlgorithmIdentifierCurve reads an AlgorithmIdentifier SEQUENCE shaped
// `SEQUENCE { OID algorithm, OID namedCurve }` shared by PKCS#8 and SPKI,
// and resolves its curve OID to a supported curve name.
func ecAlgorithmIdentifierCurve(algID *der.Node) (string, error) {
	if algID.Tag != tagSequence || len(algID.Elements) < 2 {
		return "", ErrBadFormat
	}
	algOIDNode, curveOIDNode := algID.Elements[0], algID.Elements[1]
	if algOIDNode.Tag != tagOID {
		return "", ErrBadFormat
	}

	algOID, err := decodeOID(algOIDNode.Bytes)
	if err != nil {
		return "", err
	}
	if !algOID.Equal(OIDPublicKeyECDSA) {
		return "", ErrUnsupportedAlgorithm
	}

	if curveOIDNode.Tag != tagOID {
		return "", ErrBadFormat
	}
	curveOID, err := decodeOID(curveOIDNode.Bytes)
	if err != nil {
		return "", err
	}
	name, ok := curveNameByOID(curveOID)
	if !ok {
		return "", ErrUnknownCurve
	}
	return name, nil
}

// importRawPoint parses a raw uncompressed SEC1 public point (spec §4.E,
// "Raw SEC1 public point"): 0x04 || X || Y, curve inferred from coordinate
// length.
func importRawPoint(data []byte) (curve string, x, y []byte, err error) {
	x, y, err = parsePublicPoint(data)
	if err != nil {
		return "", nil, nil, err
	}
	curve, err = curveByCoordLen(len(x))
	if err != nil {
		return "", nil, nil, err
	}
	return curve, x, y, nil
}

// parsePublicPoint splits a SEC1 public point's format byte and coordinate
// bytes. Only the uncompressed form (0x04) is accepted.
func parsePublicPoint(data []byte) (x, y []byte, err error) {
	if len(data) == 0 {
		return nil, nil, ErrBadFormat
	}
	switch data[0] {
	case 0x04:
		if len(data)%2 == 0 {
			return nil, nil, ErrBadFormat
		}
		rest := data[1:]
		half := len(rest) / 2
		return append([]byte(nil), rest[:half]...), append([]byte(nil), rest[half:]...), nil
	case 0x02, 0x03:
		return nil, nil, ErrUnsupportedCompression
	default:
		return nil, nil, ErrBadFormat
	}
}

// isSmallInt reports whether a DER INTEGER's content octets encode the
// given small non-negative value (version fields are always 0 or 1).
func isSmallInt(content []byte, want int64) bool {
	if len(content) == 0 {
		return false
	}
	return new(big.Int).SetBytes(content).Cmp(big.NewInt(want)) == 0
}
