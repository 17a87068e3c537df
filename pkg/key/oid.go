package key

import "encoding/asn1"

// Named OIDs the importers recognize, following the teacher's
// pkg/credentials/oid.go table style (var block of asn1.ObjectIdentifier
// values), scoped here to the handful EC key import needs.
var (
	// OIDPublicKeyECDSA is id-ecPublicKey (RFC 5480 §2.1.1), the only
	// PKCS#8/SPKI algorithm this package accepts.
	OIDPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	// OIDNamedCurveP256 is prime256v1/secp256r1 (RFC 5480 §2.1.1.1).
	OIDNamedCurveP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}

	// OIDNamedCurveP384 is secp384r1, using the canonical OID per spec §9's
	// first Open Question (not the source's suspicious byte sequence).
	OIDNamedCurveP384 = asn1.ObjectIdentifier{1, 3, 132, 0, 34}

	// OIDNamedCurveP521 is secp521r1, canonical per the same Open Question.
	OIDNamedCurveP521 = asn1.ObjectIdentifier{1, 3, 132, 0, 35}
)

// curveByOID maps a curve OID to the JWK "crv" name the key model uses.
var curveByOID = map[string]string{
	OIDNamedCurveP256.String(): KeyCurveP256,
	OIDNamedCurveP384.String(): KeyCurveP384,
	OIDNamedCurveP521.String(): KeyCurveP521,
}

// curveNameByOID looks up a decoded OID against the supported curve table.
func curveNameByOID(oid asn1.ObjectIdentifier) (string, bool) {
	name, ok := curveByOID[oid.String()]
	return name, ok
}

// decodeOID decodes the content octets of a DER OBJECT IDENTIFIER (i.e. the
// der.Node.Bytes of an OID node, without the tag/length header) into an
// asn1.ObjectIdentifier. encoding/asn1's own Unmarshal only accepts a full
// tag-length-value encoding, so this replicates the base-128 arc decoding
// (ITU-T X.690 §8.19) the stdlib package does internally but keeps it
// unexported there.
func decodeOID(content []byte) (asn1.ObjectIdentifier, error) {
	if len(content) == 0 {
		return nil, ErrBadFormat
	}

	oid := make(asn1.ObjectIdentifier, 0, len(content)+1)
	oid = append(oid, int(content[0])/40, int(content[0])%40)

	val := 0
	more := false
	for _, b := range content[1:] {
		val = val<<7 | int(b&0x7f)
		more = b&0x80 != 0
		if !more {
			oid = append(oid, val)
			val = 0
		}
	}
	if more {
		// Truncated multi-byte arc: the last byte had its continuation bit
		// set but nothing followed it.
		return nil, ErrBadFormat
	}

	return oid, nil
}
