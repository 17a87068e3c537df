// Package key implements the central, JWK-shaped key representation used to
// normalize symmetric and elliptic-curve keys, plus format translators for
// the DER encodings (SEC1, PKCS#8, SPKI) and raw SEC1 public points that
// identity keys are imported from.
//
// The package never performs ECDSA signing/verification or ECDH itself; for
// EC keys it only imports/derives the public point, delegating the point
// computation to an injected ECProvider (spec §6.4 — pkg/crypto implements
// this for NIST curves).
package key

// OtherPrimesInfo mirrors a JWK RSA "oth" entry (RFC 7518 §6.3.2.7).
// RSA import/export is not implemented by this package; the fields exist so
// RSA-shaped input is recognized and passed through rather than rejected.
type OtherPrimesInfo struct {
	R string `json:"r,omitempty"`
	D string `json:"d,omitempty"`
	T string `json:"t,omitempty"`
}

// Fields holds the JWK attribute bag verbatim, using exactly the field
// names from RFC 7517/7518 (spec §3.3, §6.3). Key embeds this and adds
// accessor methods; Fields itself has no invariants enforced — it's the
// plain base record that the human/binary/asserted aliases and the
// importers all write into.
type Fields struct {
	Kty string `json:"kty,omitempty"`
	Crv string `json:"crv,omitempty"`

	D string `json:"d,omitempty"`
	X string `json:"x,omitempty"`
	Y string `json:"y,omitempty"`
	K string `json:"k,omitempty"`

	Alg    string   `json:"alg,omitempty"`
	KeyOps []string `json:"key_ops,omitempty"`
	Ext    *bool    `json:"ext,omitempty"`

	N   string            `json:"n,omitempty"`
	E   string            `json:"e,omitempty"`
	P   string            `json:"p,omitempty"`
	Q   string            `json:"q,omitempty"`
	Dp  string            `json:"dp,omitempty"`
	Dq  string            `json:"dq,omitempty"`
	Qi  string            `json:"qi,omitempty"`
	Oth []OtherPrimesInfo `json:"oth,omitempty"`
}

// Key types recognized by this package (spec §3.3).
const (
	KtyEC  = "EC"
	KtyOct = "oct"
)

// Curve names recognized by this package, matching JWK's "crv" values
// (RFC 7518 §7.6) for the NIST curves spec §3.3 requires.
const (
	KeyCurveP256 = "P-256"
	KeyCurveP384 = "P-384"
	KeyCurveP521 = "P-521"
)

// Key is the normalized, JWK-shaped key record. It embeds Fields, so the
// base JWK fields are exported and can be read or assigned directly; the
// human, binary, and asserted accessor methods in aliases.go read and write
// those same fields. Assigning a field directly bypasses the base64url
// encoding the binary aliases apply, and curve inference and public-point
// derivation run only inside New. Construct one with New or one of the PrivateKey/
// PublicKey/SymmetricKey convenience factories; there is no exported
// zero-value constructor because a Key's invariants are established at
// construction time, not by zero values.
type Key struct {
	Fields
}

// RawFields returns a copy of the underlying JWK attribute bag, suitable
// for JSON marshaling as a plain object using exactly the field names in
// spec §3.3. Unknown JWK properties are never retained (spec invariant
// (iv)): Fields only has room for the names this package recognizes.
func (k *Key) RawFields() Fields {
	return k.Fields
}
