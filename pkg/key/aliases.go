package key

import "github.com/backkem/mattercore/pkg/base64url"

// --- Human aliases (spec §3.3: algorithm->alg, curve->crv, type->kty,
// operations->key_ops, private->d, extractable->ext). These are bidirectional
// and transparent: reading the alias reads the base field and vice versa,
// with no transformation beyond the name.

// Type returns the "kty" field.
func (k *Key) Type() string { return k.Kty }

// SetType sets the "kty" field.
func (k *Key) SetType(kty string) { k.Kty = kty }

// Curve returns the "crv" field.
func (k *Key) Curve() string { return k.Crv }

// SetCurve sets the "crv" field.
func (k *Key) SetCurve(crv string) { k.Crv = crv }

// Algorithm returns the "alg" field.
func (k *Key) Algorithm() string { return k.Alg }

// SetAlgorithm sets the "alg" field.
func (k *Key) SetAlgorithm(alg string) { k.Alg = alg }

// Operations returns the "key_ops" field.
func (k *Key) Operations() []string { return k.KeyOps }

// SetOperations sets the "key_ops" field.
func (k *Key) SetOperations(ops []string) { k.KeyOps = ops }

// Private returns the raw (still base64url-encoded) "d" field.
func (k *Key) Private() string { return k.D }

// SetPrivate sets the raw (already base64url-encoded) "d" field directly,
// bypassing the binary alias's encode step.
func (k *Key) SetPrivate(d string) { k.D = d }

// Extractable returns the "ext" field, defaulting to false when unset.
func (k *Key) Extractable() bool { return k.Ext != nil && *k.Ext }

// SetExtractable sets the "ext" field.
func (k *Key) SetExtractable(ext bool) { k.Ext = &ext }

// --- Binary aliases (spec §3.3: privateBits<->d, xBits<->x, yBits<->y).
// These decode/encode the base64url string fields into raw bytes (spec
// invariant (i): string fields are base64url-unpadded; binary aliases
// round-trip losslessly).

// PrivateBits decodes the "d" field as base64url, or returns (nil, nil) if
// it's unset.
func (k *Key) PrivateBits() ([]byte, error) { return decodeField(k.D) }

// SetPrivateBits base64url-encodes b into the "d" field.
func (k *Key) SetPrivateBits(b []byte) { k.D = base64url.Encode(b) }

// XBits decodes the "x" field as base64url, or returns (nil, nil) if it's
// unset.
func (k *Key) XBits() ([]byte, error) { return decodeField(k.X) }

// SetXBits base64url-encodes b into the "x" field.
func (k *Key) SetXBits(b []byte) { k.X = base64url.Encode(b) }

// YBits decodes the "y" field as base64url, or returns (nil, nil) if it's
// unset.
func (k *Key) YBits() ([]byte, error) { return decodeField(k.Y) }

// SetYBits base64url-encodes b into the "y" field.
func (k *Key) SetYBits(b []byte) { k.Y = base64url.Encode(b) }

// SymmetricBits decodes the "k" field as base64url, or returns (nil, nil)
// if it's unset.
func (k *Key) SymmetricBits() ([]byte, error) { return decodeField(k.K) }

// SetSymmetricBits base64url-encodes b into the "k" field.
func (k *Key) SetSymmetricBits(b []byte) { k.K = base64url.Encode(b) }

func decodeField(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return base64url.Decode(s)
}

// --- Asserted aliases (spec §3.3: publicKey, privateKey, keyPair). Same
// shape as the binary aliases, but a read fails with ErrMissingField when
// the underlying field is absent rather than silently returning nil.

// PublicKey returns the uncompressed SEC1 public point (0x04 || X || Y)
// reconstructed from the "x"/"y" fields. Fails with ErrMissingField if
// either is unset (scenario S6).
func (k *Key) PublicKey() ([]byte, error) {
	if k.X == "" || k.Y == "" {
		return nil, ErrMissingField
	}
	x, err := k.XBits()
	if err != nil {
		return nil, err
	}
	y, err := k.YBits()
	if err != nil {
		return nil, err
	}
	return append([]byte{0x04}, append(x, y...)...), nil
}

// SetPublicKey decodes an uncompressed SEC1 public point (0x04 || X || Y)
// and writes its halves into "x"/"y".
func (k *Key) SetPublicKey(point []byte) error {
	if len(point) == 0 || point[0] != 0x04 {
		return ErrBadFormat
	}
	rest := point[1:]
	if len(rest)%2 != 0 {
		return ErrBadFormat
	}
	half := len(rest) / 2
	k.SetXBits(rest[:half])
	k.SetYBits(rest[half:])
	return nil
}

// PrivateKey returns the raw private scalar (for EC keys, decoded from "d")
// or symmetric key bytes (for "oct" keys, decoded from "k"). Fails with
// ErrMissingField if the relevant field is unset.
func (k *Key) PrivateKey() ([]byte, error) {
	if k.Kty == KtyOct {
		if k.K == "" {
			return nil, ErrMissingField
		}
		return k.SymmetricBits()
	}
	if k.D == "" {
		return nil, ErrMissingField
	}
	return k.PrivateBits()
}

// SetPrivateKeyBits base64url-encodes b into "d" for EC keys, or "k" for
// "oct" keys.
func (k *Key) SetPrivateKeyBits(b []byte) {
	if k.Kty == KtyOct {
		k.SetSymmetricBits(b)
		return
	}
	k.SetPrivateBits(b)
}

// KeyPair returns (privateKey, publicKey), each as defined above. Fails with
// ErrMissingField if either is unset.
func (k *Key) KeyPair() (priv, pub []byte, err error) {
	priv, err = k.PrivateKey()
	if err != nil {
		return nil, nil, err
	}
	pub, err = k.PublicKey()
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}
