package crypto

import (
	"crypto/ecdh"
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"
)

// Curve names the NIST curves the key model supports, using the same
// strings JWK's "crv" field uses (RFC 7518 §7.6).
const (
	CurveP256 = "P-256"
	CurveP384 = "P-384"
	CurveP521 = "P-521"
)

// P256GroupSizeBytes is the field width of P-256: 32 bytes, for both
// coordinates and private scalars.
const P256GroupSizeBytes = 32

// ErrUnknownCurve is returned for a curve name outside {P-256, P-384, P-521}.
var ErrUnknownCurve = errors.New("crypto: unknown curve")

// ErrBadScalar is returned when a private scalar is outside [1, n-1] for
// its curve, or otherwise fails to parse as a valid EC private key.
var ErrBadScalar = errors.New("crypto: invalid private scalar")

type curveInfo struct {
	stdlib    elliptic.Curve
	ecdh      func() ecdh.Curve
	fieldSize int
}

var curveTable = map[string]curveInfo{
	CurveP256: {stdlib: elliptic.P256(), ecdh: ecdh.P256, fieldSize: P256GroupSizeBytes},
	CurveP384: {stdlib: elliptic.P384(), ecdh: ecdh.P384, fieldSize: 48},
	CurveP521: {stdlib: elliptic.P521(), ecdh: ecdh.P521, fieldSize: 66},
}

// DerivePublicPoint computes Q = d*G on curve for the private scalar d and
// returns the affine X, Y coordinates as fixed-width big-endian byte slices
// sized to the curve's field. This is the concrete implementation of the
// key package's ECProvider capability (spec §6.4): the key model calls this
// to fill in x/y when only a private scalar was supplied.
func DerivePublicPoint(curve string, privateScalar []byte) (x, y []byte, err error) {
	ci, ok := curveTable[curve]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCurve, curve)
	}
	if len(privateScalar) != ci.fieldSize {
		return nil, nil, fmt.Errorf("%w: scalar length %d, want %d", ErrBadScalar, len(privateScalar), ci.fieldSize)
	}

	priv, err := ci.ecdh().NewPrivateKey(privateScalar)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadScalar, err)
	}

	pub := priv.PublicKey().Bytes()
	// pub is 0x04 || X || Y, uncompressed per SEC 1 §2.3.3.
	coord := ci.fieldSize
	return pub[1 : 1+coord], pub[1+coord : 1+2*coord], nil
}

// Provider is the stateless, default ECProvider: it has no fields and no
// shared state, so callers may use a single Provider{} value, or construct
// one per call — either way it satisfies key.ECProvider.
type Provider struct{}

// DerivePublicPoint implements key.ECProvider by delegating to the
// package-level DerivePublicPoint function.
func (Provider) DerivePublicPoint(curve string, privateScalar []byte) (x, y []byte, err error) {
	return DerivePublicPoint(curve, privateScalar)
}

// PublicKeyFromCompressed decompresses a SEC1 compressed public point
// (0x02/0x03 || X, one field-size coordinate) into the uncompressed form
// (0x04 || X || Y), generalizing the teacher's P-256-only
// P256PublicKeyFromCompressed across all three supported curves.
func PublicKeyFromCompressed(curve string, compressed []byte) ([]byte, error) {
	ci, ok := curveTable[curve]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, curve)
	}
	if len(compressed) != 1+ci.fieldSize {
		return nil, fmt.Errorf("crypto: compressed key must be %d bytes, got %d", 1+ci.fieldSize, len(compressed))
	}

	x, y := elliptic.UnmarshalCompressed(ci.stdlib, compressed)
	if x == nil {
		return nil, errors.New("crypto: failed to decompress public key")
	}

	out := make([]byte, 1+2*ci.fieldSize)
	out[0] = 0x04
	putFixed(out[1:1+ci.fieldSize], x)
	putFixed(out[1+ci.fieldSize:], y)
	return out, nil
}

// ValidatePublicKey checks that an uncompressed public point (0x04 || X ||
// Y) has the right length for curve and lies on it.
func ValidatePublicKey(curve string, publicKey []byte) error {
	ci, ok := curveTable[curve]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCurve, curve)
	}
	if len(publicKey) != 1+2*ci.fieldSize || publicKey[0] != 0x04 {
		return fmt.Errorf("crypto: public key must be %d bytes starting with 0x04", 1+2*ci.fieldSize)
	}

	x := new(big.Int).SetBytes(publicKey[1 : 1+ci.fieldSize])
	y := new(big.Int).SetBytes(publicKey[1+ci.fieldSize:])
	if !ci.stdlib.IsOnCurve(x, y) {
		return errors.New("crypto: public key point is not on the curve")
	}
	return nil
}

func putFixed(dst []byte, v *big.Int) {
	b := v.Bytes()
	copy(dst[len(dst)-len(b):], b)
}
