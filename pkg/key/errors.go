package key

import "errors"

var (
	// ErrBadVersion is returned when a SEC1 ECPrivateKey's version field is
	// not 1 (RFC 5915 §3), or a PKCS#8 PrivateKeyInfo's version is not 0
	// (RFC 5208 §5).
	ErrBadVersion = errors.New("key: unexpected DER structure version")

	// ErrUnsupportedAlgorithm is returned when a PKCS#8 PrivateKeyInfo's
	// algorithm OID is not id-ecPublicKey.
	ErrUnsupportedAlgorithm = errors.New("key: unsupported key algorithm")

	// ErrUnknownCurve is returned when a curve OID isn't one of the
	// supported NIST curves, or a coordinate/scalar length doesn't match
	// any of them during curve inference.
	ErrUnknownCurve = errors.New("key: unknown curve")

	// ErrUnsupportedCompression is returned for a raw SEC1 public point
	// using the compressed point formats (0x02/0x03); only the
	// uncompressed form (0x04) is accepted.
	ErrUnsupportedCompression = errors.New("key: compressed public points are not supported")

	// ErrBadFormat is returned for malformed importer input that isn't a
	// DER or curve-OID problem: a raw point with an unrecognized leading
	// byte, an even-length raw point, or a DER substructure missing an
	// expected element.
	ErrBadFormat = errors.New("key: malformed key encoding")

	// ErrMissingField is returned by the asserted aliases (publicKey,
	// privateKey, keyPair) when the underlying field they read is absent.
	ErrMissingField = errors.New("key: required field is missing")

	// ErrBadScalar is surfaced from the EC provider when a private scalar
	// is invalid for its curve (outside [1, n-1]).
	ErrBadScalar = errors.New("key: invalid private scalar")
)
