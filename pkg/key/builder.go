package key

import (
	"errors"
	"fmt"
)

// ECProvider is the injected capability the key model calls out to in order
// to derive a public point from a private scalar (spec §6.4, §9 "Implicit
// global EC provider -> injected capability"). pkg/crypto's Provider is the
// concrete NIST-curve implementation; callers may substitute any other type
// satisfying this interface (e.g. an HSM-backed one) without this package
// knowing the difference.
type ECProvider interface {
	// DerivePublicPoint computes Q = d*G on curve for privateScalar and
	// returns the affine X, Y coordinates as fixed-width big-endian byte
	// slices sized to curve's field. New reports any error returned here
	// as ErrBadScalar (wrapping it unless it already matches errors.Is).
	DerivePublicPoint(curve string, privateScalar []byte) (x, y []byte, err error)
}

// Spec is the typed builder for Key construction (spec §4.E, §9 "duck-typed
// partial input -> typed builder"). Every field is optional; New applies
// them in the fixed order spec §4.E lays out. Exactly one of the Import*
// fields should be set per call — if more than one is set, they are applied
// in the order {SEC1, PKCS#8, SPKI, RawPoint, Pair}, each overwriting fields
// the previous one wrote.
type Spec struct {
	// Base JWK fields, copied verbatim (step 1).
	Kty string
	Crv string
	D, X, Y, K string
	Alg        string
	KeyOps     []string
	Ext        *bool

	// Human aliases (step 2). Present for parity with the source's
	// duck-typed input; in practice callers can just set the base fields
	// above directly, since at this layer the aliases write to the exact
	// same fields.
	Type        string
	Curve       string
	Algorithm   string
	Operations  []string
	Private     string
	Extractable *bool

	// Binary aliases (step 3): base64url-encoded into the base string
	// fields on apply.
	PrivateBits []byte
	XBits       []byte
	YBits       []byte
	SymmetricBits []byte

	// Tagged import variants (step 4), applied in this fixed order
	// regardless of struct field order (spec §4.E step 4).
	ImportSec1     []byte
	ImportPkcs8    []byte
	ImportSpki     []byte
	ImportRawPoint []byte
	ImportPair     *Pair
}

// Pair is the "paired binary" import variant (spec §4.E importers list):
// raw public/private key bytes supplied together, written straight into
// the publicKey/privateKey binary aliases.
type Pair struct {
	Public  []byte
	Private []byte
}

// New constructs a Key from spec, applying the processing order spec §4.E
// mandates: base fields, human aliases, binary aliases, importers (in fixed
// order), asserted aliases, curve inference, then public-point derivation
// via provider when only a private scalar was supplied. provider may be nil
// if spec can never reach step 7 (e.g. oct keys, or EC keys that already
// carry both x and y); New only calls it when it's actually needed, and
// returns an error if it's required but absent.
func New(spec Spec, provider ECProvider) (*Key, error) {
	k := &Key{}

	// Step 1: base fields verbatim.
	k.Kty = spec.Kty
	k.Crv = spec.Crv
	k.D, k.X, k.Y, k.K = spec.D, spec.X, spec.Y, spec.K
	k.Alg = spec.Alg
	k.KeyOps = spec.KeyOps
	k.Ext = spec.Ext

	// Step 2: human aliases, write-through to the same base fields.
	if spec.Type != "" {
		k.SetType(spec.Type)
	}
	if spec.Curve != "" {
		k.SetCurve(spec.Curve)
	}
	if spec.Algorithm != "" {
		k.SetAlgorithm(spec.Algorithm)
	}
	if spec.Operations != nil {
		k.SetOperations(spec.Operations)
	}
	if spec.Private != "" {
		k.SetPrivate(spec.Private)
	}
	if spec.Extractable != nil {
		k.SetExtractable(*spec.Extractable)
	}

	// Step 3: binary aliases, base64url-encoded into the base fields.
	if spec.PrivateBits != nil {
		k.SetPrivateBits(spec.PrivateBits)
	}
	if spec.XBits != nil {
		k.SetXBits(spec.XBits)
	}
	if spec.YBits != nil {
		k.SetYBits(spec.YBits)
	}
	if spec.SymmetricBits != nil {
		k.SetSymmetricBits(spec.SymmetricBits)
	}

	// Step 4: importers, in the fixed order {SEC1, PKCS#8, SPKI, rawPoint,
	// pairedBinary}, each one writing derived base fields when its input is
	// present.
	if spec.ImportSec1 != nil {
		curve, scalar, err := importSec1(spec.ImportSec1)
		if err != nil {
			return nil, err
		}
		k.SetType(KtyEC)
		if curve != "" {
			k.SetCurve(curve)
		}
		k.SetPrivateBits(scalar)
	}
	if spec.ImportPkcs8 != nil {
		curve, scalar, err := importPkcs8(spec.ImportPkcs8)
		if err != nil {
			return nil, err
		}
		k.SetType(KtyEC)
		k.SetCurve(curve)
		k.SetPrivateBits(scalar)
	}
	if spec.ImportSpki != nil {
		curve, x, y, err := importSpki(spec.ImportSpki)
		if err != nil {
			return nil, err
		}
		k.SetType(KtyEC)
		k.SetCurve(curve)
		k.SetXBits(x)
		k.SetYBits(y)
	}
	if spec.ImportRawPoint != nil {
		curve, x, y, err := importRawPoint(spec.ImportRawPoint)
		if err != nil {
			return nil, err
		}
		k.SetType(KtyEC)
		k.SetCurve(curve)
		k.SetXBits(x)
		k.SetYBits(y)
	}
	if spec.ImportPair != nil {
		if spec.ImportPair.Private != nil {
			k.SetPrivateKeyBits(spec.ImportPair.Private)
		}
		if spec.ImportPair.Public != nil {
			if err := k.SetPublicKey(spec.ImportPair.Public); err != nil {
				return nil, err
			}
		}
	}

	// Step 5: asserted aliases never write on construction when their
	// target is already set; Spec has no asserted-alias input fields (they
	// are read-only views per spec §3.3), so there is nothing to apply
	// here beyond what steps 1-4 already wrote.

	// Step 6: curve inference for EC keys missing "crv".
	if k.Kty == KtyEC && k.Crv == "" {
		if k.D != "" {
			d, err := k.PrivateBits()
			if err != nil {
				return nil, err
			}
			curve, err := curveByCoordLen(len(d))
			if err != nil {
				return nil, err
			}
			k.SetCurve(curve)
		} else if k.X != "" {
			x, err := k.XBits()
			if err != nil {
				return nil, err
			}
			curve, err := curveByCoordLen(len(x))
			if err != nil {
				return nil, err
			}
			k.SetCurve(curve)
		}
	}

	// Step 7: derive the public point from the private scalar when only
	// "d" was supplied.
	if k.Kty == KtyEC && k.D != "" && (k.X == "" || k.Y == "") {
		if provider == nil {
			return nil, ErrMissingField
		}
		if _, ok := curveFieldSizes[k.Crv]; !ok {
			return nil, ErrUnknownCurve
		}
		d, err := k.PrivateBits()
		if err != nil {
			return nil, err
		}
		x, y, err := provider.DerivePublicPoint(k.Crv, d)
		if err != nil {
			if !errors.Is(err, ErrBadScalar) {
				err = fmt.Errorf("%w: %v", ErrBadScalar, err)
			}
			return nil, err
		}
		k.SetXBits(x)
		k.SetYBits(y)
	}

	return k, nil
}

// KeyOptions carries the optional, non-key-material fields the factory
// variants (PrivateKey/PublicKey/SymmetricKey) accept alongside their
// primary input (spec §4.E "Factory variants").
type KeyOptions struct {
	Curve       string
	Algorithm   string
	Operations  []string
	Extractable *bool
}

func (o KeyOptions) apply(s *Spec) {
	s.Curve = o.Curve
	s.Algorithm = o.Algorithm
	s.Operations = o.Operations
	s.Extractable = o.Extractable
}

// PrivateKey builds an EC key from a private scalar alone, or from a
// (private, public) pair, per spec §4.E's PrivateKey factory variant. When
// pub is nil, provider derives the public point from priv; when pub is
// supplied, it's used as-is.
func PrivateKey(priv, pub []byte, opts KeyOptions, provider ECProvider) (*Key, error) {
	spec := Spec{Kty: KtyEC}
	opts.apply(&spec)
	if pub != nil {
		spec.ImportPair = &Pair{Private: priv, Public: pub}
	} else {
		spec.PrivateBits = priv
	}
	return New(spec, provider)
}

// PublicKey builds an EC key from a raw uncompressed SEC1 public point,
// per spec §4.E's PublicKey factory variant.
func PublicKey(rawPoint []byte, opts KeyOptions) (*Key, error) {
	spec := Spec{Kty: KtyEC, ImportRawPoint: rawPoint}
	opts.apply(&spec)
	return New(spec, nil)
}

// SymmetricKey builds an "oct" key from raw symmetric key bytes, per spec
// §4.E's SymmetricKey factory variant (sets "k" via the privateKey binary
// alias).
func SymmetricKey(raw []byte, opts KeyOptions) (*Key, error) {
	spec := Spec{Kty: KtyOct, SymmetricBits: raw}
	opts.apply(&spec)
	return New(spec, nil)
}
