// Package base64url implements the unpadded, URL-safe base64 alphabet used
// by JWK string fields (RFC 7515 Appendix C).
package base64url

import "encoding/base64"

// Encode returns the unpadded base64url encoding of b.
func Encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode decodes a base64url string, tolerating both padded and unpadded
// input (RFC 7515 Appendix C notes implementations commonly omit padding,
// but does not forbid it on the wire).
func Decode(s string) ([]byte, error) {
	if n := len(s) % 4; n != 0 {
		return base64.RawURLEncoding.DecodeString(s)
	}
	if b, err := base64.URLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}
