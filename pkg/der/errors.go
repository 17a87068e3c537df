package der

import "errors"

// ErrBadDer is returned for malformed DER: overlong lengths, truncated
// input, indefinite-length (BER-only) encodings, or a constructed element
// whose content does not itself decode as valid nested DER.
var ErrBadDer = errors.New("der: malformed encoding")
