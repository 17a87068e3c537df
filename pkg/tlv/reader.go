package tlv

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/backkem/mattercore/pkg/bytesio"
)

// Reader decodes TLV elements from an io.Reader. It buffers the whole
// stream up front and drives every primitive read off pkg/bytesio, the same
// bounds-checked cursor the writer's counterpart uses.
//
// Internally Next is built from two smaller steps that mirror the decode
// contract directly: readElement, which consumes the control octet and tag
// and leaves the cursor positioned before the value, and readValueOrLength,
// which consumes the value (or, for strings, just the length prefix —
// Reader reads the string body lazily when the caller asks for it).
type Reader struct {
	br             *bytesio.Reader
	readErr        error
	containerStack []ElementType

	hasElement bool
	elemType   ElementType
	tag        Tag
	valueRead  bool // whether the value has been consumed

	valueBuf [8]byte // buffered fixed-size value
	valueLen int

	stringLen uint64 // length of a pending string/bytes value
}

// NewReader creates a new TLV Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	buf, err := io.ReadAll(r)
	return &Reader{br: bytesio.NewReader(buf), readErr: err}
}

// Next advances to the next TLV element, skipping the previous element's
// value if the caller never read it. Returns io.EOF when there are no more
// elements.
func (r *Reader) Next() error {
	if r.readErr != nil {
		err := r.readErr
		r.readErr = nil
		return err
	}

	if r.hasElement && !r.valueRead {
		if err := r.skipValue(); err != nil {
			return err
		}
	}

	if r.br.Len() == 0 {
		return io.EOF
	}

	tag, elemType, err := readElement(r.br)
	if err != nil {
		return err
	}
	r.tag = tag
	r.elemType = elemType

	if err := r.readValueOrLength(); err != nil {
		return err
	}

	r.hasElement = true
	r.valueRead = false
	return nil
}

// readElement reads a control octet and tag, rejecting types and tag forms
// the decoder does not support. It leaves the cursor positioned right
// before the element's value.
func readElement(br *bytesio.Reader) (Tag, ElementType, error) {
	ctrlByte, err := br.Uint8()
	if err != nil {
		return Tag{}, 0, ErrUnexpectedEOF
	}

	elemType, tagCtrl := ParseControlOctet(ctrlByte)
	if elemType > ElementTypeEnd {
		return Tag{}, 0, ErrInvalidElementType
	}
	if tagCtrl == TagControlImplicitProfile2 || tagCtrl == TagControlImplicitProfile4 {
		return Tag{}, 0, ErrUnsupportedProfile
	}

	tag, err := ReadTag(br, tagCtrl)
	if err != nil {
		return Tag{}, 0, ErrUnexpectedEOF
	}
	return tag, elemType, nil
}

// readValueOrLength reads the value for fixed-size types, or the length
// prefix for strings (the string body itself is read lazily by String/Bytes).
func (r *Reader) readValueOrLength() error {
	switch {
	case r.elemType.IsInt() || r.elemType.IsFloat():
		r.valueLen = r.elemType.ValueSize()
		if r.valueLen > 0 {
			b, err := r.br.Bytes(r.valueLen)
			if err != nil {
				return ErrUnexpectedEOF
			}
			copy(r.valueBuf[:r.valueLen], b)
		}

	case r.elemType.IsString():
		lenSize := r.elemType.LengthFieldSize()
		var n uint64
		var err error
		switch lenSize {
		case 1:
			var v uint8
			v, err = r.br.Uint8()
			n = uint64(v)
		case 2:
			var v uint16
			v, err = r.br.Uint16()
			n = uint64(v)
		case 4:
			var v uint32
			v, err = r.br.Uint32()
			n = uint64(v)
		case 8:
			n, err = r.br.Uint64()
		}
		if err != nil {
			return ErrUnexpectedEOF
		}
		r.stringLen = n

	default:
		r.valueLen = 0
		r.stringLen = 0
	}

	return nil
}

// Type returns the type of the current element.
func (r *Reader) Type() ElementType {
	return r.elemType
}

// Tag returns the tag of the current element.
func (r *Reader) Tag() Tag {
	return r.tag
}

// HasElement returns true if there is a current element.
func (r *Reader) HasElement() bool {
	return r.hasElement
}

// Int returns the current element as a signed integer.
func (r *Reader) Int() (int64, error) {
	if !r.hasElement {
		return 0, ErrNoElement
	}
	if r.valueRead {
		return 0, ErrValueAlreadyRead
	}
	if !r.elemType.IsSignedInt() {
		return 0, ErrTypeMismatch
	}

	r.valueRead = true

	switch r.elemType {
	case ElementTypeInt8:
		return int64(int8(r.valueBuf[0])), nil
	case ElementTypeInt16:
		return int64(int16(binary.LittleEndian.Uint16(r.valueBuf[:2]))), nil
	case ElementTypeInt32:
		return int64(int32(binary.LittleEndian.Uint32(r.valueBuf[:4]))), nil
	case ElementTypeInt64:
		return int64(binary.LittleEndian.Uint64(r.valueBuf[:8])), nil
	}
	return 0, ErrTypeMismatch
}

// Uint returns the current element as an unsigned integer.
func (r *Reader) Uint() (uint64, error) {
	if !r.hasElement {
		return 0, ErrNoElement
	}
	if r.valueRead {
		return 0, ErrValueAlreadyRead
	}
	if !r.elemType.IsUnsignedInt() {
		return 0, ErrTypeMismatch
	}

	r.valueRead = true

	switch r.elemType {
	case ElementTypeUInt8:
		return uint64(r.valueBuf[0]), nil
	case ElementTypeUInt16:
		return uint64(binary.LittleEndian.Uint16(r.valueBuf[:2])), nil
	case ElementTypeUInt32:
		return uint64(binary.LittleEndian.Uint32(r.valueBuf[:4])), nil
	case ElementTypeUInt64:
		return binary.LittleEndian.Uint64(r.valueBuf[:8]), nil
	}
	return 0, ErrTypeMismatch
}

// Bool returns the current element as a boolean.
func (r *Reader) Bool() (bool, error) {
	if !r.hasElement {
		return false, ErrNoElement
	}
	if r.valueRead {
		return false, ErrValueAlreadyRead
	}
	if !r.elemType.IsBool() {
		return false, ErrTypeMismatch
	}

	r.valueRead = true
	return r.elemType == ElementTypeTrue, nil
}

// Float32 returns the current element as a 32-bit float.
func (r *Reader) Float32() (float32, error) {
	if !r.hasElement {
		return 0, ErrNoElement
	}
	if r.valueRead {
		return 0, ErrValueAlreadyRead
	}
	if r.elemType != ElementTypeFloat32 {
		return 0, ErrTypeMismatch
	}

	r.valueRead = true
	return math.Float32frombits(binary.LittleEndian.Uint32(r.valueBuf[:4])), nil
}

// Float64 returns the current element as a 64-bit float.
func (r *Reader) Float64() (float64, error) {
	if !r.hasElement {
		return 0, ErrNoElement
	}
	if r.valueRead {
		return 0, ErrValueAlreadyRead
	}
	if r.elemType != ElementTypeFloat64 {
		return 0, ErrTypeMismatch
	}

	r.valueRead = true
	return math.Float64frombits(binary.LittleEndian.Uint64(r.valueBuf[:8])), nil
}

// String returns the current element as a UTF-8 string.
func (r *Reader) String() (string, error) {
	if !r.hasElement {
		return "", ErrNoElement
	}
	if r.valueRead {
		return "", ErrValueAlreadyRead
	}
	if !r.elemType.IsUTF8String() {
		return "", ErrTypeMismatch
	}

	r.valueRead = true
	if r.stringLen == 0 {
		return "", nil
	}

	s, err := r.br.String(int(r.stringLen))
	if err != nil {
		if err == bytesio.ErrBadEncoding {
			return "", ErrInvalidUTF8
		}
		return "", ErrUnexpectedEOF
	}
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}
	return s, nil
}

// Bytes returns the current element as a byte slice.
func (r *Reader) Bytes() ([]byte, error) {
	if !r.hasElement {
		return nil, ErrNoElement
	}
	if r.valueRead {
		return nil, ErrValueAlreadyRead
	}
	if !r.elemType.IsBytes() {
		return nil, ErrTypeMismatch
	}

	r.valueRead = true
	if r.stringLen == 0 {
		return nil, nil
	}

	b, err := r.br.Bytes(int(r.stringLen))
	if err != nil {
		return nil, ErrUnexpectedEOF
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Null verifies the current element is a null value.
func (r *Reader) Null() error {
	if !r.hasElement {
		return ErrNoElement
	}
	if r.valueRead {
		return ErrValueAlreadyRead
	}
	if r.elemType != ElementTypeNull {
		return ErrTypeMismatch
	}

	r.valueRead = true
	return nil
}

// EnterContainer enters the current container element, which must be a
// structure, array, or list.
func (r *Reader) EnterContainer() error {
	if !r.hasElement {
		return ErrNoElement
	}
	if !r.elemType.IsContainer() {
		return ErrTypeMismatch
	}

	r.containerStack = append(r.containerStack, r.elemType)
	r.hasElement = false
	r.valueRead = true
	return nil
}

// ExitContainer exits the current container, reading and discarding any
// remaining elements until its end-of-container marker.
func (r *Reader) ExitContainer() error {
	if len(r.containerStack) == 0 {
		return ErrNotInContainer
	}

	if r.hasElement && r.elemType == ElementTypeEnd {
		r.containerStack = r.containerStack[:len(r.containerStack)-1]
		r.hasElement = false
		return nil
	}

	depth := 1
	if r.hasElement && r.elemType.IsContainer() {
		// The current element is a nested container that was never entered;
		// its own end marker has to be consumed as well.
		depth++
	}
	for depth > 0 {
		if err := r.Next(); err != nil {
			return err
		}
		if r.elemType == ElementTypeEnd {
			depth--
		} else if r.elemType.IsContainer() {
			depth++
		}
	}

	r.containerStack = r.containerStack[:len(r.containerStack)-1]
	r.hasElement = false
	return nil
}

// ContainerDepth returns the current container nesting depth.
func (r *Reader) ContainerDepth() int {
	return len(r.containerStack)
}

// IsEndOfContainer returns true if the current element is an
// end-of-container marker.
func (r *Reader) IsEndOfContainer() bool {
	return r.hasElement && r.elemType == ElementTypeEnd
}

// Skip skips the current element, descending into it first if it's a
// container.
func (r *Reader) Skip() error {
	if !r.hasElement {
		return ErrNoElement
	}

	if r.elemType.IsContainer() {
		if err := r.EnterContainer(); err != nil {
			return err
		}
		return r.ExitContainer()
	}

	return r.skipValue()
}

// skipValue discards the value of the current element if not yet read.
func (r *Reader) skipValue() error {
	if r.valueRead {
		return nil
	}
	r.valueRead = true

	if r.elemType.IsString() && r.stringLen > 0 {
		if _, err := r.br.Bytes(int(r.stringLen)); err != nil {
			return ErrUnexpectedEOF
		}
	}
	return nil
}

// RawBytes reads the current element as raw TLV bytes: control octet, tag,
// and value. The result can be passed to Writer.PutRaw to re-encode the same
// element under a different tag.
func (r *Reader) RawBytes() ([]byte, error) {
	if !r.hasElement {
		return nil, ErrNoElement
	}

	bw := bytesio.NewWriter()
	bw.WriteUint8(BuildControlOctet(r.elemType, r.tag.Control()))
	r.tag.WriteTo(bw)

	switch {
	case r.elemType.IsContainer():
		if err := r.EnterContainer(); err != nil {
			return nil, err
		}
		for {
			if err := r.Next(); err != nil {
				if err == io.EOF {
					break
				}
				return nil, err
			}
			if r.IsEndOfContainer() {
				break
			}
			nested, err := r.RawBytes()
			if err != nil {
				return nil, err
			}
			bw.WriteBytes(nested)
		}
		if err := r.ExitContainer(); err != nil {
			return nil, err
		}
		bw.WriteUint8(byte(ElementTypeEnd))

	case r.elemType.IsString():
		writeLengthField(bw, r.stringLen, r.elemType.LengthFieldSize())
		if r.stringLen > 0 {
			data, err := r.br.Bytes(int(r.stringLen))
			if err != nil {
				return nil, ErrUnexpectedEOF
			}
			bw.WriteBytes(data)
		}
		r.valueRead = true

	default:
		bw.WriteBytes(r.valueBuf[:r.valueLen])
		r.valueRead = true
	}

	return bw.Bytes(), nil
}

func writeLengthField(w *bytesio.Writer, length uint64, fieldSize int) {
	switch fieldSize {
	case 1:
		w.WriteUint8(uint8(length))
	case 2:
		w.WriteUint16(uint16(length))
	case 4:
		w.WriteUint32(uint32(length))
	case 8:
		w.WriteUint64(length)
	}
}
