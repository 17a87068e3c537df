package tlv

import (
	"io"
	"math"
	"unicode/utf8"

	"github.com/backkem/mattercore/pkg/bytesio"
)

// Writer encodes TLV elements to an io.Writer. Every element is assembled
// in an internal bytesio.Writer buffer, then flushed to the underlying
// writer once it's complete.
type Writer struct {
	w              io.Writer
	bw             *bytesio.Writer
	flushed        int
	containerStack []ElementType
}

// NewWriter creates a new TLV Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, bw: bytesio.NewWriter()}
}

func (w *Writer) flush() error {
	buf := w.bw.Bytes()
	if w.flushed < len(buf) {
		if _, err := w.w.Write(buf[w.flushed:]); err != nil {
			return err
		}
		w.flushed = len(buf)
	}
	return nil
}

func (w *Writer) writeControlAndTag(elemType ElementType, tag Tag) {
	w.bw.WriteUint8(BuildControlOctet(elemType, tag.Control()))
	tag.WriteTo(w.bw)
}

// PutInt writes a signed integer with the given tag, choosing the minimum
// width needed to encode the value.
func (w *Writer) PutInt(tag Tag, v int64) error {
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return w.PutIntWithWidth(tag, v, 1)
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return w.PutIntWithWidth(tag, v, 2)
	case v >= math.MinInt32 && v <= math.MaxInt32:
		return w.PutIntWithWidth(tag, v, 4)
	default:
		return w.PutIntWithWidth(tag, v, 8)
	}
}

// PutIntWithWidth writes a signed integer with an explicit width (1, 2, 4,
// or 8 bytes), failing with ErrOverflow if v does not fit.
func (w *Writer) PutIntWithWidth(tag Tag, v int64, width int) error {
	switch width {
	case 1:
		if v < math.MinInt8 || v > math.MaxInt8 {
			return ErrOverflow
		}
		w.writeControlAndTag(ElementTypeInt8, tag)
		w.bw.WriteInt8(int8(v))
	case 2:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return ErrOverflow
		}
		w.writeControlAndTag(ElementTypeInt16, tag)
		w.bw.WriteInt16(int16(v))
	case 4:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return ErrOverflow
		}
		w.writeControlAndTag(ElementTypeInt32, tag)
		w.bw.WriteInt32(int32(v))
	case 8:
		w.writeControlAndTag(ElementTypeInt64, tag)
		w.bw.WriteInt64(v)
	default:
		return ErrInvalidElementType
	}
	return w.flush()
}

// PutUint writes an unsigned integer with the given tag, choosing the
// minimum width needed to encode the value.
func (w *Writer) PutUint(tag Tag, v uint64) error {
	switch {
	case v <= math.MaxUint8:
		return w.PutUintWithWidth(tag, v, 1)
	case v <= math.MaxUint16:
		return w.PutUintWithWidth(tag, v, 2)
	case v <= math.MaxUint32:
		return w.PutUintWithWidth(tag, v, 4)
	default:
		return w.PutUintWithWidth(tag, v, 8)
	}
}

// PutUintWithWidth writes an unsigned integer with an explicit width (1, 2,
// 4, or 8 bytes), failing with ErrOverflow if v does not fit.
func (w *Writer) PutUintWithWidth(tag Tag, v uint64, width int) error {
	switch width {
	case 1:
		if v > math.MaxUint8 {
			return ErrOverflow
		}
		w.writeControlAndTag(ElementTypeUInt8, tag)
		w.bw.WriteUint8(uint8(v))
	case 2:
		if v > math.MaxUint16 {
			return ErrOverflow
		}
		w.writeControlAndTag(ElementTypeUInt16, tag)
		w.bw.WriteUint16(uint16(v))
	case 4:
		if v > math.MaxUint32 {
			return ErrOverflow
		}
		w.writeControlAndTag(ElementTypeUInt32, tag)
		w.bw.WriteUint32(uint32(v))
	case 8:
		w.writeControlAndTag(ElementTypeUInt64, tag)
		w.bw.WriteUint64(v)
	default:
		return ErrInvalidElementType
	}
	return w.flush()
}

// PutBool writes a boolean with the given tag.
func (w *Writer) PutBool(tag Tag, v bool) error {
	elemType := ElementTypeFalse
	if v {
		elemType = ElementTypeTrue
	}
	w.writeControlAndTag(elemType, tag)
	return w.flush()
}

// PutFloat32 writes a 32-bit floating point number with the given tag.
func (w *Writer) PutFloat32(tag Tag, v float32) error {
	w.writeControlAndTag(ElementTypeFloat32, tag)
	w.bw.WriteFloat32(v)
	return w.flush()
}

// PutFloat64 writes a 64-bit floating point number with the given tag.
func (w *Writer) PutFloat64(tag Tag, v float64) error {
	w.writeControlAndTag(ElementTypeFloat64, tag)
	w.bw.WriteFloat64(v)
	return w.flush()
}

// PutString writes a UTF-8 string with the given tag. Returns ErrInvalidUTF8
// if the string is not valid UTF-8.
func (w *Writer) PutString(tag Tag, v string) error {
	if !utf8.ValidString(v) {
		return ErrInvalidUTF8
	}
	return w.writeStringValue(true, tag, []byte(v))
}

// PutBytes writes an octet string with the given tag.
func (w *Writer) PutBytes(tag Tag, v []byte) error {
	return w.writeStringValue(false, tag, v)
}

// PutRaw writes raw TLV bytes (as returned by Reader.RawBytes) under the
// given tag, replacing whatever tag they were originally encoded with. This
// is how a value is re-tagged when it's moved into a new container without
// re-interpreting its payload.
func (w *Writer) PutRaw(tag Tag, rawTLV []byte) error {
	if len(rawTLV) == 0 {
		return nil
	}

	ctrlByte := rawTLV[0]
	elemType := ElementType(ctrlByte & elementTypeMask)
	origTagCtrl := TagControl((ctrlByte & tagControlMask) >> tagControlShift)

	w.writeControlAndTag(elemType, tag)

	skip := 1 + origTagCtrl.Size()
	if skip < len(rawTLV) {
		w.bw.WriteBytes(rawTLV[skip:])
	}
	return w.flush()
}

// PutNull writes a null value with the given tag.
func (w *Writer) PutNull(tag Tag) error {
	w.writeControlAndTag(ElementTypeNull, tag)
	return w.flush()
}

// StartStructure opens a structure container under the given tag. Elements
// written until the matching EndContainer must all carry context tags (or
// be anonymous at the top level).
func (w *Writer) StartStructure(tag Tag) error {
	w.writeControlAndTag(ElementTypeStruct, tag)
	w.containerStack = append(w.containerStack, ElementTypeStruct)
	return w.flush()
}

// StartArray opens an array container under the given tag. Elements written
// until the matching EndContainer must all be anonymous.
func (w *Writer) StartArray(tag Tag) error {
	w.writeControlAndTag(ElementTypeArray, tag)
	w.containerStack = append(w.containerStack, ElementTypeArray)
	return w.flush()
}

// StartList opens a list container under the given tag.
func (w *Writer) StartList(tag Tag) error {
	w.writeControlAndTag(ElementTypeList, tag)
	w.containerStack = append(w.containerStack, ElementTypeList)
	return w.flush()
}

// EndContainer closes the innermost open container.
func (w *Writer) EndContainer() error {
	if len(w.containerStack) == 0 {
		return ErrNotInContainer
	}
	w.containerStack = w.containerStack[:len(w.containerStack)-1]
	w.bw.WriteUint8(byte(ElementTypeEnd))
	return w.flush()
}

// ContainerDepth returns the current container nesting depth.
func (w *Writer) ContainerDepth() int {
	return len(w.containerStack)
}

func (w *Writer) writeStringValue(isUTF8 bool, tag Tag, data []byte) error {
	length := uint64(len(data))

	var elemType ElementType
	switch {
	case length <= math.MaxUint8:
		if isUTF8 {
			elemType = ElementTypeUTF8_1
		} else {
			elemType = ElementTypeBytes1
		}
		w.writeControlAndTag(elemType, tag)
		w.bw.WriteUint8(uint8(length))
	case length <= math.MaxUint16:
		if isUTF8 {
			elemType = ElementTypeUTF8_2
		} else {
			elemType = ElementTypeBytes2
		}
		w.writeControlAndTag(elemType, tag)
		w.bw.WriteUint16(uint16(length))
	case length <= math.MaxUint32:
		if isUTF8 {
			elemType = ElementTypeUTF8_4
		} else {
			elemType = ElementTypeBytes4
		}
		w.writeControlAndTag(elemType, tag)
		w.bw.WriteUint32(uint32(length))
	default:
		if isUTF8 {
			elemType = ElementTypeUTF8_8
		} else {
			elemType = ElementTypeBytes8
		}
		w.writeControlAndTag(elemType, tag)
		w.bw.WriteUint64(length)
	}

	w.bw.WriteBytes(data)
	return w.flush()
}
