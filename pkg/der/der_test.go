package der

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecode_Integer(t *testing.T) {
	// INTEGER 1 -> 02 01 01
	node, err := Decode([]byte{0x02, 0x01, 0x01})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if node.Tag != 0x02 || node.IsConstructed() {
		t.Fatalf("unexpected node %+v", node)
	}
	if !bytes.Equal(node.Bytes, []byte{0x01}) {
		t.Fatalf("Bytes = % x", node.Bytes)
	}
}

func TestDecode_SequenceOfTwoIntegers(t *testing.T) {
	// SEQUENCE { INTEGER 1, INTEGER 2 } -> 30 06 02 01 01 02 01 02
	der := []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02}
	node, err := Decode(der)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if node.Tag != 0x30 || !node.IsConstructed() {
		t.Fatalf("expected constructed SEQUENCE, got %+v", node)
	}
	if len(node.Elements) != 2 {
		t.Fatalf("expected 2 children, got %d", len(node.Elements))
	}
	if node.Elements[0].Bytes[0] != 0x01 || node.Elements[1].Bytes[0] != 0x02 {
		t.Fatalf("unexpected child values")
	}
}

func TestDecode_LongFormLength(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 200)
	der := append([]byte{0x04, 0x81, 0xC8}, payload...) // OCTET STRING, long-form length
	node, err := Decode(der)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(node.Bytes, payload) {
		t.Fatalf("long-form length payload mismatch")
	}
}

func TestDecode_ContextConstructed(t *testing.T) {
	// [0] { INTEGER 7 } -> A0 03 02 01 07, as used by SEC1's curve OID wrapper.
	der := []byte{0xA0, 0x03, 0x02, 0x01, 0x07}
	node, err := Decode(der)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if node.TagNumber() != 0 || !node.IsConstructed() {
		t.Fatalf("unexpected node %+v", node)
	}
	if len(node.Elements) != 1 || node.Elements[0].Bytes[0] != 0x07 {
		t.Fatalf("unexpected children %+v", node.Elements)
	}
}

func TestDecode_Truncated(t *testing.T) {
	_, err := Decode([]byte{0x04, 0x05, 0x01, 0x02})
	if !errors.Is(err, ErrBadDer) {
		t.Fatalf("expected ErrBadDer, got %v", err)
	}
}

func TestDecode_TrailingData(t *testing.T) {
	_, err := Decode([]byte{0x02, 0x01, 0x01, 0x00})
	if !errors.Is(err, ErrBadDer) {
		t.Fatalf("expected ErrBadDer for trailing data, got %v", err)
	}
}

func TestDecode_OverlongLength(t *testing.T) {
	// Length claims 0x7F bytes follow, only 1 is present.
	_, err := Decode([]byte{0x04, 0x7F, 0x01})
	if !errors.Is(err, ErrBadDer) {
		t.Fatalf("expected ErrBadDer, got %v", err)
	}
}
