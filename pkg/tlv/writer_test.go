package tlv

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriter_ContainerDepth(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if w.ContainerDepth() != 0 {
		t.Fatalf("initial depth = %d, want 0", w.ContainerDepth())
	}

	starts := []func(Tag) error{w.StartStructure, w.StartArray, w.StartList}
	tags := []Tag{Anonymous(), ContextTag(0), ContextTag(1)}
	for i, start := range starts {
		if err := start(tags[i]); err != nil {
			t.Fatal(err)
		}
		if want := i + 1; w.ContainerDepth() != want {
			t.Errorf("depth after start %d = %d, want %d", i, w.ContainerDepth(), want)
		}
	}
	for i := len(starts) - 1; i >= 0; i-- {
		if err := w.EndContainer(); err != nil {
			t.Fatal(err)
		}
		if w.ContainerDepth() != i {
			t.Errorf("depth after end = %d, want %d", w.ContainerDepth(), i)
		}
	}
}

func TestWriter_ErrNotInContainer(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.EndContainer(); err != ErrNotInContainer {
		t.Errorf("EndContainer() with nothing open = %v, want ErrNotInContainer", err)
	}
}

func TestWriter_ErrInvalidUTF8(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	invalid := string([]byte{0xff, 0xfe, 0xfd})
	if err := w.PutString(Anonymous(), invalid); err != ErrInvalidUTF8 {
		t.Errorf("PutString(invalid UTF-8) = %v, want ErrInvalidUTF8", err)
	}
}

func TestWriter_InvalidWidth(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	cases := []struct {
		name string
		call func() error
	}{
		{"PutIntWithWidth_3", func() error { return w.PutIntWithWidth(Anonymous(), 42, 3) }},
		{"PutIntWithWidth_0", func() error { return w.PutIntWithWidth(Anonymous(), 42, 0) }},
		{"PutUintWithWidth_5", func() error { return w.PutUintWithWidth(Anonymous(), 42, 5) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); err != ErrInvalidElementType {
				t.Errorf("got %v, want ErrInvalidElementType", err)
			}
		})
	}
}

// failAfter is an io.Writer that accepts n bytes total, then fails every
// subsequent Write call, used to exercise the writer's flush-error paths
// at each point in an element's encoding.
type failAfter struct {
	remaining int
}

func (w *failAfter) Write(p []byte) (int, error) {
	if w.remaining <= 0 {
		return 0, errors.New("write failed")
	}
	if len(p) <= w.remaining {
		w.remaining -= len(p)
		return len(p), nil
	}
	n := w.remaining
	w.remaining = 0
	return n, errors.New("write failed")
}

func TestWriter_FlushErrors(t *testing.T) {
	cases := []struct {
		name      string
		remaining int
		call      func(w *Writer) error
	}{
		{"control_byte", 0, func(w *Writer) error { return w.PutInt(Anonymous(), 42) }},
		{"tag_byte", 1, func(w *Writer) error { return w.PutInt(ContextTag(0), 42) }},
		{"value_byte", 2, func(w *Writer) error { return w.PutInt(ContextTag(0), 42) }},
		{"string_length", 1, func(w *Writer) error { return w.PutString(Anonymous(), "hello") }},
		{"string_data", 2, func(w *Writer) error { return w.PutString(Anonymous(), "hello") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter(&failAfter{remaining: tc.remaining})
			if err := tc.call(w); err == nil {
				t.Error("got nil, want an error")
			}
		})
	}

	t.Run("end_container", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.StartStructure(Anonymous()); err != nil {
			t.Fatal(err)
		}
		w.w = &failAfter{remaining: 0}
		if err := w.EndContainer(); err == nil {
			t.Error("got nil, want an error")
		}
	})
}

func TestWriter_AllContainerTypes(t *testing.T) {
	t.Run("structure", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.StartStructure(Anonymous()); err != nil {
			t.Fatalf("StartStructure: %v", err)
		}
		if err := w.PutInt(ContextTag(0), 42); err != nil {
			t.Fatalf("PutInt: %v", err)
		}
		if err := w.EndContainer(); err != nil {
			t.Fatalf("EndContainer: %v", err)
		}
		if got := buf.Bytes()[0]; got != 0x15 {
			t.Errorf("first byte = 0x%02x, want 0x15", got)
		}
	})

	t.Run("array", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.StartArray(Anonymous()); err != nil {
			t.Fatalf("StartArray: %v", err)
		}
		if err := w.PutInt(Anonymous(), 42); err != nil {
			t.Fatalf("PutInt: %v", err)
		}
		if err := w.EndContainer(); err != nil {
			t.Fatalf("EndContainer: %v", err)
		}
		if got := buf.Bytes()[0]; got != 0x16 {
			t.Errorf("first byte = 0x%02x, want 0x16", got)
		}
	})

	t.Run("list", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		if err := w.StartList(Anonymous()); err != nil {
			t.Fatalf("StartList: %v", err)
		}
		if err := w.PutInt(Anonymous(), 42); err != nil {
			t.Fatalf("PutInt: %v", err)
		}
		if err := w.EndContainer(); err != nil {
			t.Fatalf("EndContainer: %v", err)
		}
		if got := buf.Bytes()[0]; got != 0x17 {
			t.Errorf("first byte = 0x%02x, want 0x17", got)
		}
	})
}

func TestWriter_TagEncoding(t *testing.T) {
	cases := []struct {
		name         string
		tag          Tag
		expectedCtrl byte // upper 3 bits of the control byte
		want         []byte
	}{
		{"anonymous", Anonymous(), 0x00, []byte{0x04, 0x2a}},
		{"context_0", ContextTag(0), 0x20, []byte{0x24, 0x00, 0x2a}},
		{"context_255", ContextTag(255), 0x20, []byte{0x24, 0xff, 0x2a}},
		{"common_2byte", CommonProfileTag(1), 0x40, []byte{0x44, 0x01, 0x00, 0x2a}},
		{"common_4byte", CommonProfileTag(100000), 0x60, []byte{0x64, 0xa0, 0x86, 0x01, 0x00, 0x2a}},
		{"implicit_2byte", ImplicitProfileTag(1), 0x80, []byte{0x84, 0x01, 0x00, 0x2a}},
		{"implicit_4byte", ImplicitProfileTag(100000), 0xa0, []byte{0xa4, 0xa0, 0x86, 0x01, 0x00, 0x2a}},
		{"fq_6byte", FullyQualifiedTag(0xFFF1, 0xDEED, 1), 0xc0, []byte{0xc4, 0xf1, 0xff, 0xed, 0xde, 0x01, 0x00, 0x2a}},
		{"fq_8byte", FullyQualifiedTag(0xFFF1, 0xDEED, 0xAA55FEED), 0xe0, []byte{0xe4, 0xf1, 0xff, 0xed, 0xde, 0xed, 0xfe, 0x55, 0xaa, 0x2a}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			if err := w.PutUint(tc.tag, 42); err != nil {
				t.Fatalf("PutUint: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tc.want) {
				t.Errorf("got %x, want %x", buf.Bytes(), tc.want)
			}
			if ctrl := buf.Bytes()[0] & 0xe0; ctrl != tc.expectedCtrl {
				t.Errorf("tag control bits = 0x%02x, want 0x%02x", ctrl, tc.expectedCtrl)
			}
		})
	}
}

func TestWriter_EmptyStrings(t *testing.T) {
	cases := []struct {
		name string
		put  func(w *Writer) error
		want []byte
	}{
		{"empty_utf8", func(w *Writer) error { return w.PutString(Anonymous(), "") }, []byte{0x0c, 0x00}},
		{"nil_bytes", func(w *Writer) error { return w.PutBytes(Anonymous(), nil) }, []byte{0x10, 0x00}},
		{"empty_byte_slice", func(w *Writer) error { return w.PutBytes(Anonymous(), []byte{}) }, []byte{0x10, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			if err := tc.put(w); err != nil {
				t.Fatalf("put: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tc.want) {
				t.Errorf("got %x, want %x", buf.Bytes(), tc.want)
			}
		})
	}
}
