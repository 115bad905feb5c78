package sac

import (
	"encoding/binary"
	"errors"
	"testing"
)

func validHeaderBytes(n, width, height uint32) []byte {
	buf := make([]byte, HeaderSize)
	if err := EncodeHeader(buf, NewHeader(n, width, height)); err != nil {
		panic(err)
	}
	return buf
}

func TestHeaderEncodingLittleEndian(t *testing.T) {
	t.Parallel()

	h := NewHeader(0x01020304, 0, 0)
	h.Flags = 0xAA
	h.Reserved = 0x55
	buf := make([]byte, HeaderSize)
	if err := EncodeHeader(buf, h); err != nil {
		t.Fatalf("encode header: %v", err)
	}
	if string(buf[0:4]) != "SAC1" {
		t.Fatalf("magic: got %q", buf[0:4])
	}
	if buf[4] != 0xAA || buf[5] != 1 || buf[6] != 2 || buf[7] != 0x55 {
		t.Fatalf("byte fields: got %x", buf[4:8])
	}
	if buf[8] != 0x04 || buf[11] != 0x01 {
		t.Fatalf("lengthA is not little-endian: %x", buf[8:12])
	}

	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if got != h {
		t.Fatalf("header mismatch: got %+v want %+v", got, h)
	}
}

func TestDecodeHeaderRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  func() []byte
		want error
	}{
		{"too small", func() []byte { return validHeaderBytes(0, 0, 0)[:HeaderSize-1] }, ErrTooSmall},
		{"empty", func() []byte { return nil }, ErrTooSmall},
		{"bad magic", func() []byte {
			b := validHeaderBytes(4, 2, 2)
			b[0] = 'X'
			return b
		}, ErrBadMagic},
		{"data type", func() []byte {
			b := validHeaderBytes(4, 2, 2)
			b[5] = 2
			return b
		}, ErrUnsupportedDataType},
		{"array count", func() []byte {
			b := validHeaderBytes(4, 2, 2)
			b[6] = 3
			return b
		}, ErrUnsupportedArrayCount},
		{"length mismatch", func() []byte {
			b := validHeaderBytes(4, 0, 0)
			binary.LittleEndian.PutUint32(b[12:], 5)
			return b
		}, ErrLengthMismatch},
		{"dimension mismatch", func() []byte { return validHeaderBytes(4, 3, 2) }, ErrDimensionMismatch},
	}

	all := []error{
		ErrTooSmall, ErrBadMagic, ErrUnsupportedDataType, ErrUnsupportedArrayCount,
		ErrLengthMismatch, ErrDimensionMismatch, ErrTruncated,
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeHeader(tc.buf())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			for _, other := range all {
				if other != tc.want && errors.Is(err, other) {
					t.Fatalf("error %v also matches %v", err, other)
				}
			}
			if !IsDecodeError(err) {
				t.Fatalf("expected a DecodeError, got %T", err)
			}
		})
	}
}

func TestDecodeHeaderBadMagicReportsValue(t *testing.T) {
	t.Parallel()

	b := validHeaderBytes(4, 2, 2)
	copy(b, "XAC1")
	_, err := DecodeHeader(b)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Field != "magic" || de.Value != `"XAC1"` {
		t.Fatalf("unexpected field/value: %s=%v", de.Field, de.Value)
	}
}

func TestDecodeHeaderDimensionsOptional(t *testing.T) {
	t.Parallel()

	for _, dims := range [][2]uint32{{0, 0}, {7, 0}, {0, 7}} {
		h, err := DecodeHeader(validHeaderBytes(4, dims[0], dims[1]))
		if err != nil {
			t.Fatalf("dims %v: %v", dims, err)
		}
		if _, _, ok := h.Dimensions(); ok {
			t.Fatalf("dims %v: expected unspecified dimensions", dims)
		}
	}

	h, err := DecodeHeader(validHeaderBytes(6, 3, 2))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, hh, ok := h.Dimensions()
	if !ok || w != 3 || hh != 2 {
		t.Fatalf("dimensions: got %d x %d ok=%v", w, hh, ok)
	}
}

func TestDimensionProductDoesNotOverflow(t *testing.T) {
	t.Parallel()

	// 65536*65536 wraps to 0 in uint32 arithmetic.
	_, err := DecodeHeader(validHeaderBytes(0, 1<<16, 1<<16))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestPayloadSize(t *testing.T) {
	t.Parallel()

	if got := NewHeader(4, 0, 0).PayloadSize(); got != 40 {
		t.Fatalf("payload size: got %d want 40", got)
	}
	if got := NewHeader(^uint32(0), 0, 0).PayloadSize(); got != 24+4*uint64(^uint32(0)) {
		t.Fatalf("payload size overflowed: %d", got)
	}
}

func TestEncodeHeaderShortBuffer(t *testing.T) {
	t.Parallel()

	if err := EncodeHeader(make([]byte, 10), NewHeader(1, 0, 0)); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}
}
