package sac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractRoundTrip(t *testing.T) {
	t.Parallel()

	a := []int16{-32768, -1, 0, 1, 32767, 1234}
	b := []int16{5, 4, 3, 2, 1, 0}
	buf, err := Encode(a, b, 3, 2, Metadata{Flags: 9, Reserved: 7})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(buf) != HeaderSize+4*len(a) {
		t.Fatalf("buffer size: got %d", len(buf))
	}

	h, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	doc, err := Extract(buf, h)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if doc.Len() != len(a) {
		t.Fatalf("len: got %d want %d", doc.Len(), len(a))
	}
	for i := range a {
		off := HeaderSize + i*2
		wantA := int16(binary.LittleEndian.Uint16(buf[off:]))
		wantB := int16(binary.LittleEndian.Uint16(buf[off+len(a)*2:]))
		if doc.A.At(i) != wantA || doc.A.At(i) != a[i] {
			t.Fatalf("A[%d]: got %d want %d", i, doc.A.At(i), a[i])
		}
		if doc.B.At(i) != wantB || doc.B.At(i) != b[i] {
			t.Fatalf("B[%d]: got %d want %d", i, doc.B.At(i), b[i])
		}
	}
	if doc.Meta != (Metadata{Flags: 9, Reserved: 7}) {
		t.Fatalf("metadata: got %+v", doc.Meta)
	}
	w, hh, ok := doc.Dimensions()
	if !ok || w != 3 || hh != 2 {
		t.Fatalf("dimensions: %d x %d ok=%v", w, hh, ok)
	}
}

func TestExtractIsZeroCopy(t *testing.T) {
	t.Parallel()

	buf, err := Encode([]int16{1, 2}, []int16{3, 4}, 0, 0, Metadata{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	doc, err := Parse(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	binary.LittleEndian.PutUint16(buf[HeaderSize:], uint16(0x7FFF))
	binary.LittleEndian.PutUint16(buf[HeaderSize+4:], uint16(0xFFFF))
	if doc.A.At(0) != 32767 {
		t.Fatalf("A does not alias the buffer: got %d", doc.A.At(0))
	}
	if doc.B.At(0) != -1 {
		t.Fatalf("B does not alias the buffer: got %d", doc.B.At(0))
	}
}

func TestExtractTruncated(t *testing.T) {
	t.Parallel()

	buf, err := Encode([]int16{1, 2, 3, 4}, []int16{1, 2, 3, 4}, 2, 2, Metadata{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	short := buf[:len(buf)-1]
	h, err := DecodeHeader(short)
	if err != nil {
		t.Fatalf("header should still decode: %v", err)
	}
	if _, err := Extract(short, h); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if _, err := Parse(buf[:HeaderSize]); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for header-only buffer, got %v", err)
	}
}

func TestExtractIgnoresTrailingBytes(t *testing.T) {
	t.Parallel()

	buf, err := Encode([]int16{1}, []int16{2}, 1, 1, Metadata{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	padded := append(buf, 0xDE, 0xAD)
	doc, err := Parse(padded)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !bytes.Equal(doc.Bytes(), buf) {
		t.Fatalf("Bytes should exclude trailing data")
	}
}

func TestExtractRevalidatesHeader(t *testing.T) {
	t.Parallel()

	buf, err := Encode([]int16{1, 2}, []int16{3, 4}, 0, 0, Metadata{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	h, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	h.LengthB = 1
	if _, err := Extract(buf, h); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := Encode([]int16{1}, []int16{1, 2}, 0, 0, Metadata{}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := Encode([]int16{1, 2}, []int16{1, 2}, 3, 3, Metadata{}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCloneDetachesFromBuffer(t *testing.T) {
	t.Parallel()

	buf, err := Encode([]int16{10, 20}, []int16{30, 40}, 2, 1, Metadata{Flags: 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	doc, err := Parse(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	clone := doc.Clone()
	for i := range buf {
		buf[i] = 0
	}
	if clone.A.At(1) != 20 || clone.B.At(0) != 30 {
		t.Fatalf("clone changed with source buffer: %v %v", clone.A.Int16s(), clone.B.Int16s())
	}
	if clone.Meta.Flags != 1 {
		t.Fatalf("clone lost metadata")
	}
}

func TestViewHelpers(t *testing.T) {
	t.Parallel()

	doc, err := Build([]int16{3, -7, 12}, []int16{0, 100, -100}, 0, 0, Metadata{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := doc.A.Int16s(); len(got) != 3 || got[1] != -7 {
		t.Fatalf("Int16s: %v", got)
	}
	if got := doc.B.AppendTo([]int16{9}); len(got) != 4 || got[0] != 9 || got[3] != -100 {
		t.Fatalf("AppendTo: %v", got)
	}

	stats := doc.Stats()
	want := Stats{MinA: -7, MaxA: 12, MinB: -100, MaxB: 100}
	if stats != want {
		t.Fatalf("stats: got %+v want %+v", stats, want)
	}

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	if err != nil || n != int64(len(doc.Bytes())) {
		t.Fatalf("WriteTo: n=%d err=%v", n, err)
	}
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	buf, err := Encode([]int16{1, 2, 3, 4}, []int16{4, 3, 2, 1}, 2, 2, Metadata{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "mask.sac")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.Doc.A.At(3) != 4 || f.Doc.B.At(3) != 1 {
		t.Fatalf("unexpected values: %v %v", f.Doc.A.Int16s(), f.Doc.B.Int16s())
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if f.Doc != nil {
		t.Fatalf("document should be released on close")
	}
}

func TestOpenRejectsSmallFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tiny.sac")
	if err := os.WriteFile(path, []byte("SAC1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}
}

func TestOpenReaderAt(t *testing.T) {
	t.Parallel()

	buf, err := Encode([]int16{-5}, []int16{5}, 1, 1, Metadata{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f, err := OpenReaderAt(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		t.Fatalf("open reader at: %v", err)
	}
	defer func() { _ = f.Close() }()
	if f.mmapped {
		t.Fatalf("OpenReaderAt should not mmap")
	}
	if f.Doc.A.At(0) != -5 {
		t.Fatalf("unexpected A: %d", f.Doc.A.At(0))
	}
}
