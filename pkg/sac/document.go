package sac

import (
	"encoding/binary"
	"io"
	"iter"
)

// Int16View is a read-only view of little-endian int16 elements that
// aliases the buffer it was extracted from.
type Int16View struct {
	b []byte
}

// Len returns the number of elements in the view.
func (v Int16View) Len() int {
	return len(v.b) / bytesPerElement
}

// At returns element i. It panics if i is out of range.
func (v Int16View) At(i int) int16 {
	return int16(binary.LittleEndian.Uint16(v.b[i*bytesPerElement:]))
}

// Bytes returns the raw little-endian bytes backing the view.
func (v Int16View) Bytes() []byte {
	return v.b
}

// All yields every element with its index.
func (v Int16View) All() iter.Seq2[int, int16] {
	return func(yield func(int, int16) bool) {
		for i := range v.Len() {
			if !yield(i, v.At(i)) {
				return
			}
		}
	}
}

// AppendTo appends the decoded elements to dst.
func (v Int16View) AppendTo(dst []int16) []int16 {
	dst = append(dst, make([]int16, v.Len())...)
	out := dst[len(dst)-v.Len():]
	for i := range out {
		out[i] = v.At(i)
	}
	return dst
}

// Int16s returns a decoded copy of the view.
func (v Int16View) Int16s() []int16 {
	return v.AppendTo(make([]int16, 0, v.Len()))
}

// Metadata carries the opaque header bytes through to callers.
type Metadata struct {
	Flags    uint8
	Reserved uint8
}

// Document is a parsed SAC v1 buffer.
//
// A and B alias the buffer passed to Extract; the document must not be used
// after that buffer is reused or unmapped. Use Clone to detach it.
type Document struct {
	Header Header
	A      Int16View
	B      Int16View
	Meta   Metadata

	buf []byte
}

// Extract builds a Document from buf using an already-decoded header.
// No array bytes are copied.
func Extract(buf []byte, h Header) (*Document, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	need := h.PayloadSize()
	if uint64(len(buf)) < need {
		return nil, decodeErr(ErrTruncated, "length", len(buf))
	}

	n := int(h.LengthA)
	offA := HeaderSize
	offB := offA + n*bytesPerElement
	end := offB + n*bytesPerElement

	return &Document{
		Header: h,
		A:      Int16View{b: buf[offA:offB:offB]},
		B:      Int16View{b: buf[offB:end:end]},
		Meta:   Metadata{Flags: h.Flags, Reserved: h.Reserved},
		buf:    buf[:end:end],
	}, nil
}

// Parse decodes the header and extracts both arrays from buf.
func Parse(buf []byte) (*Document, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	return Extract(buf, h)
}

// Len returns the element count shared by both arrays.
func (d *Document) Len() int {
	return d.A.Len()
}

// Dimensions reports the raster size declared by the header, if any.
func (d *Document) Dimensions() (width, height uint32, ok bool) {
	return d.Header.Dimensions()
}

// Bytes returns the wire encoding the document was parsed from, trimmed to
// the header and both arrays.
func (d *Document) Bytes() []byte {
	return d.buf
}

// WriteTo writes the wire encoding of the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.buf)
	return int64(n), err
}

// Clone returns a document backed by a private copy of the wire bytes.
func (d *Document) Clone() *Document {
	buf := make([]byte, len(d.buf))
	copy(buf, d.buf)
	out, err := Extract(buf, d.Header)
	if err != nil {
		// d was produced by Extract, so its own bytes always re-extract.
		panic(err)
	}
	return out
}

// Stats summarises the value range of both arrays.
type Stats struct {
	MinA int16 `json:"min_a"`
	MaxA int16 `json:"max_a"`
	MinB int16 `json:"min_b"`
	MaxB int16 `json:"max_b"`
}

// Stats scans both arrays. An empty document reports all zeros.
func (d *Document) Stats() Stats {
	var s Stats
	if d.Len() == 0 {
		return s
	}
	s.MinA, s.MaxA = minMax(d.A)
	s.MinB, s.MaxB = minMax(d.B)
	return s
}

func minMax(v Int16View) (lo, hi int16) {
	lo, hi = v.At(0), v.At(0)
	for _, x := range v.All() {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi
}
