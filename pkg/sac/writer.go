package sac

import (
	"encoding/binary"
	"math"
)

// Encode produces the wire encoding of two equal-length arrays. Width and
// height may be zero to leave the dimensions unspecified.
func Encode(a, b []int16, width, height uint32, meta Metadata) ([]byte, error) {
	if len(a) != len(b) {
		return nil, decodeErr(ErrLengthMismatch, "lengthB", len(b))
	}
	if uint64(len(a)) > math.MaxUint32 {
		return nil, decodeErr(ErrLengthMismatch, "lengthA", len(a))
	}

	h := NewHeader(uint32(len(a)), width, height)
	h.Flags = meta.Flags
	h.Reserved = meta.Reserved
	if err := h.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, h.PayloadSize())
	if err := EncodeHeader(buf, h); err != nil {
		return nil, err
	}
	off := HeaderSize
	for _, arr := range [][]int16{a, b} {
		for _, v := range arr {
			binary.LittleEndian.PutUint16(buf[off:], uint16(v))
			off += bytesPerElement
		}
	}
	return buf, nil
}

// Build encodes the arrays and parses the result into a Document.
func Build(a, b []int16, width, height uint32, meta Metadata) (*Document, error) {
	buf, err := Encode(a, b, width, height, meta)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}
