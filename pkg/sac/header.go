package sac

import (
	"encoding/binary"
	"strconv"
)

type Header struct {
	Magic      [4]byte
	Flags      uint8
	DataType   uint8
	ArrayCount uint8
	Reserved   uint8
	LengthA    uint32
	LengthB    uint32
	Width      uint32
	Height     uint32
}

// NewHeader returns a v1 header for two arrays of n elements.
// Width and height may be zero to leave the dimensions unspecified.
func NewHeader(n, width, height uint32) Header {
	h := Header{
		DataType:   DataTypeInt16,
		ArrayCount: ArrayCount,
		LengthA:    n,
		LengthB:    n,
		Width:      width,
		Height:     height,
	}
	copy(h.Magic[:], Magic)
	return h
}

// DecodeHeader reads and validates the fixed header at the start of buf.
// Array bytes are not inspected.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, decodeErr(ErrTooSmall, "length", len(buf))
	}
	var h Header
	copy(h.Magic[:], buf[offMagic:offMagic+4])
	h.Flags = buf[offFlags]
	h.DataType = buf[offDataType]
	h.ArrayCount = buf[offArrayCount]
	h.Reserved = buf[offReserved]
	h.LengthA = binary.LittleEndian.Uint32(buf[offLengthA:])
	h.LengthB = binary.LittleEndian.Uint32(buf[offLengthB:])
	h.Width = binary.LittleEndian.Uint32(buf[offWidth:])
	h.Height = binary.LittleEndian.Uint32(buf[offHeight:])

	if err := h.Validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// EncodeHeader writes h into the first HeaderSize bytes of dst.
// The header is written as-is; use Validate to check it first.
func EncodeHeader(dst []byte, h Header) error {
	if len(dst) < HeaderSize {
		return decodeErr(ErrTooSmall, "length", len(dst))
	}
	copy(dst[offMagic:offMagic+4], h.Magic[:])
	dst[offFlags] = h.Flags
	dst[offDataType] = h.DataType
	dst[offArrayCount] = h.ArrayCount
	dst[offReserved] = h.Reserved
	binary.LittleEndian.PutUint32(dst[offLengthA:], h.LengthA)
	binary.LittleEndian.PutUint32(dst[offLengthB:], h.LengthB)
	binary.LittleEndian.PutUint32(dst[offWidth:], h.Width)
	binary.LittleEndian.PutUint32(dst[offHeight:], h.Height)
	return nil
}

// Validate checks the v1 constants and the length invariants, in wire order.
func (h Header) Validate() error {
	if string(h.Magic[:]) != Magic {
		return decodeErr(ErrBadMagic, "magic", strconv.Quote(string(h.Magic[:])))
	}
	if h.DataType != DataTypeInt16 {
		return decodeErr(ErrUnsupportedDataType, "dataType", h.DataType)
	}
	if h.ArrayCount != ArrayCount {
		return decodeErr(ErrUnsupportedArrayCount, "arrayCount", h.ArrayCount)
	}
	if h.LengthA != h.LengthB {
		return decodeErr(ErrLengthMismatch, "lengthB", h.LengthB)
	}
	if h.Width != 0 && h.Height != 0 && uint64(h.Width)*uint64(h.Height) != uint64(h.LengthA) {
		return decodeErr(ErrDimensionMismatch, "width*height", uint64(h.Width)*uint64(h.Height))
	}
	return nil
}

// Dimensions reports the declared raster size. ok is false unless both
// width and height are non-zero.
func (h Header) Dimensions() (width, height uint32, ok bool) {
	if h.Width == 0 || h.Height == 0 {
		return 0, 0, false
	}
	return h.Width, h.Height, true
}

// PayloadSize is the number of bytes the header and both arrays occupy.
func (h Header) PayloadSize() uint64 {
	return HeaderSize + uint64(h.LengthA)*bytesPerElement*uint64(ArrayCount)
}
