// Package sac implements the SAC v1 ("Simple Array Container") mask format.
//
// A SAC buffer carries two equal-length little-endian int16 arrays behind a
// fixed 24-byte header, optionally tagged with the raster width and height
// the arrays describe. The format never changes shape at runtime: any data
// type or array count other than the v1 constants is rejected.
package sac

// SAC v1 constants must never change.
const (
	// Magic is the leading four bytes of every SAC v1 buffer.
	Magic = "SAC1"

	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 24

	// DataTypeInt16 is the only supported element type.
	DataTypeInt16 uint8 = 1

	// ArrayCount is the only supported number of arrays.
	ArrayCount uint8 = 2

	// ContentType is the media type SAC buffers are served with.
	ContentType = "application/octet-stream"

	bytesPerElement = 2
)

// Header field offsets.
const (
	offMagic      = 0
	offFlags      = 4
	offDataType   = 5
	offArrayCount = 6
	offReserved   = 7
	offLengthA    = 8
	offLengthB    = 12
	offWidth      = 16
	offHeight     = 20
)
