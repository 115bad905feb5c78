package sac

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is a SAC buffer loaded from disk.
type File struct {
	Data    []byte
	Doc     *Document
	mmapped bool
}

// Open maps a SAC file read-only and parses it.
// If mmap is unavailable, it falls back to reading the file into memory.
// The document aliases the mapping and must not be used after Close.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		return nil, decodeErr(ErrTruncated, "length", size64)
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, decodeErr(ErrTooSmall, "length", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		sf, parseErr := parseFile(data, true)
		if parseErr != nil {
			_ = unix.Munmap(data)
			return nil, parseErr
		}
		return sf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return parseFile(data, false)
}

// OpenReaderAt loads and parses a SAC buffer from a random-access reader.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < HeaderSize {
		return nil, decodeErr(ErrTooSmall, "length", size)
	}
	if size > int64(int(^uint(0)>>1)) {
		return nil, decodeErr(ErrTruncated, "length", size)
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return parseFile(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

func parseFile(data []byte, mmapped bool) (*File, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &File{Data: data, Doc: doc, mmapped: mmapped}, nil
}

// Close releases the file data and any mapping.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.Doc = nil
	f.mmapped = false
	return err
}
