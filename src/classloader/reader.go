package classloader

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// ByteSource pulls unsigned big-endian 8/16/32-bit integers from an
// underlying byte stream. It is the sole place in the class-file reader
// that assembles multi-byte integers; it never reinterprets memory
// in-place, so behavior is identical regardless of host endianness.
//
// A ByteSource may read ahead internally (bufio-style) as long as the
// sequence of values it hands back is byte-for-byte identical to reading
// one declared width at a time.
type ByteSource struct {
	r io.Reader
}

// NewByteSource wraps any io.Reader as a class-file byte source.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: r}
}

// NewSliceSource wraps an in-memory buffer, the form used by tests and by
// the CLI for .jar entries that have already been read into memory.
func NewSliceSource(data []byte) *ByteSource {
	return &ByteSource{r: bytes.NewReader(data)}
}

// mappedFile keeps the memory mapping and the underlying file handle
// alive for the lifetime of a file-backed ByteSource.
type mappedFile struct {
	data mmap.MMap
	f    *os.File
}

func (m *mappedFile) Close() error {
	errUnmap := m.data.Unmap()
	errClose := m.f.Close()
	if errUnmap != nil {
		return errUnmap
	}
	return errClose
}

// NewMappedReader memory-maps path read-only and returns a ByteSource over
// its contents along with an io.Closer the caller MUST invoke on every
// exit path to release the mapping and the file handle (see spec.md §5,
// "resources ... MUST be released on every exit path"). This is the
// production file-backed byte source; NewSliceSource is used when the
// caller already has the bytes in memory (e.g. a .jar entry).
func NewMappedReader(path string) (*ByteSource, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("mapping %s: %w", path, err)
	}

	mf := &mappedFile{data: data, f: f}
	return NewSliceSource(data), mf, nil
}

// ReadU8 reads one unsigned byte.
func (b *ByteSource) ReadU8() (byte, error) {
	var buf [1]byte
	if err := b.readFull(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads an unsigned big-endian 16-bit integer.
func (b *ByteSource) ReadU16() (uint16, error) {
	var buf [2]byte
	if err := b.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadU32 reads an unsigned big-endian 32-bit integer.
func (b *ByteSource) ReadU32() (uint32, error) {
	var buf [4]byte
	if err := b.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadBytes reads exactly n raw bytes, used for Utf8 payloads and
// Raw/unrecognized attribute bodies, which MUST be preserved exactly.
func (b *ByteSource) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, n)
	if err := b.readFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (b *ByteSource) readFull(buf []byte) error {
	_, err := io.ReadFull(b.r, buf)
	switch {
	case err == nil:
		return nil
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		return ErrEndOfFile
	default:
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
}

// AtEnd reports whether the source has no more bytes to give, used by the
// class-file loader's trailing-data check (spec.md §4.1: after parsing
// the whole class file, one more byte read MUST signal ErrMoreData).
// It finds out by reading one byte; when a byte remains, that byte is
// consumed.
func (b *ByteSource) AtEnd() bool {
	_, err := b.ReadU8()
	return err != nil
}
