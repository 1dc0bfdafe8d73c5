/*
 * javadec - a Java class-file reader and bytecode disassembler
 * Package classloader decodes the .class binary container format.
 */

package classloader

import "errors"

// Sentinel errors for every class-file-reader failure mode named in the
// error handling design. Higher-level callers wrap these with context
// using fmt.Errorf("...: %w", Err...) and unwrap with errors.Is/errors.As.
var (
	// ErrInvalidMagic is returned when the first four bytes of a class
	// file are not 0xCAFEBABE.
	ErrInvalidMagic = errors.New("invalid magic value")

	// ErrEndOfFile is returned on a short read while decoding the
	// container format.
	ErrEndOfFile = errors.New("unexpected end of file")

	// ErrMoreData is returned when bytes remain after a complete class
	// file has been parsed.
	ErrMoreData = errors.New("more data after expected end of class file")

	// ErrInvalidCPType is returned for a constant-pool tag byte this
	// reader does not recognize.
	ErrInvalidCPType = errors.New("invalid constant pool entry type")

	// ErrInvalidCPEntry is returned when a pool index is out of range,
	// refers to a reserved Long/Double continuation slot, or resolves
	// to an entry of the wrong variant for the requested accessor.
	ErrInvalidCPEntry = errors.New("invalid index into constant pool")

	// ErrMUtf8Format is returned by the modified-UTF-8 decoder on any
	// byte-sequence violation.
	ErrMUtf8Format = errors.New("malformed modified-UTF-8 byte sequence")

	// ErrRead is returned for an underlying I/O failure distinct from
	// a clean end-of-input.
	ErrRead = errors.New("error reading input")

	// ErrDescriptorEOF is returned by the descriptor parser on
	// premature end of input.
	ErrDescriptorEOF = errors.New("end of descriptor")
)
