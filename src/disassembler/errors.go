/*
 * javadec - a Java class-file reader and bytecode disassembler
 * Package disassembler decodes one method's code array into a
 * positioned instruction list.
 */

package disassembler

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfCode is returned on a short read while decoding the
	// instruction stream (distinct from classloader.ErrEndOfFile, which
	// covers the container format).
	ErrEndOfCode = errors.New("unexpected end of code array")

	// ErrRead is returned for an underlying cursor failure distinct
	// from a clean end-of-code.
	ErrRead = errors.New("error reading code array")
)

// UnknownInstructionError is returned for an opcode byte the JVM
// specification does not define at this version.
type UnknownInstructionError struct {
	Opcode byte
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction opcode %#02x", e.Opcode)
}

// UnknownArrayTypeError is returned when newarray's element-type tag
// falls outside 4..11.
type UnknownArrayTypeError struct {
	Tag byte
}

func (e *UnknownArrayTypeError) Error() string {
	return fmt.Sprintf("unknown newarray element type tag %d", e.Tag)
}
