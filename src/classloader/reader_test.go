package classloader

import (
	"errors"
	"testing"
)

func TestByteSource_ReadWidths(t *testing.T) {
	src := NewSliceSource([]byte{0x01, 0x02, 0x03, 0x00, 0x00, 0x00, 0x0A})

	u8, err := src.ReadU8()
	if err != nil || u8 != 0x01 {
		t.Fatalf("ReadU8: got (%d, %v)", u8, err)
	}
	u16, err := src.ReadU16()
	if err != nil || u16 != 0x0203 {
		t.Fatalf("ReadU16: got (%#04x, %v)", u16, err)
	}
	u32, err := src.ReadU32()
	if err != nil || u32 != 0x0A {
		t.Fatalf("ReadU32: got (%#08x, %v)", u32, err)
	}
}

func TestByteSource_ShortReadIsEndOfFile(t *testing.T) {
	src := NewSliceSource([]byte{0x01})
	_, err := src.ReadU16()
	if !errors.Is(err, ErrEndOfFile) {
		t.Fatalf("got %v, want ErrEndOfFile", err)
	}
}

func TestByteSource_AtEnd(t *testing.T) {
	src := NewSliceSource([]byte{0x01})
	if src.AtEnd() {
		t.Fatalf("expected not at end before consuming the only byte")
	}
	src.ReadU8()
	if !src.AtEnd() {
		t.Fatalf("expected at end after consuming the only byte")
	}
}
