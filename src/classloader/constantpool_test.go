package classloader

import (
	"errors"
	"testing"
)

// buildPool assembles a constant_pool_count followed by raw entry bytes,
// exactly the wire shape readConstantPool expects (count already
// includes the +1 for the unused slot 0).
func buildPool(t *testing.T, count uint16, entries []byte) *ConstantPool {
	t.Helper()
	buf := []byte{byte(count >> 8), byte(count)}
	buf = append(buf, entries...)
	pool, err := readConstantPool(NewSliceSource(buf))
	if err != nil {
		t.Fatalf("readConstantPool: %v", err)
	}
	return pool
}

func TestConstantPool_LongReservesNextSlot(t *testing.T) {
	// constant_pool_count = 3: slot 1 is a Long (occupies 1 and 2), slot
	// 3 would be next but count stops us there; verify slot 2 is absent.
	entries := []byte{
		byte(TagLong), 0, 0, 0, 1, 0, 0, 0, 2, // slot 1: Long(high=1, low=2)
	}
	pool := buildPool(t, 3, entries)

	if _, err := pool.GetEntry(2); !errors.Is(err, ErrInvalidCPEntry) {
		t.Fatalf("slot 2 (reserved): got %v, want ErrInvalidCPEntry", err)
	}
}

func TestConstantPool_LongByteOrder(t *testing.T) {
	entries := []byte{
		byte(TagLong), 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02,
	}
	pool := buildPool(t, 3, entries)

	entry, err := pool.GetEntry(1)
	if err != nil {
		t.Fatalf("GetEntry(1): %v", err)
	}
	long, ok := entry.(LongInfo)
	if !ok {
		t.Fatalf("entry 1 is %T, want LongInfo", entry)
	}
	want := int64(1)<<32 | 2
	if long.Value != want {
		t.Errorf("got %d, want %d", long.Value, want)
	}
}

func TestConstantPool_InvalidIndex(t *testing.T) {
	pool := buildPool(t, 1, nil)
	if _, err := pool.GetEntry(5); !errors.Is(err, ErrInvalidCPEntry) {
		t.Fatalf("got %v, want ErrInvalidCPEntry", err)
	}
}

func TestConstantPool_ResolveClass(t *testing.T) {
	// slot 1: Utf8 "Foo"
	// slot 2: Class -> name_index 1
	foo := []byte("Foo")
	entries := []byte{byte(TagUtf8), 0, byte(len(foo))}
	entries = append(entries, foo...)
	entries = append(entries, byte(TagClass), 0, 1)

	pool := buildPool(t, 3, entries)

	class, err := pool.GetClass(2)
	if err != nil {
		t.Fatalf("GetClass: %v", err)
	}
	if class.Name != "Foo" {
		t.Errorf("got %q, want Foo", class.Name)
	}
}

func TestConstantPool_UnknownTag(t *testing.T) {
	buf := []byte{0, 2, 0xFF}
	_, err := readConstantPool(NewSliceSource(buf))
	if !errors.Is(err, ErrInvalidCPType) {
		t.Fatalf("got %v, want ErrInvalidCPType", err)
	}
}
