package classloader

import (
	"errors"
	"testing"
)

// minimalClassBytes builds the smallest legal class file: an empty
// constant pool, no interfaces/fields/methods/attributes.
func minimalClassBytes() []byte {
	return []byte{
		0xCA, 0xFE, 0xBA, 0xBE, // magic
		0x00, 0x00, // minor
		0x00, 0x34, // major = 52
		0x00, 0x01, // constant_pool_count = 1 (no entries)
		0x00, 0x21, // access_flags (PUBLIC|SUPER)
		0x00, 0x00, // this_class
		0x00, 0x00, // super_class
		0x00, 0x00, // interfaces_count
		0x00, 0x00, // fields_count
		0x00, 0x00, // methods_count
		0x00, 0x00, // attributes_count
	}
}

func TestReadClassFile_RejectsBadMagic(t *testing.T) {
	data := minimalClassBytes()
	data[0] = 0x00

	_, err := ReadClassFile(NewSliceSource(data))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("got %v, want ErrInvalidMagic", err)
	}
}

func TestReadClassFile_Minimal(t *testing.T) {
	cf, err := ReadClassFile(NewSliceSource(minimalClassBytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cf.Major != 52 {
		t.Errorf("got major %d, want 52", cf.Major)
	}
	if !cf.IsPublic() {
		t.Errorf("expected PUBLIC flag set")
	}
	if len(cf.Fields) != 0 || len(cf.Methods) != 0 {
		t.Errorf("expected no fields/methods")
	}
}

func TestReadClassFile_TrailingDataDetected(t *testing.T) {
	data := append(minimalClassBytes(), 0xFF)

	_, err := ReadClassFile(NewSliceSource(data))
	if !errors.Is(err, ErrMoreData) {
		t.Fatalf("got %v, want ErrMoreData", err)
	}
}
