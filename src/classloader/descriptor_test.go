package classloader

import (
	"errors"
	"testing"
)

func TestParseMethodDescriptor_Void(t *testing.T) {
	md, err := ParseMethodDescriptor("()V")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.Params) != 0 {
		t.Errorf("got %d params, want 0", len(md.Params))
	}
	if md.Return.Kind != TypeVoid {
		t.Errorf("got return kind %v, want TypeVoid", md.Return.Kind)
	}
}

func TestParseMethodDescriptor_IntArrayStringLong(t *testing.T) {
	md, err := ParseMethodDescriptor("(I[Ljava/lang/String;)J")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(md.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(md.Params))
	}
	if md.Params[0].Kind != TypeInt {
		t.Errorf("param 0 kind = %v, want TypeInt", md.Params[0].Kind)
	}
	if md.Params[1].Kind != TypeArray {
		t.Fatalf("param 1 kind = %v, want TypeArray", md.Params[1].Kind)
	}
	elem := md.Params[1].Element
	if elem.Kind != TypeReference || elem.BinaryName != "java/lang/String" {
		t.Errorf("array element = %+v, want Reference(java/lang/String)", elem)
	}
	if md.Return.Kind != TypeLong {
		t.Errorf("return kind = %v, want TypeLong", md.Return.Kind)
	}
}

func TestParseMethodDescriptor_MissingReturn(t *testing.T) {
	_, err := ParseMethodDescriptor("(I)")
	if !errors.Is(err, ErrDescriptorEOF) {
		t.Fatalf("got %v, want ErrDescriptorEOF", err)
	}
}

func TestParseMethodDescriptor_BadFieldType(t *testing.T) {
	_, err := ParseMethodDescriptor("(X)V")
	var expectErr *ExpectError
	if !errors.As(err, &expectErr) {
		t.Fatalf("got %v (%T), want *ExpectError", err, err)
	}
	if expectErr.Expected != "field type" || expectErr.Got != 'X' {
		t.Errorf("got %+v, want Expected=\"field type\" Got='X'", expectErr)
	}
}
