package classloader

import "fmt"

const magicValue uint32 = 0xCAFEBABE

// Class access flags (spec.md §3).
const (
	AccPublic     uint16 = 0x0001
	AccFinal      uint16 = 0x0010
	AccSuper      uint16 = 0x0020
	AccInterface  uint16 = 0x0200
	AccAbstract   uint16 = 0x0400
	AccSynthetic  uint16 = 0x1000
	AccAnnotation uint16 = 0x2000
	AccEnum       uint16 = 0x4000
)

// Field access flags add to the class set.
const (
	AccPrivate   uint16 = 0x0002
	AccProtected uint16 = 0x0004
	AccStatic    uint16 = 0x0008
	AccVolatile  uint16 = 0x0040
	AccTransient uint16 = 0x0080
)

// Method access flags add SYNCHRONIZED/BRIDGE/VARARGS/NATIVE/STRICT;
// ABSTRACT and the rest are shared with the class/field sets above.
const (
	AccSynchronized uint16 = 0x0020
	AccBridge       uint16 = 0x0040
	AccVarargs      uint16 = 0x0080
	AccNative       uint16 = 0x0100
	AccStrict       uint16 = 0x0800
)

// ClassFile is the fully decoded .class container (spec.md §3).
type ClassFile struct {
	Minor      uint16
	Major      uint16
	Pool       *ConstantPool
	AccessFlags uint16
	ThisClass  uint16
	SuperClass uint16
	Interfaces []uint16
	Fields     []MemberInfo
	Methods    []MemberInfo
	Attributes []Attribute
}

// MemberInfo is the shared shape of field_info and method_info: an
// access-flag word, name/descriptor pool indices, and an attribute list.
type MemberInfo struct {
	AccessFlags    uint16
	NameIndex      uint16
	DescriptorIndex uint16
	Attributes     []Attribute
}

// Attribute is the tagged attribute_info variant (spec.md §3). Exactly
// one of ConstantValue, SourceFile, Code, Raw is non-nil.
type Attribute struct {
	Name          string
	ConstantValue *ConstantValueAttribute
	SourceFile    *SourceFileAttribute
	Code          *CodeAttribute
	Raw           *RawAttribute
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 means "catches everything" (finally)
}

type CodeAttribute struct {
	MaxStack      uint16
	MaxLocals     uint16
	Code          []byte
	ExceptionTable []ExceptionTableEntry
	Attributes    []Attribute
}

// RawAttribute preserves any attribute this loader does not structurally
// recognize; Bytes is exactly attribute_length bytes, byte-for-byte.
type RawAttribute struct {
	Bytes []byte
}

// ReadClassFile decodes one complete class file from src, in the fixed
// order spec.md §4.4 lays out, and fails with ErrMoreData if any byte
// remains once every declared table has been consumed.
func ReadClassFile(src *ByteSource) (*ClassFile, error) {
	magic, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	if magic != magicValue {
		return nil, fmt.Errorf("%w: got %#08x", ErrInvalidMagic, magic)
	}

	minor, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	major, err := src.ReadU16()
	if err != nil {
		return nil, err
	}

	pool, err := readConstantPool(src)
	if err != nil {
		return nil, err
	}

	accessFlags, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	thisClass, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	superClass, err := src.ReadU16()
	if err != nil {
		return nil, err
	}

	interfacesCount, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	interfaces := make([]uint16, interfacesCount)
	for i := range interfaces {
		interfaces[i], err = src.ReadU16()
		if err != nil {
			return nil, err
		}
	}

	fields, err := readMembers(src, pool)
	if err != nil {
		return nil, fmt.Errorf("reading fields: %w", err)
	}
	methods, err := readMembers(src, pool)
	if err != nil {
		return nil, fmt.Errorf("reading methods: %w", err)
	}
	attributes, err := readAttributes(src, pool)
	if err != nil {
		return nil, fmt.Errorf("reading class attributes: %w", err)
	}

	if !src.AtEnd() {
		return nil, ErrMoreData
	}

	return &ClassFile{
		Minor:       minor,
		Major:       major,
		Pool:        pool,
		AccessFlags: accessFlags,
		ThisClass:   thisClass,
		SuperClass:  superClass,
		Interfaces:  interfaces,
		Fields:      fields,
		Methods:     methods,
		Attributes:  attributes,
	}, nil
}

func readMembers(src *ByteSource, pool *ConstantPool) ([]MemberInfo, error) {
	count, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	members := make([]MemberInfo, count)
	for i := range members {
		accessFlags, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		nameIndex, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		descIndex, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		attrs, err := readAttributes(src, pool)
		if err != nil {
			return nil, err
		}
		members[i] = MemberInfo{
			AccessFlags:     accessFlags,
			NameIndex:       nameIndex,
			DescriptorIndex: descIndex,
			Attributes:      attrs,
		}
	}
	return members, nil
}

func readAttributes(src *ByteSource, pool *ConstantPool) ([]Attribute, error) {
	count, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, count)
	for i := range attrs {
		attr, err := readAttribute(src, pool)
		if err != nil {
			return nil, err
		}
		attrs[i] = attr
	}
	return attrs, nil
}

// readAttribute dispatches on the attribute's name, recursing into a
// nested attribute table for Code (spec.md §4.4, §9 "recursive
// attributes"). An unrecognized name falls through to Raw, which MUST
// still consume exactly attribute_length bytes.
func readAttribute(src *ByteSource, pool *ConstantPool) (Attribute, error) {
	nameIndex, err := src.ReadU16()
	if err != nil {
		return Attribute{}, err
	}
	name, err := pool.GetUtf8(nameIndex)
	if err != nil {
		return Attribute{}, err
	}
	length, err := src.ReadU32()
	if err != nil {
		return Attribute{}, err
	}

	switch name {
	case "ConstantValue":
		index, err := src.ReadU16()
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, ConstantValue: &ConstantValueAttribute{ConstantValueIndex: index}}, nil

	case "SourceFile":
		index, err := src.ReadU16()
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, SourceFile: &SourceFileAttribute{SourceFileIndex: index}}, nil

	case "Code":
		code, err := readCodeAttribute(src, pool)
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, Code: code}, nil

	default:
		raw, err := src.ReadBytes(int(length))
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{Name: name, Raw: &RawAttribute{Bytes: raw}}, nil
	}
}

func readCodeAttribute(src *ByteSource, pool *ConstantPool) (*CodeAttribute, error) {
	maxStack, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	codeLength, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	code, err := src.ReadBytes(int(codeLength))
	if err != nil {
		return nil, err
	}

	exceptionTableLength, err := src.ReadU16()
	if err != nil {
		return nil, err
	}
	exceptionTable := make([]ExceptionTableEntry, exceptionTableLength)
	for i := range exceptionTable {
		startPC, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		endPC, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		handlerPC, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		catchType, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		exceptionTable[i] = ExceptionTableEntry{
			StartPC:   startPC,
			EndPC:     endPC,
			HandlerPC: handlerPC,
			CatchType: catchType,
		}
	}

	attrs, err := readAttributes(src, pool)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: exceptionTable,
		Attributes:     attrs,
	}, nil
}

// IsPublic and its siblings read the class-level access-flags bitmask.
// Field- and method-specific flags are read the same way against their
// own MemberInfo.AccessFlags word; callers mask the bit they need
// directly since the meaning of a given bit differs between fields and
// methods (e.g. 0x0020 is SUPER on a class, SYNCHRONIZED on a method).
func (c *ClassFile) IsPublic() bool    { return c.AccessFlags&AccPublic != 0 }
func (c *ClassFile) IsFinal() bool     { return c.AccessFlags&AccFinal != 0 }
func (c *ClassFile) IsInterface() bool { return c.AccessFlags&AccInterface != 0 }
func (c *ClassFile) IsAbstract() bool  { return c.AccessFlags&AccAbstract != 0 }
func (c *ClassFile) IsSynthetic() bool { return c.AccessFlags&AccSynthetic != 0 }
func (c *ClassFile) IsAnnotation() bool { return c.AccessFlags&AccAnnotation != 0 }
func (c *ClassFile) IsEnum() bool      { return c.AccessFlags&AccEnum != 0 }
