package classloader

import "fmt"

// CPTag identifies the variant of a single constant-pool entry.
type CPTag byte

const (
	TagUtf8               CPTag = 1
	TagInteger            CPTag = 3
	TagFloat              CPTag = 4
	TagLong               CPTag = 5
	TagDouble             CPTag = 6
	TagClass              CPTag = 7
	TagString             CPTag = 8
	TagFieldRef           CPTag = 9
	TagMethodRef          CPTag = 10
	TagInterfaceMethodRef CPTag = 11
	TagNameAndType        CPTag = 12
	TagMethodHandle       CPTag = 15
	TagMethodType         CPTag = 16
	TagInvokeDynamic      CPTag = 18
)

// CPEntry is the tagged variant stored at each constant-pool slot. Every
// concrete entry type below implements it as a marker.
type CPEntry interface {
	cpEntry()
}

type Utf8Info struct {
	Value  string
	Length int // original byte length, before modified-UTF-8 decoding
}

type IntegerInfo struct{ Value int32 }
type FloatInfo struct{ Value float32 }
type LongInfo struct{ Value int64 }
type DoubleInfo struct{ Value float64 }
type ClassInfo struct{ NameIndex uint16 }
type StringInfo struct{ StringIndex uint16 }

type FieldRefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type MethodRefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type InterfaceMethodRefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type NameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

type MethodHandleInfo struct {
	ReferenceKind  byte
	ReferenceIndex uint16
}

type MethodTypeInfo struct{ DescriptorIndex uint16 }

type InvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (Utf8Info) cpEntry()               {}
func (IntegerInfo) cpEntry()            {}
func (FloatInfo) cpEntry()              {}
func (LongInfo) cpEntry()               {}
func (DoubleInfo) cpEntry()             {}
func (ClassInfo) cpEntry()              {}
func (StringInfo) cpEntry()             {}
func (FieldRefInfo) cpEntry()           {}
func (MethodRefInfo) cpEntry()          {}
func (InterfaceMethodRefInfo) cpEntry() {}
func (NameAndTypeInfo) cpEntry()        {}
func (MethodHandleInfo) cpEntry()       {}
func (MethodTypeInfo) cpEntry()         {}
func (InvokeDynamicInfo) cpEntry()      {}

// ConstantPool is the 1-indexed, tag-typed table of literals and symbolic
// references shared by every instruction in a class. Index k+1 is left
// absent (not merely nil) for any Long/Double stored at index k, so a
// lookup there fails exactly like any other out-of-range index.
type ConstantPool struct {
	count   uint16
	entries map[uint16]CPEntry
}

// ConstClass is the resolved, dereferenced form of a Class entry.
type ConstClass struct {
	Name string
}

// ConstNameAndType is the resolved form of a NameAndType entry.
type ConstNameAndType struct {
	Name       string
	Descriptor string
}

// ConstField is the resolved form of a FieldRef entry.
type ConstField struct {
	Class        ConstClass
	NameAndType  ConstNameAndType
}

// ConstMethod is the resolved form of a MethodRef/InterfaceMethodRef
// entry; IsInterface flags which table the reference was taken from.
type ConstMethod struct {
	Class       ConstClass
	NameAndType ConstNameAndType
	IsInterface bool
}

// readConstantPool reads constant_pool_count-1 entries into a 1-based
// index, advancing the index by two after a Long or Double tag so the
// reserved continuation slot is never populated.
func readConstantPool(src *ByteSource) (*ConstantPool, error) {
	count, err := src.ReadU16()
	if err != nil {
		return nil, err
	}

	pool := &ConstantPool{count: count, entries: make(map[uint16]CPEntry, count)}

	var i uint16 = 1
	for i < count {
		tagByte, err := src.ReadU8()
		if err != nil {
			return nil, err
		}

		entry, err := readConstantPoolEntry(src, CPTag(tagByte))
		if err != nil {
			return nil, err
		}
		pool.entries[i] = entry

		i++
		if tagByte == byte(TagLong) || tagByte == byte(TagDouble) {
			i++
		}
	}
	return pool, nil
}

func readConstantPoolEntry(src *ByteSource, tag CPTag) (CPEntry, error) {
	switch tag {
	case TagClass:
		nameIndex, err := src.ReadU16()
		return ClassInfo{NameIndex: nameIndex}, err
	case TagString:
		stringIndex, err := src.ReadU16()
		return StringInfo{StringIndex: stringIndex}, err
	case TagFieldRef:
		classIndex, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		natIndex, err := src.ReadU16()
		return FieldRefInfo{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, err
	case TagMethodRef:
		classIndex, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		natIndex, err := src.ReadU16()
		return MethodRefInfo{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, err
	case TagInterfaceMethodRef:
		classIndex, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		natIndex, err := src.ReadU16()
		return InterfaceMethodRefInfo{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, err
	case TagNameAndType:
		nameIndex, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		descIndex, err := src.ReadU16()
		return NameAndTypeInfo{NameIndex: nameIndex, DescriptorIndex: descIndex}, err
	case TagInteger:
		raw, err := src.ReadU32()
		return IntegerInfo{Value: int32(raw)}, err
	case TagFloat:
		raw, err := src.ReadU32()
		return FloatInfo{Value: decodeFloat32(raw)}, err
	case TagLong:
		// Wire order is (high_bytes, low_bytes); the decoded value places
		// the high half in the most-significant 32 bits.
		high, err := src.ReadU32()
		if err != nil {
			return nil, err
		}
		low, err := src.ReadU32()
		if err != nil {
			return nil, err
		}
		return LongInfo{Value: int64(uint64(high)<<32 | uint64(low))}, nil
	case TagDouble:
		high, err := src.ReadU32()
		if err != nil {
			return nil, err
		}
		low, err := src.ReadU32()
		if err != nil {
			return nil, err
		}
		return DoubleInfo{Value: decodeFloat64(uint64(high)<<32 | uint64(low))}, nil
	case TagUtf8:
		length, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		raw, err := src.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		str, err := decodeModifiedUTF8(raw)
		if err != nil {
			return nil, err
		}
		return Utf8Info{Value: str, Length: int(length)}, nil
	case TagMethodHandle:
		refKind, err := src.ReadU8()
		if err != nil {
			return nil, err
		}
		refIndex, err := src.ReadU16()
		return MethodHandleInfo{ReferenceKind: refKind, ReferenceIndex: refIndex}, err
	case TagMethodType:
		descIndex, err := src.ReadU16()
		return MethodTypeInfo{DescriptorIndex: descIndex}, err
	case TagInvokeDynamic:
		bootstrapIndex, err := src.ReadU16()
		if err != nil {
			return nil, err
		}
		natIndex, err := src.ReadU16()
		return InvokeDynamicInfo{BootstrapMethodAttrIndex: bootstrapIndex, NameAndTypeIndex: natIndex}, err
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrInvalidCPType, tag)
	}
}

// GetEntry returns the raw entry at index, any variant. The returned
// value is a plain struct, so copying it is always cheap and safe.
func (p *ConstantPool) GetEntry(index uint16) (CPEntry, error) {
	entry, ok := p.entries[index]
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrInvalidCPEntry, index)
	}
	return entry, nil
}

// GetUtf8 resolves index to a Utf8 entry's decoded string.
func (p *ConstantPool) GetUtf8(index uint16) (string, error) {
	entry, err := p.GetEntry(index)
	if err != nil {
		return "", err
	}
	utf8, ok := entry.(Utf8Info)
	if !ok {
		return "", fmt.Errorf("%w: index %d is not Utf8", ErrInvalidCPEntry, index)
	}
	return utf8.Value, nil
}

// GetClass resolves index to a Class entry, chasing its name_index.
func (p *ConstantPool) GetClass(index uint16) (ConstClass, error) {
	entry, err := p.GetEntry(index)
	if err != nil {
		return ConstClass{}, err
	}
	class, ok := entry.(ClassInfo)
	if !ok {
		return ConstClass{}, fmt.Errorf("%w: index %d is not Class", ErrInvalidCPEntry, index)
	}
	name, err := p.GetUtf8(class.NameIndex)
	if err != nil {
		return ConstClass{}, err
	}
	return ConstClass{Name: name}, nil
}

// GetNameAndType resolves index to a NameAndType entry, chasing both of
// its sub-indices.
func (p *ConstantPool) GetNameAndType(index uint16) (ConstNameAndType, error) {
	entry, err := p.GetEntry(index)
	if err != nil {
		return ConstNameAndType{}, err
	}
	nat, ok := entry.(NameAndTypeInfo)
	if !ok {
		return ConstNameAndType{}, fmt.Errorf("%w: index %d is not NameAndType", ErrInvalidCPEntry, index)
	}
	name, err := p.GetUtf8(nat.NameIndex)
	if err != nil {
		return ConstNameAndType{}, err
	}
	desc, err := p.GetUtf8(nat.DescriptorIndex)
	if err != nil {
		return ConstNameAndType{}, err
	}
	return ConstNameAndType{Name: name, Descriptor: desc}, nil
}

// GetField resolves index to a FieldRef, requiring that variant exactly.
func (p *ConstantPool) GetField(index uint16) (ConstField, error) {
	entry, err := p.GetEntry(index)
	if err != nil {
		return ConstField{}, err
	}
	ref, ok := entry.(FieldRefInfo)
	if !ok {
		return ConstField{}, fmt.Errorf("%w: index %d is not FieldRef", ErrInvalidCPEntry, index)
	}
	class, err := p.GetClass(ref.ClassIndex)
	if err != nil {
		return ConstField{}, err
	}
	nat, err := p.GetNameAndType(ref.NameAndTypeIndex)
	if err != nil {
		return ConstField{}, err
	}
	return ConstField{Class: class, NameAndType: nat}, nil
}

// GetMethodOrInterfaceMethod resolves index to a MethodRef or
// InterfaceMethodRef, flagging which table it came from.
func (p *ConstantPool) GetMethodOrInterfaceMethod(index uint16) (ConstMethod, error) {
	entry, err := p.GetEntry(index)
	if err != nil {
		return ConstMethod{}, err
	}

	var classIndex, natIndex uint16
	var isInterface bool
	switch ref := entry.(type) {
	case MethodRefInfo:
		classIndex, natIndex, isInterface = ref.ClassIndex, ref.NameAndTypeIndex, false
	case InterfaceMethodRefInfo:
		classIndex, natIndex, isInterface = ref.ClassIndex, ref.NameAndTypeIndex, true
	default:
		return ConstMethod{}, fmt.Errorf("%w: index %d is not a method reference", ErrInvalidCPEntry, index)
	}

	class, err := p.GetClass(classIndex)
	if err != nil {
		return ConstMethod{}, err
	}
	nat, err := p.GetNameAndType(natIndex)
	if err != nil {
		return ConstMethod{}, err
	}
	return ConstMethod{Class: class, NameAndType: nat, IsInterface: isInterface}, nil
}

// Len reports the number of populated slots (excludes reserved Long/Double
// continuation slots and the unused slot 0).
func (p *ConstantPool) Len() int {
	return len(p.entries)
}

// Count returns the raw constant_pool_count field read from the file
// (one greater than the highest slot index; each Long or Double takes
// two slots, so this can exceed Len()+1).
func (p *ConstantPool) Count() uint16 {
	return p.count
}
