package disassembler

import "fmt"

// Op tags every distinguishable bytecode form this decoder produces.
// Several wire opcodes collapse onto one Op: the four iload_<n> forms,
// for instance, all decode to OpILoad with Index already resolved to
// the literal n, exactly as the quick forms are defined to behave.
type Op int

const (
	OpNop Op = iota
	OpAConstNull
	OpIConst
	OpLConst
	OpFConst
	OpDConst
	OpBIPush
	OpSIPush
	OpLoadConst // ldc / ldc_w / ldc2_w, unified per spec.md §5
	OpILoad
	OpLLoad
	OpFLoad
	OpDLoad
	OpALoad
	OpIALoad
	OpLALoad
	OpFALoad
	OpDALoad
	OpAALoad
	OpBALoad
	OpCALoad
	OpSALoad
	OpIStore
	OpLStore
	OpFStore
	OpDStore
	OpAStore
	OpIAStore
	OpLAStore
	OpFAStore
	OpDAStore
	OpAAStore
	OpBAStore
	OpCAStore
	OpSAStore
	OpPop
	OpPop2
	OpDup
	OpDupX1
	OpDupX2
	OpDup2
	OpDup2X1
	OpDup2X2
	OpSwap
	OpIAdd
	OpLAdd
	OpFAdd
	OpDAdd
	OpISub
	OpLSub
	OpFSub
	OpDSub
	OpIMul
	OpLMul
	OpFMul
	OpDMul
	OpIDiv
	OpLDiv
	OpFDiv
	OpDDiv
	OpIRem
	OpLRem
	OpFRem
	OpDRem
	OpINeg
	OpLNeg
	OpFNeg
	OpDNeg
	OpIShL
	OpLShL
	OpIShR
	OpLShR
	OpIUShR
	OpLUShR
	OpIAnd
	OpLAnd
	OpIOr
	OpLOr
	OpIXOr
	OpLXOr
	OpIInc
	OpI2L
	OpI2F
	OpI2D
	OpL2I
	OpL2F
	OpL2D
	OpF2I
	OpF2L
	OpF2D
	OpD2I
	OpD2L
	OpD2F
	OpI2B
	OpI2C
	OpI2S
	OpLCmp
	OpFCmpL
	OpFCmpG
	OpDCmpL
	OpDCmpG
	OpIfEq
	OpIfNe
	OpIfLt
	OpIfGe
	OpIfGt
	OpIfLe
	OpIfICmpEq
	OpIfICmpNe
	OpIfICmpLt
	OpIfICmpGe
	OpIfICmpGt
	OpIfICmpLe
	OpIfACmpEq
	OpIfACmpNe
	OpGoto
	OpJSr
	OpRet
	OpTableSwitch
	OpLookupSwitch
	OpIReturn
	OpLReturn
	OpFReturn
	OpDReturn
	OpAReturn
	OpReturn
	OpGetStatic
	OpPutStatic
	OpGetField
	OpPutField
	OpInvokeVirtual
	OpInvokeSpecial
	OpInvokeStatic
	OpInvokeInterface
	OpInvokeDynamic
	OpNew
	OpNewArray
	OpANewArray
	OpArrayLength
	OpAThrow
	OpCheckCast
	OpInstanceOf
	OpMonitorEnter
	OpMonitorExit
	OpMultiANewArray
	OpIfNull
	OpIfNonNull
)

var opNames = map[Op]string{
	OpNop: "nop", OpAConstNull: "aconst_null", OpIConst: "iconst",
	OpLConst: "lconst", OpFConst: "fconst", OpDConst: "dconst",
	OpBIPush: "bipush", OpSIPush: "sipush", OpLoadConst: "ldc",
	OpILoad: "iload", OpLLoad: "lload", OpFLoad: "fload", OpDLoad: "dload", OpALoad: "aload",
	OpIStore: "istore", OpLStore: "lstore", OpFStore: "fstore", OpDStore: "dstore", OpAStore: "astore",
	OpGetStatic: "getstatic", OpPutStatic: "putstatic",
	OpGetField: "getfield", OpPutField: "putfield",
	OpInvokeVirtual: "invokevirtual", OpInvokeSpecial: "invokespecial",
	OpInvokeStatic: "invokestatic", OpInvokeInterface: "invokeinterface",
	OpInvokeDynamic: "invokedynamic",
	OpArrayLength:   "arraylength", OpCheckCast: "checkcast",
	OpIMul: "imul", OpI2B: "i2b", OpReturn: "return",
	OpIReturn: "ireturn", OpLReturn: "lreturn", OpFReturn: "freturn",
	OpDReturn: "dreturn", OpAReturn: "areturn",
	OpGoto: "goto", OpJSr: "jsr",
	OpIfEq: "ifeq", OpIfNe: "ifne",
}

// String renders a human-readable mnemonic for Op, falling back to its
// numeric tag for any variant not given an explicit name above.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// ArrayType is newarray's primitive element-type operand.
type ArrayType int

const (
	ArrayBoolean ArrayType = iota
	ArrayChar
	ArrayFloat
	ArrayDouble
	ArrayByte
	ArrayShort
	ArrayInt
	ArrayLong
)

// TableSwitchData carries tableswitch's operands; every offset has
// already been resolved to an absolute pc.
type TableSwitchData struct {
	Default uint32
	Low     int32
	High    int32
	Offsets []uint32
}

// LookupSwitchPair is one (match_value, absolute pc) entry of a
// lookupswitch.
type LookupSwitchPair struct {
	Match int32
	PC    uint32
}

// LookupSwitchData carries lookupswitch's operands.
type LookupSwitchData struct {
	Default uint32
	Pairs   []LookupSwitchPair
}

// Instruction is a single decoded bytecode operation. It carries every
// already-decoded operand a variant might need; only the fields
// relevant to Op are meaningful for any given instance (the shape
// spec.md §3 calls for, flattened since Go has no enum-with-payload).
type Instruction struct {
	Op Op

	// Index is a local-variable slot (widened to u16 when a wide
	// prefix preceded this opcode) or a constant-pool index, depending
	// on Op.
	Index uint16

	IntValue    int64   // IConst/LConst/BIPush/SIPush, sign-extended to the widest case
	FloatValue  float32 // FConst
	DoubleValue float64 // DConst
	IIncValue   int16   // IInc's delta

	// Branch is the absolute target pc for every branch-carrying Op
	// (If*, Goto, JSr, Ret does not use this field).
	Branch uint32

	ArrayType    ArrayType // NewArray
	Dimensions   uint8     // MultiANewArray

	TableSwitch  *TableSwitchData
	LookupSwitch *LookupSwitchData
}
