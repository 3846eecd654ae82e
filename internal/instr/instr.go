// Package instr lists the fixed bytecode instruction set the checked AST
// is eventually lowered to (spec.md §6): opcode constants only, no
// encoder/VM — that lowering lives outside this module's scope.
//
// Grounded on the teacher's internal/bytecode/opcodes.go (one named
// uint8 constant per instruction, grouped by concern with a comment
// banner per group).
package instr

// Op is one bytecode opcode.
type Op uint8

const (
	OpNop Op = iota

	// Stack / constants
	OpConstInt
	OpConstFloat
	OpConstString
	OpConstBool
	OpConstNull
	OpPop
	OpDup

	// Locals / globals
	OpLoadLocal
	OpStoreLocal
	OpLoadGlobal
	OpStoreGlobal
	OpLoadUpvalue

	// Arithmetic / logic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNeg
	OpNot
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLte
	OpGte
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor

	// Arrays / structs
	OpNewArray
	OpArrayGet
	OpArraySet
	OpArrayLen
	OpNewStruct
	OpFieldGet
	OpFieldSet

	// Classes / processes
	OpNewInstance
	OpSpawnProcess
	OpInvokeMethod
	OpInvokeStatic
	OpLoadThis

	// Variants / enums / pattern matching
	OpMakeVariant
	OpVariantTag
	OpVariantField
	OpEnumValue

	// Casts
	OpCastRegular
	OpCastForce
	OpCastSafe
	OpInstanceCheck

	// Control flow
	OpJump
	OpJumpIfFalse
	OpJumpIfTrue
	OpCall
	OpReturn
	OpReturnVoid

	// Closures
	OpMakeClosure
	OpCaptureUpvalue

	// Concurrency
	OpYield
	OpYieldBang

	opCount // sentinel: count of defined opcodes, not itself emitted
)

var names = map[Op]string{
	OpNop: "nop", OpConstInt: "const.int", OpConstFloat: "const.float",
	OpConstString: "const.string", OpConstBool: "const.bool", OpConstNull: "const.null",
	OpPop: "pop", OpDup: "dup", OpLoadLocal: "load.local", OpStoreLocal: "store.local",
	OpLoadGlobal: "load.global", OpStoreGlobal: "store.global", OpLoadUpvalue: "load.upvalue",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpNeg: "neg", OpNot: "not", OpEq: "eq", OpNeq: "neq", OpLt: "lt", OpGt: "gt",
	OpLte: "lte", OpGte: "gte", OpAnd: "and", OpOr: "or",
	OpBitAnd: "bitand", OpBitOr: "bitor", OpBitXor: "bitxor",
	OpNewArray: "array.new", OpArrayGet: "array.get", OpArraySet: "array.set", OpArrayLen: "array.len",
	OpNewStruct: "struct.new", OpFieldGet: "field.get", OpFieldSet: "field.set",
	OpNewInstance: "instance.new", OpSpawnProcess: "process.spawn",
	OpInvokeMethod: "method.invoke", OpInvokeStatic: "static.invoke", OpLoadThis: "this.load",
	OpMakeVariant: "variant.make", OpVariantTag: "variant.tag", OpVariantField: "variant.field",
	OpEnumValue: "enum.value",
	OpCastRegular: "cast.regular", OpCastForce: "cast.force", OpCastSafe: "cast.safe",
	OpInstanceCheck: "instance.check",
	OpJump: "jump", OpJumpIfFalse: "jump.if_false", OpJumpIfTrue: "jump.if_true",
	OpCall: "call", OpReturn: "return", OpReturnVoid: "return.void",
	OpMakeClosure: "closure.make", OpCaptureUpvalue: "closure.capture",
	OpYield: "yield", OpYieldBang: "yield_bang",
}

// String renders the mnemonic name for an opcode, "illegal" if out of range.
func (o Op) String() string {
	if n, ok := names[o]; ok {
		return n
	}
	return "illegal"
}

// Count is the number of defined opcodes.
const Count = int(opCount)
