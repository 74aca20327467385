package cpu

import (
	"fmt"
)

// Opcode is one instruction byte. The encoding packs metadata into the
// high bits: AABCDDDD, where AA is the operand count, B marks an ALU
// instruction, C marks an instruction that sets the PC itself, and DDDD
// is the instruction identifier.
type Opcode byte

const (
	NOP  = Opcode(0b00000000)
	HLT  = Opcode(0b00000001)
	RET  = Opcode(0b00010001)
	IRET = Opcode(0b00010011)
	PUSH = Opcode(0b01000101)
	POP  = Opcode(0b01000110)
	PRN  = Opcode(0b01000111)
	PRA  = Opcode(0b01001000)
	CALL = Opcode(0b01010000)
	INT  = Opcode(0b01010010)
	JMP  = Opcode(0b01010100)
	JEQ  = Opcode(0b01010101)
	JNE  = Opcode(0b01010110)
	JGT  = Opcode(0b01010111)
	JLT  = Opcode(0b01011000)
	JLE  = Opcode(0b01011001)
	JGE  = Opcode(0b01011010)
	INC  = Opcode(0b01100101)
	DEC  = Opcode(0b01100110)
	NOT  = Opcode(0b01101001)
	LDI  = Opcode(0b10000010)
	LD   = Opcode(0b10000011)
	ST   = Opcode(0b10000100)
	ADD  = Opcode(0b10100000)
	SUB  = Opcode(0b10100001)
	MUL  = Opcode(0b10100010)
	DIV  = Opcode(0b10100011)
	MOD  = Opcode(0b10100100)
	CMP  = Opcode(0b10100111)
	AND  = Opcode(0b10101000)
	OR   = Opcode(0b10101010)
	XOR  = Opcode(0b10101011)
	SHL  = Opcode(0b10101100)
	SHR  = Opcode(0b10101101)
)

// Operands returns the operand byte count encoded in the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// IsAlu returns true if the opcode is routed through the ALU.
func (op Opcode) IsAlu() bool {
	return (op & 0b00100000) != 0
}

// SetsPC returns true if the instruction sets the PC itself, in which
// case the control loop must not auto-advance it.
func (op Opcode) SetsPC() bool {
	return (op & 0b00010000) != 0
}

// String returns the mnemonic, or the raw byte for unmapped opcodes.
func (op Opcode) String() string {
	ins, ok := instructionTable[op]
	if !ok {
		return fmt.Sprintf("Opcode(0x%02x)", byte(op))
	}
	return ins.Name
}

// AluOp is an ALU operation tag.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0)  // add
	ALU_OP_SUB = AluOp(1)  // sub
	ALU_OP_MUL = AluOp(2)  // mul
	ALU_OP_DIV = AluOp(3)  // div
	ALU_OP_MOD = AluOp(4)  // mod
	ALU_OP_INC = AluOp(5)  // inc
	ALU_OP_DEC = AluOp(6)  // dec
	ALU_OP_CMP = AluOp(7)  // cmp
	ALU_OP_AND = AluOp(8)  // and
	ALU_OP_OR  = AluOp(9)  // or
	ALU_OP_XOR = AluOp(10) // xor
	ALU_OP_NOT = AluOp(11) // not
	ALU_OP_SHL = AluOp(12) // shl
	ALU_OP_SHR = AluOp(13) // shr
)

// Instruction is one entry of the dispatch table. Operands and SetsPC
// restate what the opcode byte encodes; keeping them as explicit data
// makes the table auditable, and the agreement is checked by test.
type Instruction struct {
	Name     string
	Operands int
	SetsPC   bool
	Exec     func(cpu *Cpu, a, b byte) error
}

func alu(op AluOp) func(cpu *Cpu, a, b byte) error {
	return func(cpu *Cpu, a, b byte) error {
		return cpu.Alu(op, a, b)
	}
}

var instructionTable = map[Opcode]Instruction{
	NOP:  {Name: "NOP", Operands: 0, Exec: execNop},
	HLT:  {Name: "HLT", Operands: 0, Exec: execHlt},
	RET:  {Name: "RET", Operands: 0, SetsPC: true, Exec: execRet},
	IRET: {Name: "IRET", Operands: 0, SetsPC: true, Exec: execIret},
	PUSH: {Name: "PUSH", Operands: 1, Exec: execPush},
	POP:  {Name: "POP", Operands: 1, Exec: execPop},
	PRN:  {Name: "PRN", Operands: 1, Exec: execPrn},
	PRA:  {Name: "PRA", Operands: 1, Exec: execPra},
	CALL: {Name: "CALL", Operands: 1, SetsPC: true, Exec: execCall},
	INT:  {Name: "INT", Operands: 1, SetsPC: true, Exec: execInt},
	JMP:  {Name: "JMP", Operands: 1, SetsPC: true, Exec: execJmp},
	JEQ:  {Name: "JEQ", Operands: 1, SetsPC: true, Exec: branchOn(FL_E, false)},
	JNE:  {Name: "JNE", Operands: 1, SetsPC: true, Exec: branchOn(FL_E, true)},
	JGT:  {Name: "JGT", Operands: 1, SetsPC: true, Exec: branchOn(FL_G, false)},
	JLT:  {Name: "JLT", Operands: 1, SetsPC: true, Exec: branchOn(FL_L, false)},
	JLE:  {Name: "JLE", Operands: 1, SetsPC: true, Exec: branchOn(FL_L|FL_E, false)},
	JGE:  {Name: "JGE", Operands: 1, SetsPC: true, Exec: branchOn(FL_G|FL_E, false)},
	INC:  {Name: "INC", Operands: 1, Exec: alu(ALU_OP_INC)},
	DEC:  {Name: "DEC", Operands: 1, Exec: alu(ALU_OP_DEC)},
	NOT:  {Name: "NOT", Operands: 1, Exec: alu(ALU_OP_NOT)},
	LDI:  {Name: "LDI", Operands: 2, Exec: execLdi},
	LD:   {Name: "LD", Operands: 2, Exec: execLd},
	ST:   {Name: "ST", Operands: 2, Exec: execSt},
	ADD:  {Name: "ADD", Operands: 2, Exec: alu(ALU_OP_ADD)},
	SUB:  {Name: "SUB", Operands: 2, Exec: alu(ALU_OP_SUB)},
	MUL:  {Name: "MUL", Operands: 2, Exec: alu(ALU_OP_MUL)},
	DIV:  {Name: "DIV", Operands: 2, Exec: alu(ALU_OP_DIV)},
	MOD:  {Name: "MOD", Operands: 2, Exec: alu(ALU_OP_MOD)},
	CMP:  {Name: "CMP", Operands: 2, Exec: alu(ALU_OP_CMP)},
	AND:  {Name: "AND", Operands: 2, Exec: alu(ALU_OP_AND)},
	OR:   {Name: "OR", Operands: 2, Exec: alu(ALU_OP_OR)},
	XOR:  {Name: "XOR", Operands: 2, Exec: alu(ALU_OP_XOR)},
	SHL:  {Name: "SHL", Operands: 2, Exec: alu(ALU_OP_SHL)},
	SHR:  {Name: "SHR", Operands: 2, Exec: alu(ALU_OP_SHR)},
}

// Lookup returns the dispatch table entry for an opcode.
func (op Opcode) Lookup() (ins Instruction, ok bool) {
	ins, ok = instructionTable[op]
	return
}
