package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func aluCpu(t *testing.T, va, vb byte) *Cpu {
	t.Helper()

	cpu := NewCpu()
	cpu.Reg.Write(0, va)
	cpu.Reg.Write(1, vb)
	return cpu
}

func TestAlu_Arithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     AluOp
		va, vb byte
		out    byte
	}){
		{"add", ALU_OP_ADD, 1, 2, 3},
		{"add_wraps", ALU_OP_ADD, 200, 100, byte((200 + 100) % 256)},
		{"sub", ALU_OP_SUB, 9, 5, 4},
		{"sub_wraps", ALU_OP_SUB, 0, 1, 0xFF},
		{"mul", ALU_OP_MUL, 8, 9, 72},
		{"mul_wraps", ALU_OP_MUL, 16, 16, 0},
		{"div", ALU_OP_DIV, 72, 9, 8},
		{"mod", ALU_OP_MOD, 10, 3, 1},
		{"inc", ALU_OP_INC, 0xFF, 0, 0},
		{"dec", ALU_OP_DEC, 0, 0, 0xFF},
		{"and", ALU_OP_AND, 0b1100, 0b1010, 0b1000},
		{"or", ALU_OP_OR, 0b1100, 0b1010, 0b1110},
		{"xor", ALU_OP_XOR, 0b1100, 0b1010, 0b0110},
		{"not", ALU_OP_NOT, 0b10101010, 0, 0b01010101},
		{"shl", ALU_OP_SHL, 0b10000001, 1, 0b00000010},
		{"shl_drains", ALU_OP_SHL, 0xFF, 8, 0},
		{"shr", ALU_OP_SHR, 0b10000001, 1, 0b01000000},
		{"shr_drains", ALU_OP_SHR, 0xFF, 200, 0},
	}

	for _, entry := range table {
		cpu := aluCpu(t, entry.va, entry.vb)

		err := cpu.Alu(entry.op, 0, 1)
		assert.NoError(err, entry.name)

		out, _ := cpu.Reg.Read(0)
		assert.Equal(entry.out, out, entry.name)
	}
}

func TestAlu_DivideByZero(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []AluOp{ALU_OP_DIV, ALU_OP_MOD} {
		cpu := aluCpu(t, 10, 0)
		assert.ErrorIs(cpu.Alu(op, 0, 1), ErrDivideByZero, op.String())
	}
}

func TestAlu_Compare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		va, vb byte
		fl     byte
	}){
		{"equal", 10, 10, FL_E},
		{"equal_zero", 0, 0, FL_E},
		{"less", 10, 20, FL_L},
		{"greater", 20, 10, FL_G},
		{"unsigned_high", 0xFF, 1, FL_G},
	}

	for _, entry := range table {
		cpu := aluCpu(t, entry.va, entry.vb)
		cpu.FL = FL_E | FL_G | FL_L // stale flags must be discarded

		assert.NoError(cpu.Alu(ALU_OP_CMP, 0, 1), entry.name)
		assert.Equal(entry.fl, cpu.FL, entry.name)
	}
}

func TestAlu_UnsupportedOp(t *testing.T) {
	assert := assert.New(t)

	cpu := aluCpu(t, 1, 2)
	assert.ErrorIs(cpu.Alu(AluOp(99), 0, 1), ErrAluOp)
}

func TestAlu_RegisterRange(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.ErrorIs(cpu.Alu(ALU_OP_ADD, 8, 0), ErrRegisterRange)
	assert.ErrorIs(cpu.Alu(ALU_OP_ADD, 0, 8), ErrRegisterRange)
}
