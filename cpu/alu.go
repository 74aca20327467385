package cpu

import (
	"errors"
)

// FL register bits. CMP sets exactly one of these; the conditional
// jumps read them.
const (
	FL_E = byte(0b001) // equal
	FL_G = byte(0b010) // greater-than
	FL_L = byte(0b100) // less-than
)

// Alu performs one ALU operation on the registers named by the operand
// bytes, accumulating into the first. Unary operations ignore b. All
// results are truncated to the 8-bit register width by the byte
// arithmetic itself.
func (cpu *Cpu) Alu(op AluOp, a, b byte) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrAluOp, err)
		}
	}()

	va, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	var vb byte
	if op != ALU_OP_INC && op != ALU_OP_DEC && op != ALU_OP_NOT {
		vb, err = cpu.Reg.Read(int(b))
		if err != nil {
			return
		}
	}

	var out byte
	switch op {
	case ALU_OP_ADD:
		out = va + vb
	case ALU_OP_SUB:
		out = va - vb
	case ALU_OP_MUL:
		out = va * vb
	case ALU_OP_DIV:
		if vb == 0 {
			err = ErrDivideByZero
			return
		}
		out = va / vb
	case ALU_OP_MOD:
		if vb == 0 {
			err = ErrDivideByZero
			return
		}
		out = va % vb
	case ALU_OP_INC:
		out = va + 1
	case ALU_OP_DEC:
		out = va - 1
	case ALU_OP_AND:
		out = va & vb
	case ALU_OP_OR:
		out = va | vb
	case ALU_OP_XOR:
		out = va ^ vb
	case ALU_OP_NOT:
		out = ^va
	case ALU_OP_SHL:
		// Shift counts of 8 or more drain the byte to zero.
		out = va << vb
	case ALU_OP_SHR:
		out = va >> vb
	case ALU_OP_CMP:
		// Unsigned 8-bit compare; the three codes are mutually
		// exclusive and the prior flags are always discarded.
		switch {
		case va == vb:
			cpu.FL = FL_E
		case va < vb:
			cpu.FL = FL_L
		default:
			cpu.FL = FL_G
		}
		return
	default:
		err = ErrAluOp
		return
	}

	err = cpu.Reg.Write(int(a), out)
	return
}
