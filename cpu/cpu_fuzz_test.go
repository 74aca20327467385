package cpu

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The wide-integer reference results, reduced mod 256, must match what
// the byte-wide ALU computes for any operand values.
func FuzzAlu(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint8(0))
	f.Add(uint8(200), uint8(100), uint8(1))
	f.Add(uint8(0xFF), uint8(0xFF), uint8(13))

	f.Fuzz(func(t *testing.T, va uint8, vb uint8, tag uint8) {
		assert := assert.New(t)

		op := AluOp(tag % 14)

		cpu := NewCpu()
		cpu.Reg.Write(0, va)
		cpu.Reg.Write(1, vb)

		err := cpu.Alu(op, 0, 1)
		if vb == 0 && (op == ALU_OP_DIV || op == ALU_OP_MOD) {
			assert.ErrorIs(err, ErrDivideByZero)
			return
		}
		assert.NoError(err)

		if op == ALU_OP_CMP {
			// Exactly one flag, agreeing with the unsigned order.
			switch {
			case va == vb:
				assert.Equal(FL_E, cpu.FL)
			case va < vb:
				assert.Equal(FL_L, cpu.FL)
			default:
				assert.Equal(FL_G, cpu.FL)
			}
			return
		}

		wide := map[AluOp]int{
			ALU_OP_ADD: int(va) + int(vb),
			ALU_OP_SUB: int(va) - int(vb),
			ALU_OP_MUL: int(va) * int(vb),
			ALU_OP_INC: int(va) + 1,
			ALU_OP_DEC: int(va) - 1,
			ALU_OP_AND: int(va & vb),
			ALU_OP_OR:  int(va | vb),
			ALU_OP_XOR: int(va ^ vb),
			ALU_OP_NOT: int(^va),
		}
		if vb != 0 {
			wide[ALU_OP_DIV] = int(va) / int(vb)
			wide[ALU_OP_MOD] = int(va) % int(vb)
		}
		if vb < 8 {
			wide[ALU_OP_SHL] = int(va) << vb
			wide[ALU_OP_SHR] = int(va) >> vb
		} else {
			wide[ALU_OP_SHL] = 0
			wide[ALU_OP_SHR] = 0
		}

		want, ok := wide[op]
		if !ok {
			t.Fatalf("no reference for %v", op)
		}

		out, _ := cpu.Reg.Read(0)
		assert.Equal(byte(want&0xFF), out, op.String())

		// Only the destination register changed.
		other, _ := cpu.Reg.Read(1)
		assert.Equal(vb, other)
	})
}

// Any single opcode byte must either execute or fail cleanly; the
// machine never panics on garbage.
func FuzzStep(f *testing.F) {
	f.Add([]byte{byte(LDI), 0, 8})
	f.Add([]byte{0xFF, 0xFF, 0xFF})
	f.Add([]byte{byte(IRET)})

	f.Fuzz(func(t *testing.T, image []byte) {
		if len(image) > MEMORY_SIZE {
			image = image[:MEMORY_SIZE]
		}

		cpu := NewCpu()
		cpu.Output = io.Discard
		cpu.Ram.LoadImage(image)

		for i := 0; i < 64; i++ {
			if cpu.Halted {
				break
			}
			if err := cpu.Step(); err != nil {
				break
			}
		}
	})
}
