package cpu

import (
	"log"

	"github.com/ezrec/ls8/device"
)

// NumInterruptLines is the width of the IM/IS registers and the vector
// table.
const NumInterruptLines = 8

// drainRequests moves every queued interrupt request into the IS
// register. The queue is drained once per cycle regardless of the
// interrupt gate, so requests latched while the gate is closed stay
// pending in IS. A keyboard event also latches its key byte at
// KEY_ADDRESS.
func (cpu *Cpu) drainRequests() {
	if cpu.IRQ == nil {
		return
	}

	for {
		ev, ok := cpu.IRQ.Poll()
		if !ok {
			return
		}

		is, _ := cpu.Reg.Read(REG_IS)
		cpu.Reg.Write(REG_IS, is|(1<<ev.Line))

		if ev.Line == device.LineKeyboard {
			cpu.Ram.Write(KEY_ADDRESS, ev.Key)
		}

		if cpu.Verbose {
			log.Printf("cpu: irq line %d", ev.Line)
		}
	}
}

// checkInterrupts dispatches the highest-priority pending, unmasked
// interrupt. Lines are scanned low-to-high; line 0 (the timer) wins
// over line 1 (the keyboard). Dispatch closes the interrupt gate,
// consumes IS, freezes the whole context on the stack (PC, FL, then
// r0-r6), and vectors through the table slot for the line.
func (cpu *Cpu) checkInterrupts() (err error) {
	im, err := cpu.Reg.Read(REG_IM)
	if err != nil {
		return
	}
	is, err := cpu.Reg.Read(REG_IS)
	if err != nil {
		return
	}

	masked := im & is
	if masked == 0 {
		return
	}

	line := 0
	for (masked & (1 << line)) == 0 {
		line++
	}

	if cpu.Verbose {
		log.Printf("cpu: interrupt dispatch line %d", line)
	}

	cpu.IntsEnabled = false
	if err = cpu.Reg.Write(REG_IS, 0); err != nil {
		return
	}

	if err = cpu.Push(cpu.PC); err != nil {
		return
	}
	if err = cpu.Push(cpu.FL); err != nil {
		return
	}
	for i := 0; i <= 6; i++ {
		var value byte
		if value, err = cpu.Reg.Read(i); err != nil {
			return
		}
		if err = cpu.Push(value); err != nil {
			return
		}
	}

	vector, err := cpu.Ram.Read(VECTOR_BASE + line)
	if err != nil {
		return
	}

	cpu.PC = vector
	return
}

// execIret unwinds an interrupt dispatch: r6 down to r0, then FL, then
// PC, in the exact mirror of the push order. The interrupt gate
// reopens and the timer baseline resets through the hook.
func execIret(cpu *Cpu, a, b byte) (err error) {
	for i := 6; i >= 0; i-- {
		var value byte
		if value, err = cpu.Pop(); err != nil {
			return
		}
		if err = cpu.Reg.Write(i, value); err != nil {
			return
		}
	}

	if cpu.FL, err = cpu.Pop(); err != nil {
		return
	}
	if cpu.PC, err = cpu.Pop(); err != nil {
		return
	}

	cpu.IntsEnabled = true
	if cpu.OnInterruptReturn != nil {
		cpu.OnInterruptReturn()
	}

	return
}

// execInt raises the interrupt line named by the operand register.
// The opcode encoding marks INT as setting the PC, so the handler
// steps past the instruction itself; without that, the dispatched
// handler would IRET straight back onto the INT.
func execInt(cpu *Cpu, a, b byte) (err error) {
	line, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	if int(line) >= NumInterruptLines {
		err = ErrInterruptLine
		return
	}

	is, err := cpu.Reg.Read(REG_IS)
	if err != nil {
		return
	}
	if err = cpu.Reg.Write(REG_IS, is|(1<<line)); err != nil {
		return
	}

	cpu.PC += 2
	return
}
