package cpu

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/ls8/device"
)

// Cpu is the LS-8 machine state. All mutation happens through Step,
// Run, or the component contracts; nothing is shared across goroutines.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Ram Memory    // 256-byte RAM image.
	Reg Registers // Register file, r5-r7 reserved.
	PC  uint8     // Program counter.
	FL  byte      // Flags register, set by CMP.

	IntsEnabled bool // Interrupt dispatch gate; cleared during a handler.
	Halted      bool // Terminal; set by HLT.

	Output io.Writer     // PRN/PRA sink.
	IRQ    *device.Queue // Pending interrupt requests.

	// OnInterruptReturn, if set, runs after IRET restores the
	// interrupted context. The emulator hooks the timer baseline
	// reset here.
	OnInterruptReturn func()
}

// NewCpu creates an LS-8 processor in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: os.Stdout,
		IRQ:    device.NewQueue(),
	}
	cpu.Reset()

	return
}

// Reset clears RAM, the registers, and the flags, points SP at the
// stack root, and re-enables interrupts.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Ram.Reset()
	cpu.Reg.Reset()
	cpu.PC = 0
	cpu.FL = 0
	cpu.IntsEnabled = true
	cpu.Halted = false
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("pc: %02X fl: %02X ints: %v\n", cpu.PC, cpu.FL, cpu.IntsEnabled)
	for i := 0; i < NUM_REGISTERS; i++ {
		val, _ := cpu.Reg.Read(i)
		text += fmt.Sprintf("r%d: %02X\n", i, val)
	}

	return
}

// Push writes a value at the new top of the downward-growing stack.
// SP arithmetic wraps mod 256, so a push with SP at 0 lands at 0xFF.
func (cpu *Cpu) Push(value byte) (err error) {
	sp, err := cpu.Reg.Read(REG_SP)
	if err != nil {
		return
	}

	sp--
	if err = cpu.Reg.Write(REG_SP, sp); err != nil {
		return
	}

	err = cpu.Ram.Write(int(sp), value)
	return
}

// Pop reads the value at the top of the stack and raises SP past it.
func (cpu *Cpu) Pop() (value byte, err error) {
	sp, err := cpu.Reg.Read(REG_SP)
	if err != nil {
		return
	}

	value, err = cpu.Ram.Read(int(sp))
	if err != nil {
		return
	}

	err = cpu.Reg.Write(REG_SP, sp+1)
	return
}

// Step executes a single fetch-decode-execute cycle: drain the IRQ
// queue into IS, dispatch a pending interrupt if the gate is open,
// fetch the opcode and both operand bytes, execute, and advance the PC
// unless the instruction set it directly.
func (cpu *Cpu) Step() (err error) {
	cpu.drainRequests()

	if cpu.IntsEnabled {
		if err = cpu.checkInterrupts(); err != nil {
			return
		}
	}

	op, a, b, err := cpu.fetch()
	if err != nil {
		return
	}

	ins, ok := op.Lookup()
	if !ok {
		err = ErrUnknownOpcode{Op: op, PC: cpu.PC}
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %02X: %v %02X %02X", cpu.PC, ins.Name, a, b)
	}

	err = ins.Exec(cpu, a, b)
	if err != nil {
		err = errors.Join(ErrInstruction{Op: op, PC: cpu.PC}, err)
		return
	}

	if !ins.SetsPC {
		cpu.PC += uint8(1 + ins.Operands)
	}

	return
}

// Run drives the fetch-execute loop until HLT or a fatal error. A
// program without HLT runs forever, like a real CPU with no watchdog.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		if err = cpu.Step(); err != nil {
			return
		}
	}

	return
}

// fetch reads the opcode at PC and the two bytes after it. The operand
// bytes are always fetched; unused ones are ignored by the handler.
// The operand addresses wrap mod 256 with the PC arithmetic.
func (cpu *Cpu) fetch() (op Opcode, a, b byte, err error) {
	raw, err := cpu.Ram.Read(int(cpu.PC))
	if err != nil {
		return
	}
	op = Opcode(raw)

	if a, err = cpu.Ram.Read(int(cpu.PC + 1)); err != nil {
		return
	}
	b, err = cpu.Ram.Read(int(cpu.PC + 2))
	return
}

func execNop(cpu *Cpu, a, b byte) error {
	return nil
}

func execHlt(cpu *Cpu, a, b byte) error {
	cpu.Halted = true
	return nil
}

func execLdi(cpu *Cpu, a, b byte) error {
	return cpu.Reg.Write(int(a), b)
}

func execLd(cpu *Cpu, a, b byte) (err error) {
	addr, err := cpu.Reg.Read(int(b))
	if err != nil {
		return
	}

	value, err := cpu.Ram.Read(int(addr))
	if err != nil {
		return
	}

	err = cpu.Reg.Write(int(a), value)
	return
}

func execSt(cpu *Cpu, a, b byte) (err error) {
	addr, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	value, err := cpu.Reg.Read(int(b))
	if err != nil {
		return
	}

	err = cpu.Ram.Write(int(addr), value)
	return
}

func execPush(cpu *Cpu, a, b byte) (err error) {
	value, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	err = cpu.Push(value)
	return
}

func execPop(cpu *Cpu, a, b byte) (err error) {
	value, err := cpu.Pop()
	if err != nil {
		return
	}

	err = cpu.Reg.Write(int(a), value)
	return
}

func execPrn(cpu *Cpu, a, b byte) (err error) {
	value, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(cpu.Output, "%d\n", value)
	return
}

func execPra(cpu *Cpu, a, b byte) (err error) {
	value, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(cpu.Output, "%c", value)
	return
}

// execCall pushes the return address (the instruction after CALL) and
// jumps to the address held in the operand register.
func execCall(cpu *Cpu, a, b byte) (err error) {
	target, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	if err = cpu.Push(cpu.PC + 2); err != nil {
		return
	}

	cpu.PC = target
	return
}

func execRet(cpu *Cpu, a, b byte) (err error) {
	addr, err := cpu.Pop()
	if err != nil {
		return
	}

	cpu.PC = addr
	return
}

func execJmp(cpu *Cpu, a, b byte) (err error) {
	target, err := cpu.Reg.Read(int(a))
	if err != nil {
		return
	}

	cpu.PC = target
	return
}

// branchOn builds a conditional jump taken when the masked FL bits are
// set (or clear, when inverted). Not-taken branches step past the
// opcode and its single operand.
func branchOn(mask byte, invert bool) func(cpu *Cpu, a, b byte) error {
	return func(cpu *Cpu, a, b byte) (err error) {
		taken := (cpu.FL & mask) != 0
		if invert {
			taken = !taken
		}

		if !taken {
			cpu.PC += 2
			return
		}

		target, err := cpu.Reg.Read(int(a))
		if err != nil {
			return
		}

		cpu.PC = target
		return
	}
}
