// Package emulator assembles a runnable LS-8 machine: the processor
// core, the timer and keyboard interrupt sources, and a library of
// built-in example programs.
package emulator

import (
	"embed"
	"io"
	"log"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/device"
	"github.com/ezrec/ls8/program"
)

//go:embed examples/*.ls8
var examples embed.FS

// PollInterval is the number of fetch-execute cycles between polls of
// the interrupt sources. The timer measures wall-clock time, so a
// coarser interval delays delivery but never changes the tick rate.
const PollInterval = 1

// Emulator state. CPU + interrupt sources + program library.
type Emulator struct {
	Verbose  bool // If set, traces every executed instruction.
	*cpu.Cpu      // The LS-8 processor.

	Timer    device.Timer     // Timer interrupt source.
	Keyboard *device.Keyboard // Keyboard interrupt source; nil for none.

	// MaxSteps bounds Run for programs that spin forever; zero
	// means unbounded.
	MaxSteps int
}

// NewEmulator creates an emulator with the default timer interval and
// no keyboard.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}
	emu.Timer.Interval = device.DefaultTimerInterval
	emu.Cpu.OnInterruptReturn = emu.Timer.Reset

	return
}

// Names lists the built-in programs.
func Names() (names []string) {
	entries, err := examples.ReadDir("examples")
	if err != nil {
		return
	}

	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".ls8"))
	}

	return
}

// Reset loads a built-in program into a freshly reset machine.
func (emu *Emulator) Reset(name string) (err error) {
	file, err := examples.Open("examples/" + name + ".ls8")
	if err != nil {
		err = ErrUnknownProgram(name)
		return
	}
	defer file.Close()

	err = emu.Load(file)
	return
}

// Load resets the machine and loads a program image from a reader.
func (emu *Emulator) Load(r io.Reader) (err error) {
	image, err := program.Load(r)
	if err != nil {
		return
	}

	emu.Cpu.Reset()
	if err = emu.Cpu.Ram.LoadImage(image); err != nil {
		return
	}

	emu.Timer.Reset()
	return
}

// Run drives the machine until HLT, a fatal error, or the step bound.
// Each cycle polls the interrupt sources into the request queue before
// the processor steps.
func (emu *Emulator) Run() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	steps := 0
	for !emu.Cpu.Halted {
		if emu.MaxSteps > 0 && steps >= emu.MaxSteps {
			err = ErrStepLimit
			return
		}
		steps++

		if steps%PollInterval == 0 {
			if ev, ok := emu.Timer.Poll(); ok {
				emu.Cpu.IRQ.Raise(ev)
			}
			if emu.Keyboard != nil {
				if ev, ok := emu.Keyboard.Poll(); ok {
					emu.Cpu.IRQ.Raise(ev)
				}
			}
		}

		if emu.Verbose {
			emu.trace()
		}

		if err = emu.Cpu.Step(); err != nil {
			return
		}
	}

	return
}

// trace logs one line per instruction: PC, FL, the next three memory
// bytes, and the whole register file, all in hex.
func (emu *Emulator) trace() {
	c := emu.Cpu

	var window [3]byte
	for i := range window {
		window[i], _ = c.Ram.Read(int(c.PC + uint8(i)))
	}

	regs := make([]any, 0, cpu.NUM_REGISTERS)
	for i := 0; i < cpu.NUM_REGISTERS; i++ {
		value, _ := c.Reg.Read(i)
		regs = append(regs, value)
	}

	log.Printf("TRACE: %02X %02X | %02X %02X %02X |"+
		strings.Repeat(" %02X", cpu.NUM_REGISTERS),
		append([]any{c.PC, c.FL, window[0], window[1], window[2]}, regs...)...)
}
