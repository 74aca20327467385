package emulator

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/device"
)

// runBuiltin runs a built-in program with the timer off and output
// captured.
func runBuiltin(t *testing.T, name string) (output string, err error) {
	t.Helper()

	emu := NewEmulator()
	emu.Timer.Interval = 0
	emu.MaxSteps = 100000

	buf := &bytes.Buffer{}
	emu.Cpu.Output = buf

	if rerr := emu.Reset(name); rerr != nil {
		t.Fatalf("%v: %v", name, rerr)
	}

	err = emu.Run()
	output = buf.String()
	return
}

func TestEmulator_New(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NotNil(emu.Cpu)
	assert.Equal(device.DefaultTimerInterval, emu.Timer.Interval)
	assert.NotNil(emu.Cpu.OnInterruptReturn)
}

func TestEmulator_Names(t *testing.T) {
	assert := assert.New(t)

	names := Names()
	for _, want := range []string{
		"call", "interrupts", "keyboard", "mult", "print8",
		"printstr", "sctest", "stack", "stackoverflow",
	} {
		assert.Contains(names, want)
	}
}

func TestEmulator_UnknownProgram(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Reset("nosuch")
	assert.ErrorIs(err, ErrUnknownProgram("nosuch"))
}

func TestEmulator_Programs(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		output string
	}){
		{"print8", "8\n"},
		{"mult", "72\n"},
		{"stack", "2\n4\n"},
		{"call", "20\n30\n36\n60\n"},
		{"sctest", "1\n4\n5\n"},
		{"printstr", "LS-8\n"},
	}

	for _, entry := range table {
		output, err := runBuiltin(t, entry.name)
		assert.NoError(err, entry.name)
		assert.Equal(entry.output, output, entry.name)
	}
}

func TestEmulator_StackOverflowDies(t *testing.T) {
	assert := assert.New(t)

	// The wrapped stack tramples the code; the machine must die
	// with a fatal error rather than misbehave quietly.
	output, err := runBuiltin(t, "stackoverflow")
	assert.Error(err)
	assert.NotErrorIs(err, ErrStepLimit)
	assert.ErrorIs(err, cpu.ErrRegisterRange)
	assert.NotEmpty(output)
}

func TestEmulator_UnknownOpcodeDies(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Timer.Interval = 0
	emu.Cpu.Output = &bytes.Buffer{}

	err := emu.Load(strings.NewReader("11111111\n"))
	assert.NoError(err)

	assert.ErrorIs(emu.Run(), cpu.ErrUnknownOpcode{})
}

func TestEmulator_TimerInterrupts(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.MaxSteps = 2000

	buf := &bytes.Buffer{}
	emu.Cpu.Output = buf

	// A synthetic clock that jumps most of an interval per poll.
	now := time.Unix(1000, 0)
	emu.Timer.Interval = time.Second
	emu.Timer.Now = func() time.Time {
		now = now.Add(600 * time.Millisecond)
		return now
	}

	assert.NoError(emu.Reset("interrupts"))

	// The program spins forever; the step bound ends the run.
	assert.ErrorIs(emu.Run(), ErrStepLimit)
	assert.Contains(buf.String(), "A")
}

func TestEmulator_Keyboard(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Timer.Interval = 0
	emu.MaxSteps = 100000
	// A single keystroke; a fast burst may collapse in the 0xF4
	// latch before the handler is even unmasked.
	emu.Keyboard = device.NewKeyboard(strings.NewReader("h"))

	buf := &bytes.Buffer{}
	emu.Cpu.Output = buf

	assert.NoError(emu.Reset("keyboard"))
	assert.ErrorIs(emu.Run(), ErrStepLimit)
	assert.Equal("h", buf.String())
}
