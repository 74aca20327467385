package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Machine state errors
	ErrMemoryRange   = errors.New(f("memory address out of range"))
	ErrRegisterRange = errors.New(f("register index out of range"))
	ErrImageSize     = errors.New(f("program image exceeds memory"))

	// ALU errors
	ErrAluOp        = errors.New(f("unsupported alu operation"))
	ErrDivideByZero = errors.New(f("divide by zero"))

	// Interrupt errors
	ErrInterruptLine = errors.New(f("interrupt line out of range"))
)

// ErrUnknownOpcode reports a fetched byte with no instruction table entry.
type ErrUnknownOpcode struct {
	Op Opcode
	PC uint8
}

func (eo ErrUnknownOpcode) Error() string {
	return f("unknown instruction 0x%02x at pc 0x%02x", byte(eo.Op), eo.PC)
}

func (eo ErrUnknownOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOpcode)
	return
}

// ErrInstruction locates a failed instruction for diagnostics.
type ErrInstruction struct {
	Op Opcode
	PC uint8
}

func (ei ErrInstruction) Error() string {
	return f("instruction %v at pc 0x%02x", ei.Op.String(), ei.PC)
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}
