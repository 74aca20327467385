// Package cpu implements the LS-8 processor core.
//
// The LS-8 is an 8-bit register machine with 256 bytes of RAM, eight
// general-purpose registers (r5-r7 reserved by convention as the
// interrupt mask, interrupt status, and stack pointer), a flags register
// set by compare, and a downward-growing stack rooted at 0xF4. Memory
// above the stack root holds the interrupt vector table (0xF8-0xFF).
//
// The processor fetches one opcode byte plus two operand bytes per
// cycle, dispatches through a static instruction table, and polls an
// interrupt request queue at the top of every cycle. Interrupt dispatch
// freezes the running context on the stack; IRET restores it.
package cpu
