package cpu

const (
	MEMORY_SIZE   = 256 // Addressable RAM cells.
	NUM_REGISTERS = 8   // General-purpose registers.
)

// Reserved register conventions. Nothing prevents ordinary arithmetic
// on these, which mirrors the raw hardware.
const (
	REG_IM = 5 // Interrupt mask
	REG_IS = 6 // Interrupt status
	REG_SP = 7 // Stack pointer
)

const (
	STACK_TOP   = 0xF4 // Initial stack pointer; the stack grows downward.
	KEY_ADDRESS = 0xF4 // Last keypress is latched here.
	VECTOR_BASE = 0xF8 // Interrupt vector table, one slot per line.
)

// Memory is the flat 256-byte RAM image. Raw addresses outside
// [0, MEMORY_SIZE) are rejected; the processor reduces its own address
// arithmetic mod 256 before any access, so a range error here means a
// caller bug or an oversized image, not a wrapped hardware address.
type Memory struct {
	cells [MEMORY_SIZE]byte
}

func (m *Memory) Read(addr int) (value byte, err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrMemoryRange
		return
	}

	value = m.cells[addr]
	return
}

func (m *Memory) Write(addr int, value byte) (err error) {
	if addr < 0 || addr >= MEMORY_SIZE {
		err = ErrMemoryRange
		return
	}

	m.cells[addr] = value
	return
}

// LoadImage places an image at address 0, clearing the rest of RAM.
func (m *Memory) LoadImage(image []byte) (err error) {
	if len(image) > MEMORY_SIZE {
		err = ErrImageSize
		return
	}

	m.Reset()
	copy(m.cells[:], image)
	return
}

func (m *Memory) Reset() {
	clear(m.cells[:])
}

// Registers is the 8-slot register file.
type Registers struct {
	slots [NUM_REGISTERS]byte
}

func (r *Registers) Read(index int) (value byte, err error) {
	if index < 0 || index >= NUM_REGISTERS {
		err = ErrRegisterRange
		return
	}

	value = r.slots[index]
	return
}

func (r *Registers) Write(index int, value byte) (err error) {
	if index < 0 || index >= NUM_REGISTERS {
		err = ErrRegisterRange
		return
	}

	r.slots[index] = value
	return
}

func (r *Registers) Reset() {
	clear(r.slots[:])
	r.slots[REG_SP] = STACK_TOP
}
