// Package device provides the interrupt event sources for the LS-8
// machine. Sources (a wall-clock timer and a non-blocking keyboard)
// produce Events; the processor drains them from a bounded Queue once
// per fetch-execute cycle. Tests inject synthetic events by raising
// them on the queue directly, with no real clock or terminal involved.
package device

// Line is an interrupt line number, the bit position in the IM/IS
// registers.
type Line int

const (
	LineTimer    = Line(0) // Periodic timer tick.
	LineKeyboard = Line(1) // Keystroke, with the key byte attached.
)

// Event is one interrupt request. Key is meaningful only for
// LineKeyboard.
type Event struct {
	Line Line
	Key  byte
}

// Source produces interrupt events when polled. Poll never blocks.
type Source interface {
	Poll() (ev Event, ok bool)
}
