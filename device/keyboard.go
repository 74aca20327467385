package device

import (
	"io"
)

// Keyboard turns bytes from a reader into LineKeyboard events. A
// goroutine owns the (possibly blocking) reader and feeds an internal
// buffer; Poll never blocks, so the machine loop and the timer are
// never starved waiting for input. The goroutine exits when the reader
// does.
type Keyboard struct {
	keys chan byte
}

var _ Source = (*Keyboard)(nil)

func NewKeyboard(r io.Reader) (kb *Keyboard) {
	kb = &Keyboard{
		keys: make(chan byte, QUEUE_DEPTH),
	}
	go kb.read(r)

	return
}

func (kb *Keyboard) read(r io.Reader) {
	defer close(kb.keys)

	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			select {
			case kb.keys <- buf[0]:
			default:
				// Buffer full; the keystroke is lost.
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll reports one buffered keystroke, if any.
func (kb *Keyboard) Poll() (ev Event, ok bool) {
	select {
	case key, open := <-kb.keys:
		if !open {
			return
		}
		ev = Event{Line: LineKeyboard, Key: key}
		ok = true
	default:
	}

	return
}
