package emulator

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrStepLimit reports that Run hit its MaxSteps bound.
var ErrStepLimit = errors.New(f("step limit exceeded"))

// ErrUnknownProgram names a program missing from the built-in library.
type ErrUnknownProgram string

func (err ErrUnknownProgram) Error() string {
	return f("LS-8 does not know the program %q", string(err))
}
