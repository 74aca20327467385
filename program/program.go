// Package program loads LS-8 memory images from their text format:
// one byte per line, written as a run of binary digits anchored at the
// start of the line, with anything after the digits ignored as
// commentary. Lines that do not start with a binary literal are
// comments. A line may instead hold a $(...) constant expression,
// evaluated at load time.
package program

import (
	"bufio"
	"io"
	"regexp"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// MAX_IMAGE_SIZE matches the LS-8 address space.
const MAX_IMAGE_SIZE = 256

var (
	binaryRe = regexp.MustCompile(`^([01]+)`)
	exprRe   = regexp.MustCompile(`^\$\((.*)\)\s*(?:#.*)?$`)
)

// Load parses a program image, one byte per line, to be placed at
// increasing memory addresses starting at 0.
func Load(r io.Reader) (image []byte, err error) {
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		value, ok, lerr := parseLine(line)
		if lerr != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: lerr}
			return
		}
		if !ok {
			continue
		}

		if len(image) >= MAX_IMAGE_SIZE {
			err = ErrImageSize
			return
		}
		image = append(image, value)
	}
	err = scanner.Err()

	return
}

// parseLine extracts one byte from a line. ok is false for comment and
// blank lines.
func parseLine(line string) (value byte, ok bool, err error) {
	if m := binaryRe.FindString(line); m != "" {
		rest := line[len(m):]
		if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			// A digit run that is not pure binary, e.g. "012".
			err = ErrBadLiteral
			return
		}

		wide, perr := strconv.ParseUint(m, 2, 8)
		if perr != nil {
			err = ErrBadLiteral
			return
		}

		value = byte(wide)
		ok = true
		return
	}

	if m := exprRe.FindStringSubmatch(line); m != nil {
		value, err = evalExpression(m[1])
		ok = err == nil
		return
	}

	return
}

// evalExpression does load-time $(...) evaluations.
func evalExpression(expr string) (value byte, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xFF {
		err = ErrParseExpression(expr)
		return
	}

	value = byte(st_int64)
	return
}
