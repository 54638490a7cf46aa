package cpu

import (
	"errors"

	"github.com/ezrec/bus8/translate"
)

var f = translate.From

var (
	// Decoder errors
	ErrDecodeFault = errors.New(f("decode fault"))

	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrLiteralMultiple    = errors.New(f("more than one literal"))
	ErrLiteralRange       = errors.New(f("literal out of range"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
)

// ErrDecode reports an instruction word the sequencer does not implement.
type ErrDecode Code

func (err ErrDecode) Error() string {
	return f("%v 0x%02x", ErrDecodeFault, uint8(err))
}

func (err ErrDecode) Is(target error) bool {
	return target == ErrDecodeFault
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseLiteral string

func (err ErrParseLiteral) Error() string {
	return f("'%v' %v", string(err), ErrLiteralRange)
}

func (err ErrParseLiteral) Unwrap() error {
	return ErrLiteralRange
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
