package emulator

import (
	"github.com/ezrec/bus8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime warning.
type ErrRuntime struct {
	Addr int // Address of the executing instruction.
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("address 0x%02x %v", err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrEdit reports a memory edit that failed.
type ErrEdit struct {
	Addr int
	Line string
	Err  error
}

func (err *ErrEdit) Error() string {
	return f("address 0x%02x '%v' %v", err.Addr, err.Line, err.Err)
}

func (err *ErrEdit) Unwrap() error {
	return err.Err
}
