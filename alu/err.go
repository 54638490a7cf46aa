package alu

import (
	"errors"

	"github.com/ezrec/bus8/translate"
)

var f = translate.From

var (
	ErrOpInvalid = errors.New(f("alu op invalid"))
)

// ErrOp reports an undefined operation on the control bus.
type ErrOp struct {
	Op Op
}

func (err *ErrOp) Error() string {
	return f("%v %v", ErrOpInvalid, err.Op)
}

func (err *ErrOp) Is(target error) bool {
	return target == ErrOpInvalid
}
