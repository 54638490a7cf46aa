package bus

import (
	"errors"

	"github.com/ezrec/bus8/translate"
)

var f = translate.From

var (
	ErrBusContention  = errors.New(f("bus contention"))
	ErrValueTruncated = errors.New(f("value truncated"))
)

// ErrBus names the bus a protocol violation happened on.
type ErrBus struct {
	Bus string
	Err error
}

func (err *ErrBus) Error() string {
	return f("%v: %v", err.Bus, err.Err)
}

func (err *ErrBus) Unwrap() error {
	return err.Err
}
