package memory

import (
	"errors"

	"github.com/ezrec/bus8/translate"
)

var f = translate.From

var (
	ErrMemoryOverflow = errors.New(f("memory overflow"))
	ErrAddressInvalid = errors.New(f("address invalid"))
)
