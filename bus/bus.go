// Package bus models the wires of the machine: fixed width buses with a
// per-cycle write-once guard, and the registers that sit on them.
package bus

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

const (
	WIDTH_MIN = 1  // Narrowest bus.
	WIDTH_MAX = 31 // Widest bus; keeps the value inside a native int.
)

// Bus is a fixed width unsigned wire.
//
// A bus is written at most once per cycle. The dirty bit is set by any
// write and cleared by Clean(); a second write before Clean() is reported
// as contention, and the last writer wins.
type Bus struct {
	name      string
	width     int
	mask      int
	value     int
	dirty     bool
	contended bool
}

// NewBus creates a bus. Widths outside [WIDTH_MIN, WIDTH_MAX] are clamped.
func NewBus(name string, width int) (b *Bus) {
	switch {
	case width > WIDTH_MAX:
		log.WithFields(log.Fields{"bus": name, "width": width}).Warnf("bus: width clamped to %d", WIDTH_MAX)
		width = WIDTH_MAX
	case width < WIDTH_MIN:
		log.WithFields(log.Fields{"bus": name, "width": width}).Warnf("bus: width clamped to %d", WIDTH_MIN)
		width = WIDTH_MIN
	}

	b = &Bus{
		name:  name,
		width: width,
		mask:  (1 << width) - 1,
	}

	return
}

// Name of the bus.
func (b *Bus) Name() string {
	return b.name
}

// Width of the bus, in bits.
func (b *Bus) Width() int {
	return b.width
}

// Mask of the valid value bits.
func (b *Bus) Mask() int {
	return b.mask
}

// Read the current value.
func (b *Bus) Read() int {
	return b.value
}

// Dirty returns true if the bus has been written this cycle.
func (b *Bus) Dirty() bool {
	return b.dirty
}

// Write drives a value onto the bus.
//
// The value is masked to the bus width. The returned error, if any, is a
// warning: the write has always taken effect.
func (b *Bus) Write(value int) (err error) {
	masked := value & b.mask

	var errs []error
	if masked != value {
		errs = append(errs, ErrValueTruncated)
	}

	if b.dirty && !b.contended {
		b.contended = true
		errs = append(errs, ErrBusContention)
	}

	b.value = masked
	b.dirty = true

	if len(errs) != 0 {
		err = &ErrBus{Bus: b.name, Err: errors.Join(errs...)}
	}

	return
}

// WriteFloat floors a value, then writes it.
func (b *Bus) WriteFloat(value float64) (err error) {
	floor := math.Floor(value)

	var modulus float64
	if !math.IsInf(floor, 0) && !math.IsNaN(floor) {
		modulus = math.Mod(floor, float64(b.mask+1))
		if modulus < 0 {
			modulus += float64(b.mask + 1)
		}
	}

	err = b.Write(int(modulus))
	if floor != value || modulus != floor {
		err = errors.Join(err, &ErrBus{Bus: b.name, Err: ErrValueTruncated})
	}

	return
}

// Clean clears the dirty bit. Called once per cycle before any writes.
func (b *Bus) Clean() {
	b.dirty = false
	b.contended = false
}

// Precharge forces the bus to zero, and clears the dirty bit.
func (b *Bus) Precharge() {
	b.value = 0
	b.Clean()
}

// Reset clears both value and dirty bit.
func (b *Bus) Reset() {
	b.Precharge()
}

// store updates the value without the contention check.
func (b *Bus) store(value int) {
	b.value = value & b.mask
	b.dirty = true
}

// String returns the bus name and value.
func (b *Bus) String() string {
	digits := (b.width + 3) / 4
	return fmt.Sprintf("%v=0x%0*x", b.name, digits, b.value)
}
