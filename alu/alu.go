// Package alu implements the combinational arithmetic/logic unit.
//
// The ALU reads its operands from the two scratch registers (T1, T2),
// drives its result onto the data bus, and publishes a two bit flags
// word (Zero, Sign) consumed by conditional jumps.
package alu

import (
	"github.com/ezrec/bus8/bus"
)

//go:generate go tool stringer -linecomment -type=Op

// Op is an ALU operation, selected by the low 3 bits of the control bus.
type Op int

const (
	ALU_OP_NONE = Op(0) // -
	ALU_OP_ADD  = Op(1) // add
	ALU_OP_SUB  = Op(2) // sub
	ALU_OP_AND  = Op(3) // and
	ALU_OP_IOR  = Op(4) // ior
	ALU_OP_XOR  = Op(5) // xor
	ALU_OP_NOT  = Op(6) // not
)

// ALU_OP_MASK selects the operation bits of the control bus.
const ALU_OP_MASK = 0b111

// Valid returns true for the six defined operations.
func (op Op) Valid() bool {
	return op >= ALU_OP_ADD && op <= ALU_OP_NOT
}

// Unary returns true if the operation ignores T2.
func (op Op) Unary() bool {
	return op == ALU_OP_NOT
}

// Flag bits.
const (
	FLAG_SIGN = 0b01 // Top bit of the result is set.
	FLAG_ZERO = 0b10 // Result is zero.

	FLAG_WIDTH = 2
)

// Compute performs an operation on width-bit operands.
// The result wraps silently; there is no carry or overflow.
func Compute(op Op, a, b int, width int) (result int, flags int, ok bool) {
	mask := (1 << width) - 1

	switch op {
	case ALU_OP_ADD:
		result = a + b
	case ALU_OP_SUB:
		result = a - b
	case ALU_OP_AND:
		result = a & b
	case ALU_OP_IOR:
		result = a | b
	case ALU_OP_XOR:
		result = a ^ b
	case ALU_OP_NOT:
		result = ^a
	default:
		return
	}

	ok = true
	result &= mask

	if result == 0 {
		flags |= FLAG_ZERO
	}
	if result&(1<<(width-1)) != 0 {
		flags |= FLAG_SIGN
	}

	return
}

// Alu is the arithmetic/logic unit.
type Alu struct {
	t1, t2  *bus.Register
	data    *bus.Bus
	control *bus.Bus
	flags   *bus.Bus
}

// NewAlu creates an ALU over the scratch registers. The ALU creates and
// owns its control and flags buses.
func NewAlu(t1, t2 *bus.Register, data *bus.Bus) (alu *Alu) {
	alu = &Alu{
		t1:      t1,
		t2:      t2,
		data:    data,
		control: bus.NewBus("alu.ctl", bus.CTRL_WIDTH),
		flags:   bus.NewBus("flags", FLAG_WIDTH),
	}

	return
}

// Control returns the operation select bus.
func (alu *Alu) Control() *bus.Bus {
	return alu.control
}

// Flags returns the flags bus.
func (alu *Alu) Flags() *bus.Bus {
	return alu.flags
}

// Evaluate runs the operation selected on the control bus, if any.
func (alu *Alu) Evaluate() (err error) {
	ctl := alu.control.Read()
	if ctl == 0 {
		return
	}

	op := Op(ctl) & ALU_OP_MASK
	result, flags, ok := Compute(op, alu.t1.Read(), alu.t2.Read(), alu.data.Width())
	if !ok {
		err = &ErrOp{Op: op}
		return
	}

	err = alu.flags.Write(flags)
	if err != nil {
		return
	}

	err = alu.data.Write(result)

	return
}
