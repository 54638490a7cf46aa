package cpu

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/bus8/alu"
	"github.com/ezrec/bus8/bus"
	"github.com/ezrec/bus8/memory"
)

//go:generate go tool stringer -linecomment -type=Step

// Step is a micro-step of the sequencer.
type Step int

const (
	STEP_FETCH_1 = Step(iota) // fetch1
	STEP_FETCH_2              // fetch2
	STEP_FETCH_3              // fetch3
	STEP_FETCH_4              // fetch4

	STEP_RAM_ADDRESS       // ram.address
	STEP_RAM_ADDRESS_CLEAR // ram.address.clear
	STEP_RAM_TRANSFER      // ram.transfer
	STEP_RAM_CLEAR         // ram.clear

	STEP_ALU_OPERAND_1       // alu.operand1
	STEP_ALU_OPERAND_1_CLEAR // alu.operand1.clear
	STEP_ALU_OPERAND_2       // alu.operand2
	STEP_ALU_OPERAND_2_CLEAR // alu.operand2.clear

	STEP_ALU_IMM_ADDRESS        // alu.imm.address
	STEP_ALU_IMM_ADDRESS_CLEAR  // alu.imm.address.clear
	STEP_ALU_IMM_LOAD           // alu.imm.load
	STEP_ALU_IMM_LOAD_CLEAR     // alu.imm.load.clear
	STEP_ALU_IMM_OPERAND        // alu.imm.operand
	STEP_ALU_IMM_OPERAND_CLEAR  // alu.imm.operand.clear
	STEP_ALU_COMPUTE            // alu.compute
	STEP_ALU_CLEAR              // alu.clear

	STEP_JUMP_EVALUATE      // jump.evaluate
	STEP_JUMP_ADDRESS_CLEAR // jump.address.clear
	STEP_JUMP_LOAD          // jump.load
	STEP_JUMP_CLEAR         // jump.clear
)

// STEP_COUNT is the number of micro-steps.
const STEP_COUNT = int(STEP_JUMP_CLEAR) + 1

// Wiring is the set of buses the sequencer reads and controls.
type Wiring struct {
	Ir, Pc, Mar *bus.Register
	A, B        *bus.Register
	T1, T2      *bus.Register
	Alu         *bus.Bus // ALU operation select.
	Ram         *bus.Bus // Memory read/write.
	Flags       *bus.Bus // ALU flags.
}

// ControlWrite is one control bus assignment made by a micro-step.
type ControlWrite struct {
	Bus   *bus.Bus
	Value int
}

// Decoder is the microcode sequencer.
type Decoder struct {
	Verbose bool // Set to enable verbose logging.

	ir, pc, mar *bus.Register
	reg         [2]*bus.Register // a, b
	scratch     [2]*bus.Register // t1, t2
	alu         *bus.Bus
	ram         *bus.Bus
	flags       *bus.Bus

	step   Step           // Step to run on the next cycle.
	last   Step           // Step run on the last cycle.
	writes []ControlWrite // Control writes of the last step.
	err    error
}

// NewDecoder creates a sequencer wired to the machine's buses.
func NewDecoder(wiring Wiring) (d *Decoder) {
	d = &Decoder{
		ir:      wiring.Ir,
		pc:      wiring.Pc,
		mar:     wiring.Mar,
		reg:     [2]*bus.Register{wiring.A, wiring.B},
		scratch: [2]*bus.Register{wiring.T1, wiring.T2},
		alu:     wiring.Alu,
		ram:     wiring.Ram,
		flags:   wiring.Flags,
	}

	d.Reset()

	return
}

// Reset returns the sequencer to the first fetch step.
func (d *Decoder) Reset() {
	d.step = STEP_FETCH_1
	d.last = STEP_FETCH_1
	d.writes = d.writes[:0]
	d.err = nil
}

// Step returns the micro-step that will run on the next cycle.
func (d *Decoder) Step() Step {
	return d.step
}

// Last returns the micro-step run on the last cycle.
func (d *Decoder) Last() Step {
	return d.last
}

// Writes returns a copy of the control writes made by the last micro-step.
func (d *Decoder) Writes() []ControlWrite {
	return slices.Clone(d.writes)
}

// set drives a control bus for this cycle.
func (d *Decoder) set(b *bus.Bus, value int) {
	d.writes = append(d.writes, ControlWrite{Bus: b, Value: value})
	err := b.Write(value)
	if err != nil {
		d.err = errors.Join(d.err, err)
	}
}

// Execute runs exactly one micro-step: it asserts this cycle's control
// bus values and selects the next step.
//
// The returned error is a warning; the sequencer always advances.
func (d *Decoder) Execute() (err error) {
	d.writes = d.writes[:0]
	d.err = nil
	d.last = d.step

	code := Code(d.ir.Read())
	d.step = d.execute(d.step, code)

	if d.Verbose {
		log.WithFields(log.Fields{
			"step": d.last,
			"ir":   fmt.Sprintf("0x%02x", uint8(code)),
			"next": d.step,
		}).Info(d.Description())
	}

	err = d.err
	return
}

// dispatch selects the first execute step for an instruction.
func (d *Decoder) dispatch(code Code) Step {
	if code == 0 {
		return STEP_FETCH_1
	}

	if !code.Valid() {
		d.err = errors.Join(d.err, ErrDecode(code))
		return STEP_FETCH_1
	}

	switch code.Type() {
	case TYPE_RAM:
		return STEP_RAM_ADDRESS
	case TYPE_ALU:
		return STEP_ALU_OPERAND_1
	case TYPE_ALU_IMM:
		return STEP_ALU_IMM_ADDRESS
	default:
		return STEP_JUMP_EVALUATE
	}
}

// execute performs the control writes for a step, and returns the next step.
func (d *Decoder) execute(step Step, code Code) (next Step) {
	x, y, z := code.X(), code.Y(), code.Z()

	switch step {
	case STEP_FETCH_1:
		d.set(d.pc.Control(), bus.CTRL_ENABLE)
		d.set(d.mar.Control(), bus.CTRL_SET)
		next = STEP_FETCH_2
	case STEP_FETCH_2:
		d.set(d.pc.Control(), bus.CTRL_INCREMENT)
		d.set(d.mar.Control(), 0)
		next = STEP_FETCH_3
	case STEP_FETCH_3:
		d.set(d.pc.Control(), 0)
		d.set(d.ram, memory.RAM_READ)
		d.set(d.ir.Control(), bus.CTRL_SET)
		next = STEP_FETCH_4
	case STEP_FETCH_4:
		d.set(d.ram, 0)
		d.set(d.ir.Control(), 0)
		next = d.dispatch(code)

	case STEP_RAM_ADDRESS:
		if x == 1 {
			d.set(d.pc.Control(), bus.CTRL_ENABLE)
		} else {
			d.set(d.reg[y].Control(), bus.CTRL_ENABLE)
		}
		d.set(d.mar.Control(), bus.CTRL_SET)
		next = STEP_RAM_ADDRESS_CLEAR
	case STEP_RAM_ADDRESS_CLEAR:
		if x == 1 {
			d.set(d.pc.Control(), bus.CTRL_INCREMENT)
		} else {
			d.set(d.reg[y].Control(), 0)
		}
		d.set(d.mar.Control(), 0)
		next = STEP_RAM_TRANSFER
	case STEP_RAM_TRANSFER:
		if x == 1 {
			d.set(d.pc.Control(), 0)
		}
		switch code.RamOp() {
		case RAM_OP_LOAD:
			d.set(d.ram, memory.RAM_READ)
			d.set(d.reg[z].Control(), bus.CTRL_SET)
		case RAM_OP_SAVE:
			d.set(d.reg[z].Control(), bus.CTRL_ENABLE)
			d.set(d.ram, memory.RAM_WRITE)
		}
		next = STEP_RAM_CLEAR
	case STEP_RAM_CLEAR:
		d.set(d.ram, 0)
		d.set(d.reg[z].Control(), 0)
		next = STEP_FETCH_1

	case STEP_ALU_OPERAND_1:
		d.set(d.reg[x].Control(), bus.CTRL_ENABLE)
		d.set(d.scratch[SEL_T1].Control(), bus.CTRL_SET)
		next = STEP_ALU_OPERAND_1_CLEAR
	case STEP_ALU_OPERAND_1_CLEAR:
		d.set(d.reg[x].Control(), 0)
		d.set(d.scratch[SEL_T1].Control(), 0)
		next = STEP_ALU_OPERAND_2
		if code.AluOp().Unary() {
			next = STEP_ALU_COMPUTE
		}
	case STEP_ALU_OPERAND_2:
		d.set(d.reg[y].Control(), bus.CTRL_ENABLE)
		d.set(d.scratch[SEL_T2].Control(), bus.CTRL_SET)
		next = STEP_ALU_OPERAND_2_CLEAR
	case STEP_ALU_OPERAND_2_CLEAR:
		d.set(d.reg[y].Control(), 0)
		d.set(d.scratch[SEL_T2].Control(), 0)
		next = STEP_ALU_COMPUTE

	case STEP_ALU_IMM_ADDRESS:
		d.set(d.pc.Control(), bus.CTRL_ENABLE)
		d.set(d.mar.Control(), bus.CTRL_SET)
		next = STEP_ALU_IMM_ADDRESS_CLEAR
	case STEP_ALU_IMM_ADDRESS_CLEAR:
		d.set(d.pc.Control(), bus.CTRL_INCREMENT)
		d.set(d.mar.Control(), 0)
		next = STEP_ALU_IMM_LOAD
	case STEP_ALU_IMM_LOAD:
		d.set(d.pc.Control(), 0)
		d.set(d.ram, memory.RAM_READ)
		d.set(d.scratch[x].Control(), bus.CTRL_SET)
		next = STEP_ALU_IMM_LOAD_CLEAR
	case STEP_ALU_IMM_LOAD_CLEAR:
		d.set(d.ram, 0)
		d.set(d.scratch[x].Control(), 0)
		next = STEP_ALU_IMM_OPERAND
		if code.AluOp().Unary() {
			next = STEP_ALU_COMPUTE
		}
	case STEP_ALU_IMM_OPERAND:
		d.set(d.reg[y].Control(), bus.CTRL_ENABLE)
		d.set(d.scratch[1-x].Control(), bus.CTRL_SET)
		next = STEP_ALU_IMM_OPERAND_CLEAR
	case STEP_ALU_IMM_OPERAND_CLEAR:
		d.set(d.reg[y].Control(), 0)
		d.set(d.scratch[1-x].Control(), 0)
		next = STEP_ALU_COMPUTE

	case STEP_ALU_COMPUTE:
		d.set(d.alu, int(code.AluOp()))
		d.set(d.reg[z].Control(), bus.CTRL_SET)
		next = STEP_ALU_CLEAR
	case STEP_ALU_CLEAR:
		d.set(d.alu, 0)
		d.set(d.reg[z].Control(), 0)
		next = STEP_FETCH_1

	case STEP_JUMP_EVALUATE:
		taken := code.JumpOp().Taken(d.flags.Read())
		switch {
		case taken && x == 1:
			d.set(d.pc.Control(), bus.CTRL_ENABLE)
			d.set(d.mar.Control(), bus.CTRL_SET)
			next = STEP_JUMP_ADDRESS_CLEAR
		case taken:
			d.set(d.reg[y].Control(), bus.CTRL_ENABLE)
			d.set(d.pc.Control(), bus.CTRL_SET)
			next = STEP_JUMP_CLEAR
		case x == 1:
			// Skip the unused target word.
			d.set(d.pc.Control(), bus.CTRL_INCREMENT)
			next = STEP_JUMP_CLEAR
		default:
			next = STEP_FETCH_1
		}
	case STEP_JUMP_ADDRESS_CLEAR:
		d.set(d.pc.Control(), 0)
		d.set(d.mar.Control(), 0)
		next = STEP_JUMP_LOAD
	case STEP_JUMP_LOAD:
		d.set(d.ram, memory.RAM_READ)
		d.set(d.pc.Control(), bus.CTRL_SET)
		next = STEP_JUMP_CLEAR
	case STEP_JUMP_CLEAR:
		d.set(d.pc.Control(), 0)
		d.set(d.ram, 0)
		if x == 0 {
			d.set(d.reg[y].Control(), 0)
		}
		next = STEP_FETCH_1

	default:
		d.err = errors.Join(d.err, ErrDecode(code))
		next = STEP_FETCH_1
	}

	return
}

// describe returns the text for a single control write.
func (d *Decoder) describe(write ControlWrite) string {
	name := strings.TrimSuffix(write.Bus.Name(), ".ctl")

	switch write.Bus {
	case d.alu:
		if write.Value == 0 {
			return f("%v idle", name)
		}
		return f("%v %v", name, alu.Op(write.Value))
	case d.ram:
		switch write.Value {
		case memory.RAM_READ:
			return f("%v read", name)
		case memory.RAM_WRITE:
			return f("%v write", name)
		}
		return f("%v idle", name)
	}

	var parts []string
	if write.Value&bus.CTRL_ENABLE != 0 {
		parts = append(parts, f("enable"))
	}
	if write.Value&bus.CTRL_SET != 0 {
		parts = append(parts, f("set"))
	}
	if write.Value&bus.CTRL_INCREMENT != 0 {
		parts = append(parts, f("increment"))
	}
	if len(parts) == 0 {
		parts = append(parts, f("clear"))
	}

	return fmt.Sprintf("%v %v", name, strings.Join(parts, "+"))
}

// Description returns a sentence describing the control writes of the
// last micro-step.
func (d *Decoder) Description() string {
	if len(d.writes) == 0 {
		return f("%v: no control changes.", d.last)
	}

	parts := make([]string, 0, len(d.writes))
	for _, write := range d.writes {
		parts = append(parts, d.describe(write))
	}

	return f("%v: %v.", d.last, strings.Join(parts, ", "))
}
