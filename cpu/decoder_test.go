package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bus8/alu"
	"github.com/ezrec/bus8/bus"
)

// testWiring wires a sequencer to a fresh set of buses. No unit
// evaluates the control buses, so only the sequencing is exercised.
func testWiring() (w Wiring, controls []*bus.Bus) {
	data := bus.NewBus("data", 8)

	w = Wiring{
		Ir:    bus.NewRegister("ir", 8, data),
		Pc:    bus.NewRegister("pc", 8, data),
		Mar:   bus.NewRegister("mar", 8, data),
		A:     bus.NewRegister("a", 8, data),
		B:     bus.NewRegister("b", 8, data),
		T1:    bus.NewRegister("t1", 8, data),
		T2:    bus.NewRegister("t2", 8, data),
		Alu:   bus.NewBus("alu.ctl", 3),
		Ram:   bus.NewBus("ram.ctl", 2),
		Flags: bus.NewBus("flags", 2),
	}

	for _, r := range []*bus.Register{w.Ir, w.Pc, w.Mar, w.A, w.B, w.T1, w.T2} {
		controls = append(controls, r.Control())
	}
	controls = append(controls, w.Alu, w.Ram)

	return
}

// trace runs one instruction, and returns the steps taken.
func trace(t *testing.T, code Code, flags int) (steps []Step, err error) {
	w, controls := testWiring()
	w.Ir.Write(int(code))
	w.Flags.Write(flags)

	d := NewDecoder(w)

	for range 32 {
		for _, b := range controls {
			b.Clean()
		}
		err = errors.Join(err, d.Execute())
		steps = append(steps, d.Last())
		if d.Step() == STEP_FETCH_1 {
			return
		}
	}

	t.Fatalf("0x%02x: sequencer did not return to fetch", uint8(code))
	return
}

func TestDecoderSteps(t *testing.T) {
	assert := assert.New(t)

	fetch := []Step{STEP_FETCH_1, STEP_FETCH_2, STEP_FETCH_3, STEP_FETCH_4}

	table := [](struct {
		name  string
		code  Code
		flags int
		steps []Step
	}){
		{"noop", 0x00, 0, nil},
		{"add a b a", 0x4a, 0, []Step{
			STEP_ALU_OPERAND_1, STEP_ALU_OPERAND_1_CLEAR,
			STEP_ALU_OPERAND_2, STEP_ALU_OPERAND_2_CLEAR,
			STEP_ALU_COMPUTE, STEP_ALU_CLEAR,
		}},
		{"not a b", 0x71, 0, []Step{
			STEP_ALU_OPERAND_1, STEP_ALU_OPERAND_1_CLEAR,
			STEP_ALU_COMPUTE, STEP_ALU_CLEAR,
		}},
		{"not i a", 0xf0, 0, []Step{
			STEP_ALU_IMM_ADDRESS, STEP_ALU_IMM_ADDRESS_CLEAR,
			STEP_ALU_IMM_LOAD, STEP_ALU_IMM_LOAD_CLEAR,
			STEP_ALU_COMPUTE, STEP_ALU_CLEAR,
		}},
		{"sub a i b", 0xd5, 0, []Step{
			STEP_ALU_IMM_ADDRESS, STEP_ALU_IMM_ADDRESS_CLEAR,
			STEP_ALU_IMM_LOAD, STEP_ALU_IMM_LOAD_CLEAR,
			STEP_ALU_IMM_OPERAND, STEP_ALU_IMM_OPERAND_CLEAR,
			STEP_ALU_COMPUTE, STEP_ALU_CLEAR,
		}},
		{"load i a", 0x0c, 0, []Step{
			STEP_RAM_ADDRESS, STEP_RAM_ADDRESS_CLEAR,
			STEP_RAM_TRANSFER, STEP_RAM_CLEAR,
		}},
		{"save a b", 0x12, 0, []Step{
			STEP_RAM_ADDRESS, STEP_RAM_ADDRESS_CLEAR,
			STEP_RAM_TRANSFER, STEP_RAM_CLEAR,
		}},
		{"jmp i", 0x84, 0, []Step{
			STEP_JUMP_EVALUATE, STEP_JUMP_ADDRESS_CLEAR,
			STEP_JUMP_LOAD, STEP_JUMP_CLEAR,
		}},
		{"jez a, not taken", 0x98, 0, []Step{STEP_JUMP_EVALUATE}},
		{"jez a, taken", 0x98, alu.FLAG_ZERO, []Step{STEP_JUMP_EVALUATE, STEP_JUMP_CLEAR}},
		{"jlz i, not taken", 0x8c, 0, []Step{STEP_JUMP_EVALUATE, STEP_JUMP_CLEAR}},
		{"jlz i, taken", 0x8c, alu.FLAG_SIGN, []Step{
			STEP_JUMP_EVALUATE, STEP_JUMP_ADDRESS_CLEAR,
			STEP_JUMP_LOAD, STEP_JUMP_CLEAR,
		}},
		{"jlz i, zero", 0x8c, alu.FLAG_SIGN | alu.FLAG_ZERO, []Step{STEP_JUMP_EVALUATE, STEP_JUMP_CLEAR}},
		{"jgz b, taken", 0x92, 0, []Step{STEP_JUMP_EVALUATE, STEP_JUMP_CLEAR}},
	}

	for _, entry := range table {
		steps, err := trace(t, entry.code, entry.flags)
		assert.NoError(err, entry.name)
		assert.Equal(append(fetch[:4:4], entry.steps...), steps, entry.name)
	}
}

func TestDecoderFault(t *testing.T) {
	assert := assert.New(t)

	for _, code := range []Code{0x38, 0x16, 0x40, 0x7a, 0xc0, 0x85, 0xa0} {
		steps, err := trace(t, code, 0)
		assert.Equal(4, len(steps), "0x%02x", uint8(code))
		assert.True(errors.Is(err, ErrDecodeFault), "0x%02x", uint8(code))

		var de ErrDecode
		assert.True(errors.As(err, &de))
		assert.Equal(code, Code(de))
	}
}

func TestDecoderWrites(t *testing.T) {
	assert := assert.New(t)

	w, controls := testWiring()
	w.Ir.Write(0x4a)

	d := NewDecoder(w)
	assert.Equal(STEP_FETCH_1, d.Step())

	execute := func() {
		for _, b := range controls {
			b.Clean()
		}
		assert.NoError(d.Execute())
	}

	execute()
	assert.Equal(STEP_FETCH_1, d.Last())
	assert.Equal(STEP_FETCH_2, d.Step())
	fetch1 := []ControlWrite{
		{Bus: w.Pc.Control(), Value: bus.CTRL_ENABLE},
		{Bus: w.Mar.Control(), Value: bus.CTRL_SET},
	}
	writes := d.Writes()
	assert.Equal(fetch1, writes)
	assert.Equal("fetch1: pc enable, mar set.", d.Description())

	// The next step does not disturb a kept copy.
	execute()
	assert.Equal(fetch1, writes)
	assert.NotEqual(fetch1, d.Writes())
	assert.Equal(bus.CTRL_INCREMENT, w.Pc.Control().Read())
	assert.Equal(0, w.Mar.Control().Read())
	assert.Equal("fetch2: pc increment, mar clear.", d.Description())

	execute()
	assert.Equal(bus.CTRL_SET, w.Ir.Control().Read())
	assert.Equal("fetch3: pc clear, ram read, ir set.", d.Description())

	for d.Step() != STEP_ALU_COMPUTE {
		execute()
	}
	execute()
	assert.Equal(int(alu.ALU_OP_ADD), w.Alu.Read())
	assert.Equal(bus.CTRL_SET, w.A.Control().Read())
	assert.Equal(0, w.B.Control().Read())
	assert.Equal("alu.compute: alu add, a set.", d.Description())

	execute()
	assert.Equal(0, w.Alu.Read())
	assert.Equal(0, w.A.Control().Read())
	assert.Equal(STEP_FETCH_1, d.Step())

	// Untaken register jumps change nothing.
	w.Ir.Write(0x98)
	for d.Step() != STEP_JUMP_EVALUATE {
		execute()
	}
	execute()
	assert.Empty(d.Writes())
	assert.Equal("jump.evaluate: no control changes.", d.Description())

	d.Reset()
	assert.Equal(STEP_FETCH_1, d.Step())
	assert.Empty(d.Writes())
}

func TestStepString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("fetch1", STEP_FETCH_1.String())
	assert.Equal("alu.imm.operand.clear", STEP_ALU_IMM_OPERAND_CLEAR.String())
	assert.Equal("jump.clear", STEP_JUMP_CLEAR.String())
	assert.Equal("Step(99)", Step(99).String())
	assert.Equal("Step(-1)", Step(-1).String())

	for step := range STEP_COUNT {
		assert.NotContains(Step(step).String(), "Step(", "%d", step)
	}
}
