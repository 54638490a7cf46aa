// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator is the bus8 machine: every bus, register, the ALU,
// memory and the sequencer, evaluated one clock pulse at a time.
package emulator

import (
	"fmt"
	"iter"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/bus8/alu"
	"github.com/ezrec/bus8/bus"
	"github.com/ezrec/bus8/cpu"
	"github.com/ezrec/bus8/internal"
	"github.com/ezrec/bus8/memory"
)

// Emulator state.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *cpu.Program // Reference to the currently loaded program listing.

	Ticks        int // Cycles since reset.
	Instructions int // Instructions completed since reset.

	data      *bus.Bus
	ir, pc    *bus.Register
	mar       *bus.Register
	a, b      *bus.Register
	t1, t2    *bus.Register
	registers []*bus.Register // Evaluation order.

	alu     *alu.Alu
	ram     *memory.Ram
	decoder *cpu.Decoder
	asm     cpu.Assembler

	buses    []*bus.Bus // Data, registers and flags.
	controls []*bus.Bus // Control buses.
	byName   map[string]*bus.Bus

	addr int // Address of the executing instruction.
}

// NewEmulator creates a new machine, with zeroed memory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	emu.data = bus.NewBus("data", memory.WORD_SIZE)

	emu.ir = bus.NewRegister("ir", memory.WORD_SIZE, emu.data)
	emu.pc = bus.NewRegister("pc", memory.WORD_SIZE, emu.data)
	emu.mar = bus.NewRegister("mar", memory.WORD_SIZE, emu.data)
	emu.a = bus.NewRegister("a", memory.WORD_SIZE, emu.data)
	emu.b = bus.NewRegister("b", memory.WORD_SIZE, emu.data)
	emu.t1 = bus.NewRegister("t1", memory.WORD_SIZE, emu.data)
	emu.t2 = bus.NewRegister("t2", memory.WORD_SIZE, emu.data)
	emu.registers = []*bus.Register{emu.ir, emu.pc, emu.mar, emu.a, emu.b, emu.t1, emu.t2}

	emu.alu = alu.NewAlu(emu.t1, emu.t2, emu.data)
	emu.ram = memory.NewRam(emu.mar, emu.data)

	emu.decoder = cpu.NewDecoder(cpu.Wiring{
		Ir:    emu.ir,
		Pc:    emu.pc,
		Mar:   emu.mar,
		A:     emu.a,
		B:     emu.b,
		T1:    emu.t1,
		T2:    emu.t2,
		Alu:   emu.alu.Control(),
		Ram:   emu.ram.Control(),
		Flags: emu.alu.Flags(),
	})

	emu.buses = append(emu.buses, emu.data)
	for _, r := range emu.registers {
		emu.buses = append(emu.buses, &r.Bus)
	}
	emu.buses = append(emu.buses, emu.alu.Flags())

	for _, r := range emu.registers {
		emu.controls = append(emu.controls, r.Control())
	}
	emu.controls = append(emu.controls, emu.alu.Control(), emu.ram.Control())

	emu.byName = make(map[string]*bus.Bus, len(emu.buses)+len(emu.controls))
	for name, b := range internal.Concat2(emu.named(emu.buses), emu.named(emu.controls)) {
		emu.byName[name] = b
	}

	return
}

// named yields the buses by name.
func (emu *Emulator) named(buses []*bus.Bus) iter.Seq2[string, *bus.Bus] {
	return internal.Map2(buses, (*bus.Bus).Name, func(b *bus.Bus) *bus.Bus { return b })
}

// Reset zeroes every bus, register and flag, and returns the sequencer
// to the first fetch step. Memory is retained.
func (emu *Emulator) Reset() {
	for _, b := range emu.buses {
		b.Reset()
	}
	for _, b := range emu.controls {
		b.Reset()
	}

	emu.decoder.Reset()

	emu.Ticks = 0
	emu.Instructions = 0
	emu.addr = 0
}

// clean starts a new cycle on every bus.
func (emu *Emulator) clean() {
	for _, b := range emu.buses {
		b.Clean()
	}
	for _, b := range emu.controls {
		b.Clean()
	}
}

// latch runs a latch pass over the registers.
func (emu *Emulator) latch() {
	for _, r := range emu.registers {
		r.Latch()
	}
}

// Cycle advances the machine by one clock pulse, and returns the
// warnings raised during the pulse. Warnings never stop the machine.
func (emu *Emulator) Cycle() (warnings []error) {
	if emu.decoder.Step() == cpu.STEP_FETCH_1 {
		emu.addr = emu.pc.Read()
	}

	warn := func(err error) {
		if err != nil {
			warnings = append(warnings, &ErrRuntime{Addr: emu.addr, Err: err})
		}
	}

	emu.decoder.Verbose = emu.Verbose

	emu.clean()

	warn(emu.decoder.Execute())

	emu.data.Precharge()

	for _, r := range emu.registers {
		warn(r.Drive())
	}

	emu.latch()

	warn(emu.alu.Evaluate())

	warn(emu.ram.Evaluate())

	emu.latch()

	emu.Ticks++
	if emu.decoder.Step() == cpu.STEP_FETCH_1 {
		emu.Instructions++
	}

	if emu.Verbose {
		for _, err := range warnings {
			log.WithFields(log.Fields{
				"tick": emu.Ticks,
				"step": emu.decoder.Last(),
			}).Warn(err)
		}
	}

	return
}

// Instruction runs cycles until the sequencer returns to the first
// fetch step, and returns the number of cycles run.
func (emu *Emulator) Instruction() (cycles int, warnings []error) {
	for {
		warnings = append(warnings, emu.Cycle()...)
		cycles++
		if emu.decoder.Step() == cpu.STEP_FETCH_1 {
			break
		}
	}

	if emu.Verbose {
		log.WithFields(log.Fields{
			"addr":   fmt.Sprintf("0x%02x", emu.addr),
			"cycles": cycles,
			"pc":     fmt.Sprintf("0x%02x", emu.pc.Read()),
		}).Info(cpu.Code(emu.ir.Read()))
	}

	return
}

// Run runs up to limit instructions.
func (emu *Emulator) Run(limit int) (warnings []error) {
	for range limit {
		_, w := emu.Instruction()
		warnings = append(warnings, w...)
	}

	return
}

// Step returns the micro-step that will run on the next cycle.
func (emu *Emulator) Step() cpu.Step {
	return emu.decoder.Step()
}

// Description describes the control bus effect of the last cycle.
func (emu *Emulator) Description() string {
	return emu.decoder.Description()
}

// LoadProgram assembles lines, installs the words from address 0 with
// the rest of memory zeroed, and resets the machine.
// If any line fails to assemble, memory is left unchanged.
func (emu *Emulator) LoadProgram(lines []string) (err error) {
	emu.asm.Verbose = emu.Verbose

	prog, err := emu.asm.Lines(lines)
	if err != nil {
		return
	}

	err = emu.ram.Load(prog.Words())
	if err != nil {
		return
	}

	emu.Program = prog
	emu.Reset()

	return
}

// Edit assembles a single line into memory at addr, and replaces any
// listing entries the new words overlap.
// A failing line leaves memory unchanged. A blank line stores zero.
func (emu *Emulator) Edit(addr int, line string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrEdit{Addr: addr, Line: line, Err: err}
		}
	}()

	words, err := emu.asm.Line(line)
	if err != nil {
		return
	}

	if len(words) == 0 {
		words = []memory.Word{memory.MakeWord(0)}
	}

	err = emu.ram.Install(addr, words)
	if err != nil {
		return
	}

	text, _, _ := strings.Cut(line, ";")
	emu.Program.Replace(cpu.Opcode{
		Addr:  addr,
		Text:  strings.TrimSpace(text),
		Words: words,
	})

	return
}

// Memory returns a copy of every memory cell.
func (emu *Emulator) Memory() []memory.Word {
	return emu.ram.Snapshot()
}

// Bus returns the value of a named bus.
func (emu *Emulator) Bus(name string) (value int, ok bool) {
	b, ok := emu.byName[name]
	if !ok {
		return
	}

	value = b.Read()
	return
}

// Buses iterates over the name and value of every bus.
func (emu *Emulator) Buses() iter.Seq2[string, int] {
	return internal.Concat2(
		internal.Map2(emu.buses, (*bus.Bus).Name, (*bus.Bus).Read),
		internal.Map2(emu.controls, (*bus.Bus).Name, (*bus.Bus).Read),
	)
}

// Flags returns the ALU flags.
func (emu *Emulator) Flags() int {
	return emu.alu.Flags().Read()
}

// Addr returns the address of the executing instruction.
func (emu *Emulator) Addr() int {
	return emu.addr
}

// LineNo returns the source line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.addr)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// String returns a dump of the machine state.
func (emu *Emulator) String() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("step=%v", emu.decoder.Step()))
	for _, b := range emu.buses {
		parts = append(parts, b.String())
	}

	return strings.Join(parts, " ")
}
