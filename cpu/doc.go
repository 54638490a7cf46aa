// Package cpu implements the microcode sequencer and assembler for the bus8 machine.
//
// An instruction is one 8-bit word, laid out as [Type:2][Op:3][X:1][Y:1][Z:1],
// optionally followed by an immediate word. The Decoder is a finite state
// machine with one state per micro-step: each step drives the control buses
// of the registers, ALU and memory for one clock cycle, and selects the next
// step from the instruction register and the ALU flags.
//
// The assembler turns one mnemonic line at a time into the same word layout,
// with support for compile-time $( ... ) expressions.
package cpu
