package cpu

import (
	"fmt"

	"github.com/ezrec/bus8/alu"
)

//go:generate go tool stringer -linecomment -type=CodeType

// CodeType is the instruction family, bits 7:6 of the word.
type CodeType int

const (
	TYPE_RAM     = CodeType(0b00) // ram
	TYPE_ALU     = CodeType(0b01) // alu
	TYPE_JUMP    = CodeType(0b10) // jump
	TYPE_ALU_IMM = CodeType(0b11) // alu.imm
)

//go:generate go tool stringer -linecomment -type=CodeRamOp

// CodeRamOp is a memory transfer operation.
type CodeRamOp int

const (
	RAM_OP_LOAD = CodeRamOp(1) // load
	RAM_OP_SAVE = CodeRamOp(2) // save
)

//go:generate go tool stringer -linecomment -type=CodeJumpOp

// CodeJumpOp is a jump condition.
type CodeJumpOp int

const (
	JUMP_OP_JMP = CodeJumpOp(0) // jmp
	JUMP_OP_JLZ = CodeJumpOp(1) // jlz
	JUMP_OP_JGZ = CodeJumpOp(2) // jgz
	JUMP_OP_JEZ = CodeJumpOp(3) // jez
)

// Taken evaluates the jump condition against the ALU flags.
func (op CodeJumpOp) Taken(flags int) bool {
	zero := flags&alu.FLAG_ZERO != 0
	sign := flags&alu.FLAG_SIGN != 0

	switch op {
	case JUMP_OP_JMP:
		return true
	case JUMP_OP_JLZ:
		return sign && !zero
	case JUMP_OP_JGZ:
		return !sign && !zero
	case JUMP_OP_JEZ:
		return zero
	}
	return false
}

// CodeSel selects one of a pair of registers.
type CodeSel int

const (
	SEL_A = CodeSel(0) // a
	SEL_B = CodeSel(1) // b

	SEL_T1 = CodeSel(0) // t1
	SEL_T2 = CodeSel(1) // t2
)

func (sel CodeSel) String() string {
	if sel == SEL_A {
		return "a"
	}
	return "b"
}

// Code is a single instruction word.
type Code uint8

func makeCode(ct CodeType, op int, x, y, z bool) Code {
	word := (uint8(ct) << 6) | (uint8(op&0x7) << 3)
	if x {
		word |= 1 << 2
	}
	if y {
		word |= 1 << 1
	}
	if z {
		word |= 1 << 0
	}
	return Code(word)
}

// MakeCodeRam creates a memory transfer instruction. With imm set, the
// address is the word following the instruction; otherwise it is taken
// from the addr register.
func MakeCodeRam(op CodeRamOp, imm bool, addr CodeSel, reg CodeSel) Code {
	return makeCode(TYPE_RAM, int(op), imm, addr == SEL_B, reg == SEL_B)
}

// MakeCodeAlu creates a register form ALU instruction.
func MakeCodeAlu(op alu.Op, src1, src2, dst CodeSel) Code {
	return makeCode(TYPE_ALU, int(op), src1 == SEL_B, src2 == SEL_B, dst == SEL_B)
}

// MakeCodeAluImm creates an immediate form ALU instruction. The
// immediate word is loaded into the slot scratch register; the other
// scratch register is loaded from src.
func MakeCodeAluImm(op alu.Op, slot CodeSel, src, dst CodeSel) Code {
	return makeCode(TYPE_ALU_IMM, int(op), slot == SEL_T2, src == SEL_B, dst == SEL_B)
}

// MakeCodeJump creates a jump instruction. With imm set, the target is
// the word following the instruction; otherwise it is the src register.
func MakeCodeJump(op CodeJumpOp, imm bool, src CodeSel) Code {
	return makeCode(TYPE_JUMP, int(op), imm, src == SEL_B, false)
}

// Type returns the instruction family.
func (code Code) Type() CodeType {
	return CodeType((code >> 6) & 0x3)
}

// Op returns the raw 3-bit operation field.
func (code Code) Op() int {
	return int((code >> 3) & 0x7)
}

// AluOp returns the operation field as an ALU operation.
func (code Code) AluOp() alu.Op {
	return alu.Op(code.Op())
}

// RamOp returns the operation field as a memory transfer.
func (code Code) RamOp() CodeRamOp {
	return CodeRamOp(code.Op())
}

// JumpOp returns the operation field as a jump condition.
func (code Code) JumpOp() CodeJumpOp {
	return CodeJumpOp(code.Op())
}

// X returns bit 2 of the word.
func (code Code) X() CodeSel {
	return CodeSel((code >> 2) & 1)
}

// Y returns bit 1 of the word.
func (code Code) Y() CodeSel {
	return CodeSel((code >> 1) & 1)
}

// Z returns bit 0 of the word.
func (code Code) Z() CodeSel {
	return CodeSel((code >> 0) & 1)
}

// Valid returns true if the sequencer implements the instruction.
func (code Code) Valid() bool {
	switch code.Type() {
	case TYPE_RAM:
		switch code.RamOp() {
		case RAM_OP_LOAD:
			return true
		case RAM_OP_SAVE:
			return code.X() == 0
		}
	case TYPE_ALU, TYPE_ALU_IMM:
		return code.AluOp().Valid()
	case TYPE_JUMP:
		return code.JumpOp() <= JUMP_OP_JEZ && code.Z() == 0
	}

	return false
}

// Immediate returns true if the instruction consumes the following word.
func (code Code) Immediate() bool {
	switch code.Type() {
	case TYPE_RAM:
		return code.RamOp() == RAM_OP_LOAD && code.X() == 1
	case TYPE_ALU_IMM:
		return true
	case TYPE_JUMP:
		return code.X() == 1
	}
	return false
}

// disassemble returns the assembly text, and the canonical code for that text.
func (code Code) disassemble() (text string, canon Code) {
	canon = ^code

	if !code.Valid() {
		return
	}

	switch code.Type() {
	case TYPE_RAM:
		op := code.RamOp()
		switch op {
		case RAM_OP_LOAD:
			addr := code.Y().String()
			if code.X() == 1 {
				addr = "i"
			}
			text = fmt.Sprintf("%v %v %v", op, addr, code.Z())
			canon = MakeCodeRam(op, code.X() == 1, code.Y(), code.Z())
			if code.X() == 1 {
				canon = MakeCodeRam(op, true, SEL_A, code.Z())
			}
		case RAM_OP_SAVE:
			text = fmt.Sprintf("%v %v %v", op, code.Z(), code.Y())
			canon = MakeCodeRam(op, false, code.Y(), code.Z())
		}
	case TYPE_ALU:
		op := code.AluOp()
		if op.Unary() {
			text = fmt.Sprintf("%v %v %v", op, code.X(), code.Z())
			canon = MakeCodeAlu(op, code.X(), SEL_A, code.Z())
		} else {
			text = fmt.Sprintf("%v %v %v %v", op, code.X(), code.Y(), code.Z())
			canon = MakeCodeAlu(op, code.X(), code.Y(), code.Z())
		}
	case TYPE_ALU_IMM:
		op := code.AluOp()
		switch {
		case op.Unary():
			text = fmt.Sprintf("%v i %v", op, code.Z())
			canon = MakeCodeAluImm(op, SEL_T1, SEL_A, code.Z())
		case code.X() == SEL_T1:
			text = fmt.Sprintf("%v i %v %v", op, code.Y(), code.Z())
			canon = MakeCodeAluImm(op, SEL_T1, code.Y(), code.Z())
		default:
			text = fmt.Sprintf("%v %v i %v", op, code.Y(), code.Z())
			canon = MakeCodeAluImm(op, SEL_T2, code.Y(), code.Z())
		}
	case TYPE_JUMP:
		op := code.JumpOp()
		if code.X() == 1 {
			text = fmt.Sprintf("%v i", op)
			canon = MakeCodeJump(op, true, SEL_A)
		} else {
			text = fmt.Sprintf("%v %v", op, code.Y())
			canon = MakeCodeJump(op, false, code.Y())
		}
	}

	return
}

// String returns the assembly language text for the instruction.
// Words with no mnemonic form are shown as a literal.
func (code Code) String() string {
	text, canon := code.disassemble()
	if canon != code {
		return fmt.Sprintf("0x%02x", uint8(code))
	}
	return text
}
