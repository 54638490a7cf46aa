package cpu

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/bus8/memory"
)

// Program is an assembled program.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the source of a word in a program.
type Debug struct {
	*Opcode
	Index int // Index of the word in the opcode.
}

// Debug returns the opcode that generated the word at addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if addr >= op.Addr && addr < op.Addr+len(op.Words) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  addr - op.Addr,
			}
			break
		}
	}

	return
}

// Replace removes every opcode overlapping the words of op, and inserts
// op in address order.
func (prog *Program) Replace(op Opcode) {
	end := op.Addr + len(op.Words)
	prog.Opcodes = slices.DeleteFunc(prog.Opcodes, func(old Opcode) bool {
		return old.Addr < end && op.Addr < old.Addr+len(old.Words)
	})

	n, _ := slices.BinarySearchFunc(prog.Opcodes, op.Addr, func(old Opcode, addr int) int {
		return cmp.Compare(old.Addr, addr)
	})
	prog.Opcodes = slices.Insert(prog.Opcodes, n, op)
}

// Cells iterates over the address and word of every assembled word.
func (prog *Program) Cells() iter.Seq2[int, memory.Word] {
	return func(yield func(addr int, word memory.Word) bool) {
		for _, op := range prog.Opcodes {
			for n, word := range op.Words {
				if !yield(op.Addr+n, word) {
					return
				}
			}
		}
	}
}

// Words returns the memory image of the program, starting at address 0.
func (prog *Program) Words() (words []memory.Word) {
	for addr, word := range prog.Cells() {
		for len(words) < addr {
			words = append(words, memory.Word{})
		}
		words = append(words, word)
	}

	return
}

// String returns a listing of the program.
func (prog *Program) String() string {
	var sb strings.Builder

	for addr, word := range prog.Cells() {
		text := Code(word.Value).String()
		if !word.HasOrigin() {
			text = word.Format()
		}
		fmt.Fprintf(&sb, "%02x: %02x  %v\n", addr, word.Value, text)
	}

	return sb.String()
}
