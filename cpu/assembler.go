// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/bus8/alu"
	"github.com/ezrec/bus8/memory"
)

// Opcode is the assembled form of a single source line.
type Opcode struct {
	LineNo int           // Line number of the source line.
	Addr   int           // Address of the first word.
	Text   string        // Source line, without comments.
	Words  []memory.Word // Generated words.
}

// Assembler is a single pass, line oriented assembler for the bus8 machine.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.
}

// Predefined names for $(...) expressions.
var sysEquate = starlark.StringDict{
	"WORD_SIZE":   starlark.MakeInt(memory.WORD_SIZE),
	"WORD_MASK":   starlark.MakeInt(memory.WORD_MASK),
	"MEMORY_SIZE": starlark.MakeInt(memory.MEMORY_SIZE),
}

var (
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reNumeric    = regexp.MustCompile(`^[0-9][0-9a-z]*$`)
)

// The source operand kinds.
const immediate = "i"

var regMap = map[string]CodeSel{
	"a": SEL_A,
	"b": SEL_B,
}

var aluMap = map[string]alu.Op{
	"add": alu.ALU_OP_ADD,
	"sub": alu.ALU_OP_SUB,
	"and": alu.ALU_OP_AND,
	"ior": alu.ALU_OP_IOR,
	"xor": alu.ALU_OP_XOR,
	"not": alu.ALU_OP_NOT,
}

var jumpMap = map[string]CodeJumpOp{
	"jmp": JUMP_OP_JMP,
	"jlz": JUMP_OP_JLZ,
	"jgz": JUMP_OP_JGZ,
	"jez": JUMP_OP_JEZ,
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, sysEquate)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > memory.WORD_MASK {
		err = ErrParseLiteral(expr)
		return
	}
	value = int(st_int64)
	return
}

// valueOf converts a numeric token to a literal word.
// ok is false if the token does not look like a number.
func valueOf(word string) (value int, base int, ok bool, err error) {
	if !reNumeric.MatchString(word) {
		return
	}

	ok = true

	digits := word
	limit := 3
	base = 10
	switch {
	case strings.HasPrefix(word, "0x"):
		digits, base, limit = word[2:], 16, 2
	case strings.HasPrefix(word, "0b"):
		digits, base, limit = word[2:], 2, memory.WORD_SIZE
	}

	v64, perr := strconv.ParseUint(digits, base, 32)
	if perr != nil || len(digits) > limit || v64 > memory.WORD_MASK {
		err = ErrParseLiteral(word)
		return
	}

	value = int(v64)
	return
}

// tokenize splits a line into lower case operand words.
func tokenize(line string) (words []string) {
	line = strings.ToLower(line)
	line = strings.ReplaceAll(line, ",", " ")
	return strings.Fields(line)
}

// stripComment removes the trailing comment from a line.
func stripComment(line string) string {
	before, _, _ := strings.Cut(line, ";")
	return strings.TrimSpace(before)
}

// operand returns the selector for an a, b or i operand.
func operand(word string) (sel CodeSel, imm bool, ok bool) {
	if word == immediate {
		return SEL_A, true, true
	}
	sel, ok = regMap[word]
	return
}

// parseAlu parses the ALU instruction forms.
func parseAlu(words []string) (code Code, ok bool) {
	op, found := aluMap[words[0]]
	if !found {
		return
	}

	if op.Unary() {
		if len(words) != 3 {
			return
		}
		src, src_imm, src_ok := operand(words[1])
		dst, dst_ok := regMap[words[2]]
		if !src_ok || !dst_ok {
			return
		}
		if src_imm {
			code = MakeCodeAluImm(op, SEL_T1, SEL_A, dst)
		} else {
			code = MakeCodeAlu(op, src, SEL_A, dst)
		}
		ok = true
		return
	}

	if len(words) != 4 {
		return
	}

	src1, imm1, ok1 := operand(words[1])
	src2, imm2, ok2 := operand(words[2])
	dst, dst_ok := regMap[words[3]]
	if !ok1 || !ok2 || !dst_ok || (imm1 && imm2) {
		return
	}

	switch {
	case imm1:
		code = MakeCodeAluImm(op, SEL_T1, src2, dst)
	case imm2:
		code = MakeCodeAluImm(op, SEL_T2, src1, dst)
	default:
		code = MakeCodeAlu(op, src1, src2, dst)
	}

	ok = true
	return
}

// parseJump parses the jump instruction forms.
func parseJump(words []string) (code Code, ok bool) {
	op, found := jumpMap[words[0]]
	if !found || len(words) != 2 {
		return
	}

	target, imm, ok := operand(words[1])
	if !ok {
		return
	}

	code = MakeCodeJump(op, imm, target)
	return
}

// parseRam parses the load and save instruction forms.
func parseRam(words []string) (code Code, ok bool) {
	if len(words) != 3 {
		return
	}

	switch words[0] {
	case "load":
		addr, imm, addr_ok := operand(words[1])
		dst, dst_ok := regMap[words[2]]
		if !addr_ok || !dst_ok {
			return
		}
		code = MakeCodeRam(RAM_OP_LOAD, imm, addr, dst)
		ok = true
	case "save":
		src, src_ok := regMap[words[1]]
		addr, addr_ok := regMap[words[2]]
		if !src_ok || !addr_ok {
			return
		}
		code = MakeCodeRam(RAM_OP_SAVE, false, addr, src)
		ok = true
	}

	return
}

// Line assembles a single line of text into memory words.
//
// A line with an instruction and a literal produces the instruction
// word followed by the literal word. Blank and comment lines produce
// no words.
func (asm *Assembler) Line(text string) (words []memory.Word, err error) {
	line := stripComment(text)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("0x%02x", value)
	})
	if err != nil {
		return
	}

	tokens := tokenize(line)
	if len(tokens) == 0 {
		return
	}

	origin := strings.Join(tokens, " ")

	var literal *memory.Word
	for n, token := range tokens {
		value, base, ok, lerr := valueOf(token)
		if lerr != nil {
			err = lerr
			return
		}
		if !ok {
			continue
		}
		if literal != nil {
			err = ErrLiteralMultiple
			return
		}
		literal = &memory.Word{Value: value, Base: base}
		tokens[n] = immediate
	}

	for _, parse := range []func([]string) (Code, bool){parseAlu, parseJump, parseRam} {
		code, ok := parse(tokens)
		if !ok {
			continue
		}
		words = append(words, memory.Word{Value: int(code), Origin: origin})
		if literal != nil {
			words = append(words, *literal)
		}
		return
	}

	if literal != nil && len(tokens) == 1 {
		words = append(words, *literal)
		return
	}

	err = ErrInstructionInvalid
	return
}

// currentAddr gets the address of the next word to be assembled.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + len(last.Words)
}

// Lines assembles a program from a list of lines.
// On error, the returned program is nil.
func (asm *Assembler) Lines(lines []string) (prog *Program, err error) {
	asm.Opcode = asm.Opcode[:0]

	for n, text := range lines {
		lineno := n + 1

		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		var words []memory.Word
		words, err = asm.Line(text)
		if err == nil && asm.currentAddr()+len(words) > memory.MEMORY_SIZE {
			err = ErrProgramTooLarge
		}
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}

		if len(words) == 0 {
			continue
		}

		asm.Opcode = append(asm.Opcode, Opcode{
			LineNo: lineno,
			Addr:   asm.currentAddr(),
			Text:   stripComment(text),
			Words:  words,
		})
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.Lines(lines)
}
