package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/bus8/emulator"
)

const interactiveHelp = "space/s: cycle  n: instruction  r: reset  m: memory  q: quit"

// runInteractive single steps the machine from key presses.
// When input is a terminal, it is put in raw mode so each key acts at once.
func runInteractive(emu *emulator.Emulator, input io.Reader, output io.Writer) (err error) {
	eol := "\n"

	if file, ok := input.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fd := int(file.Fd())
		var state *term.State
		state, err = term.MakeRaw(fd)
		if err != nil {
			return
		}
		defer func() { _ = term.Restore(fd, state) }()

		// Raw mode does not translate newlines.
		eol = "\r\n"
	}

	show := func(format string, args ...any) {
		fmt.Fprintf(output, format+eol, args...)
	}

	warn := func(warnings []error) {
		for _, warning := range warnings {
			show("warning: %v", warning)
		}
	}

	show("%v", interactiveHelp)
	show("%v", emu)

	reader := bufio.NewReader(input)
	for {
		var key byte
		key, err = reader.ReadByte()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}

		switch key {
		case ' ', 's':
			warnings := emu.Cycle()
			show("%v", emu.Description())
			warn(warnings)
			show("%v", emu)
		case 'n':
			cycles, warnings := emu.Instruction()
			warn(warnings)
			show("0x%02x: %d cycles", emu.Addr(), cycles)
			show("%v", emu)
		case 'r':
			emu.Reset()
			show("%v", emu)
		case 'm':
			for addr, word := range emu.Memory() {
				if word.Value != 0 || word.HasOrigin() {
					show("%02x: %v", addr, word)
				}
			}
		case 'q', 0x03, 0x04:
			return
		case '\r', '\n':
		default:
			show("%v", interactiveHelp)
		}
	}
}
