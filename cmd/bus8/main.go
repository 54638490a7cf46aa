// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/bus8/emulator"
	"github.com/ezrec/bus8/translate"
)

// startup logs the host settings used for messages.
func startup(logger *log.Logger) {
	logger.WithField("language", translate.Language()).Info("bus8")
}

func main() {
	var compile string
	var limit int
	var verbose bool
	var interactive bool
	var listing bool

	flag.StringVar(&compile, "c", "", ".b8 file to assemble")
	flag.IntVar(&limit, "n", 64, "Instructions to run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&interactive, "i", false, "Interactive single stepping")
	flag.BoolVar(&listing, "l", false, "Print the listing, do not execute")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if verbose {
		startup(log.StandardLogger())
	}

	var lines []string

	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		scanner := bufio.NewScanner(inf)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err := emu.LoadProgram(lines)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing {
		fmt.Print(emu.Program.String())
		return
	}

	if interactive {
		err = runInteractive(emu, os.Stdin, os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	warnings := emu.Run(limit)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	fmt.Println(emu.String())
	log.WithFields(log.Fields{
		"instructions": emu.Instructions,
		"ticks":        emu.Ticks,
		"warnings":     len(warnings),
	}).Info("halted")
}
