package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/device"
	"github.com/ezrec/ls8/emulator"
)

func main() {
	var list bool
	var verbose bool

	flag.BoolVar(&list, "list", false, "List the built-in programs")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if list {
		for _, name := range emulator.Names() {
			fmt.Println(name)
		}
		return
	}

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: ls8 [-v] <program>", os.Args[0])
	}
	name := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Keyboard = device.NewKeyboard(os.Stdin)

	if err := emu.Reset(name); err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	if err := emu.Run(); err != nil {
		log.Fatalf("%v: %v", name, err)
	}
}
