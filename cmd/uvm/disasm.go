package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ezrec/uvm/cpu"
	uvmio "github.com/ezrec/uvm/io"
)

var DisasmCommand = &cli.Command{
	Name:   "disasm",
	Usage:  f("Lists the instructions of a binary image"),
	Action: Disasm,
	Flags: []cli.Flag{
		InputFlag,
	},
}

// Disasm is the action of the disasm command.
func Disasm(ctx *cli.Context) (err error) {
	input := ctx.Path(InputFlag.Name)

	image, err := uvmio.LoadImage(input)
	if err != nil {
		return
	}

	out := ctx.App.Writer
	for ip := 0; ip < len(image); {
		code, width, err := cpu.Decode(image[ip:])
		if err != nil {
			return fmt.Errorf("%v: offset 0x%04x: %w", input, ip, err)
		}
		fmt.Fprintf(out, "%04x: % -12x %v\n", ip, image[ip:ip+width], code)
		ip += width
	}

	return
}
