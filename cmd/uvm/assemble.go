package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ezrec/uvm/cpu"
	uvmio "github.com/ezrec/uvm/io"
)

var (
	OutputFlag = &cli.PathFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    f("binary image output path"),
		Required: true,
	}
	LogFlag = &cli.PathFlag{
		Name:     "log",
		Aliases:  []string{"l"},
		Usage:    f("execution log output path (YAML)"),
		Required: true,
	}
	DefineFlag = &cli.StringSliceFlag{
		Name:    "define",
		Aliases: []string{"D"},
		Usage:   f("predefine an equate, as NAME=VALUE"),
		EnvVars: []string{"UVM_DEFINE"},
	}
)

var AssembleCommand = &cli.Command{
	Name:        "assemble",
	Usage:       f("Assembles a source program into a binary image"),
	Description: f("Assembles a source program into a binary image and an execution log. Nothing is written if assembly fails."),
	Action:      Assemble,
	Flags: []cli.Flag{
		InputFlag,
		OutputFlag,
		LogFlag,
		DefineFlag,
		VerboseFlag,
	},
}

// Assemble is the action of the assemble command.
func Assemble(ctx *cli.Context) (err error) {
	input := ctx.Path(InputFlag.Name)

	asm := &cpu.Assembler{
		Verbose: ctx.Bool(VerboseFlag.Name),
	}
	for _, define := range ctx.StringSlice(DefineFlag.Name) {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: %w", define, cpu.ErrEquateSyntax)
		}
		asm.Predefine(name, value)
	}

	inf, err := os.Open(input)
	if err != nil {
		return
	}
	defer inf.Close()

	image, log, err := asm.Assemble(inf)
	if err != nil {
		return fmt.Errorf("%v: %w", input, err)
	}

	err = uvmio.WriteFiles(
		uvmio.Output{Path: ctx.Path(OutputFlag.Name), Write: uvmio.ImageOutput(image)},
		uvmio.Output{Path: ctx.Path(LogFlag.Name), Write: uvmio.LogOutput(log)},
	)
	if err != nil {
		return fmt.Errorf("%v: %w", input, err)
	}

	return
}
