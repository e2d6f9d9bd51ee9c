package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ezrec/uvm/emulator"
	uvmio "github.com/ezrec/uvm/io"
)

var ErrRangeSyntax = errors.New(f("range must be START,END"))

var (
	ResultFlag = &cli.PathFlag{
		Name:     "result",
		Aliases:  []string{"r"},
		Usage:    f("result snapshot output path (YAML)"),
		Required: true,
	}
	RangeFlag = &cli.IntSliceFlag{
		Name:     "range",
		Usage:    f("inclusive memory range to snapshot, as START,END"),
		Required: true,
	}
)

var RunCommand = &cli.Command{
	Name:        "run",
	Usage:       f("Runs a binary image"),
	Description: f("Runs a binary image on a fresh machine, and writes a snapshot of a memory range. Nothing is written if the run fails."),
	Action:      Run,
	Flags: []cli.Flag{
		InputFlag,
		ResultFlag,
		RangeFlag,
		VerboseFlag,
	},
}

// Run is the action of the run command.
func Run(ctx *cli.Context) (err error) {
	input := ctx.Path(InputFlag.Name)

	span := ctx.IntSlice(RangeFlag.Name)
	if len(span) != 2 {
		return fmt.Errorf("%v: %w", span, ErrRangeSyntax)
	}

	image, err := uvmio.LoadImage(input)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator()
	emu.Verbose = ctx.Bool(VerboseFlag.Name)
	emu.LoadImage(image)

	err = emu.Run()
	if err != nil {
		return fmt.Errorf("%v: %w", input, err)
	}

	snap, err := emu.Snapshot(span[0], span[1])
	if err != nil {
		return fmt.Errorf("%v: %w", input, err)
	}

	err = uvmio.SaveSnapshot(ctx.Path(ResultFlag.Name), snap)

	return
}
