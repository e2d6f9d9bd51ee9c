// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ezrec/uvm/translate"
)

var f = translate.From

var (
	InputFlag = &cli.PathFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    f("input file path"),
		Required: true,
	}
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   f("verbose mode"),
		EnvVars: []string{"UVM_VERBOSE"},
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "uvm"
	app.Usage = f("accumulator virtual machine toolchain")
	app.Description = f("Assembles and runs programs for the uvm accumulator machine.")
	app.Commands = []*cli.Command{
		AssembleCommand,
		RunCommand,
		DisasmCommand,
	}
	return app
}

func main() {
	err := newApp().RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
