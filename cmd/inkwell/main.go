package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/iw2rmb/inkwell/internal/cli"
)

func main() {
	parser := flags.NewParser(&cli.Opts, flags.Default)
	parser.SubcommandsOptional = false

	_, err := parser.Parse()
	if flags.WroteHelp(err) {
		os.Exit(0)
	}
	if err != nil {
		// go-flags already printed parse errors.
		if _, ok := err.(*flags.Error); !ok {
			fmt.Fprintln(os.Stderr, "inkwell:", err)
		}
		os.Exit(1)
	}
}
