package main

import (
	"errors"
	"os"

	colorize "github.com/fatih/color"

	"github.com/arcanaland/planeswalker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrReported) {
			colorize.New(colorize.FgRed).Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
