// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/ezrec/asmkit/asm"
)

func main() {
	err := newApp().Execute()
	if err != nil {
		report(os.Stderr, err)
		if !asm.Recoverable(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// report prints an error, highlighting the offending source line.
func report(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	red.Fprint(w, "error: ")

	var syntax *asm.ErrSyntax
	if errors.As(err, &syntax) {
		fmt.Fprintln(w, syntax.Err)
		yellow.Fprintf(w, "%5d | ", syntax.LineNo)
		fmt.Fprintln(w, syntax.Line)
		return
	}

	fmt.Fprintln(w, err)
}
