package main

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *app) isaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isa",
		Short: "Describe the instruction set",
		Long: `Print the CPU capabilities, their predefined symbols, and the table of
instructions of the configured instruction set.`,
		Args: cobra.NoArgs,
		RunE: a.describe,
	}
}

func (a *app) describe(cmd *cobra.Command, args []string) (err error) {
	isa, err := a.loadIsa()
	if err != nil {
		return
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)

	bold.Fprintln(out, "cpu")
	fmt.Fprintf(out, "  %v\n", isa.Spec())
	defines := maps.Collect(isa.Spec().Defines())
	for _, name := range slices.Sorted(maps.Keys(defines)) {
		fmt.Fprintf(out, "  .%v = %v\n", name, defines[name])
	}

	fmt.Fprintln(out)
	bold.Fprintln(out, "instructions")
	tw := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	for instr := range isa.Instructions() {
		fmt.Fprintf(tw, "  %v\t%v\n", instr.Mnemonic(), instr.Description())
	}
	err = tw.Flush()
	if err != nil {
		return
	}

	for _, mnemonic := range isa.Duplicates() {
		a.logger.Warn("duplicate mnemonic, first definition is used", "mnemonic", mnemonic)
	}

	return
}
