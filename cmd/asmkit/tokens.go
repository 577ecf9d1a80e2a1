package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <source>",
		Short: "Show the tokens of each source line",
		Args:  cobra.ExactArgs(1),
		RunE:  a.tokens,
	}
}

func (a *app) tokens(cmd *cobra.Command, args []string) (err error) {
	isa, err := a.loadIsa()
	if err != nil {
		return
	}

	input, err := openSource(cmd, args[0])
	if err != nil {
		return
	}
	defer input.Close()

	prog, err := a.tokenizer(&isa.Tokenizer).Parse(input)
	if err != nil {
		return
	}

	out := cmd.OutOrStdout()
	for _, line := range prog.Lines {
		kinds := make([]string, len(line.Tokens))
		for n, tok := range line.Tokens {
			kinds[n] = fmt.Sprintf("%v(%v)", tok.Kind, tok)
		}
		fmt.Fprintf(out, "%d: %v\n", line.LineNo, strings.Join(kinds, " "))
	}

	return
}
