package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/asmkit/asm"
	"github.com/ezrec/asmkit/listing"
)

func (a *app) assembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assemble <source>",
		Short: "Assemble a source file into machine words",
		Long: `Assemble a source file ('-' for standard input) into machine words.

Output formats are 'hex' (one annotated word per line), 'bin' (big endian
64-bit words) and 'yaml' (a listing of line, source and word).`,
		Args: cobra.ExactArgs(1),
		RunE: a.assemble,
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", listing.FORMAT_HEX.String(), "output format (hex, bin, yaml)")
	flags.StringP("output", "o", "", "output file (default is standard output)")

	cobra.CheckErr(a.config.BindPFlag("format", flags.Lookup("format")))
	cobra.CheckErr(a.config.BindPFlag("output", flags.Lookup("output")))

	return cmd
}

// openSource opens a source file, or standard input for '-'.
func openSource(cmd *cobra.Command, path string) (input io.ReadCloser, err error) {
	if path == "-" {
		input = io.NopCloser(cmd.InOrStdin())
		return
	}

	input, err = os.Open(path)
	return
}

func (a *app) assemble(cmd *cobra.Command, args []string) (err error) {
	format, err := listing.ParseFormat(a.config.GetString("format"))
	if err != nil {
		return
	}

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

	words, err := isa.AssembleProgram(prog)
	if err != nil {
		return
	}

	a.logger.Info("assembled", "source", args[0], "lines", prog.Len(), "words", len(words))

	var output io.Writer = cmd.OutOrStdout()
	if path := a.config.GetString("output"); path != "" {
		var file *os.File
		file, err = os.Create(path)
		if err != nil {
			return
		}
		defer func() {
			cerr := file.Close()
			if err == nil {
				err = cerr
			}
		}()
		output = file
	}

	err = listing.Write(output, format, prog, words)

	return
}

// tokenizer returns the configured tokenizer for an instruction set.
func (a *app) tokenizer(isa *asm.Tokenizer) *asm.Tokenizer {
	tz := *isa
	tz.Verbose = a.config.GetBool("verbose")
	return &tz
}
