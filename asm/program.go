package asm

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log"
	"strings"
)

// Line is a tokenized line of source.
type Line struct {
	LineNo int     // Line number in the source text, starting at 1.
	Text   string  // Source text of the line.
	Tokens []Token // Tokens of the line. The first is always a mnemonic.
}

// Program is the tokenized form of an assembly source, with blank and
// comment lines removed.
type Program struct {
	Lines []Line
}

// Len returns the number of instruction lines.
func (prog *Program) Len() int {
	return len(prog.Lines)
}

// Tokens iterates over the token lines of the program, in source order.
func (prog *Program) Tokens() iter.Seq[[]Token] {
	return func(yield func(tokens []Token) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Tokens) {
				return
			}
		}
	}
}

// Parse tokenizes an input stream into a Program using the base syntax.
func Parse(input io.Reader) (prog *Program, err error) {
	var tz Tokenizer
	return tz.Parse(input)
}

// ParseString tokenizes source text into a Program using the base syntax.
func ParseString(text string) (prog *Program, err error) {
	return Parse(strings.NewReader(text))
}

// Parse tokenizes an input stream into a Program.
//
// Any error in any line fails the whole parse; no partial Program is
// returned. Tokenization errors are reported as an *ErrSyntax.
func (tz *Tokenizer) Parse(input io.Reader) (prog *Program, err error) {
	reader := bufio.NewReader(input)

	var lines []Line
	var lineno int

	for {
		text, rerr := reader.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			err = rerr
			return
		}
		if len(text) == 0 && rerr != nil {
			break
		}

		lineno += 1
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")

		if tz.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var tokens []Token
		tokens, err = tz.Tokenize(text)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}

		if len(tokens) > 0 {
			lines = append(lines, Line{LineNo: lineno, Text: text, Tokens: tokens})
		}

		if rerr != nil {
			break
		}
	}

	prog = &Program{
		Lines: lines,
	}

	return
}
