package asm

import (
	"strconv"
	"strings"
)

// COMMENT_PREFIX introduces a full line comment.
const COMMENT_PREFIX = "//"

// Tokenizer converts lines of assembly source into tokens.
//
// The zero value tokenizes the base syntax: a mnemonic followed by register
// (%name) and integer operands.
type Tokenizer struct {
	Verbose bool // If set, logs each source line as it is parsed.
	Quoted  bool // If set, "double quoted" operands become string tokens.
}

// isSpace is true for ASCII whitespace.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Tokenize a line using the base syntax.
func Tokenize(line string) (tokens []Token, err error) {
	var tok Tokenizer
	return tok.Tokenize(line)
}

// Tokenize converts a single line into tokens.
//
// Blank lines, and lines whose first word begins with '//', have no tokens.
// Comments are not recognized after the mnemonic.
func (tz *Tokenizer) Tokenize(line string) (tokens []Token, err error) {
	if strings.HasPrefix(strings.TrimLeftFunc(line, isSpace), COMMENT_PREFIX) {
		return
	}

	words, err := tz.split(line)
	if err != nil {
		return
	}

	if len(words) == 0 {
		return
	}

	tokens = make([]Token, 0, len(words))
	tokens = append(tokens, Mnemonic(words[0]))

	for _, word := range words[1:] {
		var tok Token
		tok, err = tz.operand(word)
		if err != nil {
			tokens = nil
			return
		}
		tokens = append(tokens, tok)
	}

	return
}

// operand classifies a single operand word.
func (tz *Tokenizer) operand(word string) (tok Token, err error) {
	switch {
	case word[0] == REGISTER_PREFIX:
		tok = Register(word[1:])
		return
	case tz.Quoted && word[0] == '"':
		var text string
		text, err = strconv.Unquote(word)
		if err != nil {
			err = ErrTokenUnknown(word)
			return
		}
		tok = String(text)
		return
	}

	value, err := number(word)
	if err != nil {
		err = ErrTokenUnknown(word)
		return
	}

	tok = Number(value)
	return
}

// number parses a signed decimal integer. A 0x, 0o or 0b prefix after the
// optional sign selects hexadecimal, octal or binary; a leading zero alone
// is still decimal.
func number(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 10, 64)
	if err == nil {
		return
	}

	digits := strings.TrimPrefix(strings.TrimPrefix(word, "-"), "+")
	if len(digits) > 2 && digits[0] == '0' && strings.ContainsRune("xXoObB", rune(digits[1])) {
		value, err = strconv.ParseInt(word, 0, 64)
	}

	return
}

// split breaks a line into words at whitespace. When quoting is enabled a
// double quoted string, including any whitespace it holds, is a single word.
func (tz *Tokenizer) split(line string) (words []string, err error) {
	if !tz.Quoted {
		words = strings.FieldsFunc(line, isSpace)
		return
	}

	for n := 0; n < len(line); {
		if isSpace(rune(line[n])) {
			n++
			continue
		}

		start := n
		if line[n] == '"' {
			n++
			for n < len(line) && line[n] != '"' {
				if line[n] == '\\' {
					n++
				}
				n++
			}
			if n >= len(line) {
				err = makeError(ErrStringUnterminated, "%v", line[start:])
				return
			}
			n++
		}

		for n < len(line) && !isSpace(rune(line[n])) {
			n++
		}

		words = append(words, line[start:n])
	}

	return
}
