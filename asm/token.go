package asm

import (
	"fmt"
	"strconv"
)

// TokenKind is the type of lexical token.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_MNEMONIC = TokenKind(0) // mnemonic
	TOKEN_NUMBER   = TokenKind(1) // number
	TOKEN_REGISTER = TokenKind(2) // register
	TOKEN_STRING   = TokenKind(3) // string
)

// REGISTER_PREFIX introduces a register operand.
const REGISTER_PREFIX = '%'

// Token is a single lexical unit of a line of assembly.
//
// Text holds the mnemonic, the register name (without its prefix), or the
// unquoted string literal. Value holds the value of a number.
type Token struct {
	Kind  TokenKind
	Text  string
	Value int64
}

// Mnemonic creates an instruction name token.
func Mnemonic(name string) Token {
	return Token{Kind: TOKEN_MNEMONIC, Text: name}
}

// Number creates an integer literal token.
func Number(value int64) Token {
	return Token{Kind: TOKEN_NUMBER, Value: value}
}

// Register creates a register reference token.
func Register(name string) Token {
	return Token{Kind: TOKEN_REGISTER, Text: name}
}

// String creates a string literal token.
func String(text string) Token {
	return Token{Kind: TOKEN_STRING, Text: text}
}

// String returns the token as it would be written in source.
func (tok Token) String() string {
	switch tok.Kind {
	case TOKEN_MNEMONIC:
		return tok.Text
	case TOKEN_NUMBER:
		return strconv.FormatInt(tok.Value, 10)
	case TOKEN_REGISTER:
		return string(REGISTER_PREFIX) + tok.Text
	case TOKEN_STRING:
		return strconv.Quote(tok.Text)
	}

	return fmt.Sprintf("%v(%q, %d)", tok.Kind, tok.Text, tok.Value)
}
