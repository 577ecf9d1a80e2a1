package asm

import (
	"errors"
	"fmt"

	"github.com/ezrec/asmkit/translate"
)

var f = translate.From

var (
	// Lexical errors
	ErrStringUnterminated = errors.New(f("string unterminated"))

	// Resolution errors
	ErrMnemonicMissing = errors.New(f("line does not start with a mnemonic"))

	// Operand errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrRegisterRange   = errors.New(f("register out of range"))
	ErrImmediateRange  = errors.New(f("immediate out of range"))
	ErrAddressRange    = errors.New(f("address out of range"))
)

// ErrTokenUnknown is a fragment that is not a valid operand.
type ErrTokenUnknown string

func (err ErrTokenUnknown) Error() string {
	return f("unknown token '%v'", string(err))
}

// ErrMnemonicUnknown is a mnemonic with no registered instruction.
type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

// ErrOperandCount is an operand list of the wrong length.
type ErrOperandCount struct {
	Want int
	Got  int
}

func (err ErrOperandCount) Error() string {
	return f("expected %d operands, got %d", err.Want, err.Got)
}

// ErrOperandKind is an operand of the wrong kind.
type ErrOperandKind struct {
	Index int
	Want  TokenKind
	Got   TokenKind
}

func (err ErrOperandKind) Error() string {
	return f("operand %d: expected %v, got %v", err.Index, err.Want, err.Got)
}

// ErrInstruction is an encoding failure of a resolved instruction.
type ErrInstruction struct {
	Mnemonic string
	Err      error
}

func (err *ErrInstruction) Error() string {
	return f("%v: %v", err.Mnemonic, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

// ErrSyntax locates an error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// Recoverable returns true if err is a defect in the assembly source, which
// the user can correct, rather than a misuse of the assembler by its caller.
func Recoverable(err error) bool {
	return err != nil && !errors.Is(err, ErrMnemonicMissing)
}

// makeError decorates a sentinel error with details.
func makeError(err error, details string, args ...any) error {
	return fmt.Errorf("%w: %v", err, f(details, args...))
}
