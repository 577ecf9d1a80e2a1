package asm

// Instruction is one opcode of an instruction set.
//
// Encode receives the operand tokens of a line, that is every token after
// the mnemonic, and returns the machine word. Implementations are expected
// to validate their operands against the cpu.Spec they were built for, and
// to return an error rather than encode an operand that does not fit.
type Instruction interface {
	Mnemonic() string                        // Name of the instruction.
	Description() string                     // Human readable description.
	Encode(operands []Token) (uint64, error) // Encode the operands into a word.
}

// EncodeFunc encodes the operands of an instruction.
type EncodeFunc func(operands []Token) (word uint64, err error)

// definition is an Instruction made from its parts.
type definition struct {
	mnemonic    string
	description string
	encode      EncodeFunc
}

var _ Instruction = (*definition)(nil)

// Define creates an Instruction from a mnemonic, a description, and an
// encoding function.
func Define(mnemonic, description string, encode EncodeFunc) Instruction {
	return &definition{
		mnemonic:    mnemonic,
		description: description,
		encode:      encode,
	}
}

func (def *definition) Mnemonic() string {
	return def.mnemonic
}

func (def *definition) Description() string {
	return def.description
}

func (def *definition) Encode(operands []Token) (uint64, error) {
	return def.encode(operands)
}
