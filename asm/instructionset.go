// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"iter"
	"slices"

	"github.com/ezrec/asmkit/cpu"
)

// InstructionSet is a registry of instructions for a CPU.
//
// An InstructionSet is read only once constructed, and may be shared by
// concurrent assemblies.
type InstructionSet struct {
	spec         cpu.Spec      // Target CPU.
	instructions []Instruction // Instructions, in resolution order.
}

// NewInstructionSet creates an instruction set for a CPU.
//
// Mnemonics are resolved in the order the instructions are given. If two
// instructions share a mnemonic, the first one wins.
func NewInstructionSet(spec cpu.Spec, instructions ...Instruction) (is *InstructionSet) {
	is = &InstructionSet{
		spec: spec,
		instructions: slices.DeleteFunc(slices.Clone(instructions), func(instr Instruction) bool {
			return instr == nil
		}),
	}

	return
}

// Spec returns the target CPU of the instruction set.
func (is *InstructionSet) Spec() cpu.Spec {
	return is.spec
}

// Len returns the number of registered instructions.
func (is *InstructionSet) Len() int {
	return len(is.instructions)
}

// Instructions iterates over the instructions in resolution order.
func (is *InstructionSet) Instructions() iter.Seq[Instruction] {
	return slices.Values(is.instructions)
}

// Lookup resolves a mnemonic. The match is exact and case sensitive.
func (is *InstructionSet) Lookup(mnemonic string) (instr Instruction, ok bool) {
	index := slices.IndexFunc(is.instructions, func(instr Instruction) bool {
		return instr.Mnemonic() == mnemonic
	})
	if index < 0 {
		return
	}

	return is.instructions[index], true
}

// Duplicates returns the mnemonics registered more than once. Only the first
// registration of each can ever be resolved.
func (is *InstructionSet) Duplicates() (mnemonics []string) {
	seen := make(map[string]int, len(is.instructions))
	for _, instr := range is.instructions {
		name := instr.Mnemonic()
		seen[name]++
		if seen[name] == 2 {
			mnemonics = append(mnemonics, name)
		}
	}

	return
}

// Assemble encodes a single line of tokens into a machine word.
//
// A line which does not start with a mnemonic is an error of the caller,
// and returns ErrMnemonicMissing. An unregistered mnemonic returns
// ErrMnemonicUnknown. Errors from the instruction encoder are wrapped in an
// *ErrInstruction.
func (is *InstructionSet) Assemble(tokens []Token) (word uint64, err error) {
	if len(tokens) == 0 || tokens[0].Kind != TOKEN_MNEMONIC {
		err = ErrMnemonicMissing
		return
	}

	mnemonic := tokens[0].Text

	instr, ok := is.Lookup(mnemonic)
	if !ok {
		err = ErrMnemonicUnknown(mnemonic)
		return
	}

	word, err = instr.Encode(tokens[1:])
	if err != nil {
		word = 0
		err = &ErrInstruction{Mnemonic: mnemonic, Err: err}
		return
	}

	return
}

// AssembleProgram encodes every line of a program, in order.
//
// The first failing line stops assembly; its error is returned as an
// *ErrSyntax, and no words are returned.
func (is *InstructionSet) AssembleProgram(prog *Program) (words []uint64, err error) {
	words = make([]uint64, 0, prog.Len())

	for _, line := range prog.Lines {
		var word uint64
		word, err = is.Assemble(line.Tokens)
		if err != nil {
			words = nil
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}
		words = append(words, word)
	}

	return
}
