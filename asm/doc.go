// Package asm implements a table driven assembler core for user defined
// instruction sets.
//
// Source text is split into lines, and each line is tokenized on its own into
// a mnemonic followed by operand tokens (registers, numbers, and optionally
// string literals). The resulting Program is handed line by line to an
// InstructionSet, which resolves the mnemonic against its registered
// Instructions and asks the first match to encode the operands into a 64-bit
// machine word.
//
// The assembler deliberately knows nothing about any particular CPU. Concrete
// instruction sets implement the Instruction interface, and receive the
// cpu.Spec of their target when they are constructed.
package asm
