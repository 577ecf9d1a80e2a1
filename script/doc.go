// Package script loads instruction sets written in Starlark.
//
// A script declares its CPU once, then registers instructions in resolution
// order. Each instruction names a Starlark function which receives the list
// of operand tokens and returns the encoded word:
//
//	CPU = cpu(registers = 4, ram = 256, rom = 1024)
//
//	def mov(operands):
//	    dst, src = operands
//	    return 0x01 << 56 | register(dst) << 8 | register(src)
//
//	instruction("MOV", "copy a register", mov)
//
// Operand tokens have the attributes kind ("mnemonic", "number", "register"
// or "string"), text, and value. The builtins register(), number(),
// address() and string() convert tokens to values, rejecting operands
// which do not fit the declared CPU.
package script
