// Package toy is a small reference instruction set.
//
// Every instruction is a single 64-bit word:
//
//	63      56 55    48 47    40 39    32 31                      0
//	| opcode  |   d    |   a    |   b    |        immediate        |
//
// Register fields hold register indices; the immediate holds a signed 32-bit
// value or an unsigned address. Operands which do not fit the CPU are
// rejected, never truncated.
package toy

import (
	"github.com/ezrec/asmkit/asm"
	"github.com/ezrec/asmkit/cpu"
)

// Opcode is a toy instruction opcode.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP = Opcode(0x00) // NOP
	OP_HLT = Opcode(0x01) // HLT
	OP_MOV = Opcode(0x10) // MOV
	OP_LDI = Opcode(0x11) // LDI
	OP_ADD = Opcode(0x20) // ADD
	OP_SUB = Opcode(0x21) // SUB
	OP_AND = Opcode(0x22) // AND
	OP_OR  = Opcode(0x23) // OR
	OP_XOR = Opcode(0x24) // XOR
	OP_LD  = Opcode(0x30) // LD
	OP_ST  = Opcode(0x31) // ST
	OP_JMP = Opcode(0x40) // JMP
)

// DefaultSpec is the CPU the toy instruction set was designed for.
var DefaultSpec = cpu.NewSpec(8, 0x10000, 0x10000)

// MakeWord packs an instruction word.
func MakeWord(op Opcode, d, a, b uint8, imm uint32) uint64 {
	return (uint64(op) << 56) | (uint64(d) << 48) | (uint64(a) << 40) | (uint64(b) << 32) | uint64(imm)
}

// Decode unpacks an instruction word.
func Decode(word uint64) (op Opcode, d, a, b uint8, imm uint32) {
	op = Opcode(word >> 56)
	d = uint8(word >> 48)
	a = uint8(word >> 40)
	b = uint8(word >> 32)
	imm = uint32(word)
	return
}

// isa builds instructions for a CPU.
type isa struct {
	spec cpu.Spec
}

// New creates the toy instruction set for a CPU.
func New(spec cpu.Spec) *asm.InstructionSet {
	t := &isa{spec: spec}

	return asm.NewInstructionSet(spec,
		asm.Define("NOP", "no operation", t.none(OP_NOP)),
		asm.Define("HLT", "stop the processor", t.none(OP_HLT)),
		asm.Define("MOV", "MOV %d %s: copy register s into register d", t.mov),
		asm.Define("LDI", "LDI %d imm: load a signed 32-bit immediate into register d", t.ldi),
		asm.Define("ADD", "ADD %d %a %b: d = a + b", t.alu(OP_ADD)),
		asm.Define("SUB", "SUB %d %a %b: d = a - b", t.alu(OP_SUB)),
		asm.Define("AND", "AND %d %a %b: d = a & b", t.alu(OP_AND)),
		asm.Define("OR", "OR %d %a %b: d = a | b", t.alu(OP_OR)),
		asm.Define("XOR", "XOR %d %a %b: d = a ^ b", t.alu(OP_XOR)),
		asm.Define("LD", "LD %d addr: load register d from RAM", t.memory(OP_LD)),
		asm.Define("ST", "ST %s addr: store register s to RAM", t.memory(OP_ST)),
		asm.Define("JMP", "JMP addr: continue execution at a ROM address", t.jmp),
	)
}

// registers decodes register operands.
func (t *isa) registers(operands []asm.Token) (index []uint8, err error) {
	index = make([]uint8, len(operands))
	for n, tok := range operands {
		index[n], err = asm.RegisterIndex(t.spec, tok)
		if err != nil {
			index = nil
			return
		}
	}

	return
}

// address decodes an address operand below limit.
func (t *isa) address(tok asm.Token, limit uint64) (addr uint32, err error) {
	value, err := asm.Address(tok, min(limit, 1<<32))
	if err != nil {
		return
	}

	addr = uint32(value)
	return
}

func (t *isa) none(op Opcode) asm.EncodeFunc {
	return func(operands []asm.Token) (word uint64, err error) {
		if err = asm.Operands(operands); err != nil {
			return
		}
		word = MakeWord(op, 0, 0, 0, 0)
		return
	}
}

func (t *isa) mov(operands []asm.Token) (word uint64, err error) {
	if err = asm.Operands(operands, asm.TOKEN_REGISTER, asm.TOKEN_REGISTER); err != nil {
		return
	}

	reg, err := t.registers(operands)
	if err != nil {
		return
	}

	word = MakeWord(OP_MOV, reg[0], reg[1], 0, 0)
	return
}

func (t *isa) ldi(operands []asm.Token) (word uint64, err error) {
	if err = asm.Operands(operands, asm.TOKEN_REGISTER, asm.TOKEN_NUMBER); err != nil {
		return
	}

	reg, err := t.registers(operands[:1])
	if err != nil {
		return
	}

	imm, err := asm.Immediate[int32](operands[1])
	if err != nil {
		return
	}

	word = MakeWord(OP_LDI, reg[0], 0, 0, uint32(imm))
	return
}

func (t *isa) alu(op Opcode) asm.EncodeFunc {
	return func(operands []asm.Token) (word uint64, err error) {
		if err = asm.Operands(operands, asm.TOKEN_REGISTER, asm.TOKEN_REGISTER, asm.TOKEN_REGISTER); err != nil {
			return
		}

		reg, err := t.registers(operands)
		if err != nil {
			return
		}

		word = MakeWord(op, reg[0], reg[1], reg[2], 0)
		return
	}
}

func (t *isa) memory(op Opcode) asm.EncodeFunc {
	return func(operands []asm.Token) (word uint64, err error) {
		if err = asm.Operands(operands, asm.TOKEN_REGISTER, asm.TOKEN_NUMBER); err != nil {
			return
		}

		reg, err := t.registers(operands[:1])
		if err != nil {
			return
		}

		addr, err := t.address(operands[1], t.spec.Ram())
		if err != nil {
			return
		}

		word = MakeWord(op, reg[0], 0, 0, addr)
		return
	}
}

func (t *isa) jmp(operands []asm.Token) (word uint64, err error) {
	if err = asm.Operands(operands, asm.TOKEN_NUMBER); err != nil {
		return
	}

	addr, err := t.address(operands[0], t.spec.Rom())
	if err != nil {
		return
	}

	word = MakeWord(OP_JMP, 0, 0, 0, addr)
	return
}
