package cpu

import (
	"fmt"
	"iter"
	"maps"
)

// Spec describes the capabilities of a target CPU.
//
// A Spec is immutable once constructed. Instructions consult it to bound
// the operands they will encode; the Spec itself holds no validation policy.
type Spec struct {
	registers uint8  // Number of general purpose registers.
	ram       uint64 // Addressable RAM, in words.
	rom       uint64 // Addressable ROM, in words.
}

// NewSpec creates a CPU capability descriptor.
func NewSpec(registers uint8, ram, rom uint64) (spec Spec) {
	spec = Spec{
		registers: registers,
		ram:       ram,
		rom:       rom,
	}

	return
}

// Registers returns the register count. Valid register indices are [0, Registers).
func (spec Spec) Registers() uint8 {
	return spec.registers
}

// Ram returns the addressable RAM size.
func (spec Spec) Ram() uint64 {
	return spec.ram
}

// Rom returns the addressable ROM size.
func (spec Spec) Rom() uint64 {
	return spec.rom
}

// Defines returns the descriptor as named constants, formatted as they
// appear in an instruction set description.
func (spec Spec) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"REGISTERS": fmt.Sprintf("%v", spec.registers),
		"RAM_SIZE":  fmt.Sprintf("%#x", spec.ram),
		"ROM_SIZE":  fmt.Sprintf("%#x", spec.rom),
	})
}

// String returns a short description of the CPU.
func (spec Spec) String() string {
	return fmt.Sprintf("registers:%v ram:%#x rom:%#x", spec.registers, spec.ram, spec.rom)
}
