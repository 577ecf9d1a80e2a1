// Package cpu describes the capabilities of a target CPU.
//
// A Spec records the register count and the addressable RAM and ROM sizes of
// an architecture. Instruction sets receive a Spec when they are built and use
// it to reject operands which reference registers or memory the CPU does not
// have.
package cpu
