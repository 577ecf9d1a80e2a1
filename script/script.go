// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/ezrec/asmkit/asm"
	"github.com/ezrec/asmkit/cpu"
	"github.com/ezrec/asmkit/internal"
)

// Isa is an instruction set defined by a script.
//
// The embedded InstructionSet holds the registered instructions and their
// CPU; Tokenizer holds the source syntax requested by the script.
type Isa struct {
	*asm.InstructionSet
	Tokenizer asm.Tokenizer
}

// Loader evaluates instruction set scripts.
type Loader struct {
	Verbose bool // If set, logs script output and registered instructions.

	predefine map[string]int64 // Predefined integer constants.
}

// builtinNames are the functions predeclared for every script.
var builtinNames = []string{
	"cpu", "instruction", "tokenizer",
	"register", "number", "address", "string", "struct",
}

// Predefine defines a new integer constant visible to scripts, or
// redefines an existing one. Names of builtins, including the Starlark
// universe (len, fail, ...), cannot be predefined.
func (ld *Loader) Predefine(name string, value int64) (err error) {
	if slices.Contains(builtinNames, name) || starlark.Universe.Has(name) {
		err = fmt.Errorf("%w: %v", ErrPredefineReserved, name)
		return
	}

	if ld.predefine == nil {
		ld.predefine = map[string]int64{name: value}
	} else {
		ld.predefine[name] = value
	}

	return
}

// LoadFile loads an instruction set script from a file.
func LoadFile(path string) (isa *Isa, err error) {
	var ld Loader
	return ld.LoadFile(path)
}

// Load loads an instruction set script from source.
func Load(filename string, src any) (isa *Isa, err error) {
	var ld Loader
	return ld.Load(filename, src)
}

// LoadFile loads an instruction set script from a file.
func (ld *Loader) LoadFile(path string) (isa *Isa, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return
	}

	return ld.Load(path, src)
}

// loading is the state of a script under evaluation.
type loading struct {
	*Loader
	done         bool
	spec         *cpu.Spec
	quoted       bool
	instructions []*instruction
}

// Load evaluates an instruction set script. The src argument may be a
// string, a []byte, or an io.Reader.
func (ld *Loader) Load(filename string, src any) (isa *Isa, err error) {
	state := &loading{Loader: ld}

	thread := &starlark.Thread{
		Name:  filename,
		Print: ld.print,
	}

	opts := syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		Recursion:       true,
	}

	_, err = starlark.ExecFileOptions(&opts, thread, filename, src, state.predeclared())
	if err != nil {
		return
	}

	if state.spec == nil {
		err = fmt.Errorf("%v: %w", filename, ErrCpuMissing)
		return
	}

	instructions := make([]asm.Instruction, len(state.instructions))
	for n, instr := range state.instructions {
		instr.encode.Freeze()
		instructions[n] = instr
	}

	state.done = true

	isa = &Isa{
		InstructionSet: asm.NewInstructionSet(*state.spec, instructions...),
		Tokenizer:      asm.Tokenizer{Quoted: state.quoted, Verbose: ld.Verbose},
	}

	if ld.Verbose {
		for _, name := range isa.Duplicates() {
			log.Printf("%v: %v registered more than once", filename, name)
		}
	}

	return
}

// print routes script print() output to the log.
func (ld *Loader) print(thread *starlark.Thread, msg string) {
	if ld.Verbose {
		log.Printf("%v: %v", thread.Name, msg)
	}
}

// predeclared returns the builtins and constants visible to a script.
func (state *loading) predeclared() starlark.StringDict {
	builtins := starlark.StringDict{
		"cpu":         starlark.NewBuiltin("cpu", state.cpu),
		"instruction": starlark.NewBuiltin("instruction", state.instruction),
		"tokenizer":   starlark.NewBuiltin("tokenizer", state.tokenizer),
		"register":    starlark.NewBuiltin("register", state.register),
		"number":      starlark.NewBuiltin("number", state.number),
		"address":     starlark.NewBuiltin("address", state.address),
		"string":      starlark.NewBuiltin("string", state.text),
		"struct":      starlark.NewBuiltin("struct", starlarkstruct.Make),
	}

	constants := starlark.StringDict{}
	for name, value := range state.predefine {
		constants[name] = starlark.MakeInt64(value)
	}

	predeclared := starlark.StringDict{}
	maps.Insert(predeclared, internal.IterSeq2Concat(maps.All(builtins), maps.All(constants)))

	return predeclared
}

// loadOnly rejects calls made once the script has been loaded, such as
// from inside an encoder.
func (state *loading) loadOnly(b *starlark.Builtin) (err error) {
	if state.done {
		err = fmt.Errorf("%v: %w", b.Name(), ErrLoaded)
	}
	return
}

// cpu(registers, ram, rom) declares the target CPU.
func (state *loading) cpu(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = state.loadOnly(b); err != nil {
		return
	}

	var registers int
	var ram, rom starlark.Int
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "registers", &registers, "ram", &ram, "rom", &rom)
	if err != nil {
		return
	}

	if state.spec != nil {
		err = ErrCpuDuplicate
		return
	}

	ram64, ram_ok := ram.Uint64()
	rom64, rom_ok := rom.Uint64()
	if registers < 0 || registers > 255 || !ram_ok || !rom_ok {
		err = fmt.Errorf("%w: registers=%v ram=%v rom=%v", ErrCpuInvalid, registers, ram, rom)
		return
	}

	spec := cpu.NewSpec(uint8(registers), ram64, rom64)
	state.spec = &spec

	if state.Verbose {
		log.Printf("%v: cpu %v", thread.Name, spec)
	}

	result := starlarkstruct.FromStringDict(starlark.String("cpu"), starlark.StringDict{
		"registers": starlark.MakeInt(registers),
		"ram":       ram,
		"rom":       rom,
	})
	result.Freeze()

	value = result
	return
}

// instruction(mnemonic, description, encode) registers an instruction.
func (state *loading) instruction(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = state.loadOnly(b); err != nil {
		return
	}

	instr := &instruction{}
	err = starlark.UnpackArgs(b.Name(), args, kwargs,
		"mnemonic", &instr.mnemonic,
		"description", &instr.description,
		"encode", &instr.encode)
	if err != nil {
		return
	}

	if len(instr.mnemonic) == 0 || strings.IndexFunc(instr.mnemonic, isSpace) >= 0 {
		err = fmt.Errorf("%w: %q", ErrMnemonicInvalid, instr.mnemonic)
		return
	}

	instr.state = state
	state.instructions = append(state.instructions, instr)

	if state.Verbose {
		log.Printf("%v: instruction %v", thread.Name, instr.mnemonic)
	}

	value = starlark.None
	return
}

// tokenizer(quoted=False) selects the source syntax.
func (state *loading) tokenizer(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	if err = state.loadOnly(b); err != nil {
		return
	}

	quoted := false
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "quoted?", &quoted)
	if err != nil {
		return
	}

	state.quoted = quoted

	value = starlark.None
	return
}

// register(tok) returns the index of a register operand.
func (state *loading) register(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var arg starlark.Value
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &arg)
	if err != nil {
		return
	}

	tok, err := asToken(b.Name(), arg)
	if err != nil {
		return
	}

	var spec cpu.Spec
	if state.spec != nil {
		spec = *state.spec
	}

	index, err := asm.RegisterIndex(spec, tok)
	if err != nil {
		return
	}

	value = starlark.MakeInt(int(index))
	return
}

// number(tok, bits=64, signed=True) returns a number operand as a field.
func (state *loading) number(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var arg starlark.Value
	bits := 64
	signed := true
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "tok", &arg, "bits?", &bits, "signed?", &signed)
	if err != nil {
		return
	}

	tok, err := asToken(b.Name(), arg)
	if err != nil {
		return
	}

	if bits < 1 || bits > 64 {
		err = fmt.Errorf("%w: %v bit field", asm.ErrImmediateRange, bits)
		return
	}

	field, err := asm.Field(tok, uint(bits), signed)
	if err != nil {
		return
	}

	value = starlark.MakeUint64(field)
	return
}

// address(tok, space="ram") returns a number operand within the RAM or ROM.
func (state *loading) address(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var arg starlark.Value
	space := "ram"
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "tok", &arg, "space?", &space)
	if err != nil {
		return
	}

	tok, err := asToken(b.Name(), arg)
	if err != nil {
		return
	}

	var spec cpu.Spec
	if state.spec != nil {
		spec = *state.spec
	}

	var limit uint64
	switch space {
	case "ram":
		limit = spec.Ram()
	case "rom":
		limit = spec.Rom()
	default:
		err = fmt.Errorf("%w: %q", ErrAddressSpace, space)
		return
	}

	addr, err := asm.Address(tok, limit)
	if err != nil {
		return
	}

	value = starlark.MakeUint64(addr)
	return
}

// string(tok) returns the text of a string operand.
func (state *loading) text(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var arg starlark.Value
	err = starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &arg)
	if err != nil {
		return
	}

	tok, err := asToken(b.Name(), arg)
	if err != nil {
		return
	}

	if err = asm.Operands([]asm.Token{tok}, asm.TOKEN_STRING); err != nil {
		return
	}

	value = starlark.String(tok.Text)
	return
}

// instruction is an asm.Instruction with a Starlark encoder.
type instruction struct {
	state       *loading
	mnemonic    string
	description string
	encode      starlark.Callable
}

var _ asm.Instruction = (*instruction)(nil)

func (instr *instruction) Mnemonic() string {
	return instr.mnemonic
}

func (instr *instruction) Description() string {
	return instr.description
}

// Encode calls the Starlark encoder on a new thread, so that an instruction
// set may be shared between goroutines.
func (instr *instruction) Encode(operands []asm.Token) (word uint64, err error) {
	thread := &starlark.Thread{
		Name:  instr.mnemonic,
		Print: instr.state.print,
	}

	rc, err := starlark.Call(thread, instr.encode, starlark.Tuple{operandList(operands)}, nil)
	if err != nil {
		return
	}

	st_int, ok := rc.(starlark.Int)
	if !ok {
		err = ErrEncodeResult(rc.String())
		return
	}

	word, ok = st_int.Uint64()
	if !ok {
		word = 0
		err = ErrEncodeResult(st_int.String())
		return
	}

	return
}

// Mnemonics returns the mnemonics of the instruction set, in resolution
// order.
func (isa *Isa) Mnemonics() (mnemonics []string) {
	for instr := range isa.Instructions() {
		mnemonics = append(mnemonics, instr.Mnemonic())
	}

	return
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r'
}
