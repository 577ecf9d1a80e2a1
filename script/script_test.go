package script

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/asmkit/asm"
	"github.com/ezrec/asmkit/cpu"
)

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	isa, err := LoadFile("testdata/toy.star")
	require.NoError(t, err)

	assert.Equal(cpu.NewSpec(4, 256, 1024), isa.Spec())
	assert.True(isa.Tokenizer.Quoted)
	assert.Equal([]string{"NOP", "MOV", "LDI", "ADD", "SUB", "LD", "ST", "JMP", "OUT"}, isa.Mnemonics())

	instr, ok := isa.Lookup("LDI")
	if assert.True(ok) {
		assert.Equal("load a signed 32-bit immediate", instr.Description())
	}
}

func TestToy_Assemble(t *testing.T) {
	assert := assert.New(t)

	isa, err := LoadFile("testdata/toy.star")
	require.NoError(t, err)

	program := []string{
		"// toy program",
		"NOP",
		"MOV %1 %2",
		"LDI %3 -1",
		"ADD %0 %1 %2",
		"SUB %3 %3 %3",
		"LD %2 255",
		"ST %2 0x10",
		"JMP 1023",
		`OUT "hi"`,
	}

	prog, err := isa.Tokenizer.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	words, err := isa.AssembleProgram(prog)
	require.NoError(t, err)

	assert.Equal([]uint64{
		0x0000000000000000,
		0x0101020000000000,
		0x02030000ffffffff,
		0x1000010200000000,
		0x1103030300000000,
		0x20020000000000ff,
		0x2102000000000010,
		0x30000000000003ff,
		0x4068690000000000,
	}, words)
}

func TestToy_Errors(t *testing.T) {
	assert := assert.New(t)

	isa, err := LoadFile("testdata/toy.star")
	require.NoError(t, err)

	table := []struct {
		name string
		line []asm.Token
		err  error
	}{
		{"register", []asm.Token{asm.Mnemonic("MOV"), asm.Register("7"), asm.Register("0")}, asm.ErrRegisterRange},
		{"register_name", []asm.Token{asm.Mnemonic("MOV"), asm.Register("sp"), asm.Register("0")}, asm.ErrRegisterInvalid},
		{"immediate", []asm.Token{asm.Mnemonic("LDI"), asm.Register("0"), asm.Number(0x100000000)}, asm.ErrImmediateRange},
		{"ram", []asm.Token{asm.Mnemonic("LD"), asm.Register("0"), asm.Number(256)}, asm.ErrAddressRange},
		{"rom", []asm.Token{asm.Mnemonic("JMP"), asm.Number(1024)}, asm.ErrAddressRange},
		{"unknown", []asm.Token{asm.Mnemonic("HLT")}, asm.ErrMnemonicUnknown("HLT")},
	}

	for _, entry := range table {
		word, err := isa.Assemble(entry.line)
		assert.Equal(uint64(0), word, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
	}

	// Failures raised by the script itself.
	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("MOV"), asm.Register("1")})
	assert.ErrorContains(err, "expected 2 operands, got 1")

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("OUT"), asm.String("too long!")})
	assert.ErrorContains(err, "text too long")

	var instr *asm.ErrInstruction
	if assert.True(errors.As(err, &instr)) {
		assert.Equal("OUT", instr.Mnemonic)
	}
}

func TestLoad_Minimal(t *testing.T) {
	assert := assert.New(t)

	isa, err := Load("minimal.star", `cpu(registers = 1, ram = 0, rom = 0)`)
	require.NoError(t, err)

	assert.Equal(0, isa.Len())
	assert.False(isa.Tokenizer.Quoted)
	assert.Nil(isa.Mnemonics())
}

func TestLoad_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name   string
		script string
		err    error
	}{
		{"missing", `instruction("NOP", "", lambda ops: 0)`, ErrCpuMissing},
		{"duplicate", "cpu(registers = 1, ram = 0, rom = 0)\ncpu(registers = 1, ram = 0, rom = 0)", ErrCpuDuplicate},
		{"registers", `cpu(registers = 256, ram = 0, rom = 0)`, ErrCpuInvalid},
		{"negative", `cpu(registers = 1, ram = -1, rom = 0)`, ErrCpuInvalid},
		{"huge", `cpu(registers = 1, ram = 0, rom = 1 << 64)`, ErrCpuInvalid},
		{"mnemonic_empty", "cpu(registers = 1, ram = 0, rom = 0)\ninstruction(\"\", \"\", lambda ops: 0)", ErrMnemonicInvalid},
		{"mnemonic_space", "cpu(registers = 1, ram = 0, rom = 0)\ninstruction(\"A B\", \"\", lambda ops: 0)", ErrMnemonicInvalid},
	}

	for _, entry := range table {
		isa, err := Load(entry.name+".star", entry.script)
		assert.Nil(isa, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
	}

	_, err := Load("syntax.star", "cpu(")
	assert.Error(err)

	_, err = Load("args.star", `cpu(registers = 1)`)
	assert.ErrorContains(err, "missing argument for ram")

	_, err = Load("encode.star", "cpu(registers = 1, ram = 0, rom = 0)\ninstruction(\"NOP\", \"\", 3)")
	assert.Error(err)

	_, err = LoadFile("testdata/missing.star")
	assert.Error(err)
}

func TestLoad_EncodeResult(t *testing.T) {
	assert := assert.New(t)

	script := []string{
		"cpu(registers = 1, ram = 0, rom = 0)",
		`instruction("STR", "", lambda ops: "word")`,
		`instruction("NEG", "", lambda ops: -1)`,
		`instruction("BIG", "", lambda ops: 1 << 64)`,
		`instruction("MAX", "", lambda ops: (1 << 64) - 1)`,
	}

	isa, err := Load("result.star", strings.Join(script, "\n"))
	require.NoError(t, err)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("STR")})
	assert.ErrorIs(err, ErrEncodeResult(`"word"`))

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("NEG")})
	assert.ErrorIs(err, ErrEncodeResult("-1"))

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("BIG")})
	assert.ErrorIs(err, ErrEncodeResult("18446744073709551616"))

	word, err := isa.Assemble([]asm.Token{asm.Mnemonic("MAX")})
	assert.NoError(err)
	assert.Equal(uint64(0xffffffffffffffff), word)
}

func TestLoad_Tokens(t *testing.T) {
	assert := assert.New(t)

	script := []string{
		"cpu(registers = 1, ram = 0, rom = 0)",
		"def kinds(ops):",
		"    word = 0",
		"    for tok in ops:",
		`        word = word * 16 + {"number": 1, "register": 2, "string": 3}[tok.kind]`,
		"    return word",
		"def value(ops):",
		"    return ops[0].value + len(ops[1].text)",
		`instruction("KINDS", "", kinds)`,
		`instruction("VALUE", "", value)`,
		`instruction("KINDS", "shadowed", lambda ops: 0)`,
	}

	isa, err := Load("tokens.star", strings.Join(script, "\n"))
	require.NoError(t, err)

	assert.Equal([]string{"KINDS"}, isa.Duplicates())

	word, err := isa.Assemble([]asm.Token{asm.Mnemonic("KINDS"), asm.Number(9), asm.Register("r"), asm.String("s")})
	assert.NoError(err)
	assert.Equal(uint64(0x123), word)

	word, err = isa.Assemble([]asm.Token{asm.Mnemonic("VALUE"), asm.Number(40), asm.Register("ab")})
	assert.NoError(err)
	assert.Equal(uint64(42), word)
}

func TestLoad_Sealed(t *testing.T) {
	assert := assert.New(t)

	script := []string{
		"cpu(registers = 1, ram = 0, rom = 0)",
		`instruction("CPU", "", lambda ops: cpu(registers = 2, ram = 0, rom = 0))`,
		`instruction("ADD", "", lambda ops: instruction("X", "", lambda ops: 0))`,
	}

	isa, err := Load("sealed.star", strings.Join(script, "\n"))
	require.NoError(t, err)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("CPU")})
	assert.ErrorIs(err, ErrLoaded)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("ADD")})
	assert.ErrorIs(err, ErrLoaded)

	assert.Equal(cpu.NewSpec(1, 0, 0), isa.Spec())
	assert.Equal(2, isa.Len())
}

func TestLoader_Predefine(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	assert.NoError(ld.Predefine("WIDTH", 4))
	assert.NoError(ld.Predefine("WIDTH", 8))
	assert.NoError(ld.Predefine("BASE", 0x100))

	isa, err := ld.Load("predefine.star", "cpu(registers = WIDTH, ram = BASE, rom = BASE * 2)")
	require.NoError(t, err)

	assert.Equal(cpu.NewSpec(8, 0x100, 0x200), isa.Spec())
}

func TestLoader_PredefineReserved(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	for _, name := range []string{"cpu", "instruction", "register", "struct", "len", "fail", "True"} {
		assert.ErrorIs(ld.Predefine(name, 1), ErrPredefineReserved, name)
	}

	// The builtins are still intact.
	isa, err := ld.Load("reserved.star", "CPU = cpu(registers = 2, ram = len([1, 2]), rom = 0)")
	require.NoError(t, err)
	assert.Equal(cpu.NewSpec(2, 2, 0), isa.Spec())

	// Every predeclared builtin is reserved.
	state := &loading{Loader: ld}
	for name := range state.predeclared() {
		assert.Contains(builtinNames, name)
	}
	assert.Len(state.predeclared(), len(builtinNames))
}

func TestLoad_Builtins(t *testing.T) {
	assert := assert.New(t)

	script := []string{
		"C = cpu(registers = 2, ram = 16, rom = 32)",
		"S = struct(a = 1)",
		`instruction("NUM", "", lambda ops: number(ops[0], bits = 8, signed = False))`,
		`instruction("BITS", "", lambda ops: number(ops[0], bits = 65))`,
		`instruction("SPACE", "", lambda ops: address(ops[0], space = "io"))`,
		`instruction("TOK", "", lambda ops: register(3))`,
		`instruction("STR", "", lambda ops: len(string(ops[0])))`,
		`instruction("CPU", "", lambda ops: C.registers * 1000 + C.ram + C.rom + S.a)`,
	}

	isa, err := Load("builtins.star", strings.Join(script, "\n"))
	require.NoError(t, err)

	word, err := isa.Assemble([]asm.Token{asm.Mnemonic("NUM"), asm.Number(255)})
	assert.NoError(err)
	assert.Equal(uint64(255), word)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("NUM"), asm.Number(-1)})
	assert.ErrorIs(err, asm.ErrImmediateRange)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("BITS"), asm.Number(1)})
	assert.ErrorIs(err, asm.ErrImmediateRange)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("SPACE"), asm.Number(1)})
	assert.ErrorIs(err, ErrAddressSpace)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("TOK")})
	assert.ErrorContains(err, "expected token, got int")

	word, err = isa.Assemble([]asm.Token{asm.Mnemonic("STR"), asm.String("abc")})
	assert.NoError(err)
	assert.Equal(uint64(3), word)

	_, err = isa.Assemble([]asm.Token{asm.Mnemonic("STR"), asm.Number(1)})
	assert.ErrorIs(err, asm.ErrOperandKind{Want: asm.TOKEN_STRING, Got: asm.TOKEN_NUMBER})

	word, err = isa.Assemble([]asm.Token{asm.Mnemonic("CPU")})
	assert.NoError(err)
	assert.Equal(uint64(2049), word)
}

func TestIsa_Concurrent(t *testing.T) {
	assert := assert.New(t)

	isa, err := LoadFile("testdata/toy.star")
	require.NoError(t, err)

	prog, err := asm.ParseString("MOV %1 %2\nADD %0 %1 %2\nJMP 5")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]uint64, 16)
	for n := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[n], _ = isa.AssembleProgram(prog)
		}()
	}
	wg.Wait()

	for _, words := range results {
		assert.Equal([]uint64{0x0101020000000000, 0x1000010200000000, 0x3000000000000005}, words)
	}
}
