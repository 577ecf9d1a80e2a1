package asm

import (
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/ezrec/asmkit/cpu"
)

// Operands checks the count and kinds of an operand list.
func Operands(operands []Token, kinds ...TokenKind) (err error) {
	if len(operands) != len(kinds) {
		err = ErrOperandCount{Want: len(kinds), Got: len(operands)}
		return
	}

	for n, kind := range kinds {
		if operands[n].Kind != kind {
			err = ErrOperandKind{Index: n, Want: kind, Got: operands[n].Kind}
			return
		}
	}

	return
}

// RegisterIndex returns the index of a register operand, which must be a
// decimal number less than the register count of the CPU.
func RegisterIndex(spec cpu.Spec, tok Token) (index uint8, err error) {
	if tok.Kind != TOKEN_REGISTER {
		err = ErrOperandKind{Want: TOKEN_REGISTER, Got: tok.Kind}
		return
	}

	value, err := strconv.ParseUint(tok.Text, 10, 64)
	if err != nil {
		err = makeError(ErrRegisterInvalid, "%%%v", tok.Text)
		return
	}

	if value >= uint64(spec.Registers()) {
		err = makeError(ErrRegisterRange, "%%%v >= %v", tok.Text, spec.Registers())
		return
	}

	index = uint8(value)
	return
}

// Immediate returns the value of a number operand, which must be
// representable by T.
func Immediate[T constraints.Integer](tok Token) (value T, err error) {
	if tok.Kind != TOKEN_NUMBER {
		err = ErrOperandKind{Want: TOKEN_NUMBER, Got: tok.Kind}
		return
	}

	unsigned := ^T(0) > 0
	value = T(tok.Value)
	if int64(value) != tok.Value || (unsigned && tok.Value < 0) {
		value = 0
		err = makeError(ErrImmediateRange, "%v", tok.Value)
		return
	}

	return
}

// Address returns the value of a number operand, which must be in the
// range [0, limit).
func Address(tok Token, limit uint64) (addr uint64, err error) {
	if tok.Kind != TOKEN_NUMBER {
		err = ErrOperandKind{Want: TOKEN_NUMBER, Got: tok.Kind}
		return
	}

	if tok.Value < 0 || uint64(tok.Value) >= limit {
		err = makeError(ErrAddressRange, "%#x >= %#x", tok.Value, limit)
		return
	}

	addr = uint64(tok.Value)
	return
}

// Field returns the value of a number operand as a bits wide field, in two's
// complement if signed. The value must fit in the field.
func Field(tok Token, bits uint, signed bool) (field uint64, err error) {
	if tok.Kind != TOKEN_NUMBER {
		err = ErrOperandKind{Want: TOKEN_NUMBER, Got: tok.Kind}
		return
	}

	if bits == 0 || bits > 64 {
		err = makeError(ErrImmediateRange, "%v bit field", bits)
		return
	}

	value := tok.Value
	mask := ^uint64(0) >> (64 - bits)

	var fits bool
	switch {
	case signed && bits == 64:
		fits = true
	case signed:
		limit := int64(1) << (bits - 1)
		fits = value >= -limit && value < limit
	default:
		fits = value >= 0 && uint64(value) <= mask
	}

	if !fits {
		err = makeError(ErrImmediateRange, "%v does not fit %v bits", value, bits)
		return
	}

	field = uint64(value) & mask
	return
}
