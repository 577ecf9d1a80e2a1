package script

import (
	"go.starlark.net/starlark"

	"github.com/ezrec/asmkit/asm"
)

// tokenValue exposes an asm.Token to Starlark.
type tokenValue struct {
	tok asm.Token
}

var _ starlark.HasAttrs = tokenValue{}

var tokenAttrNames = []string{"kind", "text", "value"}

func (tv tokenValue) String() string { return tv.tok.String() }
func (tv tokenValue) Type() string { return "token" }
func (tv tokenValue) Freeze() {}
func (tv tokenValue) Truth() starlark.Bool { return starlark.True }
func (tv tokenValue) AttrNames() []string { return tokenAttrNames }
func (tv tokenValue) Hash() (uint32, error) { return starlark.String(tv.tok.String()).Hash() }

func (tv tokenValue) Attr(name string) (value starlark.Value, err error) {
	switch name {
	case "kind":
		value = starlark.String(tv.tok.Kind.String())
	case "text":
		value = starlark.String(tv.tok.Text)
	case "value":
		value = starlark.MakeInt64(tv.tok.Value)
	}

	return
}

// operandList converts operand tokens to a frozen Starlark list.
func operandList(operands []asm.Token) *starlark.List {
	values := make([]starlark.Value, len(operands))
	for n, tok := range operands {
		values[n] = tokenValue{tok: tok}
	}

	list := starlark.NewList(values)
	list.Freeze()

	return list
}

// asToken unpacks a token argument of a builtin.
func asToken(fn string, value starlark.Value) (tok asm.Token, err error) {
	tv, ok := value.(tokenValue)
	if !ok {
		err = errorf("%v: expected token, got %v", fn, value.Type())
		return
	}

	tok = tv.tok
	return
}
