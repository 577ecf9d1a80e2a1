package script

import (
	"errors"

	"github.com/ezrec/asmkit/translate"
)

var f = translate.From

var (
	ErrCpuMissing      = errors.New(f("cpu() not declared"))
	ErrCpuDuplicate    = errors.New(f("cpu() declared twice"))
	ErrCpuInvalid      = errors.New(f("cpu() values invalid"))
	ErrLoaded          = errors.New(f("instruction set already loaded"))
	ErrAddressSpace    = errors.New(f("address space unknown"))
	ErrMnemonicInvalid = errors.New(f("mnemonic invalid"))

	ErrPredefineReserved = errors.New(f("predefine name is reserved"))
)

// ErrEncodeResult is a value returned by an encoder that is not a 64-bit word.
type ErrEncodeResult string

func (err ErrEncodeResult) Error() string {
	return f("encoder returned %v, not a 64-bit word", string(err))
}

// errorf formats a script usage error.
func errorf(format string, args ...any) error {
	return errors.New(f(format, args...))
}
