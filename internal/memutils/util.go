package memutils

import (
	cerrors "github.com/cockroachdb/errors"
)

// Number is any integer type CheckPow2 can be instantiated over.
type Number interface {
	~int | ~uint
}

// CheckPow2 returns PowerOfTwoError (wrapped with name and value) unless
// number is a power of two. Zero counts as a power of two here since an
// alignment of zero is used throughout this module to mean "no alignment
// padding required".
func CheckPow2[T Number](number T, name string) error {
	if number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the nearest multiple of alignment. alignment
// must be a power of two.
func AlignUp(value int, alignment uint) int {
	return (value + int(alignment) - 1) & int(^(alignment - 1))
}

// AlignDown rounds value down to the nearest multiple of alignment.
// alignment must be a power of two.
func AlignDown(value int, alignment uint) int {
	return value & int(^(alignment - 1))
}

// PaddingFor returns the number of bytes that must be appended to value to
// bring it up to the next multiple of alignment. It computes the same
// result as a negated-modulo on an unsigned prefix would, without relying
// on two's-complement negation to get there.
func PaddingFor(value int, alignment uint) int {
	if alignment <= 1 {
		return 0
	}
	return AlignUp(value, alignment) - value
}
