// Package memutils collects the low-level numeric and validation helpers
// shared by the page geometry calculator and the allocator itself. It has no
// knowledge of pages, slots, or headers; it only knows about alignment
// arithmetic and the Validatable contract.
package memutils

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 when the tested
// number is not a power of two.
var PowerOfTwoError error = errors.New("number must be a power of two")
