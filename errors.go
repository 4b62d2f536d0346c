// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import "github.com/pkg/errors"

// Structural errors, returned while building signals and blocks.
//
var (
	ErrWidthMismatch      = errors.New("width mismatch")
	ErrAlreadyConnected   = errors.New("signal already connected")
	ErrUnassignable       = errors.New("signal is unassignable")
	ErrSelfConnection     = errors.New("signal connected to itself")
	ErrNoTriggers         = errors.New("clocked block has no triggers")
	ErrNotOneBit          = errors.New("signal must be 1 bit wide")
	ErrInvalidConditional = errors.New("invalid conditional")
)

// Execution order errors. They abort the simulation step in which they occur.
//
var (
	ErrWriteAfterRead = errors.New("write after read")
	ErrRedriven       = errors.New("signal driven more than once")
)

// SSA legalization errors.
//
var (
	ErrUninitializedSSA = errors.New("SSA signal used before initialization")
	ErrSSAResolved      = errors.New("SSA signal already resolved")
)

// catch recovers a panic carrying an error and stores it in err. Other
// panics are propagated.
func catch(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = e
	}
}
