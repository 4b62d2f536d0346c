// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for rtlsim.
//
// Every part is built from combinational or sequential blocks. Part
// constructors take the part's input signals and return its outputs.
//
package hwlib

import (
	"github.com/db47h/rtlsim"
	"github.com/pkg/errors"
)

// gate builds a single output combinational block computing f(ins...).
func gate(name string, f func(ins ...*rtlsim.Signal) *rtlsim.Signal, ins ...*rtlsim.Signal) (*rtlsim.Signal, error) {
	d := ins[0].Design()
	expr := f(ins...)
	out := d.Signal(name+"_out", expr.Width())
	if _, err := rtlsim.NewCombinational(d, name, out.Assign(expr)); err != nil {
		return nil, err
	}
	return out, nil
}

func binary(name string, f func(a, b *rtlsim.Signal) *rtlsim.Signal) func(a, b *rtlsim.Signal) (*rtlsim.Signal, error) {
	return func(a, b *rtlsim.Signal) (*rtlsim.Signal, error) {
		if a.Width() != b.Width() {
			return nil, errors.Wrapf(rtlsim.ErrWidthMismatch, "%s %s, %s", name, a, b)
		}
		return gate(name, func(ins ...*rtlsim.Signal) *rtlsim.Signal { return f(ins[0], ins[1]) }, a, b)
	}
}

var (
	and  = binary("and", (*rtlsim.Signal).And)
	nand = binary("nand", func(a, b *rtlsim.Signal) *rtlsim.Signal { return a.And(b).Not() })
	or   = binary("or", (*rtlsim.Signal).Or)
	nor  = binary("nor", func(a, b *rtlsim.Signal) *rtlsim.Signal { return a.Or(b).Not() })
	xor  = binary("xor", (*rtlsim.Signal).Xor)
	xnor = binary("xnor", func(a, b *rtlsim.Signal) *rtlsim.Signal { return a.Xor(b).Not() })
)

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = ~in
//
func Not(in *rtlsim.Signal) (*rtlsim.Signal, error) {
	return gate("not", func(ins ...*rtlsim.Signal) *rtlsim.Signal { return ins[0].Not() }, in)
}

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a & b
//
func And(a, b *rtlsim.Signal) (*rtlsim.Signal, error) { return and(a, b) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ~(a & b)
//
func Nand(a, b *rtlsim.Signal) (*rtlsim.Signal, error) { return nand(a, b) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a | b
//
func Or(a, b *rtlsim.Signal) (*rtlsim.Signal, error) { return or(a, b) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ~(a | b)
//
func Nor(a, b *rtlsim.Signal) (*rtlsim.Signal, error) { return nor(a, b) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a ^ b
//
func Xor(a, b *rtlsim.Signal) (*rtlsim.Signal, error) { return xor(a, b) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = ~(a ^ b)
//
func Xnor(a, b *rtlsim.Signal) (*rtlsim.Signal, error) { return xnor(a, b) }
