// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

import (
	"math/bits"

	"github.com/pkg/errors"
)

func (v Value) checkWidth(o Value, op string) {
	if v.width != o.width {
		panic(errors.Errorf("%s: width mismatch %d != %d", op, v.width, o.width))
	}
}

// known returns the masks of bits known to be 0 and known to be 1 in word i.
func (v Value) known(i int) (zero, one uint64) {
	unk := v.hiz[i] | v.undef[i]
	return ^v.bits[i] &^ unk, v.bits[i] &^ unk
}

// fromKnown builds a value where bits neither in zero nor in one are X.
func fromKnown(width int, zero, one []uint64) Value {
	z := newValue(width)
	for i := range z.bits {
		z.bits[i] = one[i]
		z.undef[i] = ^(zero[i] | one[i])
	}
	z.mask()
	return z
}

// Not returns the bitwise negation of v. X and Z bits become X.
//
func (v Value) Not() Value {
	zero := make([]uint64, len(v.bits))
	one := make([]uint64, len(v.bits))
	for i := range v.bits {
		one[i], zero[i] = v.known(i)
	}
	return fromKnown(v.width, zero, one)
}

// And returns the bitwise AND of v and o.
//
// A bit known to be 0 in either operand yields 0, two 1 bits yield 1, and
// anything else yields X. In particular v.And(v) turns every Z bit into X.
//
func (v Value) And(o Value) Value {
	v.checkWidth(o, "and")
	zero := make([]uint64, len(v.bits))
	one := make([]uint64, len(v.bits))
	for i := range v.bits {
		z0, o0 := v.known(i)
		z1, o1 := o.known(i)
		zero[i] = z0 | z1
		one[i] = o0 & o1
	}
	return fromKnown(v.width, zero, one)
}

// Or returns the bitwise OR of v and o.
//
func (v Value) Or(o Value) Value {
	v.checkWidth(o, "or")
	zero := make([]uint64, len(v.bits))
	one := make([]uint64, len(v.bits))
	for i := range v.bits {
		z0, o0 := v.known(i)
		z1, o1 := o.known(i)
		zero[i] = z0 & z1
		one[i] = o0 | o1
	}
	return fromKnown(v.width, zero, one)
}

// Xor returns the bitwise XOR of v and o.
//
func (v Value) Xor(o Value) Value {
	v.checkWidth(o, "xor")
	zero := make([]uint64, len(v.bits))
	one := make([]uint64, len(v.bits))
	for i := range v.bits {
		z0, o0 := v.known(i)
		z1, o1 := o.known(i)
		k := (z0 | o0) & (z1 | o1)
		x := v.bits[i] ^ o.bits[i]
		one[i] = x & k
		zero[i] = ^x & k
	}
	return fromKnown(v.width, zero, one)
}

// Add returns v + o modulo 2^width. Any X or Z bit in either operand makes
// the whole result X.
//
func (v Value) Add(o Value) Value {
	v.checkWidth(o, "add")
	if !v.IsValid() || !o.IsValid() {
		return X(v.width)
	}
	z := newValue(v.width)
	var c uint64
	for i := range z.bits {
		z.bits[i], c = bits.Add64(v.bits[i], o.bits[i], c)
	}
	z.mask()
	return z
}

// Sub returns v - o modulo 2^width.
//
func (v Value) Sub(o Value) Value {
	v.checkWidth(o, "sub")
	if !v.IsValid() || !o.IsValid() {
		return X(v.width)
	}
	z := newValue(v.width)
	var b uint64
	for i := range z.bits {
		z.bits[i], b = bits.Sub64(v.bits[i], o.bits[i], b)
	}
	z.mask()
	return z
}

// cmp compares two valid values of the same width as unsigned integers.
func (v Value) cmp(o Value) int {
	for i := len(v.bits) - 1; i >= 0; i-- {
		switch {
		case v.bits[i] < o.bits[i]:
			return -1
		case v.bits[i] > o.bits[i]:
			return 1
		}
	}
	return 0
}

func compare(v, o Value, op string, f func(c int) bool) Value {
	v.checkWidth(o, op)
	if !v.IsValid() || !o.IsValid() {
		return X(1)
	}
	return FromBool(f(v.cmp(o)))
}

// Eq returns the 1 bit result of v == o. The result is X if either operand
// is not valid.
//
func (v Value) Eq(o Value) Value { return compare(v, o, "eq", func(c int) bool { return c == 0 }) }

// Neq returns the 1 bit result of v != o.
//
func (v Value) Neq(o Value) Value { return compare(v, o, "neq", func(c int) bool { return c != 0 }) }

// Lt returns the 1 bit result of the unsigned comparison v < o.
//
func (v Value) Lt(o Value) Value { return compare(v, o, "lt", func(c int) bool { return c < 0 }) }

// Lte returns the 1 bit result of the unsigned comparison v <= o.
//
func (v Value) Lte(o Value) Value { return compare(v, o, "lte", func(c int) bool { return c <= 0 }) }

// Gt returns the 1 bit result of the unsigned comparison v > o.
//
func (v Value) Gt(o Value) Value { return compare(v, o, "gt", func(c int) bool { return c > 0 }) }

// Gte returns the 1 bit result of the unsigned comparison v >= o.
//
func (v Value) Gte(o Value) Value { return compare(v, o, "gte", func(c int) bool { return c >= 0 }) }

// Shl returns v shifted left by n bits.
//
func (v Value) Shl(n int) Value {
	z := newValue(v.width)
	for i := n; i < v.width; i++ {
		z.setBit(i, v.Bit(i-n))
	}
	return z
}

// Shr returns v logically shifted right by n bits.
//
func (v Value) Shr(n int) Value {
	z := newValue(v.width)
	for i := 0; i+n < v.width; i++ {
		z.setBit(i, v.Bit(i+n))
	}
	return z
}

// Slice returns bits hi down to lo (inclusive) of v.
//
func (v Value) Slice(hi, lo int) Value {
	if lo < 0 || hi >= v.width || hi < lo {
		panic(errors.Errorf("invalid slice [%d:%d] of width %d", hi, lo, v.width))
	}
	z := newValue(hi - lo + 1)
	for i := lo; i <= hi; i++ {
		z.setBit(i-lo, v.Bit(i))
	}
	return z
}

// Concat concatenates values, the first one ending up in the most significant
// bits.
//
func Concat(vs ...Value) Value {
	w := 0
	for _, v := range vs {
		w += v.width
	}
	z := newValue(w)
	pos := w
	for _, v := range vs {
		pos -= v.width
		for i := 0; i < v.width; i++ {
			z.setBit(pos+i, v.Bit(i))
		}
	}
	return z
}

// Replicate returns n copies of v concatenated.
//
func (v Value) Replicate(n int) Value {
	vs := make([]Value, n)
	for i := range vs {
		vs[i] = v
	}
	return Concat(vs...)
}

// ZeroExtend returns v extended to width bits with leading zeroes.
//
func (v Value) ZeroExtend(width int) Value {
	if width < v.width {
		panic(errors.Errorf("cannot zero extend width %d to %d", v.width, width))
	}
	return Concat(Zero(width-v.width), v)
}

// Combine merges two tri-state drivers bit by bit: Z yields to the other
// driver, identical bits are kept and conflicts become X.
//
func (v Value) Combine(o Value) Value {
	v.checkWidth(o, "combine")
	z := newValue(v.width)
	for i := 0; i < v.width; i++ {
		z.setBit(i, v.Bit(i).Combine(o.Bit(i)))
	}
	return z
}

// MatchZ reports whether v matches pattern where every Z bit of pattern is a
// wildcard. Other bits must be identical.
//
func (v Value) MatchZ(pattern Value) bool {
	if v.width != pattern.width {
		return false
	}
	for i := range v.bits {
		care := ^pattern.hiz[i]
		if (v.bits[i]^pattern.bits[i])&care != 0 ||
			(v.hiz[i]^pattern.hiz[i])&care != 0 ||
			(v.undef[i]^pattern.undef[i])&care != 0 {
			return false
		}
	}
	return true
}

// IsPosedge returns true if prev and cur are 1 bit values showing a clean
// 0 to 1 transition.
//
func IsPosedge(prev, cur Value) bool {
	return prev.width == 1 && cur.width == 1 && prev.Bit(0) == Lo && cur.Bit(0) == Hi
}

// IsNegedge returns true if prev and cur are 1 bit values showing a clean
// 1 to 0 transition.
//
func IsNegedge(prev, cur Value) bool {
	return prev.width == 1 && cur.width == 1 && prev.Bit(0) == Hi && cur.Bit(0) == Lo
}
