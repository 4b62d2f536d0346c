// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package logic implements fixed width four-valued (0, 1, X, Z) bit vectors.
//
// A Value is immutable: every operation returns a new Value. Bits are stored
// in three planes of 64 bit words: the binary value, a high-impedance mask
// and an undefined mask. A bit is never set in more than one of the hiz and
// undef planes, and the bits plane is always cleared where either is set.
//
package logic

import (
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/pkg/errors"
)

// Value is an immutable four-valued bit vector.
//
type Value struct {
	width int
	bits  []uint64
	hiz   []uint64
	undef []uint64
}

func words(width int) int { return (width + 63) / 64 }

// topMask returns the mask of valid bits in the last word of a value of the
// given width.
func topMask(width int) uint64 {
	if r := width % 64; r != 0 {
		return 1<<uint(r) - 1
	}
	return ^uint64(0)
}

func newValue(width int) Value {
	if width < 0 {
		panic(errors.Errorf("negative width %d", width))
	}
	n := words(width)
	return Value{
		width: width,
		bits:  make([]uint64, n),
		hiz:   make([]uint64, n),
		undef: make([]uint64, n),
	}
}

// Filled returns a value of the given width with all bits set to b.
//
func Filled(width int, b Bit) Value {
	v := newValue(width)
	for i := 0; i < width; i++ {
		v.setBit(i, b)
	}
	return v
}

// X returns an all-X value of the given width.
//
func X(width int) Value { return Filled(width, Undefined) }

// Z returns a floating value of the given width.
//
func Z(width int) Value { return Filled(width, HiZ) }

// Zero returns a value of the given width with all bits set to 0.
//
func Zero(width int) Value { return newValue(width) }

// FromUint64 returns a value of the given width from the low bits of u.
//
func FromUint64(width int, u uint64) Value {
	v := newValue(width)
	if len(v.bits) > 0 {
		v.bits[0] = u
		if width < 64 {
			v.bits[0] &= topMask(width)
		}
	}
	return v
}

// FromInt returns the two's complement representation of n on width bits.
//
func FromInt(width int, n int64) Value {
	v := newValue(width)
	for i := range v.bits {
		if i == 0 {
			v.bits[0] = uint64(n)
		} else if n < 0 {
			v.bits[i] = ^uint64(0)
		}
	}
	v.mask()
	return v
}

// FromBool returns a 1 bit value.
//
func FromBool(b bool) Value {
	if b {
		return FromUint64(1, 1)
	}
	return FromUint64(1, 0)
}

// FromBits builds a value from individual bits, most significant bit first.
//
func FromBits(bs ...Bit) Value {
	v := newValue(len(bs))
	for i, b := range bs {
		v.setBit(len(bs)-1-i, b)
	}
	return v
}

func (v Value) clone() Value {
	z := Value{width: v.width}
	z.bits = append([]uint64(nil), v.bits...)
	z.hiz = append([]uint64(nil), v.hiz...)
	z.undef = append([]uint64(nil), v.undef...)
	return z
}

func (v *Value) mask() {
	if n := len(v.bits); n > 0 {
		m := topMask(v.width)
		v.bits[n-1] &= m
		v.hiz[n-1] &= m
		v.undef[n-1] &= m
	}
}

// setBit must only be called on values under construction.
func (v *Value) setBit(i int, b Bit) {
	w, m := i/64, uint64(1)<<uint(i%64)
	v.bits[w] &^= m
	v.hiz[w] &^= m
	v.undef[w] &^= m
	switch b {
	case Hi:
		v.bits[w] |= m
	case HiZ:
		v.hiz[w] |= m
	case Undefined:
		v.undef[w] |= m
	}
}

// Width returns the number of bits in v.
//
func (v Value) Width() int { return v.width }

// Bit returns the bit at index i, 0 being the least significant bit.
// This function panics if i is out of range.
//
func (v Value) Bit(i int) Bit {
	if i < 0 || i >= v.width {
		panic(errors.Errorf("bit index %d out of range for width %d", i, v.width))
	}
	w, m := i/64, uint64(1)<<uint(i%64)
	switch {
	case v.undef[w]&m != 0:
		return Undefined
	case v.hiz[w]&m != 0:
		return HiZ
	case v.bits[w]&m != 0:
		return Hi
	}
	return Lo
}

// IsValid returns true if no bit of v is X or Z.
//
func (v Value) IsValid() bool {
	for i := range v.bits {
		if v.hiz[i]|v.undef[i] != 0 {
			return false
		}
	}
	return true
}

// IsFloating returns true if every bit of v is Z.
//
func (v Value) IsFloating() bool {
	for i := range v.hiz {
		m := ^uint64(0)
		if i == len(v.hiz)-1 {
			m = topMask(v.width)
		}
		if v.hiz[i] != m {
			return false
		}
	}
	return true
}

// HasZ returns true if any bit of v is Z.
//
func (v Value) HasZ() bool {
	for _, w := range v.hiz {
		if w != 0 {
			return true
		}
	}
	return false
}

// HasX returns true if any bit of v is X.
//
func (v Value) HasX() bool {
	for _, w := range v.undef {
		if w != 0 {
			return true
		}
	}
	return false
}

// IsZero returns true if v is valid and all its bits are 0.
//
func (v Value) IsZero() bool {
	if !v.IsValid() {
		return false
	}
	for _, w := range v.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// Equal returns true if v and o have the same width and the same four-valued
// bits.
//
func (v Value) Equal(o Value) bool {
	if v.width != o.width {
		return false
	}
	for i := range v.bits {
		if v.bits[i] != o.bits[i] || v.hiz[i] != o.hiz[i] || v.undef[i] != o.undef[i] {
			return false
		}
	}
	return true
}

// Uint64 returns the value of v as an unsigned integer. It fails if v is not
// valid or does not fit in 64 bits.
//
func (v Value) Uint64() (uint64, error) {
	if !v.IsValid() {
		return 0, errors.Errorf("cannot convert invalid value %s to an integer", v)
	}
	for i := 1; i < len(v.bits); i++ {
		if v.bits[i] != 0 {
			return 0, errors.Errorf("value %s overflows 64 bits", v)
		}
	}
	if len(v.bits) == 0 {
		return 0, nil
	}
	return v.bits[0], nil
}

// Int returns the unsigned value of v as an int.
//
func (v Value) Int() (int, error) {
	u, err := v.Uint64()
	if err != nil {
		return 0, err
	}
	n, err := safecast.Conv[int](u)
	if err != nil {
		return 0, errors.Wrapf(err, "value %s", v)
	}
	return n, nil
}

// Bits returns the bits of v, most significant first.
//
func (v Value) Bits() []Bit {
	r := make([]Bit, v.width)
	for i := range r {
		r[i] = v.Bit(v.width - 1 - i)
	}
	return r
}

// String returns v as a sized binary literal, e.g. 4'b1z01.
//
func (v Value) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(v.width))
	b.WriteString("'b")
	for i := v.width - 1; i >= 0; i-- {
		b.WriteRune(v.Bit(i).Rune())
	}
	return b.String()
}
