// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

// Bit is a single four-valued logic bit.
//
type Bit uint8

// Bit values.
//
const (
	Lo Bit = iota
	Hi
	HiZ
	Undefined
)

// IsValid returns true if b is Lo or Hi.
//
func (b Bit) IsValid() bool { return b == Lo || b == Hi }

// Combine returns the result of two drivers on the same net (wire-OR).
//
func (b Bit) Combine(o Bit) Bit {
	switch {
	case b == o:
		return b
	case b == Undefined || o == Undefined:
		return Undefined
	case b == HiZ:
		return o
	case o == HiZ:
		return b
	}
	return Undefined
}

// Invert returns the logical negation of b. HiZ inverts to Undefined.
//
func (b Bit) Invert() Bit {
	switch b {
	case Lo:
		return Hi
	case Hi:
		return Lo
	}
	return Undefined
}

// Rune returns the character used for b in literals.
//
func (b Bit) Rune() rune {
	switch b {
	case Lo:
		return '0'
	case Hi:
		return '1'
	case HiZ:
		return 'z'
	}
	return 'x'
}

func (b Bit) String() string { return string(b.Rune()) }

func bitFromRune(r rune) (Bit, bool) {
	switch r {
	case '0':
		return Lo, true
	case '1':
		return Hi, true
	case 'z', 'Z', '?':
		return HiZ, true
	case 'x', 'X':
		return Undefined, true
	}
	return Undefined, false
}
