// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

import (
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/pkg/errors"
)

// Parse parses a literal value. Supported forms are sized literals like
// 4'b1z01, 8'hf0, 8'hz? or 12'd100, and bare binary strings like 1z01 whose
// width is the number of digits. Underscores are ignored. In binary and hex
// literals, z, Z and ? denote high impedance and x, X undefined bits.
//
func Parse(s string) (Value, error) {
	lit := strings.Replace(s, "_", "", -1)
	i := strings.IndexByte(lit, '\'')
	if i < 0 {
		return parseBin(s, len(lit), lit)
	}
	w, err := strconv.ParseUint(lit[:i], 10, 32)
	if err != nil {
		return Value{}, parseError(s, 0, "invalid width")
	}
	width, err := safecast.Conv[int](w)
	if err != nil {
		return Value{}, parseError(s, 0, "invalid width")
	}
	if i+1 >= len(lit) {
		return Value{}, parseError(s, i+1, "missing base")
	}
	digits := lit[i+2:]
	if digits == "" {
		return Value{}, parseError(s, i+2, "missing digits")
	}
	switch lit[i+1] {
	case 'b', 'B':
		return parseBin(s, width, digits)
	case 'h', 'H':
		return parseHex(s, width, digits)
	case 'd', 'D':
		u, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return Value{}, parseError(s, i+2, "invalid decimal digits")
		}
		if width < 64 && u>>uint(width) != 0 {
			return Value{}, parseError(s, i+2, "value does not fit in width")
		}
		return FromUint64(width, u), nil
	}
	return Value{}, parseError(s, i+1, "unknown base")
}

// MustParse is like Parse but panics on error.
//
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseBin(s string, width int, digits string) (Value, error) {
	if len(digits) > width {
		return Value{}, parseError(s, 0, "too many digits for width")
	}
	v := newValue(width)
	for i, r := range digits {
		b, ok := bitFromRune(r)
		if !ok {
			return Value{}, parseError(s, i, "invalid binary digit")
		}
		v.setBit(len(digits)-1-i, b)
	}
	return v, nil
}

func parseHex(s string, width int, digits string) (Value, error) {
	v := newValue(width)
	pos := 0
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		var nib [4]Bit
		if b, ok := bitFromRune(rune(c)); ok && b != Lo && b != Hi {
			nib = [4]Bit{b, b, b, b}
		} else {
			n, err := strconv.ParseUint(string(c), 16, 8)
			if err != nil {
				return Value{}, parseError(s, i, "invalid hex digit")
			}
			for j := range nib {
				nib[j] = Bit(n >> uint(j) & 1)
			}
		}
		for _, b := range nib {
			if pos >= width {
				if b != Lo {
					return Value{}, parseError(s, i, "value does not fit in width")
				}
			} else {
				v.setBit(pos, b)
			}
			pos++
		}
	}
	return v, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
