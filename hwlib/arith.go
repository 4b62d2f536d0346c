// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/rtlsim"
	"github.com/pkg/errors"
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder(a, b *rtlsim.Signal) (s, c *rtlsim.Signal, err error) {
	if a.Width() != 1 || b.Width() != 1 {
		return nil, nil, errors.Wrap(rtlsim.ErrNotOneBit, "half adder")
	}
	d := a.Design()
	s, c = d.Signal("ha_s", 1), d.Signal("ha_c", 1)
	_, err = rtlsim.NewCombinational(d, "half_adder", s.Assign(a.Xor(b)), c.Assign(a.And(b)))
	if err != nil {
		return nil, nil, err
	}
	return s, c, nil
}

// FullAdder returns a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder(a, b, cin *rtlsim.Signal) (s, cout *rtlsim.Signal, err error) {
	s1, c1, err := HalfAdder(a, b)
	if err != nil {
		return nil, nil, err
	}
	s, c2, err := HalfAdder(s1, cin)
	if err != nil {
		return nil, nil, err
	}
	cout, err = Or(c1, c2)
	if err != nil {
		return nil, nil, err
	}
	return s, cout, nil
}

// Adder returns a N-bits ripple carry adder. The carry is propagated bit by bit
// in a single SSA block.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = lsb(a + b)
//	          c = msb(a + b)
//
func Adder(a, b *rtlsim.Signal) (out, c *rtlsim.Signal, err error) {
	if a.Width() != b.Width() {
		return nil, nil, errors.Wrap(rtlsim.ErrWidthMismatch, "adder")
	}
	d := a.Design()
	n := a.Width()
	out, c = d.Signal("adder_out", n), d.Signal("adder_c", 1)
	_, err = rtlsim.NewCombinationalSSA(d, "adder", func(s rtlsim.Remap) []rtlsim.Conditional {
		conds := []rtlsim.Conditional{s(c).AssignUint(0)}
		bits := make([]*rtlsim.Signal, n)
		for i := 0; i < n; i++ {
			ai, bi := a.Bit(i), b.Bit(i)
			ci := s(c)
			p := ai.Xor(bi)
			bits[n-1-i] = d.Signal("adder_s"+strconv.Itoa(i), 1)
			conds = append(conds,
				bits[n-1-i].Assign(p.Xor(ci)),
				s(c).Assign(ai.And(bi).Or(p.And(ci))))
		}
		return append(conds, out.Assign(rtlsim.Concat(bits...)))
	})
	if err != nil {
		return nil, nil, err
	}
	return out, c, nil
}
