// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
	"github.com/pkg/errors"
)

// Mux returns a multiplexer.
//
//	Inputs: sel, a, b
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(sel, a, b *rtlsim.Signal) (*rtlsim.Signal, error) {
	if a.Width() != b.Width() {
		return nil, errors.Wrap(rtlsim.ErrWidthMismatch, "mux")
	}
	d := sel.Design()
	out := d.Signal("mux_out", a.Width())
	_, err := rtlsim.NewCombinational(d, "mux",
		rtlsim.NewIf(sel, out.Assign(b)).Else(out.Assign(a)))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DMux returns a demultiplexer.
//
//	Inputs: sel, in
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux(sel, in *rtlsim.Signal) (a, b *rtlsim.Signal, err error) {
	d := sel.Design()
	a, b = d.Signal("dmux_a", in.Width()), d.Signal("dmux_b", in.Width())
	_, err = rtlsim.NewCombinational(d, "dmux",
		rtlsim.NewIf(sel, a.AssignUint(0), b.Assign(in)).
			Else(a.Assign(in), b.AssignUint(0)))
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// MuxN returns a N-way multiplexer. If sel is out of range, out is X.
//
//	Inputs: sel, ins[n]
//	Outputs: out
//	Function: out = ins[sel]
//
func MuxN(sel *rtlsim.Signal, ins ...*rtlsim.Signal) (*rtlsim.Signal, error) {
	if len(ins) == 0 {
		return nil, errors.New("MuxN without inputs")
	}
	if uint64(len(ins)-1)>>uint(sel.Width()) != 0 {
		return nil, errors.Errorf("MuxN: %d inputs cannot be selected by %d bits", len(ins), sel.Width())
	}
	d := sel.Design()
	out := d.Signal("muxn_out", ins[0].Width())
	items := make([]rtlsim.CaseItem, len(ins))
	for i, in := range ins {
		if in.Width() != out.Width() {
			return nil, errors.Wrapf(rtlsim.ErrWidthMismatch, "MuxN input %d", i)
		}
		items[i] = rtlsim.Item(d.ConstUint(sel.Width(), uint64(i)), out.Assign(in))
	}
	if _, err := rtlsim.NewCombinational(d, "muxn", rtlsim.NewCase(sel, items...)); err != nil {
		return nil, err
	}
	return out, nil
}
