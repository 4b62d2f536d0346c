// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
)

// DFF returns a data flip flop clocked on the rising edge of clk.
//
//	Inputs: clk, in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(clk, in *rtlsim.Signal) (*rtlsim.Signal, error) {
	d := in.Design()
	out := d.Signal("dff_out", in.Width())
	_, err := rtlsim.NewSequential(d, "dff", []rtlsim.Trigger{rtlsim.OnPosedge(clk)},
		[]rtlsim.Conditional{out.Assign(in)}, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Register returns a register with a load enable.
//
//	Inputs: clk, load, in
//	Outputs: out
//	Function: if load(t-1) { out(t) = in(t-1) } else { out(t) = out(t-1) }
//
func Register(clk, load, in *rtlsim.Signal) (*rtlsim.Signal, error) {
	d := in.Design()
	out := d.Signal("reg_out", in.Width())
	_, err := rtlsim.NewSequential(d, "register", []rtlsim.Trigger{rtlsim.OnPosedge(clk)},
		[]rtlsim.Conditional{rtlsim.NewIf(load, out.Assign(in))}, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Counter returns a width bits counter with a synchronous reset.
//
//	Inputs: clk, reset, inc
//	Outputs: out
//	Function: if reset(t-1) { out(t) = 0 }
//	          else if inc(t-1) { out(t) = out(t-1) + 1 }
//	          else { out(t) = out(t-1) }
//
func Counter(clk, reset, inc *rtlsim.Signal, width int) (*rtlsim.Signal, error) {
	d := clk.Design()
	out := d.Signal("counter_out", width)
	_, err := rtlsim.NewSequential(d, "counter", []rtlsim.Trigger{rtlsim.OnPosedge(clk)},
		[]rtlsim.Conditional{rtlsim.NewIf(inc, out.Assign(out.Add(d.ConstUint(width, 1))))},
		&rtlsim.SequentialOptions{Reset: reset})
	if err != nil {
		return nil, err
	}
	return out, nil
}
