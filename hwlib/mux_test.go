// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	"github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
)

func TestMux(t *testing.T) {
	hwtest.CompareParts(t, []int{1, 4, 4},
		func(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error) {
			out, err := hl.Mux(ins[0], ins[1], ins[2])
			return []*rtlsim.Signal{out}, err
		},
		ref(func(ins []*rtlsim.Signal) []*rtlsim.Signal {
			return []*rtlsim.Signal{rtlsim.Mux(ins[0], ins[1], ins[2])}
		}))
}

func TestDMux(t *testing.T) {
	hwtest.CompareParts(t, []int{1, 3},
		func(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error) {
			a, b, err := hl.DMux(ins[0], ins[1])
			return []*rtlsim.Signal{a, b}, err
		},
		ref(func(ins []*rtlsim.Signal) []*rtlsim.Signal {
			sel, in := ins[0], ins[1]
			zero := in.Design().ConstUint(3, 0)
			return []*rtlsim.Signal{rtlsim.Mux(sel, in, zero), rtlsim.Mux(sel, zero, in)}
		}))
}

func TestMuxN(t *testing.T) {
	hwtest.CompareParts(t, []int{2, 2, 2, 2, 2},
		func(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error) {
			out, err := hl.MuxN(ins[0], ins[1:]...)
			return []*rtlsim.Signal{out}, err
		},
		ref(func(ins []*rtlsim.Signal) []*rtlsim.Signal {
			sel := ins[0]
			lo := rtlsim.Mux(sel.Bit(0), ins[1], ins[2])
			hi := rtlsim.Mux(sel.Bit(0), ins[3], ins[4])
			return []*rtlsim.Signal{rtlsim.Mux(sel.Bit(1), lo, hi)}
		}))

	_, d := newDesign()
	sel := d.Signal("sel", 1)
	ins := []*rtlsim.Signal{d.Signal("a", 1), d.Signal("b", 1), d.Signal("c", 1)}
	if _, err := hl.MuxN(sel, ins...); err == nil {
		t.Fatal("expected error with 3 inputs and a 1 bit selector")
	}
}
