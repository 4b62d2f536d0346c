// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"testing"

	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
)

func TestDFF(t *testing.T) {
	s := sim.New(sim.WithMaxTime(95))
	d := newDesignWith(s)
	clk, in := d.Signal("clk", 1), d.Signal("in", 4)
	out, err := hl.DFF(clk, in)
	if err != nil {
		t.Fatal(err)
	}
	if err = hl.Clock(s, clk, 10); err != nil {
		t.Fatal(err)
	}
	// change inputs away from clock edges
	if err = hl.Input(s, in, func(t uint64) logic.Value { return u(4, t/10) }, 2, 12, 22, 32); err != nil {
		t.Fatal(err)
	}
	var got []logic.Value
	hl.Output(out, func(v logic.Value) { got = append(got, v) })
	run(t, s)
	// X from the first clock transition, then rising edges at 5, 15, 25, 35
	exp := []logic.Value{logic.X(4), u(4, 0), u(4, 1), u(4, 2), u(4, 3)}
	if len(got) != len(exp) {
		t.Fatalf("got %v", got)
	}
	for i := range exp {
		if !got[i].Equal(exp[i]) {
			t.Errorf("change %d: out = %s, expected %s", i, got[i], exp[i])
		}
	}
}

func TestRegister(t *testing.T) {
	s := sim.New(sim.WithMaxTime(60))
	d := newDesignWith(s)
	clk, load, in := d.Signal("clk", 1), d.Signal("load", 1), d.Signal("in", 8)
	out, err := hl.Register(clk, load, in)
	if err != nil {
		t.Fatal(err)
	}
	if err = hl.Clock(s, clk, 10); err != nil {
		t.Fatal(err)
	}
	at := func(tm uint64, fn func()) {
		if err := s.RegisterAction(tm, fn); err != nil {
			t.Fatal(err)
		}
	}
	at(2, func() { load.MustPut(u(1, 1)); in.MustPut(u(8, 42)) })
	at(12, func() { load.MustPut(u(1, 0)); in.MustPut(u(8, 7)) })
	run(t, s)
	if v := out.Value(); !v.Equal(u(8, 42)) {
		t.Fatalf("out = %s", v)
	}
}

func TestCounter(t *testing.T) {
	s := sim.New(sim.WithMaxTime(100))
	d := newDesignWith(s)
	clk, rst, inc := d.Signal("clk", 1), d.Signal("rst", 1), d.Signal("inc", 1)
	out, err := hl.Counter(clk, rst, inc, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err = hl.Clock(s, clk, 10); err != nil {
		t.Fatal(err)
	}
	if err = s.RegisterAction(2, func() { rst.MustPut(u(1, 1)); inc.MustPut(u(1, 1)) }); err != nil {
		t.Fatal(err)
	}
	if err = s.RegisterAction(12, func() { rst.MustPut(u(1, 0)) }); err != nil {
		t.Fatal(err)
	}
	// reset on edge 5, counts on edges 15..95
	run(t, s)
	if v := out.Value(); !v.Equal(u(4, 9)) {
		t.Fatalf("out = %s", v)
	}
}
