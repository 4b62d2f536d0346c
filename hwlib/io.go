// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
	"github.com/pkg/errors"
)

// Clock toggles clk every half period, starting low at the current simulation
// time. The clock never stops: simulations using it must be bounded with
// sim.WithMaxTime, RunUntil or End.
//
func Clock(s *sim.Simulator, clk *rtlsim.Signal, period uint64) error {
	if clk.Width() != 1 {
		return errors.Wrap(rtlsim.ErrNotOneBit, "clock")
	}
	if period < 2 || period%2 != 0 {
		return errors.Errorf("invalid clock period %d", period)
	}
	half := period / 2
	b := logic.Lo
	var toggle func()
	toggle = func() {
		clk.MustPut(logic.FromBits(b))
		b = b.Invert()
		if err := s.RegisterAction(s.Time()+half, toggle); err != nil {
			panic(err)
		}
	}
	return s.RegisterAction(s.Time(), toggle)
}

// Input drives in with the values returned by f at the given times.
//
//	Outputs: in
//	Function: in(t) = f(t)
//
func Input(s *sim.Simulator, in *rtlsim.Signal, f func(t uint64) logic.Value, times ...uint64) error {
	for _, t := range times {
		t := t
		if err := s.RegisterAction(t, func() { in.MustPut(f(t)) }); err != nil {
			return err
		}
	}
	return nil
}

// Output creates a probe. The fn function is called at the end of every
// simulation step where out changed.
//
//	Inputs: out
//	Function: f(out)
//
func Output(out *rtlsim.Signal, fn func(logic.Value)) (cancel func()) {
	return out.Changed(func(c rtlsim.Change) { fn(c.New) })
}
