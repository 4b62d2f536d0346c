// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/internal/config"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
	"github.com/pkg/errors"
)

// block is an always block that can be printed as SystemVerilog.
type block interface {
	Name() string
	Verilog() string
}

// bench is a design wired to its stimulus.
type bench struct {
	blocks  []block
	signals []*rtlsim.Signal
}

type design struct {
	name  string
	short string
	build func(s *sim.Simulator, d *rtlsim.Design, cfg config.Config) (*bench, error)
}

var designs = []design{
	{"counter", "8 bits counter with synchronous reset and a wrap flag", buildCounter},
	{"alu", "registered ALU computed by an SSA block", buildALU},
	{"adder", "hwlib ripple carry adder feeding a register", buildAdder},
}

func lookup(names []string) ([]design, error) {
	if len(names) == 0 {
		return designs, nil
	}
	var ds []design
outer:
	for _, n := range names {
		for _, d := range designs {
			if d.name == n {
				ds = append(ds, d)
				continue outer
			}
		}
		return nil, errors.Errorf("unknown design %q", n)
	}
	return ds, nil
}

// cycles returns the falling edge times of a clock starting low at time 0,
// up to the configured maximum time. Inputs changed at these times never race
// with a rising edge.
func cycles(cfg config.Config) []uint64 {
	var ts []uint64
	for t := uint64(0); t <= cfg.Sim.MaxTime; t += cfg.Sim.ClockPeriod {
		ts = append(ts, t)
	}
	return ts
}

func buildCounter(s *sim.Simulator, d *rtlsim.Design, cfg config.Config) (*bench, error) {
	var p struct {
		Clk   *rtlsim.Signal `rtl:""`
		Rst   *rtlsim.Signal `rtl:""`
		En    *rtlsim.Signal `rtl:""`
		Count *rtlsim.Signal `rtl:",8"`
		Wrap  *rtlsim.Signal `rtl:""`
	}
	if err := rtlsim.Declare(d, &p); err != nil {
		return nil, err
	}
	cnt, err := rtlsim.NewSequential(d, "count",
		[]rtlsim.Trigger{rtlsim.OnPosedge(p.Clk)},
		[]rtlsim.Conditional{rtlsim.NewIf(p.En, p.Count.Assign(p.Count.Add(d.ConstUint(8, 1))))},
		&rtlsim.SequentialOptions{Reset: p.Rst, Strict: cfg.Sim.Strict})
	if err != nil {
		return nil, err
	}
	wrap, err := rtlsim.NewCombinational(d, "wrap",
		rtlsim.NewIf(p.Count.EqUint(255), p.Wrap.AssignUint(1)).Else(p.Wrap.AssignUint(0)))
	if err != nil {
		return nil, err
	}
	if err = hwlib.Clock(s, p.Clk, cfg.Sim.ClockPeriod); err != nil {
		return nil, err
	}
	// hold reset during the first clock cycle.
	if err = hwlib.Input(s, p.Rst, func(t uint64) logic.Value { return logic.FromBool(t == 0) }, 0, cfg.Sim.ClockPeriod); err != nil {
		return nil, err
	}
	if err = hwlib.Input(s, p.En, func(uint64) logic.Value { return logic.FromBool(true) }, 0); err != nil {
		return nil, err
	}
	return &bench{
		blocks:  []block{cnt, wrap},
		signals: []*rtlsim.Signal{p.Clk, p.Rst, p.En, p.Count, p.Wrap},
	}, nil
}

func buildALU(s *sim.Simulator, d *rtlsim.Design, cfg config.Config) (*bench, error) {
	var p struct {
		Clk *rtlsim.Signal `rtl:""`
		Op  *rtlsim.Signal `rtl:",2"`
		A   *rtlsim.Signal `rtl:",8"`
		B   *rtlsim.Signal `rtl:",8"`
		Y   *rtlsim.Signal `rtl:",8"`
		Q   *rtlsim.Signal `rtl:",8"`
	}
	if err := rtlsim.Declare(d, &p); err != nil {
		return nil, err
	}
	op := func(n uint64) *rtlsim.Signal { return d.ConstUint(2, n) }
	alu, err := rtlsim.NewCombinationalSSA(d, "alu", func(v rtlsim.Remap) []rtlsim.Conditional {
		return []rtlsim.Conditional{
			v(p.Y).Assign(p.A),
			rtlsim.NewCase(p.Op,
				rtlsim.Item(op(0), v(p.Y).Assign(v(p.Y).Add(p.B))),
				rtlsim.Item(op(1), v(p.Y).Assign(v(p.Y).Sub(p.B))),
				rtlsim.Item(op(2), v(p.Y).Assign(v(p.Y).Xor(p.B))),
			),
		}
	})
	if err != nil {
		return nil, err
	}
	q, err := rtlsim.NewSequential(d, "q",
		[]rtlsim.Trigger{rtlsim.OnPosedge(p.Clk)},
		[]rtlsim.Conditional{p.Q.Assign(p.Y)},
		&rtlsim.SequentialOptions{Strict: cfg.Sim.Strict})
	if err != nil {
		return nil, err
	}
	if err = hwlib.Clock(s, p.Clk, cfg.Sim.ClockPeriod); err != nil {
		return nil, err
	}
	ts := cycles(cfg)
	k := func(t uint64) uint64 { return t / cfg.Sim.ClockPeriod }
	for _, in := range []struct {
		sig *rtlsim.Signal
		f   func(t uint64) logic.Value
	}{
		{p.Op, func(t uint64) logic.Value { return logic.FromUint64(2, k(t)) }},
		{p.A, func(t uint64) logic.Value { return logic.FromUint64(8, 3*k(t)+7) }},
		{p.B, func(t uint64) logic.Value { return logic.FromUint64(8, k(t)) }},
	} {
		if err = hwlib.Input(s, in.sig, in.f, ts...); err != nil {
			return nil, err
		}
	}
	return &bench{
		blocks:  []block{alu, q},
		signals: []*rtlsim.Signal{p.Clk, p.Op, p.A, p.B, p.Y, p.Q},
	}, nil
}

func buildAdder(s *sim.Simulator, d *rtlsim.Design, cfg config.Config) (*bench, error) {
	clk := d.Signal("clk", 1)
	a, b := d.Signal("a", 16), d.Signal("b", 16)
	sum, c, err := hwlib.Adder(a, b)
	if err != nil {
		return nil, err
	}
	q := d.Signal("q", 17)
	reg, err := rtlsim.NewSequential(d, "sum",
		[]rtlsim.Trigger{rtlsim.OnPosedge(clk)},
		[]rtlsim.Conditional{q.Assign(rtlsim.Concat(c, sum))},
		&rtlsim.SequentialOptions{Strict: cfg.Sim.Strict})
	if err != nil {
		return nil, err
	}
	if err = hwlib.Clock(s, clk, cfg.Sim.ClockPeriod); err != nil {
		return nil, err
	}
	ts := cycles(cfg)
	if err = hwlib.Input(s, a, func(t uint64) logic.Value { return logic.FromUint64(16, 0xff00+t) }, ts...); err != nil {
		return nil, err
	}
	if err = hwlib.Input(s, b, func(t uint64) logic.Value { return logic.FromUint64(16, t*t) }, ts...); err != nil {
		return nil, err
	}
	return &bench{
		blocks:  []block{reg},
		signals: []*rtlsim.Signal{clk, a, b, sum, c, q},
	}, nil
}
