// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
	"github.com/pkg/errors"
)

// Scheduler is the part of a discrete-event scheduler that signals and blocks
// need. *sim.Simulator implements it.
//
type Scheduler interface {
	Phase() sim.Phase
	OnClkStable(fn func())
	OnPostTick(fn func())
	SubscribePreTick(fn func()) (cancel func())
	SubscribePostTick(fn func()) (cancel func())
}

// A Design owns all the wires of a circuit. Signals and blocks belong to
// exactly one design and must never be mixed across designs.
//
// Wires live in an arena and are referenced by index. Merging two signals
// forwards one arena slot to the other, so every signal that shared the
// merged wire follows without being updated.
//
type Design struct {
	sched Scheduler
	wires []*wire
	ssa   int // SSA context counter
}

// NewDesign returns an empty design scheduled by s.
//
func NewDesign(s Scheduler) *Design {
	return &Design{sched: s}
}

// Scheduler returns the design's scheduler.
//
func (d *Design) Scheduler() Scheduler { return d.sched }

func (d *Design) allocWire(width int) wireID {
	id := wireID(len(d.wires))
	d.wires = append(d.wires, &wire{
		width: width,
		value: logic.Z(width),
		fwd:   -1,
	})
	return id
}

// root returns the id of the wire id has been merged into, compressing the
// forwarding path on the way.
func (d *Design) root(id wireID) wireID {
	r := id
	for d.wires[r].fwd >= 0 {
		r = d.wires[r].fwd
	}
	for id != r {
		next := d.wires[id].fwd
		d.wires[id].fwd = r
		id = next
	}
	return r
}

func (d *Design) wire(id wireID) *wire { return d.wires[d.root(id)] }

func (d *Design) newSignal(name string, width int) *Signal {
	return &Signal{
		d:     d,
		name:  name,
		width: width,
		id:    d.allocWire(width),
	}
}

// Signal returns a new undriven signal. Its initial value is floating.
//
func (d *Design) Signal(name string, width int) *Signal {
	if width < 1 {
		panic(errors.Errorf("invalid signal width %d", width))
	}
	return d.newSignal(name, width)
}

// Const returns an unassignable signal holding v.
//
func (d *Design) Const(v logic.Value) *Signal {
	s := d.newSignal(v.String(), v.Width())
	s.wire().value = v
	s.kind = kindConst
	return s
}

// ConstUint returns an unassignable signal holding u on width bits.
//
func (d *Design) ConstUint(width int, u uint64) *Signal {
	return d.Const(logic.FromUint64(width, u))
}
