// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package rtlsim provides an event-driven simulator for register-transfer level
hardware described in Go.

Signals are fixed-width four-valued vectors (see package logic) sharing wires.
Connecting a signal to another merges their wires, so that both always carry
the same value. Every value change is propagated synchronously to the
listeners of the wire.

Behaviour is described with procedural statements, Assign, If, Case and Group,
executed by two kinds of blocks:

	- Combinational blocks re-execute their statements whenever any signal
	  they read glitches. Outputs not written by an execution become X.
	- Sequential blocks execute their statements on the active edge of a
	  trigger, read their inputs as they were before the simulation step and
	  update their outputs once every clock is stable.

Blocks are scheduled by a discrete-event simulator, see package sim:

	s := sim.New()
	d := rtlsim.NewDesign(s)
	a, b, y := d.Signal("a", 8), d.Signal("b", 8), d.Signal("y", 8)
	_, err := rtlsim.NewCombinational(d, "add", y.Assign(a.Add(b)))

NewCombinationalSSA allows a signal to be assigned several times in a block by
way of SSA proxies merged with phi signals.

Blocks can be emitted as SystemVerilog always blocks.
*/
package rtlsim
