// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/db47h/rtlsim/internal/names"
	"github.com/pkg/errors"
)

// Port binds a signal outside of a block to the block's internal port signal.
//
type Port struct {
	Name     string  // unique name within the block
	Signal   *Signal // external signal
	Internal *Signal // block side signal
}

// always is the common part of combinational and sequential blocks.
//
// Every driver is read through an internal input port connected to it, and
// every receiver is connected to an internal output port written by the
// block. Receivers therefore end up with the block as their single source.
//
type always struct {
	d         *Design
	name      string
	conds     []Conditional
	drivers   []*Signal
	receivers []*Signal
	in, out   map[*Signal]*Signal
	inPorts   []Port
	outPorts  []Port
	names     map[*Signal]string
	cancels   []func()
}

func checkReceiver(r *Signal) error {
	switch {
	case r.ssa != nil && r.src != nil:
		return errors.Wrapf(ErrSSAResolved, "assign %s", r)
	case r.IsUnassignable():
		return errors.Wrapf(ErrUnassignable, "assign %s", r)
	case r.src != nil:
		return errors.Wrapf(ErrAlreadyConnected, "assign %s", r)
	}
	return nil
}

// init collects the drivers and receivers of conds and connects them to the
// block's ports. extra signals are added as leading drivers.
func (b *always) init(d *Design, name string, conds []Conditional, extra ...*Signal) (err error) {
	if err = validateList(conds); err != nil {
		return errors.Wrapf(err, "block %s", name)
	}
	b.d = d
	b.name = name
	b.conds = conds
	seen := make(map[*Signal]bool)
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			b.drivers = append(b.drivers, s)
		}
	}
	b.drivers = collectList(conds, true, b.drivers, seen)
	b.receivers = collectList(conds, false, nil, make(map[*Signal]bool))
	b.in = make(map[*Signal]*Signal, len(b.drivers))
	b.out = make(map[*Signal]*Signal, len(b.receivers))
	b.names = make(map[*Signal]string)

	for _, s := range append(b.drivers, b.receivers...) {
		if s.d != d {
			return errors.Errorf("block %s: signal %s belongs to another design", name, s)
		}
	}
	for _, r := range b.receivers {
		if err = checkReceiver(r); err != nil {
			return errors.Wrapf(err, "block %s", name)
		}
	}

	var u names.Uniquifier
	portName := func(s *Signal) string {
		n, ok := b.names[s]
		if !ok {
			n = u.Get(s.name)
			b.names[s] = n
		}
		return n
	}
	for _, r := range b.receivers {
		n := portName(r)
		p := d.newSignal(name+"."+n+"_out", r.width)
		p.kind = kindPort
		if err = r.Connect(p); err != nil {
			return errors.Wrapf(err, "block %s", name)
		}
		b.out[r] = p
		b.outPorts = append(b.outPorts, Port{Name: n, Signal: r, Internal: p})
	}
	for _, s := range b.drivers {
		n := portName(s)
		p := d.newSignal(name+"."+n+"_in", s.width)
		p.kind = kindPort
		if err = p.Connect(s); err != nil {
			return errors.Wrapf(err, "block %s", name)
		}
		b.in[s] = p
		b.inPorts = append(b.inPorts, Port{Name: n, Signal: s, Internal: p})
		s.fanout = append(s.fanout, b.receivers...)
	}
	return nil
}

// Name returns the block's name.
//
func (b *always) Name() string { return b.name }

// Conditionals returns the block's top level conditionals.
//
func (b *always) Conditionals() []Conditional { return b.conds }

// Inputs returns the block's input ports in order of first appearance.
//
func (b *always) Inputs() []Port { return b.inPorts }

// Outputs returns the block's output ports in order of first appearance.
//
func (b *always) Outputs() []Port { return b.outPorts }

// Dispose cancels every subscription held by the block. Its receivers keep
// their last value.
//
func (b *always) Dispose() {
	for _, c := range b.cancels {
		c()
	}
	b.cancels = nil
}
