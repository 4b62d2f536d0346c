// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strconv"

	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
)

type signalKind int

const (
	kindPlain signalKind = iota
	kindConst
	kindGate
	kindNet
	kindPort
)

// A Signal is a named, fixed-width view on a wire.
//
// A signal has at most one source connection. Connecting a signal to a source
// merges their wires: from then on they share a single value and every
// listener of either signal sees changes made through the other.
//
type Signal struct {
	d     *Design
	name  string
	width int
	id    wireID
	kind  signalKind

	src    *Signal
	dsts   []*Signal
	fanout []*Signal // signals whose value is computed from this one

	net *net
	ssa *ssaProxy
}

func (s *Signal) wire() *wire { return s.d.wire(s.id) }

// Name returns the signal's name.
//
func (s *Signal) Name() string { return s.name }

// Width returns the signal's width in bits.
//
func (s *Signal) Width() int { return s.width }

// Design returns the design the signal belongs to.
//
func (s *Signal) Design() *Design { return s.d }

func (s *Signal) String() string {
	return s.name + "[" + strconv.Itoa(s.width) + "]"
}

// Value returns the current value of the signal.
//
func (s *Signal) Value() logic.Value { return s.wire().value }

// Src returns the signal s is connected to, or nil.
//
func (s *Signal) Src() *Signal { return s.src }

// Dsts returns the signals connected to s.
//
func (s *Signal) Dsts() []*Signal { return s.dsts }

// IsUnassignable returns true if s cannot be the target of a Put, a Connect
// or an assignment. This is the case of constants and gate outputs.
//
func (s *Signal) IsUnassignable() bool {
	return s.kind == kindConst || s.kind == kindGate
}

// Put deposits v on the signal. Every listener of the signal's wire is
// notified synchronously if the value changes.
//
// The returned error is any error raised by the listeners, like a write after
// read in a combinational block.
//
func (s *Signal) Put(v logic.Value) (err error) {
	defer catch(&err)
	s.MustPut(v)
	return nil
}

// PutUint64 is a shorthand for s.Put(logic.FromUint64(s.Width(), u)).
//
func (s *Signal) PutUint64(u uint64) error {
	return s.Put(logic.FromUint64(s.width, u))
}

// MustPut is like Put but panics on error. It is meant to be used from
// simulator actions, where the simulator recovers the error and ends the
// simulation.
//
func (s *Signal) MustPut(v logic.Value) {
	if s.IsUnassignable() || s.kind == kindNet {
		panic(errors.Wrapf(ErrUnassignable, "put %s", s))
	}
	if v.Width() != s.width {
		panic(errors.Wrapf(ErrWidthMismatch, "put %d bits value on %s", v.Width(), s))
	}
	s.d.put(s.id, v)
}

// Connect makes src the source of s. Both signals then share src's wire.
//
// Connecting a tri-state net adds src to the net's drivers instead.
//
func (s *Signal) Connect(src *Signal) (err error) {
	if s.net != nil {
		return s.net.addDriver(s, src)
	}
	switch {
	case s.width != src.width:
		return errors.Wrapf(ErrWidthMismatch, "connect %s to %s", s, src)
	case s.ssa != nil && s.src != nil:
		return errors.Wrapf(ErrSSAResolved, "connect %s", s)
	case s.src != nil:
		return errors.Wrapf(ErrAlreadyConnected, "connect %s to %s", s, src)
	case s.IsUnassignable():
		return errors.Wrapf(ErrUnassignable, "connect %s", s)
	}
	for p := src; p != nil; p = p.src {
		if p == s {
			return errors.Wrapf(ErrSelfConnection, "connect %s to %s", s, src)
		}
	}
	s.src = src
	src.dsts = append(src.dsts, s)
	src.fanout = append(src.fanout, s)
	defer catch(&err)
	s.d.merge(s.id, src.id)
	return nil
}

// Glitch registers fn to be called synchronously on every value change of s,
// including transient changes within a simulation step. It returns a function
// that cancels the subscription.
//
func (s *Signal) Glitch(fn func(Change)) (cancel func()) {
	return s.wire().glitch.add(fn)
}

// Changed registers fn to be called at the end of a simulation step if the
// value of s differs from its value at the start of the step.
//
func (s *Signal) Changed(fn func(Change)) (cancel func()) {
	s.d.track(s.id)
	return s.wire().changed.add(fn)
}

// PreviousValue returns the value of s captured right before the most recent
// completed simulation step. It returns false if no step completed since the
// first call to PreviousValue or Changed on this signal.
//
func (s *Signal) PreviousValue() (logic.Value, bool) {
	s.d.track(s.id)
	w := s.wire()
	return w.prev, w.hasPrev
}

// Assign returns a conditional assigning driver to s.
//
func (s *Signal) Assign(driver *Signal) *Assign {
	return &Assign{Receiver: s, Driver: driver}
}

// AssignUint returns a conditional assigning the constant u to s.
//
func (s *Signal) AssignUint(u uint64) *Assign {
	return s.Assign(s.d.ConstUint(s.width, u))
}
