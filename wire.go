// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
)

// Change describes a value change on a signal.
//
type Change struct {
	Previous logic.Value
	New      logic.Value
}

type wireID int

type listener struct {
	fn   func(Change)
	dead bool
}

type listeners []*listener

func (ls *listeners) add(fn func(Change)) func() {
	ls.compact()
	l := &listener{fn: fn}
	*ls = append(*ls, l)
	return func() { l.dead = true }
}

// compact drops cancelled listeners.
func (ls *listeners) compact() {
	live := (*ls)[:0]
	for _, l := range *ls {
		if !l.dead {
			live = append(live, l)
		}
	}
	for i := len(live); i < len(*ls); i++ {
		(*ls)[i] = nil
	}
	*ls = live
}

// emit calls every live listener registered before emit was called.
func (ls *listeners) emit(c Change) {
	ls.compact()
	live := *ls
	snap := append(listeners(nil), live...)
	for _, l := range snap {
		if !l.dead {
			l.fn(c)
		}
	}
}

// wire holds the authoritative value of one or more merged signals.
type wire struct {
	width   int
	value   logic.Value
	fwd     wireID // forwarding slot after a merge, -1 for live wires
	putting bool

	glitch  listeners
	changed listeners

	// pre/post tick tracking, started on demand.
	tracking bool
	cancels  []func()
	preTick  logic.Value
	prev     logic.Value
	hasPrev  bool
}

// put deposits v on the wire of id. A deposit made while the same wire is
// still propagating a previous deposit is contention and turns into X.
func (d *Design) put(id wireID, v logic.Value) {
	w := d.wire(id)
	if v.Width() != w.width {
		panic(errors.Wrapf(ErrWidthMismatch, "put %d bits value on %d bits wire", v.Width(), w.width))
	}
	if w.putting {
		v = logic.X(w.width)
	}
	prev := w.value
	if prev.Equal(v) {
		return
	}
	w.value = v
	was := w.putting
	w.putting = true
	defer func() { w.putting = was }()
	w.glitch.emit(Change{Previous: prev, New: v})
}

// track starts capturing pre-tick values of the wire.
func (d *Design) track(id wireID) {
	w := d.wire(id)
	if w.tracking || d.sched == nil {
		return
	}
	w.tracking = true
	w.preTick = w.value
	w.cancels = append(w.cancels,
		d.sched.SubscribePreTick(func() { w.preTick = w.value }),
		d.sched.SubscribePostTick(func() {
			pre := w.preTick
			w.prev, w.hasPrev = pre, true
			if !w.value.Equal(pre) {
				w.changed.emit(Change{Previous: pre, New: w.value})
			}
		}))
}

// merge makes the wire of from follow the wire of to. Listeners of from are
// moved to to and receive a glitch if the values differ.
func (d *Design) merge(from, to wireID) {
	rf, rt := d.root(from), d.root(to)
	if rf == rt {
		return
	}
	wf, wt := d.wires[rf], d.wires[rt]
	moved := append(listeners(nil), wf.glitch...)
	wt.glitch = append(wt.glitch, wf.glitch...)
	wt.changed = append(wt.changed, wf.changed...)
	wf.glitch, wf.changed = nil, nil
	tracking := wf.tracking
	for _, c := range wf.cancels {
		c()
	}
	wf.cancels, wf.tracking = nil, false
	wf.fwd = rt
	if tracking {
		d.track(rt)
	}

	if !wf.value.Equal(wt.value) {
		was := wt.putting
		wt.putting = true
		defer func() { wt.putting = was }()
		moved.emit(Change{Previous: wf.value, New: wt.value})
	}
}
