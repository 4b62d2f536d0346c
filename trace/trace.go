// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records value changes of signals during a simulation and
// serializes them with msgpack.
//
package trace

import (
	"io"
	"sort"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Version is the version of the serialized trace format.
//
const Version uint16 = 1

// Clock is the time source of a recorder. *sim.Simulator implements it.
//
type Clock interface {
	Time() uint64
}

// Signal describes a traced signal.
//
type Signal struct {
	Name  string `msgpack:"name"`
	Width int    `msgpack:"width"`
}

// Change is a value change of the signal at index Signal in the trace's
// signal list.
//
type Change struct {
	Time   uint64 `msgpack:"t"`
	Signal int    `msgpack:"s"`
	Value  string `msgpack:"v"`
}

// Trace is a recorded or decoded trace.
//
type Trace struct {
	Version uint16   `msgpack:"version"`
	Signals []Signal `msgpack:"signals"`
	Changes []Change `msgpack:"changes"`
}

// Recorder records the changes of watched signals at the end of every
// simulation step.
//
type Recorder struct {
	clk     Clock
	t       Trace
	cancels []func()
}

// NewRecorder returns a new recorder using clk as its time source.
//
func NewRecorder(clk Clock) *Recorder {
	return &Recorder{clk: clk, t: Trace{Version: Version}}
}

// Watch starts recording changes of the given signals. Their current value is
// recorded right away.
//
func (r *Recorder) Watch(sigs ...*rtlsim.Signal) {
	for _, s := range sigs {
		idx := len(r.t.Signals)
		r.t.Signals = append(r.t.Signals, Signal{Name: s.Name(), Width: s.Width()})
		r.add(idx, s.Value())
		r.cancels = append(r.cancels, s.Changed(func(c rtlsim.Change) { r.add(idx, c.New) }))
	}
}

func (r *Recorder) add(idx int, v logic.Value) {
	r.t.Changes = append(r.t.Changes, Change{Time: r.clk.Time(), Signal: idx, Value: v.String()})
}

// Stop stops recording.
//
func (r *Recorder) Stop() {
	for _, c := range r.cancels {
		c()
	}
	r.cancels = nil
}

// Trace returns the recorded trace.
//
func (r *Recorder) Trace() *Trace { return &r.t }

// Encode writes the trace to w.
//
func (t *Trace) Encode(w io.Writer) error {
	return errors.Wrap(msgpack.NewEncoder(w).Encode(t), "encode trace")
}

// Decode reads a trace from rd.
//
func Decode(rd io.Reader) (*Trace, error) {
	var t Trace
	if err := msgpack.NewDecoder(rd).Decode(&t); err != nil {
		return nil, errors.Wrap(err, "decode trace")
	}
	if t.Version != Version {
		return nil, errors.Errorf("unsupported trace version %d", t.Version)
	}
	for _, c := range t.Changes {
		if c.Signal < 0 || c.Signal >= len(t.Signals) {
			return nil, errors.Errorf("invalid signal index %d at time %d", c.Signal, c.Time)
		}
	}
	return &t, nil
}

// ValueAt returns the value of the named signal at time tm, that is the value
// of its last change at or before tm.
//
func (t *Trace) ValueAt(name string, tm uint64) (logic.Value, error) {
	idx := -1
	for i, s := range t.Signals {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return logic.Value{}, errors.Errorf("signal %q not traced", name)
	}
	// changes are recorded in time order
	n := sort.Search(len(t.Changes), func(i int) bool { return t.Changes[i].Time > tm })
	for i := n - 1; i >= 0; i-- {
		if c := t.Changes[i]; c.Signal == idx {
			return logic.Parse(c.Value)
		}
	}
	return logic.Z(t.Signals[idx].Width), nil
}
