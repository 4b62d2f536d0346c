// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"sort"

	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
	"github.com/pkg/errors"
)

// Edge is the active edge of a trigger.
//
type Edge int

// Trigger edges.
//
const (
	Posedge Edge = iota
	Negedge
)

func (e Edge) String() string {
	if e == Negedge {
		return "negedge"
	}
	return "posedge"
}

func (e Edge) match(prev, cur logic.Value) bool {
	if e == Negedge {
		return logic.IsNegedge(prev, cur)
	}
	return logic.IsPosedge(prev, cur)
}

// A Trigger is an edge of a 1 bit signal.
//
type Trigger struct {
	Signal *Signal
	Edge   Edge
}

// OnPosedge returns a rising edge trigger on s.
//
func OnPosedge(s *Signal) Trigger { return Trigger{s, Posedge} }

// OnNegedge returns a falling edge trigger on s.
//
func OnNegedge(s *Signal) Trigger { return Trigger{s, Negedge} }

// SequentialOptions configures a sequential block.
//
type SequentialOptions struct {
	// Reset, when not nil, is a 1 bit signal. While it is 1, every receiver
	// is driven to its value in ResetValues, or to zero.
	Reset *Signal
	// ResetValues maps receivers to reset values. A value can be a *Signal
	// or a logic.Value, or an integer constant.
	ResetValues map[*Signal]interface{}
	// AsyncReset adds a rising edge trigger on Reset.
	AsyncReset bool
	// Strict makes driving a receiver more than once per execution an
	// ErrRedriven error.
	Strict bool
}

// Sequential is a block executed once per simulation step on an active edge
// of any of its triggers. It reads non-trigger inputs as they were before the
// step started and updates its receivers while the clocks are stable.
//
type Sequential struct {
	always
	triggers []Trigger
	strict   bool

	snapshot map[*Signal]logic.Value // non-trigger inputs, keyed by driver
	deferred map[*Signal]bool
	postSet  bool

	prev    []logic.Value
	hasPrev []bool
	pending bool

	triggerChanged bool
	inputChanged   bool
	raceSet        bool
}

// NewSequential creates a sequential block executing conds on any of the given
// triggers. opts may be nil.
//
func NewSequential(d *Design, name string, triggers []Trigger, conds []Conditional, opts *SequentialOptions) (*Sequential, error) {
	if opts == nil {
		opts = new(SequentialOptions)
	}
	if opts.Reset != nil {
		var err error
		if conds, err = withReset(d, conds, opts); err != nil {
			return nil, errors.Wrapf(err, "block %s", name)
		}
		if opts.AsyncReset {
			triggers = append(triggers[:len(triggers):len(triggers)], OnPosedge(opts.Reset))
		}
	}
	if len(triggers) == 0 {
		return nil, errors.Wrapf(ErrNoTriggers, "block %s", name)
	}
	for _, t := range triggers {
		if t.Signal == nil || t.Signal.width != 1 {
			return nil, errors.Wrapf(ErrNotOneBit, "block %s trigger", name)
		}
	}
	s := &Sequential{
		triggers: triggers,
		strict:   opts.Strict,
		snapshot: make(map[*Signal]logic.Value),
		deferred: make(map[*Signal]bool),
		prev:     make([]logic.Value, len(triggers)),
		hasPrev:  make([]bool, len(triggers)),
	}
	ts := make([]*Signal, len(triggers))
	for i, t := range triggers {
		ts[i] = t.Signal
	}
	if err := s.init(d, name, conds, ts...); err != nil {
		return nil, err
	}
	isTrigger := make(map[*Signal]bool)
	for _, t := range triggers {
		isTrigger[t.Signal] = true
	}
	for _, in := range s.drivers {
		if isTrigger[in] {
			continue
		}
		in := in
		s.snapshot[in] = in.Value()
		s.cancels = append(s.cancels, s.in[in].Glitch(func(Change) { s.inputGlitch(in) }))
	}
	for i, t := range triggers {
		i := i
		s.cancels = append(s.cancels, s.in[t.Signal].Glitch(func(c Change) { s.triggerGlitch(i, c) }))
	}
	return s, nil
}

// withReset wraps conds in an If statement driving reset values while reset
// is asserted.
func withReset(d *Design, conds []Conditional, opts *SequentialOptions) ([]Conditional, error) {
	if opts.Reset.width != 1 {
		return nil, errors.Wrapf(ErrNotOneBit, "reset %s", opts.Reset)
	}
	rs := collectList(conds, false, nil, make(map[*Signal]bool))
	seen := make(map[*Signal]bool, len(rs))
	for _, r := range rs {
		seen[r] = true
	}
	var extra []*Signal
	for r := range opts.ResetValues {
		if !seen[r] {
			extra = append(extra, r)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].name < extra[j].name })
	rs = append(rs, extra...)

	var reset []Conditional
	for _, r := range rs {
		v, err := resetValue(d, r, opts.ResetValues[r])
		if err != nil {
			return nil, err
		}
		reset = append(reset, r.Assign(v))
	}
	return []Conditional{NewIf(opts.Reset, reset...).Else(conds...)}, nil
}

func resetValue(d *Design, r *Signal, v interface{}) (*Signal, error) {
	switch v := v.(type) {
	case nil:
		return d.ConstUint(r.width, 0), nil
	case *Signal:
		return v, nil
	case logic.Value:
		return d.Const(v), nil
	case int:
		return d.Const(logic.FromInt(r.width, int64(v))), nil
	case uint64:
		return d.ConstUint(r.width, v), nil
	}
	return nil, errors.Errorf("unsupported reset value type %T for %s", v, r)
}

// Triggers returns the block's triggers.
//
func (s *Sequential) Triggers() []Trigger { return s.triggers }

// Keyword returns the SystemVerilog keyword of the block.
//
func (s *Sequential) Keyword() string { return "always_ff" }

// AssignOperator returns the assignment operator used in the block.
//
func (s *Sequential) AssignOperator() string { return "<=" }

func (s *Sequential) sched() Scheduler { return s.d.sched }

func (s *Sequential) inputGlitch(in *Signal) {
	switch s.sched().Phase() {
	case sim.ClkStable:
		// outputs are being updated, keep the pre-tick view until the end of
		// the step.
		s.deferred[in] = true
		if !s.postSet {
			s.postSet = true
			s.sched().OnPostTick(func() {
				for in := range s.deferred {
					s.snapshot[in] = in.Value()
					delete(s.deferred, in)
				}
				s.postSet = false
			})
		}
		return
	case sim.MainTick:
		s.inputChanged = true
		s.clearRaceAfterTick()
	}
	s.snapshot[in] = in.Value()
}

func (s *Sequential) triggerGlitch(i int, c Change) {
	if !s.hasPrev[i] {
		s.prev[i], s.hasPrev[i] = c.Previous, true
	}
	if s.sched().Phase() == sim.MainTick {
		s.triggerChanged = true
		s.clearRaceAfterTick()
	}
	if !s.pending {
		s.pending = true
		s.sched().OnClkStable(func() {
			s.pending = false
			s.execute()
		})
	}
}

func (s *Sequential) clearRaceAfterTick() {
	if s.raceSet {
		return
	}
	s.raceSet = true
	s.sched().OnPostTick(func() {
		s.triggerChanged, s.inputChanged, s.raceSet = false, false, false
	})
}

func (s *Sequential) execute() {
	defer func() {
		for i := range s.hasPrev {
			s.hasPrev[i] = false
		}
	}()
	x := exec{b: &s.always, driven: make(map[*Signal]bool), strict: s.strict, override: s.snapshot}
	edge := false
	for i, t := range s.triggers {
		cur := t.Signal.Value()
		if !cur.IsValid() || s.hasPrev[i] && !s.prev[i].IsValid() {
			x.driveX(s.receivers)
			return
		}
		if s.hasPrev[i] && t.Edge.match(s.prev[i], cur) {
			edge = true
		}
	}
	if !edge {
		return
	}
	if s.triggerChanged && s.inputChanged {
		// a non-trigger input changed in the same step as a trigger: the
		// sampled value is undefined.
		xs := make(map[*Signal]logic.Value, len(s.snapshot))
		for in := range s.snapshot {
			xs[in] = logic.X(in.width)
		}
		x.override = xs
	}
	x.run(s.conds)
}
