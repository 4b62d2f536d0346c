// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package sim implements a single threaded discrete-event scheduler.
//
// Time advances in ticks. Each tick runs the following phases in order:
//
//	BeforeTick: pre-tick subscribers run (values are captured here).
//	MainTick:   actions registered for the current time run. Signal
//	            glitches propagate synchronously from within actions.
//	ClkStable:  one-shot callbacks registered with OnClkStable run. Clocked
//	            blocks execute here. Callbacks registered while the phase is
//	            draining run before the phase ends.
//	AfterTick:  post-tick subscribers, then one-shot OnPostTick callbacks.
//
// Nothing in this package is safe for concurrent use. Independent
// simulations can run concurrently, each with its own Simulator.
//
package sim

import (
	"container/heap"
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

// Phase identifies the current phase of a Simulator.
//
type Phase int

// Simulation phases.
//
const (
	OutOfTick Phase = iota
	BeforeTick
	MainTick
	ClkStable
	AfterTick
)

func (p Phase) String() string {
	switch p {
	case OutOfTick:
		return "out-of-tick"
	case BeforeTick:
		return "before-tick"
	case MainTick:
		return "main-tick"
	case ClkStable:
		return "clk-stable"
	case AfterTick:
		return "after-tick"
	}
	return "unknown"
}

// ErrEnded is returned when trying to tick a simulation that has ended.
//
var ErrEnded = errors.New("simulation ended")

// An Option configures a Simulator.
//
type Option func(s *Simulator)

// WithLogger sets the logger used by the simulator. The default logger
// discards everything.
//
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

// WithMaxTime makes Run stop once simulation time exceeds t.
//
func WithMaxTime(t uint64) Option {
	return func(s *Simulator) { s.maxTime = t; s.hasMax = true }
}

type hook struct {
	fn   func()
	dead bool
}

type hooks []*hook

func (hs *hooks) add(fn func()) func() {
	h := &hook{fn: fn}
	*hs = append(*hs, h)
	return func() { h.dead = true }
}

func (hs *hooks) fire(s *Simulator) error {
	live := (*hs)[:0]
	for _, h := range *hs {
		if !h.dead {
			live = append(live, h)
		}
	}
	*hs = live
	// hooks added while firing wait for the next tick.
	for _, h := range append(hooks(nil), live...) {
		if h.dead {
			continue
		}
		if err := s.call(h.fn); err != nil {
			return err
		}
	}
	return nil
}

type timeHeap []uint64

func (h timeHeap) Len() int            { return len(h) }
func (h timeHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h timeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timeHeap) Push(x interface{}) { *h = append(*h, x.(uint64)) }
func (h *timeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Simulator is a discrete-event scheduler.
//
type Simulator struct {
	now     uint64
	phase   Phase
	times   timeHeap
	actions map[uint64][]func()

	preTick   hooks
	postTick  hooks
	clkStable []func()
	postOnce  []func()

	ended   bool
	maxTime uint64
	hasMax  bool
	ticks   uint64
	log     *slog.Logger
}

// New returns a new simulator at time 0.
//
func New(opts ...Option) *Simulator {
	s := &Simulator{
		actions: make(map[uint64][]func()),
		log:     slog.New(discardHandler{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Time returns the current simulation time.
//
func (s *Simulator) Time() uint64 { return s.now }

// Phase returns the current phase.
//
func (s *Simulator) Phase() Phase { return s.phase }

// Ticks returns the number of completed ticks.
//
func (s *Simulator) Ticks() uint64 { return s.ticks }

// Ended returns true once End has been called or a tick failed.
//
func (s *Simulator) Ended() bool { return s.ended }

// RegisterAction schedules fn to run during the MainTick phase of time t.
// Registering an action for the current time is only possible before the
// current tick has moved past its MainTick phase.
//
func (s *Simulator) RegisterAction(t uint64, fn func()) error {
	if t < s.now || t == s.now && s.phase > MainTick {
		return errors.Errorf("cannot register action at time %d, current time is %d (%v)", t, s.now, s.phase)
	}
	if _, ok := s.actions[t]; !ok {
		heap.Push(&s.times, t)
	}
	s.actions[t] = append(s.actions[t], fn)
	return nil
}

// SubscribePreTick registers fn to run at the beginning of every tick. The
// returned function cancels the subscription.
//
func (s *Simulator) SubscribePreTick(fn func()) (cancel func()) { return s.preTick.add(fn) }

// SubscribePostTick registers fn to run at the end of every tick. The
// returned function cancels the subscription.
//
func (s *Simulator) SubscribePostTick(fn func()) (cancel func()) { return s.postTick.add(fn) }

// OnClkStable registers fn to run once, during the next ClkStable phase. If
// the simulator is currently in ClkStable, fn runs before that phase ends.
//
func (s *Simulator) OnClkStable(fn func()) { s.clkStable = append(s.clkStable, fn) }

// OnPostTick registers fn to run once at the end of the current tick, or of
// the next one when called outside of a tick.
//
func (s *Simulator) OnPostTick(fn func()) { s.postOnce = append(s.postOnce, fn) }

// End stops the simulation once the current tick completes.
//
func (s *Simulator) End() { s.ended = true }

// Pending returns true if there are scheduled actions.
//
func (s *Simulator) Pending() bool { return len(s.times) > 0 }

// call runs fn and converts a panic carrying an error into a returned error.
// Any other panic is propagated.
func (s *Simulator) call(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()
	fn()
	return nil
}

// Tick runs the next scheduled time step. It returns false if nothing was
// pending. Any error raised by a callback aborts the tick and ends the
// simulation.
//
func (s *Simulator) Tick() (bool, error) {
	if s.ended {
		return false, ErrEnded
	}
	if len(s.times) == 0 {
		return false, nil
	}
	t := heap.Pop(&s.times).(uint64)
	s.now = t
	if err := s.tick(); err != nil {
		s.phase = OutOfTick
		s.ended = true
		s.clkStable, s.postOnce = nil, nil
		s.log.Error("simulation aborted", "time", t, "err", err)
		return false, errors.Wrapf(err, "at time %d", t)
	}
	s.ticks++
	return true, nil
}

func (s *Simulator) tick() error {
	s.log.Debug("tick", "time", s.now)

	s.phase = BeforeTick
	if err := s.preTick.fire(s); err != nil {
		return err
	}

	s.phase = MainTick
	// actions may register more actions for the current time.
	for i := 0; i < len(s.actions[s.now]); i++ {
		if err := s.call(s.actions[s.now][i]); err != nil {
			return err
		}
	}
	delete(s.actions, s.now)

	s.phase = ClkStable
	for len(s.clkStable) > 0 {
		fn := s.clkStable[0]
		s.clkStable = s.clkStable[1:]
		if err := s.call(fn); err != nil {
			return err
		}
	}

	s.phase = AfterTick
	if err := s.postTick.fire(s); err != nil {
		return err
	}
	for len(s.postOnce) > 0 {
		fn := s.postOnce[0]
		s.postOnce = s.postOnce[1:]
		if err := s.call(fn); err != nil {
			return err
		}
	}

	s.phase = OutOfTick
	return nil
}

// Run ticks until there are no more pending actions, End is called, the
// maximum time set by WithMaxTime is exceeded or ctx is done.
//
func (s *Simulator) Run(ctx context.Context) error {
	for !s.ended {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.hasMax && len(s.times) > 0 && s.times[0] > s.maxTime {
			break
		}
		ok, err := s.Tick()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	s.log.Debug("simulation done", "time", s.now, "ticks", s.ticks)
	return nil
}

// RunUntil runs all ticks scheduled up to and including time t.
//
func (s *Simulator) RunUntil(t uint64) error {
	for !s.ended && len(s.times) > 0 && s.times[0] <= t {
		if _, err := s.Tick(); err != nil {
			return err
		}
	}
	return nil
}
