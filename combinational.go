// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
)

// Combinational is a block whose receivers are recomputed synchronously
// whenever any of its drivers glitches.
//
// Receivers that are not written during an execution are driven to X. Reading
// a signal and later changing its value within the same execution is an
// ErrWriteAfterRead error.
//
type Combinational struct {
	always
	executing bool
	driven    map[*Signal]bool
	guards    map[*Signal]func()
}

// NewCombinational creates a combinational block executing conds, performs an
// initial execution, and subscribes to every driver.
//
func NewCombinational(d *Design, name string, conds ...Conditional) (c *Combinational, err error) {
	c = &Combinational{
		driven: make(map[*Signal]bool),
		guards: make(map[*Signal]func()),
	}
	if err = c.init(d, name, conds); err != nil {
		return nil, err
	}
	defer catch(&err)
	c.execute()
	for _, s := range c.drivers {
		c.cancels = append(c.cancels, c.in[s].Glitch(func(Change) { c.execute() }))
	}
	return c, nil
}

// Keyword returns the SystemVerilog keyword of the block.
//
func (c *Combinational) Keyword() string { return "always_comb" }

// AssignOperator returns the assignment operator used in the block.
//
func (c *Combinational) AssignOperator() string { return "=" }

func (c *Combinational) guard(s *Signal) {
	if _, ok := c.guards[s]; ok {
		return
	}
	c.guards[s] = s.Glitch(func(ch Change) {
		panic(errors.Wrapf(ErrWriteAfterRead, "%s changed from %s to %s after being read in block %s", s, ch.Previous, ch.New, c.name))
	})
}

func (c *Combinational) execute() {
	if c.executing {
		return
	}
	c.executing = true
	defer func() {
		for s, cancel := range c.guards {
			cancel()
			delete(c.guards, s)
		}
		for s := range c.driven {
			delete(c.driven, s)
		}
		c.executing = false
	}()
	x := exec{b: &c.always, driven: c.driven, guard: c.guard}
	x.run(c.conds)
	for _, r := range c.receivers {
		if !c.driven[r] {
			c.d.put(c.out[r].id, logic.X(r.width))
		}
	}
}
