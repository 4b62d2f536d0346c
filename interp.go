// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
)

// exec is the state of a single execution of a block's conditionals.
type exec struct {
	b        *always
	driven   map[*Signal]bool
	strict   bool
	guard    func(s *Signal)
	override map[*Signal]logic.Value
}

func (x *exec) read(s *Signal) logic.Value {
	if x.guard != nil {
		x.guard(s)
	}
	if v, ok := x.override[s]; ok {
		return v
	}
	return x.b.in[s].Value()
}

func (x *exec) write(r *Signal, v logic.Value) {
	if x.strict && x.driven[r] {
		panic(errors.Wrapf(ErrRedriven, "%s in block %s", r, x.b.name))
	}
	x.driven[r] = true
	x.b.d.put(x.b.out[r].id, v)
}

func (x *exec) driveX(rs []*Signal) {
	for _, r := range rs {
		x.driven[r] = true
		x.b.d.put(x.b.out[r].id, logic.X(r.width))
	}
}

func (x *exec) run(cs []Conditional) {
	for _, c := range cs {
		x.execute(c)
	}
}

func (x *exec) execute(c Conditional) {
	switch c := c.(type) {
	case *Assign:
		v := x.read(c.Driver)
		// Z is not a driven value.
		x.write(c.Receiver, v.And(v))
	case *If:
		for _, b := range c.Branches {
			if b.Cond != nil {
				x.read(b.Cond)
			}
		}
		for _, b := range c.Branches {
			if b.Cond == nil {
				x.run(b.Body)
				return
			}
			switch x.read(b.Cond).Bit(0) {
			case logic.Hi:
				x.run(b.Body)
				return
			case logic.Lo:
			default:
				x.driveX(c.Receivers())
				return
			}
		}
	case *Case:
		x.execCase(c)
	case *Group:
		x.run(c.Body)
	default:
		panic(errors.Errorf("unknown conditional type %T", c))
	}
}

func (x *exec) execCase(c *Case) {
	e := x.read(c.Expr)
	for _, it := range c.Items {
		x.read(it.Value)
	}
	if !e.IsValid() {
		x.driveX(c.Receivers())
		return
	}
	var matched bool
	for _, it := range c.Items {
		v := x.read(it.Value)
		var ok bool
		if c.Kind == CaseWildcard {
			ok = e.MatchZ(v)
		} else {
			ok = e.Equal(v)
		}
		if !ok {
			continue
		}
		if matched {
			// unique case with more than one match
			x.driveX(c.Receivers())
			return
		}
		x.run(it.Body)
		if c.Mode != CaseUnique {
			return
		}
		matched = true
	}
	if matched {
		return
	}
	if c.Mode != CaseNone && (!c.hasDefault || c.synthetic) {
		x.driveX(c.Receivers())
		return
	}
	x.run(c.def)
}
