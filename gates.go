// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strconv"

	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
)

// gate computes its output from the current values of its inputs.
type gate func(ins []logic.Value) logic.Value

// newGate returns the unassignable output of a gate. The output is recomputed
// synchronously on every glitch of any input.
//
// Gate constructors panic on width mismatch, like the logic package does.
//
func (d *Design) newGate(name string, width int, g gate, ins ...*Signal) *Signal {
	out := d.newSignal(name, width)
	out.kind = kindGate
	vs := make([]logic.Value, len(ins))
	eval := func() logic.Value {
		for i, in := range ins {
			vs[i] = in.Value()
		}
		return g(vs)
	}
	for _, in := range ins {
		if in.d != d {
			panic(errors.New("signals from different designs"))
		}
		in.fanout = append(in.fanout, out)
		in.Glitch(func(Change) { d.put(out.id, eval()) })
	}
	out.wire().value = eval()
	return out
}

func checkWidth(op string, a, b *Signal) {
	if a.width != b.width {
		panic(errors.Wrapf(ErrWidthMismatch, "%s %s, %s", op, a, b))
	}
}

func (s *Signal) binary(op string, o *Signal, width int, f func(a, b logic.Value) logic.Value) *Signal {
	checkWidth(op, s, o)
	return s.d.newGate(s.name+"_"+op+"_"+o.name, width, func(vs []logic.Value) logic.Value {
		return f(vs[0], vs[1])
	}, s, o)
}

// Not returns a signal driven by ~s.
//
func (s *Signal) Not() *Signal {
	return s.d.newGate(s.name+"_not", s.width, func(vs []logic.Value) logic.Value { return vs[0].Not() }, s)
}

// And returns a signal driven by s & o.
//
func (s *Signal) And(o *Signal) *Signal { return s.binary("and", o, s.width, logic.Value.And) }

// Or returns a signal driven by s | o.
//
func (s *Signal) Or(o *Signal) *Signal { return s.binary("or", o, s.width, logic.Value.Or) }

// Xor returns a signal driven by s ^ o.
//
func (s *Signal) Xor(o *Signal) *Signal { return s.binary("xor", o, s.width, logic.Value.Xor) }

// Add returns a signal driven by s + o, truncated to the width of s.
//
func (s *Signal) Add(o *Signal) *Signal { return s.binary("add", o, s.width, logic.Value.Add) }

// Sub returns a signal driven by s - o, truncated to the width of s.
//
func (s *Signal) Sub(o *Signal) *Signal { return s.binary("sub", o, s.width, logic.Value.Sub) }

// Eq returns a 1 bit signal driven by s == o.
//
func (s *Signal) Eq(o *Signal) *Signal { return s.binary("eq", o, 1, logic.Value.Eq) }

// Neq returns a 1 bit signal driven by s != o.
//
func (s *Signal) Neq(o *Signal) *Signal { return s.binary("neq", o, 1, logic.Value.Neq) }

// Lt returns a 1 bit signal driven by s < o.
//
func (s *Signal) Lt(o *Signal) *Signal { return s.binary("lt", o, 1, logic.Value.Lt) }

// Lte returns a 1 bit signal driven by s <= o.
//
func (s *Signal) Lte(o *Signal) *Signal { return s.binary("lte", o, 1, logic.Value.Lte) }

// Gt returns a 1 bit signal driven by s > o.
//
func (s *Signal) Gt(o *Signal) *Signal { return s.binary("gt", o, 1, logic.Value.Gt) }

// Gte returns a 1 bit signal driven by s >= o.
//
func (s *Signal) Gte(o *Signal) *Signal { return s.binary("gte", o, 1, logic.Value.Gte) }

// EqUint returns a 1 bit signal driven by s == u.
//
func (s *Signal) EqUint(u uint64) *Signal { return s.Eq(s.d.ConstUint(s.width, u)) }

// Shl returns a signal driven by s << n.
//
func (s *Signal) Shl(n int) *Signal {
	return s.d.newGate(s.name+"_shl"+strconv.Itoa(n), s.width, func(vs []logic.Value) logic.Value { return vs[0].Shl(n) }, s)
}

// Shr returns a signal driven by s >> n.
//
func (s *Signal) Shr(n int) *Signal {
	return s.d.newGate(s.name+"_shr"+strconv.Itoa(n), s.width, func(vs []logic.Value) logic.Value { return vs[0].Shr(n) }, s)
}

// Slice returns a signal driven by bits hi down to lo of s.
//
func (s *Signal) Slice(hi, lo int) *Signal {
	if lo < 0 || hi >= s.width || hi < lo {
		panic(errors.Errorf("invalid slice [%d:%d] of %s", hi, lo, s))
	}
	return s.d.newGate(s.name+"_"+strconv.Itoa(hi)+"_"+strconv.Itoa(lo), hi-lo+1,
		func(vs []logic.Value) logic.Value { return vs[0].Slice(hi, lo) }, s)
}

// Bit returns a 1 bit signal driven by bit i of s.
//
func (s *Signal) Bit(i int) *Signal { return s.Slice(i, i) }

// ZeroExtend returns a signal driven by s extended to width bits.
//
func (s *Signal) ZeroExtend(width int) *Signal {
	if width < s.width {
		panic(errors.Errorf("cannot zero extend %s to %d bits", s, width))
	}
	return s.d.newGate(s.name+"_ext", width, func(vs []logic.Value) logic.Value { return vs[0].ZeroExtend(width) }, s)
}

// Replicate returns a signal driven by n copies of s.
//
func (s *Signal) Replicate(n int) *Signal {
	return s.d.newGate(s.name+"_rep"+strconv.Itoa(n), s.width*n, func(vs []logic.Value) logic.Value { return vs[0].Replicate(n) }, s)
}

// Concat returns a signal driven by the concatenation of ss, the first signal
// ending up in the most significant bits.
//
func Concat(ss ...*Signal) *Signal {
	if len(ss) == 0 {
		panic(errors.New("empty concatenation"))
	}
	w := 0
	name := "cat"
	for _, s := range ss {
		w += s.width
		name += "_" + s.name
	}
	return ss[0].d.newGate(name, w, func(vs []logic.Value) logic.Value { return logic.Concat(vs...) }, ss...)
}

// Mux returns a signal driven by a when sel is 0, by b when sel is 1, and X
// otherwise.
//
func Mux(sel, a, b *Signal) *Signal {
	if sel.width != 1 {
		panic(errors.Wrapf(ErrNotOneBit, "mux select %s", sel))
	}
	checkWidth("mux", a, b)
	return sel.d.newGate("mux_"+sel.name, a.width, func(vs []logic.Value) logic.Value {
		switch vs[0].Bit(0) {
		case logic.Lo:
			return vs[1]
		case logic.Hi:
			return vs[2]
		}
		return logic.X(a.width)
	}, sel, a, b)
}
