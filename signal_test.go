// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim_test

import (
	"testing"

	hw "github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/logic"
	"github.com/pkg/errors"
)

func TestSignal_connect(t *testing.T) {
	_, d := newDesign()
	a, b, c := d.Signal("a", 4), d.Signal("b", 4), d.Signal("c", 4)
	w := d.Signal("w", 8)
	k := d.ConstUint(4, 3)

	data := []struct {
		name     string
		dst, src *hw.Signal
		err      error
	}{
		{"width", w, a, hw.ErrWidthMismatch},
		{"self", a, a, hw.ErrSelfConnection},
		{"ok", b, a, nil},
		{"again", b, c, hw.ErrAlreadyConnected},
		{"cycle", a, b, hw.ErrSelfConnection},
		{"const", k, c, hw.ErrUnassignable},
		{"gate", a.Not(), c, hw.ErrUnassignable},
	}
	for _, td := range data {
		t.Run(td.name, func(t *testing.T) {
			err := td.dst.Connect(td.src)
			if errors.Cause(err) != td.err {
				t.Fatalf("expected error %v, got %v", td.err, err)
			}
		})
	}
}

func TestSignal_merge(t *testing.T) {
	_, d := newDesign()
	a, b := d.Signal("a", 8), d.Signal("b", 8)
	var seen []logic.Value
	a.Glitch(func(c hw.Change) { seen = append(seen, c.New) })
	put(t, b, 42)
	if err := a.Connect(b); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || get(t, a) != 42 {
		t.Fatalf("expected a single glitch to 42 after merge, got %v", seen)
	}
	put(t, b, 7)
	if get(t, a) != 7 || len(seen) != 2 {
		t.Fatalf("a = %s after put on b, %d glitches", a.Value(), len(seen))
	}
	if a.Src() != b || len(b.Dsts()) != 1 {
		t.Fatal("bad connection bookkeeping")
	}
	// chained merge
	c := d.Signal("c", 8)
	if err := c.Connect(a); err != nil {
		t.Fatal(err)
	}
	put(t, b, 9)
	if get(t, c) != 9 {
		t.Fatalf("c = %s", c.Value())
	}
}

func TestSignal_put(t *testing.T) {
	_, d := newDesign()
	a := d.Signal("a", 4)
	if v := a.Value(); !v.Equal(logic.Z(4)) {
		t.Fatalf("initial value %s, expected floating", v)
	}
	if err := a.Put(logic.Zero(8)); errors.Cause(err) != hw.ErrWidthMismatch {
		t.Fatalf("expected width mismatch, got %v", err)
	}
	if err := d.ConstUint(4, 1).PutUint64(2); errors.Cause(err) != hw.ErrUnassignable {
		t.Fatalf("expected unassignable, got %v", err)
	}
	n := 0
	a.Glitch(func(hw.Change) { n++ })
	put(t, a, 5)
	put(t, a, 5)
	if n != 1 {
		t.Fatalf("got %d glitches for an unchanged value", n)
	}
}

func TestSignal_contention(t *testing.T) {
	_, d := newDesign()
	a := d.Signal("a", 4)
	once := false
	a.Glitch(func(hw.Change) {
		if !once {
			once = true
			a.MustPut(logic.FromUint64(4, 2))
		}
	})
	put(t, a, 1)
	expectX(t, a)
}

func TestSignal_gates(t *testing.T) {
	_, d := newDesign()
	a, b := d.Signal("a", 8), d.Signal("b", 8)
	sum, diff, lt := a.Add(b), a.Sub(b), a.Lt(b)
	cat := hw.Concat(a.Slice(3, 0), b.Slice(7, 4))
	mux := hw.Mux(lt, a, b)
	put(t, a, 0x12)
	put(t, b, 0x34)
	for _, c := range []struct {
		s   *hw.Signal
		exp uint64
	}{
		{sum, 0x46},
		{diff, 0xde},
		{lt, 1},
		{cat, 0x23},
		{mux, 0x34},
		{a.Xor(b), 0x26},
		{a.Shl(4), 0x20},
		{b.Shr(4), 0x03},
		{a.EqUint(0x12), 1},
		{a.Bit(1), 1},
		{a.Slice(3, 0).ZeroExtend(8), 2},
	} {
		if got := get(t, c.s); got != c.exp {
			t.Errorf("%s = %#x, expected %#x", c.s, got, c.exp)
		}
	}
	if err := a.Put(logic.X(8)); err != nil {
		t.Fatal(err)
	}
	expectX(t, sum)
	expectX(t, mux)
}

func TestNet(t *testing.T) {
	_, d := newDesign()
	n := d.Net("bus", 4)
	a, b := d.Signal("a", 4), d.Signal("b", 4)
	for _, s := range []*hw.Signal{a, b, a} {
		if err := n.Connect(s); err != nil {
			t.Fatal(err)
		}
	}
	if len(n.Drivers()) != 2 {
		t.Fatalf("got %d drivers", len(n.Drivers()))
	}
	if v := n.Value(); !v.Equal(logic.Z(4)) {
		t.Fatalf("undriven net = %s", v)
	}
	put(t, a, 3)
	if get(t, n) != 3 {
		t.Fatalf("net = %s", n.Value())
	}
	put(t, b, 3)
	if get(t, n) != 3 {
		t.Fatalf("agreeing drivers: net = %s", n.Value())
	}
	put(t, b, 2)
	if v := n.Value(); v.String() != "4'b001x" {
		t.Fatalf("conflicting drivers: net = %s", v)
	}
	if err := n.PutUint64(1); errors.Cause(err) != hw.ErrUnassignable {
		t.Fatalf("expected unassignable, got %v", err)
	}
}

func TestSignal_changed(t *testing.T) {
	s, d := newDesign()
	a := d.Signal("a", 4)
	var changes []hw.Change
	a.Changed(func(c hw.Change) { changes = append(changes, c) })
	at(t, s, 1, func() { a.MustPut(logic.FromUint64(4, 5)) })
	at(t, s, 2, func() {
		a.MustPut(logic.FromUint64(4, 6))
		a.MustPut(logic.FromUint64(4, 5))
	})
	at(t, s, 3, func() { a.MustPut(logic.FromUint64(4, 1)) })
	if err := s.RunUntil(2); err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 || !changes[0].Previous.Equal(logic.Z(4)) || !changes[0].New.Equal(logic.FromUint64(4, 5)) {
		t.Fatalf("unexpected changes %v", changes)
	}
	if p, ok := a.PreviousValue(); !ok || !p.Equal(logic.FromUint64(4, 5)) {
		t.Fatalf("previous value %s, %v", p, ok)
	}
	run(t, s)
	if len(changes) != 2 {
		t.Fatalf("got %d changes", len(changes))
	}
	if p, _ := a.PreviousValue(); !p.Equal(logic.FromUint64(4, 5)) {
		t.Fatalf("previous value %s", p)
	}
}
