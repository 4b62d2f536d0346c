// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"context"
	"testing"

	"github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
)

func newDesign() (*sim.Simulator, *rtlsim.Design) {
	s := sim.New()
	return s, newDesignWith(s)
}

func newDesignWith(s *sim.Simulator) *rtlsim.Design { return rtlsim.NewDesign(s) }

func u(w int, n uint64) logic.Value { return logic.FromUint64(w, n) }

func run(t *testing.T, s *sim.Simulator) {
	t.Helper()
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
}

// reference implementations built directly with operators.
func ref(f func(ins []*rtlsim.Signal) []*rtlsim.Signal) hwtest.Part {
	return func(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error) {
		return f(ins), nil
	}
}

func part1(f func(a, b *rtlsim.Signal) (*rtlsim.Signal, error)) hwtest.Part {
	return func(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error) {
		out, err := f(ins[0], ins[1])
		return []*rtlsim.Signal{out}, err
	}
}

func TestGates(t *testing.T) {
	data := []struct {
		name string
		part func(a, b *rtlsim.Signal) (*rtlsim.Signal, error)
		ref  func(a, b *rtlsim.Signal) *rtlsim.Signal
	}{
		{"and", hl.And, (*rtlsim.Signal).And},
		{"nand", hl.Nand, func(a, b *rtlsim.Signal) *rtlsim.Signal { return a.And(b).Not() }},
		{"or", hl.Or, (*rtlsim.Signal).Or},
		{"nor", hl.Nor, func(a, b *rtlsim.Signal) *rtlsim.Signal { return a.Or(b).Not() }},
		{"xor", hl.Xor, (*rtlsim.Signal).Xor},
		{"xnor", hl.Xnor, func(a, b *rtlsim.Signal) *rtlsim.Signal { return a.Xor(b).Not() }},
		{"not", func(a, _ *rtlsim.Signal) (*rtlsim.Signal, error) { return hl.Not(a) },
			func(a, _ *rtlsim.Signal) *rtlsim.Signal { return a.Not() }},
	}
	for _, td := range data {
		td := td
		t.Run(td.name, func(t *testing.T) {
			r := ref(func(ins []*rtlsim.Signal) []*rtlsim.Signal { return []*rtlsim.Signal{td.ref(ins[0], ins[1])} })
			hwtest.CompareParts(t, []int{1, 1}, part1(td.part), r)
			hwtest.CompareParts(t, []int{3, 3}, part1(td.part), r)
		})
	}
}

func TestGates_truthTable(t *testing.T) {
	_, d := newDesign()
	a, b := d.Signal("a", 2), d.Signal("b", 2)
	nand, err := hl.Nand(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if err = a.Put(logic.MustParse("2'b01")); err != nil {
		t.Fatal(err)
	}
	if err = b.Put(logic.MustParse("2'b11")); err != nil {
		t.Fatal(err)
	}
	if v := nand.Value(); !v.Equal(logic.MustParse("2'b10")) {
		t.Fatalf("nand = %s", v)
	}
	if _, err = hl.And(a, d.Signal("c", 3)); err == nil {
		t.Fatal("expected width mismatch")
	}
}
