// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim_test

import (
	"testing"

	hw "github.com/db47h/rtlsim"
	"github.com/pkg/errors"
)

func TestSSA_phi(t *testing.T) {
	_, d := newDesign()
	cond, y := d.Signal("cond", 1), d.Signal("y", 8)
	one := d.ConstUint(8, 1)
	_, err := hw.NewCombinationalSSA(d, "ssa", func(s hw.Remap) []hw.Conditional {
		return []hw.Conditional{
			s(y).Assign(one),
			hw.NewIf(cond, s(y).Assign(s(y).Add(one))),
		}
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	put(t, cond, 0)
	if get(t, y) != 1 {
		t.Fatalf("cond = 0: y = %s", y.Value())
	}
	put(t, cond, 1)
	if get(t, y) != 2 {
		t.Fatalf("cond = 1: y = %s", y.Value())
	}
	put(t, cond, 0)
	if get(t, y) != 1 {
		t.Fatalf("cond = 0: y = %s", y.Value())
	}
}

func TestSSA_chain(t *testing.T) {
	_, d := newDesign()
	a, sel, y := d.Signal("a", 8), d.Signal("sel", 2), d.Signal("y", 8)
	_, err := hw.NewCombinationalSSA(d, "chain", func(s hw.Remap) []hw.Conditional {
		return []hw.Conditional{
			s(y).Assign(a),
			s(y).Assign(s(y).Add(s(y))),
			hw.NewCase(sel,
				hw.Item(d.ConstUint(2, 1), s(y).Assign(s(y).Add(a))),
				hw.Item(d.ConstUint(2, 2), s(y).Assign(s(y).Shl(1)))),
		}
	})
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	put(t, a, 3)
	for _, c := range []struct{ sel, y uint64 }{{0, 6}, {1, 9}, {2, 12}, {3, 6}} {
		put(t, sel, c.sel)
		if got := get(t, y); got != c.y {
			t.Errorf("sel = %d: y = %d, expected %d", c.sel, got, c.y)
		}
	}
}

func TestSSA_zeroInit(t *testing.T) {
	_, d := newDesign()
	cond, y := d.Signal("cond", 1), d.Signal("y", 4)
	_, err := hw.NewCombinationalSSA(d, "zero", func(s hw.Remap) []hw.Conditional {
		return []hw.Conditional{
			hw.NewIf(cond, s(y).Assign(d.ConstUint(4, 5))),
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	put(t, cond, 1)
	if get(t, y) != 5 {
		t.Fatalf("y = %s", y.Value())
	}
	put(t, cond, 0)
	if get(t, y) != 0 {
		t.Fatalf("y = %s, expected zero", y.Value())
	}
}

func TestSSA_errors(t *testing.T) {
	_, d := newDesign()
	x, y := d.Signal("x", 4), d.Signal("y", 4)
	_, err := hw.NewCombinationalSSA(d, "uninit", func(s hw.Remap) []hw.Conditional {
		return []hw.Conditional{x.Assign(s(y))}
	})
	if errors.Cause(err) != hw.ErrUninitializedSSA {
		t.Fatalf("expected uninitialized SSA error, got %v", err)
	}

	var read *hw.Signal
	x, y = d.Signal("x", 4), d.Signal("y", 4)
	_, err = hw.NewCombinationalSSA(d, "ok", func(s hw.Remap) []hw.Conditional {
		read = s(y)
		return []hw.Conditional{s(y).AssignUint(1), x.Assign(read)}
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = hw.NewCombinationalSSA(d, "resolved", func(s hw.Remap) []hw.Conditional {
		return []hw.Conditional{read.AssignUint(2)}
	})
	if errors.Cause(err) != hw.ErrSSAResolved {
		t.Fatalf("expected resolved SSA error, got %v", err)
	}
	if _, err = hw.NewCombinational(d, "plain", read.AssignUint(2)); errors.Cause(err) != hw.ErrSSAResolved {
		t.Fatalf("expected resolved SSA error, got %v", err)
	}
}
