// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"testing"

	"github.com/db47h/rtlsim/sim"
)

func TestListeners_cancel(t *testing.T) {
	var ls listeners
	var cancels []func()
	for i := 0; i < 10; i++ {
		cancels = append(cancels, ls.add(func(Change) {}))
	}
	for _, c := range cancels[:9] {
		c()
	}
	ls.add(func(Change) {})
	if len(ls) != 2 {
		t.Fatalf("%d listeners, expected 2", len(ls))
	}
}

// Guards on rarely changing drivers must not pile up across executions.
func TestCombinational_guardListeners(t *testing.T) {
	d := NewDesign(sim.New())
	sel, y := d.Signal("sel", 1), d.Signal("y", 4)
	k1, k2 := d.ConstUint(4, 1), d.ConstUint(4, 2)
	if _, err := NewCombinational(d, "m", NewIf(sel, y.Assign(k1)).Else(y.Assign(k2))); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		if err := sel.PutUint64(uint64(i & 1)); err != nil {
			t.Fatal(err)
		}
	}
	for _, k := range []*Signal{k1, k2} {
		// the block's own subscription plus at most one cancelled guard.
		if n := len(k.wire().glitch); n > 2 {
			t.Errorf("%d listeners on %s after 1000 executions", n, k)
		}
	}
	if len(sel.wire().glitch) > 2 {
		t.Errorf("%d listeners on %s", len(sel.wire().glitch), sel)
	}
}

func TestDesign_Signal_badWidth(t *testing.T) {
	defer func() {
		if _, ok := recover().(error); !ok {
			t.Fatal("expected a panic with an error")
		}
	}()
	NewDesign(sim.New()).Signal("s", 0)
}
