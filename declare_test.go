// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim_test

import (
	"testing"

	hw "github.com/db47h/rtlsim"
)

func TestDeclare(t *testing.T) {
	_, d := newDesign()
	var ports struct {
		Clk  *hw.Signal    `rtl:""`
		Data *hw.Signal    `rtl:"din,8"`
		Regs [2]*hw.Signal `rtl:"r,4"`
		Skip *hw.Signal
	}
	if err := hw.Declare(d, &ports); err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		s     *hw.Signal
		name  string
		width int
	}{
		{ports.Clk, "clk", 1},
		{ports.Data, "din", 8},
		{ports.Regs[0], "r[0]", 4},
		{ports.Regs[1], "r[1]", 4},
	} {
		if c.s == nil || c.s.Name() != c.name || c.s.Width() != c.width {
			t.Errorf("bad signal %v, expected %s[%d]", c.s, c.name, c.width)
		}
	}
	if ports.Skip != nil {
		t.Error("untagged field set")
	}

	var bad struct {
		N int `rtl:""`
	}
	if err := hw.Declare(d, &bad); err == nil {
		t.Error("expected error on unsupported field type")
	}
	if err := hw.Declare(d, ports); err == nil {
		t.Error("expected error on non pointer")
	}
}
