// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
	"github.com/db47h/rtlsim/trace"
)

func TestRecorder(t *testing.T) {
	s := sim.New()
	d := rtlsim.NewDesign(s)
	a, b := d.Signal("a", 4), d.Signal("b", 1)
	r := trace.NewRecorder(s)
	r.Watch(a, b)
	for tm, v := range []uint64{3, 3, 5} {
		v := v
		if err := s.RegisterAction(uint64(tm*10), func() {
			a.MustPut(logic.FromUint64(4, v))
			// glitches within a step are not recorded
			b.MustPut(logic.FromUint64(1, 1))
			b.MustPut(logic.FromUint64(1, 0))
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.Stop()

	var buf bytes.Buffer
	if err := r.Trace().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	tr, err := trace.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	// initial a and b, a=3 at 0, b=0 at 0, a=5 at 20
	if len(tr.Changes) != 5 {
		t.Fatalf("got %d changes: %v", len(tr.Changes), tr.Changes)
	}
	for _, c := range []struct {
		name string
		tm   uint64
		exp  string
	}{
		{"a", 0, "4'b0011"},
		{"a", 15, "4'b0011"},
		{"a", 20, "4'b0101"},
		{"b", 30, "1'b0"},
	} {
		v, err := tr.ValueAt(c.name, c.tm)
		if err != nil {
			t.Fatal(err)
		}
		if v.String() != c.exp {
			t.Errorf("%s at %d = %s, expected %s", c.name, c.tm, v, c.exp)
		}
	}
	if _, err = tr.ValueAt("c", 0); err == nil {
		t.Error("expected error for untraced signal")
	}
}

func TestDecode_bad(t *testing.T) {
	var buf bytes.Buffer
	tr := &trace.Trace{Version: trace.Version + 1}
	if err := tr.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := trace.Decode(&buf); err == nil {
		t.Fatal("expected version error")
	}
	if _, err := trace.Decode(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Fatal("expected decoding error")
	}
}
