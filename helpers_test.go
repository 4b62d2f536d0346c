// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim_test

import (
	"context"
	"testing"

	hw "github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func newDesign() (*sim.Simulator, *hw.Design) {
	s := sim.New()
	return s, hw.NewDesign(s)
}

func put(t *testing.T, s *hw.Signal, u uint64) {
	t.Helper()
	if err := s.PutUint64(u); err != nil {
		trace(t, err)
		t.Fatalf("put %d on %s: %v", u, s, err)
	}
}

func get(t *testing.T, s *hw.Signal) uint64 {
	t.Helper()
	u, err := s.Value().Uint64()
	if err != nil {
		t.Fatalf("%s: %v", s, err)
	}
	return u
}

func expectX(t *testing.T, s *hw.Signal) {
	t.Helper()
	if v := s.Value(); !v.Equal(logic.X(s.Width())) {
		t.Errorf("%s = %s, expected all X", s, v)
	}
}

// at registers fn at time tm, failing the test on error.
func at(t *testing.T, s *sim.Simulator, tm uint64, fn func()) {
	t.Helper()
	if err := s.RegisterAction(tm, fn); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, s *sim.Simulator) {
	t.Helper()
	if err := s.Run(context.Background()); err != nil {
		trace(t, err)
		t.Fatal(err)
	}
}
