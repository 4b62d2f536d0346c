// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/rtlsim"
	"github.com/db47h/rtlsim/logic"
	"github.com/db47h/rtlsim/sim"
)

// A Part builds a circuit driven by ins and returns its outputs.
//
type Part func(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error)

// maximum number of input bits tested exhaustively.
const maxExhaustive = 12

func randValue(r *rand.Rand, width int) logic.Value {
	bs := make([]logic.Bit, width)
	for i := range bs {
		bs[i] = logic.Bit(r.Int63() & 1)
	}
	return logic.FromBits(bs...)
}

// vector returns the i-th input vector of an exhaustive enumeration.
func vector(widths []int, i uint64) []logic.Value {
	vs := make([]logic.Value, len(widths))
	for k, w := range widths {
		vs[k] = logic.FromUint64(w, i)
		i >>= uint(w)
	}
	return vs
}

// CompareParts takes two parts and compares their outputs given the same
// inputs. Both parts must have the same interface: inputs of the given widths
// and the same number and widths of outputs.
//
// Inputs are enumerated exhaustively if they fit in 12 bits. Otherwise, random
// inputs are used. Every input vector is applied in its own simulation step
// and outputs are compared in the next step, so that sequential parts can be
// compared as well, with a 1 bit input used as clock.
//
func CompareParts(t *testing.T, widths []int, part1, part2 Part) {
	t.Helper()

	s := sim.New()
	d := rtlsim.NewDesign(s)
	ins := make([]*rtlsim.Signal, len(widths))
	total := 0
	for i, w := range widths {
		ins[i] = d.Signal(fmt.Sprintf("in%d", i), w)
		total += w
	}
	outs1, err := part1(ins)
	if err != nil {
		t.Fatal(err)
	}
	outs2, err := part2(ins)
	if err != nil {
		t.Fatal(err)
	}
	if len(outs1) != len(outs2) {
		t.Fatalf("len(outs1) = %d != len(outs2) = %d", len(outs1), len(outs2))
	}
	for i := range outs1 {
		if outs1[i].Width() != outs2[i].Width() {
			t.Fatalf("outs1[%d] = %s != outs2[%d] = %s", i, outs1[i], i, outs2[i])
		}
	}

	errString := func(vs []logic.Value, o int) string {
		var b strings.Builder
		for i, v := range vs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ins[i].Name())
			b.WriteRune('=')
			b.WriteString(v.String())
		}
		return fmt.Sprintf("\nExpected %s => %s=%s\nGot %s", b.String(), outs1[o].Name(), outs1[o].Value(), outs2[o].Value())
	}

	iter := uint64(1) << maxExhaustive
	exhaustive := total <= maxExhaustive
	if exhaustive {
		iter = 1 << uint(total)
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	var failed error
	for i := uint64(0); i < iter; i++ {
		var vs []logic.Value
		if exhaustive {
			vs = vector(widths, i)
		} else {
			vs = make([]logic.Value, len(widths))
			for k, w := range widths {
				vs[k] = randValue(r, w)
			}
		}
		if err := s.RegisterAction(2*i, func() {
			for k, in := range ins {
				in.MustPut(vs[k])
			}
		}); err != nil {
			t.Fatal(err)
		}
		if err := s.RegisterAction(2*i+1, func() {
			for o := range outs1 {
				if !outs1[o].Value().Equal(outs2[o].Value()) {
					failed = fmt.Errorf("%s", errString(vs, o))
					s.End()
					return
				}
			}
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if failed != nil {
		t.Fatal(failed)
	}
	t.Logf("%d vectors in %v (%d ticks)", iter, time.Since(start), s.Ticks())
}
