// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest_test

import (
	"testing"

	"github.com/db47h/rtlsim"
	hl "github.com/db47h/rtlsim/hwlib"
	"github.com/db47h/rtlsim/hwtest"
)

func orGate(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error) {
	out, err := hl.Or(ins[0], ins[1])
	return []*rtlsim.Signal{out}, err
}

// customOr is an OR gate made of NANDs.
func customOr(ins []*rtlsim.Signal) ([]*rtlsim.Signal, error) {
	notA, err := hl.Nand(ins[0], ins[0])
	if err != nil {
		return nil, err
	}
	notB, err := hl.Nand(ins[1], ins[1])
	if err != nil {
		return nil, err
	}
	out, err := hl.Nand(notA, notB)
	return []*rtlsim.Signal{out}, err
}

func TestCompareParts(t *testing.T) {
	hwtest.CompareParts(t, []int{1, 1}, orGate, customOr)
	hwtest.CompareParts(t, []int{4, 4}, orGate, customOr)
}
