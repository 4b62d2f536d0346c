package logic_test

import (
	"testing"

	"github.com/db47h/rtlsim/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []struct {
		in   string
		want string
	}{
		{"4'b1z01", "4'b1z01"},
		{"4'b1?01", "4'b1z01"},
		{"1x0", "3'b1x0"},
		{"8'hf0", "8'b11110000"},
		{"8'hz1", "8'bzzzz0001"},
		{"6'd5", "6'b000101"},
		{"8'b1010_1010", "8'b10101010"},
		{"70'h1", "70'b" + zeros(69) + "1"},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			v, err := logic.Parse(d.in)
			require.NoError(t, err)
			assert.Equal(t, d.want, v.String())
		})
	}

	for _, bad := range []string{"4'b10201", "2'b101", "4'q1", "x'b1", "4'd16", "4'h1f"} {
		_, err := logic.Parse(bad)
		assert.Error(t, err, bad)
	}
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func TestBitwise(t *testing.T) {
	a := logic.MustParse("4'b01xz")
	assert.Equal(t, "4'b0xxx", a.And(logic.MustParse("4'b1111")).String())
	assert.Equal(t, "4'b0000", a.And(logic.MustParse("4'b0000")).String())
	assert.Equal(t, "4'b1111", a.Or(logic.MustParse("4'b1111")).String())
	assert.Equal(t, "4'b01xx", a.Or(logic.MustParse("4'b0000")).String())
	assert.Equal(t, "4'b10xx", a.Xor(logic.MustParse("4'b1111")).String())
	assert.Equal(t, "4'b10xx", a.Not().String())
	// self AND resolves Z bits to X and keeps valid bits
	assert.Equal(t, "4'b01xx", a.And(a).String())
}

func TestArith(t *testing.T) {
	a, b := logic.FromUint64(8, 200), logic.FromUint64(8, 100)
	s, err := a.Add(b).Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(44), s)

	d, err := b.Sub(a).Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(156), d)

	assert.True(t, a.Add(logic.MustParse("8'b0000000x")).Equal(logic.X(8)))

	wide := logic.FromUint64(80, ^uint64(0))
	sum := wide.Add(logic.FromUint64(80, 1))
	assert.Equal(t, logic.Hi, sum.Bit(64))
	assert.Equal(t, logic.Lo, sum.Bit(0))

	assert.Equal(t, "8'b11111111", logic.FromInt(8, -1).String())
}

func TestCompare(t *testing.T) {
	a, b := logic.FromUint64(4, 3), logic.FromUint64(4, 9)
	assert.True(t, a.Lt(b).Equal(logic.FromBool(true)))
	assert.True(t, a.Gt(b).Equal(logic.FromBool(false)))
	assert.True(t, a.Eq(a).Equal(logic.FromBool(true)))
	assert.True(t, a.Neq(b).Equal(logic.FromBool(true)))
	assert.True(t, a.Eq(logic.MustParse("4'b001z")).Equal(logic.X(1)))
}

func TestSliceConcat(t *testing.T) {
	v := logic.MustParse("8'b1100xz10")
	assert.Equal(t, "4'b1100", v.Slice(7, 4).String())
	assert.Equal(t, "4'bxz10", v.Slice(3, 0).String())
	assert.Equal(t, "8'b1100xz10", logic.Concat(v.Slice(7, 4), v.Slice(3, 0)).String())
	assert.Equal(t, "6'b101010", logic.MustParse("2'b10").Replicate(3).String())
	assert.Equal(t, "6'b000010", logic.MustParse("2'b10").ZeroExtend(6).String())
	assert.Equal(t, "4'b0100", logic.MustParse("4'b0001").Shl(2).String())
	assert.Equal(t, "4'b0010", logic.MustParse("4'b1000").Shr(2).String())
}

func TestPredicates(t *testing.T) {
	assert.True(t, logic.Z(3).IsFloating())
	assert.False(t, logic.MustParse("3'bzz1").IsFloating())
	assert.True(t, logic.MustParse("3'bzz1").HasZ())
	assert.False(t, logic.MustParse("3'bzz1").IsValid())
	assert.True(t, logic.Zero(70).IsZero())
	assert.True(t, logic.IsPosedge(logic.MustParse("1'b0"), logic.MustParse("1'b1")))
	assert.False(t, logic.IsPosedge(logic.MustParse("1'bx"), logic.MustParse("1'b1")))
	assert.True(t, logic.IsNegedge(logic.MustParse("1'b1"), logic.MustParse("1'b0")))

	_, err := logic.X(4).Uint64()
	assert.Error(t, err)
}

func TestCombine(t *testing.T) {
	a := logic.MustParse("4'bzz10")
	b := logic.MustParse("4'b1z01")
	assert.Equal(t, "4'b1zxx", a.Combine(b).String())
	assert.Equal(t, "4'b0110", logic.MustParse("4'bzzzz").Combine(logic.MustParse("4'b0110")).String())
}

func TestMatchZ(t *testing.T) {
	pattern := logic.MustParse("4'b1z01")
	assert.True(t, logic.MustParse("4'b1101").MatchZ(pattern))
	assert.True(t, logic.MustParse("4'b1001").MatchZ(pattern))
	assert.False(t, logic.MustParse("4'b1100").MatchZ(pattern))
	assert.False(t, logic.MustParse("4'b0101").MatchZ(pattern))
}
