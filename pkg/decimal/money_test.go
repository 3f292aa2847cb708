package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRounding(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.355", "2.36"},
		{"-2.345", "-2.35"},
	}
	for _, c := range cases {
		assert.Equal(t, c.out, RoundMoney(stddec.RequireFromString(c.in)).StringFixed(2), "round(%s)", c.in)
	}
	assert.Equal(t, "1.2346", RoundArrobas(stddec.RequireFromString("1.23456")).String())
}

func TestSafeDiv(t *testing.T) {
	assert.True(t, SafeDiv(stddec.NewFromInt(10), stddec.Zero).IsZero())
	assert.Equal(t, "2.5", SafeDiv(stddec.NewFromInt(5), stddec.NewFromInt(2)).String())
}

func TestPercentHelpers(t *testing.T) {
	assert.Equal(t, "15", PercentOf(stddec.NewFromInt(300), stddec.NewFromInt(5)).String())
	assert.Equal(t, "1.05", GrowthFactor(stddec.NewFromInt(5)).String())
	assert.Equal(t, "0.97", ShrinkFactor(stddec.NewFromInt(3)).String())
	assert.True(t, GrowthFactor(stddec.Zero).Equal(stddec.NewFromInt(1)))
}

func TestValueOr(t *testing.T) {
	fallback := stddec.NewFromInt(53)
	assert.True(t, ValueOr(nil, fallback).Equal(fallback))
	v := stddec.NewFromInt(55)
	assert.True(t, ValueOr(&v, fallback).Equal(v))
}
