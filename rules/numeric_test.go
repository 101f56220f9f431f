package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]float64{
		99.5:  100,
		99.49: 99,
		0.5:   1,
		0:     0,
		100:   100,
	}
	for in, want := range cases {
		assert.Equal(t, want, RoundHalfUp(in), "RoundHalfUp(%v)", in)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, 66.67, Round2(200.0/3.0))
	assert.Equal(t, 0.13, Round2(0.125))
}

func TestFinancialPercent(t *testing.T) {
	assert.Equal(t, 50.0, FinancialPercent(750, 1500))
	assert.Equal(t, 100.0, FinancialPercent(1500, 1500))
	assert.Equal(t, 33.33, FinancialPercent(500, 1500))

	// a project with no sanctioned value has no financial progress
	assert.Equal(t, 0.0, FinancialPercent(500, 0))
	assert.Equal(t, 0.0, FinancialPercent(500, -10))
}

func TestParseAmount(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		v, ok := ParseAmount("1234.56")
		assert.True(t, ok)
		assert.Equal(t, 1234.56, v)

		v, ok = ParseAmount("  42 ")
		assert.True(t, ok)
		assert.Equal(t, 42.0, v)
	})

	t.Run("malformed input coerces to zero", func(t *testing.T) {
		for _, in := range []string{"", "abc", "12..3", "NaN", "Inf", "-Inf", "1e999"} {
			v, ok := ParseAmount(in)
			assert.False(t, ok, "input %q must be rejected", in)
			assert.Equal(t, 0.0, v, "input %q must coerce to 0", in)
		}
	})
}

func TestErrorSet(t *testing.T) {
	errs := ErrorSet{}
	assert.True(t, errs.Valid())

	errs.Add(FieldProgress, "first")
	errs.Add(FieldProgress, "second")
	assert.Equal(t, "first", errs[FieldProgress], "first message for a field wins")

	other := ErrorSet{FieldFiles: "missing", FieldProgress: "third"}
	errs.Merge(other)
	assert.Equal(t, "first", errs[FieldProgress])
	assert.Equal(t, "missing", errs[FieldFiles])
	assert.False(t, errs.Valid())
}
