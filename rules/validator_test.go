package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestPhysicalRuleCheck(t *testing.T) {
	rule := PhysicalRule()

	t.Run("valid moderate increase", func(t *testing.T) {
		errs := rule.Check(40, fptr(60))
		assert.True(t, errs.Valid())
	})

	t.Run("nil proposed is not an error", func(t *testing.T) {
		errs := rule.Check(40, nil)
		assert.True(t, errs.Valid())
	})

	t.Run("decrease beyond 5 points rejected", func(t *testing.T) {
		errs := rule.Check(50, fptr(40))
		require.False(t, errs.Valid())
		assert.Contains(t, errs[FieldProgress], "cannot decrease")
	})

	t.Run("decrease of exactly 5 points allowed", func(t *testing.T) {
		errs := rule.Check(50, fptr(45))
		assert.True(t, errs.Valid())
	})

	t.Run("increase beyond 50 points rejected", func(t *testing.T) {
		errs := rule.Check(10, fptr(61))
		require.False(t, errs.Valid())
		assert.Contains(t, errs[FieldProgress], "cannot increase")
	})

	t.Run("increase of exactly 50 points allowed", func(t *testing.T) {
		errs := rule.Check(10, fptr(60))
		assert.True(t, errs.Valid())
	})

	t.Run("out of range values", func(t *testing.T) {
		for _, v := range []float64{-1, 100.5, 250} {
			errs := rule.Check(40, fptr(v))
			require.False(t, errs.Valid(), "value %v should be out of range", v)
			assert.Equal(t, "progress must be between 0 and 100", errs[FieldProgress])
		}
	})

	t.Run("range check wins over delta check", func(t *testing.T) {
		// 40 -> 150 violates both range and max increase; range is reported
		errs := rule.Check(40, fptr(150))
		assert.Equal(t, "progress must be between 0 and 100", errs[FieldProgress])
	})
}

func TestFinancialRuleCheck(t *testing.T) {
	rule := FinancialRule(2000)

	t.Run("valid bill within bounds", func(t *testing.T) {
		errs := rule.Check(500, fptr(900))
		assert.True(t, errs.Valid())
	})

	t.Run("bill above sanctioned value rejected", func(t *testing.T) {
		errs := rule.Check(1800, fptr(2000.5))
		require.False(t, errs.Valid())
		assert.Equal(t, "bill amount must be between 0 and the sanctioned value", errs[FieldNewBillAmount])
	})

	t.Run("decrease beyond 5 percent of ceiling rejected", func(t *testing.T) {
		// 5% of 2000 is 100; dropping by 150 is out
		errs := rule.Check(1000, fptr(850))
		require.False(t, errs.Valid())
		assert.Contains(t, errs[FieldNewBillAmount], "cannot decrease")
	})

	t.Run("increase beyond 50 percent of ceiling rejected", func(t *testing.T) {
		// 50% of 2000 is 1000; jumping by 1100 is out
		errs := rule.Check(200, fptr(1300))
		require.False(t, errs.Valid())
		assert.Contains(t, errs[FieldNewBillAmount], "cannot increase")
	})

	t.Run("delta bounds scale with the ceiling", func(t *testing.T) {
		small := FinancialRule(100)
		errs := small.Check(50, fptr(44)) // drop of 6 > 5% of 100
		assert.False(t, errs.Valid())

		large := FinancialRule(10000)
		errs = large.Check(50, fptr(44)) // same drop is noise at this scale
		assert.True(t, errs.Valid())
	})
}

func TestCheckIsIdempotent(t *testing.T) {
	rule := PhysicalRule()
	first := rule.Check(50, fptr(40))
	second := rule.Check(50, fptr(40))
	assert.Equal(t, first, second)

	// re-validating the same input does not accumulate messages
	errs := ErrorSet{}
	errs.Merge(first)
	errs.Merge(second)
	assert.Len(t, errs, 1)
}

func TestIsRealChange(t *testing.T) {
	phys := PhysicalRule()
	fin := FinancialRule(2000)

	assert.False(t, phys.IsRealChange(40, nil))
	assert.False(t, phys.IsRealChange(40, fptr(40)))
	assert.False(t, phys.IsRealChange(40, fptr(40.05)), "below 0.1 point threshold")
	assert.True(t, phys.IsRealChange(40, fptr(40.1)))
	assert.True(t, phys.IsRealChange(40, fptr(39.8)))

	assert.False(t, fin.IsRealChange(500, fptr(500.005)), "below 0.01 currency threshold")
	assert.True(t, fin.IsRealChange(500, fptr(500.01)))
}

func TestSubmittable(t *testing.T) {
	t.Run("valid change submits", func(t *testing.T) {
		rule := PhysicalRule()
		proposed := fptr(60.0)
		errs := rule.Check(40, proposed)
		assert.True(t, Submittable(errs, rule.IsRealChange(40, proposed)))
	})

	t.Run("no-op never submits even when valid", func(t *testing.T) {
		rule := PhysicalRule()
		proposed := fptr(40.0)
		errs := rule.Check(40, proposed)
		require.True(t, errs.Valid())
		assert.False(t, Submittable(errs, rule.IsRealChange(40, proposed)))
	})

	t.Run("errors block submission", func(t *testing.T) {
		rule := PhysicalRule()
		proposed := fptr(20.0)
		errs := rule.Check(40, proposed)
		assert.False(t, Submittable(errs, rule.IsRealChange(40, proposed)))
	})
}

func TestValidateUpdateMergesCompletionGate(t *testing.T) {
	rule := PhysicalRule()

	errs := rule.ValidateUpdate(96, fptr(100), nil, "")
	require.False(t, errs.Valid())
	assert.Equal(t, MsgCompletionNeedsFiles, errs[FieldFiles])
	// the delta itself is fine so no progress message appears
	_, hasProgress := errs[FieldProgress]
	assert.False(t, hasProgress)

	errs = rule.ValidateUpdate(96, fptr(100), []FileRef{{Name: "report.pdf", Size: 100, MimeType: "application/pdf"}}, "")
	assert.True(t, errs.Valid())
}

func TestCheckRemarksAndBillDescription(t *testing.T) {
	long := make([]byte, MaxRemarksLen+1)
	for i := range long {
		long[i] = 'a'
	}

	assert.True(t, CheckRemarks("all good").Valid())
	assert.False(t, CheckRemarks(string(long)).Valid())

	desc := make([]byte, MaxBillDescriptionLen+1)
	for i := range desc {
		desc[i] = 'b'
	}
	assert.True(t, CheckBillDescription("final RA bill").Valid())
	assert.False(t, CheckBillDescription(string(desc)).Valid())
}
