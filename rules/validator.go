package rules

import (
	"fmt"
	"math"
)

// Dimension identifies which progress dimension a rule governs.
type Dimension string

const (
	DimensionPhysical  Dimension = "Physical"
	DimensionFinancial Dimension = "Financial"
)

// Default bounds. Fractions are of the full scale (100 points for physical,
// the sanctioned ceiling for financial).
const (
	DefaultMaxDecreaseFrac = 0.05
	DefaultMaxIncreaseFrac = 0.50
	MinPhysicalDelta       = 0.1  // percentage points
	MinFinancialDelta      = 0.01 // currency units
	MaxRemarksLen          = 500
	MaxBillDescriptionLen  = 200
)

// DeltaRule is the parameterized progress-change rule. Every update variant
// (physical-only, financial-only, combined) validates through the same rule
// so thresholds and wording cannot drift between them.
type DeltaRule struct {
	Dimension       Dimension
	Field           string  // ErrorSet key for this dimension
	Ceiling         float64 // full scale: 100 for physical, sanctioned value for financial
	MaxDecreaseFrac float64
	MaxIncreaseFrac float64
	MinDelta        float64 // below this the update is a no-op, not an error
}

// PhysicalRule returns the rule for physical completion percentage.
func PhysicalRule() DeltaRule {
	return DeltaRule{
		Dimension:       DimensionPhysical,
		Field:           FieldProgress,
		Ceiling:         100,
		MaxDecreaseFrac: DefaultMaxDecreaseFrac,
		MaxIncreaseFrac: DefaultMaxIncreaseFrac,
		MinDelta:        MinPhysicalDelta,
	}
}

// FinancialRule returns the rule for the submitted bill amount, bounded by
// the project's sanctioned value.
func FinancialRule(ceiling float64) DeltaRule {
	return DeltaRule{
		Dimension:       DimensionFinancial,
		Field:           FieldNewBillAmount,
		Ceiling:         ceiling,
		MaxDecreaseFrac: DefaultMaxDecreaseFrac,
		MaxIncreaseFrac: DefaultMaxIncreaseFrac,
		MinDelta:        MinFinancialDelta,
	}
}

// Check validates a proposed value against the current one. A nil proposed
// value means the dimension is not being updated and raises no error.
func (r DeltaRule) Check(current float64, proposed *float64) ErrorSet {
	errs := ErrorSet{}
	if proposed == nil {
		return errs
	}

	value := *proposed
	if value < 0 || value > r.Ceiling {
		errs.Add(r.Field, r.rangeMessage())
		return errs
	}

	delta := value - current
	switch {
	case delta < 0 && -delta > r.MaxDecreaseFrac*r.Ceiling:
		errs.Add(r.Field, r.decreaseMessage())
	case delta > 0 && delta > r.MaxIncreaseFrac*r.Ceiling:
		errs.Add(r.Field, r.increaseMessage())
	}
	return errs
}

// IsRealChange reports whether the proposed value differs from the current
// one by at least the minimum delta. Below the threshold the update is
// treated as floating-point noise and submission stays disabled.
func (r DeltaRule) IsRealChange(current float64, proposed *float64) bool {
	if proposed == nil {
		return false
	}
	return math.Abs(*proposed-current) >= r.MinDelta
}

// ValidateUpdate runs the delta check and the completion gate together and
// returns the merged error set.
func (r DeltaRule) ValidateUpdate(current float64, proposed *float64, files []FileRef, billNumber string) ErrorSet {
	errs := r.Check(current, proposed)
	errs.Merge(r.CheckCompletion(proposed, files, billNumber != ""))
	return errs
}

func (r DeltaRule) rangeMessage() string {
	if r.Dimension == DimensionPhysical {
		return "progress must be between 0 and 100"
	}
	return "bill amount must be between 0 and the sanctioned value"
}

func (r DeltaRule) decreaseMessage() string {
	if r.Dimension == DimensionPhysical {
		return "progress cannot decrease by more than 5 percentage points in one update; contact an administrator for corrections"
	}
	return "bill amount cannot decrease by more than 5% of the sanctioned value in one update; contact an administrator for corrections"
}

func (r DeltaRule) increaseMessage() string {
	if r.Dimension == DimensionPhysical {
		return "progress cannot increase by more than 50 percentage points in a single update"
	}
	return "bill amount cannot increase by more than 50% of the sanctioned value in a single update"
}

// CheckRemarks bounds the free-text remark accompanying an update.
func CheckRemarks(remarks string) ErrorSet {
	errs := ErrorSet{}
	if len(remarks) > MaxRemarksLen {
		errs.Add(FieldGeneral, fmt.Sprintf("remarks must be at most %d characters", MaxRemarksLen))
	}
	return errs
}

// CheckBillDescription bounds the bill description of a financial update.
func CheckBillDescription(description string) ErrorSet {
	errs := ErrorSet{}
	if len(description) > MaxBillDescriptionLen {
		errs.Add(FieldGeneral, fmt.Sprintf("bill description must be at most %d characters", MaxBillDescriptionLen))
	}
	return errs
}

// Submittable reports whether a form with the given merged error set and
// real-change flag may be submitted.
func Submittable(errs ErrorSet, realChange bool) bool {
	return errs.Valid() && realChange
}
