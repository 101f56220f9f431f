package rules

import "math"

// completionTolerance is the absolute tolerance for financial completion
// against the sanctioned ceiling.
const completionTolerance = 0.01

// Messages raised by the completion gate.
const (
	MsgCompletionNeedsFiles      = "at least one supporting document is required to mark completion"
	MsgCompletionNeedsBillNumber = "bill number is required for financial completion"
)

// IsCompletion reports whether the proposed value denotes completion:
// rounds to 100 for physical, within tolerance of the ceiling for financial.
func (r DeltaRule) IsCompletion(proposed float64) bool {
	if r.Dimension == DimensionPhysical {
		return RoundHalfUp(proposed) == 100
	}
	return math.Abs(proposed-r.Ceiling) <= completionTolerance
}

// CheckCompletion enforces the stricter evidentiary requirements of a
// completion transition: at least one supporting document, and for financial
// completion a bill number. Non-completion values pass untouched.
func (r DeltaRule) CheckCompletion(proposed *float64, files []FileRef, billNumberPresent bool) ErrorSet {
	errs := ErrorSet{}
	if proposed == nil || !r.IsCompletion(*proposed) {
		return errs
	}

	if len(files) == 0 {
		errs.Add(FieldFiles, MsgCompletionNeedsFiles)
	}
	if r.Dimension == DimensionFinancial && !billNumberPresent {
		errs.Add(FieldBillNumber, MsgCompletionNeedsBillNumber)
	}
	return errs
}
