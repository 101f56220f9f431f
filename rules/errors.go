// Package rules implements the progress-update validation and authorization
// engine: delta bounds on physical/financial progress, evidentiary
// requirements on completion, role/status gating of mutations, the supporting
// document acceptance filter and the edit-session lifecycle. Everything here
// is pure and synchronous; rule violations are returned as data, never as Go
// errors.
package rules

// Well-known ErrorSet field keys.
const (
	FieldProgress      = "progress"
	FieldNewBillAmount = "newBillAmount"
	FieldBillNumber    = "billNumber"
	FieldFiles         = "files"
	FieldSubmit        = "submit"
	FieldGeneral       = "general"
)

// ErrorSet maps a field name to a human-readable message. An empty set means
// the request is valid. At most one message per field; absence of a key means
// the field is currently acceptable.
type ErrorSet map[string]string

// Add records a message for a field. The first message for a field wins so
// the most specific check should run first.
func (e ErrorSet) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Merge folds another set into this one, keeping existing messages.
func (e ErrorSet) Merge(other ErrorSet) {
	for field, message := range other {
		e.Add(field, message)
	}
}

// Valid reports whether the set carries no errors.
func (e ErrorSet) Valid() bool {
	return len(e) == 0
}
