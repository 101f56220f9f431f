package rules

import "github.com/pwdtrack/pwd_end/models"

// Action is a mutation gated by role and project status.
type Action string

const (
	ActionUpdateProgress Action = "updateProgress"
	ActionApprove        Action = "approve"
	ActionReject         Action = "reject"
	ActionRaiseQuery     Action = "raiseQuery"
)

// DenyReason explains why an action is unavailable so the caller can say why
// a control is disabled instead of hiding it silently.
type DenyReason string

const (
	DenyNone             DenyReason = ""
	DenyNotOwner         DenyReason = "NotOwner"
	DenyWrongStatus      DenyReason = "WrongStatus"
	DenyAlreadyDecided   DenyReason = "AlreadyDecided"
	DenyInsufficientRole DenyReason = "InsufficientRole"
)

// Actor is the acting user as seen by the gate.
type Actor struct {
	ID   string
	Role models.UserRole
}

// Subject is the read-only snapshot of a project the gate evaluates against.
type Subject struct {
	Status            models.ProjectStatus
	CreatorID         string
	IsEditable        bool
	PendingLevel      models.UserRole
	PhysicalProgress  float64
	FinancialProgress float64
}

// ApprovalChain is the ordered authority chain a project passes through
// before becoming Ongoing.
var ApprovalChain = []models.UserRole{
	models.UserRoleAEE,
	models.UserRoleCE,
	models.UserRoleMD,
}

// capability is the role × action permission table. Ownership and status
// checks are applied on top of it by CanMutate.
var capability = map[models.UserRole]map[Action]bool{
	models.UserRoleJE: {
		ActionUpdateProgress: true,
		ActionRaiseQuery:     true,
	},
	models.UserRoleAEE: {
		ActionApprove:    true,
		ActionReject:     true,
		ActionRaiseQuery: true,
	},
	models.UserRoleCE: {
		ActionApprove:    true,
		ActionReject:     true,
		ActionRaiseQuery: true,
	},
	models.UserRoleMD: {
		ActionApprove:    true,
		ActionReject:     true,
		ActionRaiseQuery: true,
	},
	models.UserRoleOPERATOR: {ActionRaiseQuery: true},
	models.UserRoleEXECUTOR: {ActionRaiseQuery: true},
	models.UserRoleVIEWER:   {ActionRaiseQuery: true},
	models.UserRoleADMIN:    {ActionRaiseQuery: true},
}

// roleAllows consults the capability table.
func roleAllows(role models.UserRole, action Action) bool {
	return capability[role][action]
}

// CanApproveOrReject reports whether the role sits on the approval chain.
func CanApproveOrReject(role models.UserRole) bool {
	return roleAllows(role, ActionApprove)
}

// awaitingDecision reports whether the status accepts an approve/reject.
func awaitingDecision(status models.ProjectStatus) bool {
	return status == models.StatusSubmitted || status == models.StatusResubmitted
}

// decisionRecorded reports whether a decision has already been taken on the
// project, which turns a repeated approve/reject into AlreadyDecided rather
// than WrongStatus.
func decisionRecorded(status models.ProjectStatus) bool {
	switch status {
	case models.StatusOngoing, models.StatusCompleted,
		models.StatusRejectedByAEE, models.StatusRejectedByCE, models.StatusRejectedByMD:
		return true
	}
	return false
}

// CanMutate decides whether the actor may perform the action on the subject
// and, when not, why. Denials are surfaced as disabled controls, never as
// runtime failures.
func CanMutate(actor Actor, subject Subject, action Action) (bool, DenyReason) {
	switch action {
	case ActionUpdateProgress:
		if !roleAllows(actor.Role, action) {
			return false, DenyInsufficientRole
		}
		if subject.Status != models.StatusOngoing || subject.IsEditable {
			return false, DenyWrongStatus
		}
		// nothing left to report once both dimensions reached 100
		if subject.PhysicalProgress >= 100 && subject.FinancialProgress >= 100 {
			return false, DenyWrongStatus
		}
		// ownership, not merely role: only the submitting engineer posts progress
		if actor.ID != subject.CreatorID {
			return false, DenyNotOwner
		}
		return true, DenyNone

	case ActionApprove, ActionReject:
		if !roleAllows(actor.Role, action) {
			return false, DenyInsufficientRole
		}
		if !awaitingDecision(subject.Status) {
			if decisionRecorded(subject.Status) {
				return false, DenyAlreadyDecided
			}
			return false, DenyWrongStatus
		}
		// the chain is ordered: only the pending level may decide
		if subject.PendingLevel != "" && actor.Role != subject.PendingLevel {
			return false, DenyInsufficientRole
		}
		return true, DenyNone

	case ActionRaiseQuery:
		// universal escape hatch for any authenticated role
		if !roleAllows(actor.Role, action) {
			return false, DenyInsufficientRole
		}
		return true, DenyNone
	}

	return false, DenyInsufficientRole
}

// CanUpdateDimension additionally requires the targeted dimension to still
// have headroom.
func CanUpdateDimension(actor Actor, subject Subject, dim Dimension) (bool, DenyReason) {
	ok, reason := CanMutate(actor, subject, ActionUpdateProgress)
	if !ok {
		return false, reason
	}
	if dim == DimensionPhysical && subject.PhysicalProgress >= 100 {
		return false, DenyWrongStatus
	}
	if dim == DimensionFinancial && subject.FinancialProgress >= 100 {
		return false, DenyWrongStatus
	}
	return true, DenyNone
}

// NextApprovalLevel returns the chain level after the given one. ok=false
// means the given level is the last and its approval makes the project
// Ongoing.
func NextApprovalLevel(level models.UserRole) (models.UserRole, bool) {
	for i, r := range ApprovalChain {
		if r == level && i+1 < len(ApprovalChain) {
			return ApprovalChain[i+1], true
		}
	}
	return "", false
}

// RejectedStatusFor maps an approval level to the rejected status it issues.
func RejectedStatusFor(level models.UserRole) models.ProjectStatus {
	switch level {
	case models.UserRoleAEE:
		return models.StatusRejectedByAEE
	case models.UserRoleCE:
		return models.StatusRejectedByCE
	case models.UserRoleMD:
		return models.StatusRejectedByMD
	}
	return models.StatusRejectedByAEE
}

// HasStatusChanged reports whether the subject moved on since the actor last
// saw it; a stale view must be refetched before further decisions.
func HasStatusChanged(expected, actual models.ProjectStatus) bool {
	return expected != "" && expected != actual
}
