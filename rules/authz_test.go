package rules

import (
	"testing"

	"github.com/pwdtrack/pwd_end/models"

	"github.com/stretchr/testify/assert"
)

func ongoingSubject(creatorID string) Subject {
	return Subject{
		Status:            models.StatusOngoing,
		CreatorID:         creatorID,
		IsEditable:        false,
		PhysicalProgress:  40,
		FinancialProgress: 30,
	}
}

func TestCanMutateUpdateProgress(t *testing.T) {
	subject := ongoingSubject("je-1")

	t.Run("creator may update", func(t *testing.T) {
		ok, reason := CanMutate(Actor{ID: "je-1", Role: models.UserRoleJE}, subject, ActionUpdateProgress)
		assert.True(t, ok)
		assert.Equal(t, DenyNone, reason)
	})

	t.Run("no role may update another engineer's project", func(t *testing.T) {
		roles := []models.UserRole{
			models.UserRoleJE, models.UserRoleAEE, models.UserRoleCE, models.UserRoleMD,
			models.UserRoleOPERATOR, models.UserRoleEXECUTOR, models.UserRoleVIEWER, models.UserRoleADMIN,
		}
		for _, role := range roles {
			ok, _ := CanMutate(Actor{ID: "someone-else", Role: role}, subject, ActionUpdateProgress)
			assert.False(t, ok, "role %s must not update a project it did not create", role)
		}
	})

	t.Run("non-owner engineer denied as NotOwner", func(t *testing.T) {
		ok, reason := CanMutate(Actor{ID: "je-2", Role: models.UserRoleJE}, subject, ActionUpdateProgress)
		assert.False(t, ok)
		assert.Equal(t, DenyNotOwner, reason)
	})

	t.Run("approver role denied as InsufficientRole", func(t *testing.T) {
		ok, reason := CanMutate(Actor{ID: "je-1", Role: models.UserRoleAEE}, subject, ActionUpdateProgress)
		assert.False(t, ok)
		assert.Equal(t, DenyInsufficientRole, reason)
	})

	t.Run("only Ongoing accepts progress", func(t *testing.T) {
		for _, status := range []models.ProjectStatus{
			models.StatusDraft, models.StatusSubmitted, models.StatusResubmitted,
			models.StatusRejectedByAEE, models.StatusCompleted,
		} {
			s := ongoingSubject("je-1")
			s.Status = status
			ok, reason := CanMutate(Actor{ID: "je-1", Role: models.UserRoleJE}, s, ActionUpdateProgress)
			assert.False(t, ok, "status %s must not accept progress", status)
			assert.Equal(t, DenyWrongStatus, reason)
		}
	})

	t.Run("editable project is still in revision", func(t *testing.T) {
		s := ongoingSubject("je-1")
		s.IsEditable = true
		ok, reason := CanMutate(Actor{ID: "je-1", Role: models.UserRoleJE}, s, ActionUpdateProgress)
		assert.False(t, ok)
		assert.Equal(t, DenyWrongStatus, reason)
	})

	t.Run("fully complete project accepts nothing", func(t *testing.T) {
		s := ongoingSubject("je-1")
		s.PhysicalProgress = 100
		s.FinancialProgress = 100
		ok, reason := CanMutate(Actor{ID: "je-1", Role: models.UserRoleJE}, s, ActionUpdateProgress)
		assert.False(t, ok)
		assert.Equal(t, DenyWrongStatus, reason)
	})
}

func TestCanUpdateDimension(t *testing.T) {
	s := ongoingSubject("je-1")
	s.PhysicalProgress = 100
	s.FinancialProgress = 60
	actor := Actor{ID: "je-1", Role: models.UserRoleJE}

	ok, reason := CanUpdateDimension(actor, s, DimensionPhysical)
	assert.False(t, ok)
	assert.Equal(t, DenyWrongStatus, reason)

	ok, reason = CanUpdateDimension(actor, s, DimensionFinancial)
	assert.True(t, ok)
	assert.Equal(t, DenyNone, reason)
}

func TestCanMutateDecisions(t *testing.T) {
	pending := Subject{
		Status:       models.StatusSubmitted,
		CreatorID:    "je-1",
		PendingLevel: models.UserRoleAEE,
	}

	t.Run("pending level may decide", func(t *testing.T) {
		ok, reason := CanMutate(Actor{ID: "aee-1", Role: models.UserRoleAEE}, pending, ActionApprove)
		assert.True(t, ok)
		assert.Equal(t, DenyNone, reason)
	})

	t.Run("later chain level must wait its turn", func(t *testing.T) {
		ok, reason := CanMutate(Actor{ID: "ce-1", Role: models.UserRoleCE}, pending, ActionApprove)
		assert.False(t, ok)
		assert.Equal(t, DenyInsufficientRole, reason)
	})

	t.Run("creator cannot approve own project", func(t *testing.T) {
		ok, reason := CanMutate(Actor{ID: "je-1", Role: models.UserRoleJE}, pending, ActionApprove)
		assert.False(t, ok)
		assert.Equal(t, DenyInsufficientRole, reason)
	})

	t.Run("resubmitted accepts decisions", func(t *testing.T) {
		s := pending
		s.Status = models.StatusResubmitted
		ok, _ := CanMutate(Actor{ID: "aee-1", Role: models.UserRoleAEE}, s, ActionReject)
		assert.True(t, ok)
	})

	t.Run("second decision on decided project is AlreadyDecided", func(t *testing.T) {
		for _, status := range []models.ProjectStatus{
			models.StatusOngoing, models.StatusCompleted,
			models.StatusRejectedByAEE, models.StatusRejectedByCE, models.StatusRejectedByMD,
		} {
			s := pending
			s.Status = status
			ok, reason := CanMutate(Actor{ID: "aee-1", Role: models.UserRoleAEE}, s, ActionApprove)
			assert.False(t, ok, "status %s", status)
			assert.Equal(t, DenyAlreadyDecided, reason, "status %s", status)
		}
	})

	t.Run("draft is WrongStatus not AlreadyDecided", func(t *testing.T) {
		s := pending
		s.Status = models.StatusDraft
		ok, reason := CanMutate(Actor{ID: "aee-1", Role: models.UserRoleAEE}, s, ActionReject)
		assert.False(t, ok)
		assert.Equal(t, DenyWrongStatus, reason)
	})
}

func TestCanMutateRaiseQuery(t *testing.T) {
	subject := ongoingSubject("je-1")
	roles := []models.UserRole{
		models.UserRoleJE, models.UserRoleAEE, models.UserRoleCE, models.UserRoleMD,
		models.UserRoleOPERATOR, models.UserRoleEXECUTOR, models.UserRoleVIEWER, models.UserRoleADMIN,
	}
	for _, role := range roles {
		ok, _ := CanMutate(Actor{ID: "anyone", Role: role}, subject, ActionRaiseQuery)
		assert.True(t, ok, "role %s must be able to raise a query", role)
	}
}

func TestApprovalChainOrdering(t *testing.T) {
	next, ok := NextApprovalLevel(models.UserRoleAEE)
	assert.True(t, ok)
	assert.Equal(t, models.UserRoleCE, next)

	next, ok = NextApprovalLevel(models.UserRoleCE)
	assert.True(t, ok)
	assert.Equal(t, models.UserRoleMD, next)

	_, ok = NextApprovalLevel(models.UserRoleMD)
	assert.False(t, ok, "MD approval is final")
}

func TestRejectedStatusFor(t *testing.T) {
	assert.Equal(t, models.StatusRejectedByAEE, RejectedStatusFor(models.UserRoleAEE))
	assert.Equal(t, models.StatusRejectedByCE, RejectedStatusFor(models.UserRoleCE))
	assert.Equal(t, models.StatusRejectedByMD, RejectedStatusFor(models.UserRoleMD))
}

func TestHasStatusChanged(t *testing.T) {
	assert.False(t, HasStatusChanged("", models.StatusOngoing), "no expectation means no staleness")
	assert.False(t, HasStatusChanged(models.StatusOngoing, models.StatusOngoing))
	assert.True(t, HasStatusChanged(models.StatusSubmitted, models.StatusOngoing))
}
