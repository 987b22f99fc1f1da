package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

func openForm() *domain.Form {
	return &domain.Form{
		ID:                "f1",
		Type:              domain.FormTypePost,
		AllowEnrolled:     true,
		EnrolledSemesters: []int{1, 2, 3, 4},
	}
}

func enrolled(semester int) *domain.User {
	return &domain.User{
		ID:                       "writer",
		AcademicStatus:           domain.AcademicStatusEnrolled,
		CurrentCompletedSemester: semester,
	}
}

func TestCheckReplyEligibilityClosedForm(t *testing.T) {
	f := openForm()
	f.IsClosed = true

	err := CheckReplyEligibility(f, enrolled(2), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), apperr.MsgFormClosed)
}

func TestCheckReplyEligibilityAcademicStatusWhitelist(t *testing.T) {
	f := openForm() // enrolled only

	require.NoError(t, CheckReplyEligibility(f, enrolled(2), nil))

	onLeave := &domain.User{
		ID:                       "writer",
		AcademicStatus:           domain.AcademicStatusLeaveOfAbsence,
		CurrentCompletedSemester: 2,
	}
	err := CheckReplyEligibility(f, onLeave, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))

	graduated := &domain.User{ID: "writer", AcademicStatus: domain.AcademicStatusGraduated}
	err = CheckReplyEligibility(f, graduated, nil)
	require.Error(t, err)

	f.AllowGraduated = true
	assert.NoError(t, CheckReplyEligibility(f, graduated, nil))
}

func TestCheckReplyEligibilityEnrolledSemesterWhitelist(t *testing.T) {
	f := openForm()

	require.NoError(t, CheckReplyEligibility(f, enrolled(4), nil))

	err := CheckReplyEligibility(f, enrolled(5), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
}

func TestCheckReplyEligibilityLeaveSemesterWhitelist(t *testing.T) {
	f := &domain.Form{
		ID:                  "f1",
		AllowLeaveOfAbsence: true,
		LeaveSemesters:      []int{2, 3},
	}
	onLeave := &domain.User{
		ID:                       "writer",
		AcademicStatus:           domain.AcademicStatusLeaveOfAbsence,
		CurrentCompletedSemester: 3,
	}

	require.NoError(t, CheckReplyEligibility(f, onLeave, nil))

	onLeave.CurrentCompletedSemester = 1
	err := CheckReplyEligibility(f, onLeave, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
}

func TestCheckReplyEligibilityCouncilFeeRequired(t *testing.T) {
	f := openForm()
	f.RequireCouncilFee = true

	// No fee record at all.
	err := CheckReplyEligibility(f, enrolled(2), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))

	// Paid from semester 1 for 4 semesters: covers 1 through 4.
	fee := &domain.CouncilFee{IsJoinedService: true, PaidAt: 1, NumPaidSemesters: 4}
	assert.NoError(t, CheckReplyEligibility(f, enrolled(2), fee))
	assert.NoError(t, CheckReplyEligibility(f, enrolled(4), fee))

	f.EnrolledSemesters = []int{5}
	err = CheckReplyEligibility(f, enrolled(5), fee)
	require.Error(t, err, "semester 5 falls outside the paid window")
}

func TestCheckReplyEligibilityRefundedFee(t *testing.T) {
	f := openForm()
	f.RequireCouncilFee = true

	// Refund cut the window short at semester 2.
	fee := &domain.CouncilFee{
		IsJoinedService:  true,
		PaidAt:           1,
		NumPaidSemesters: 4,
		IsRefunded:       true,
		RefundedAt:       2,
	}

	assert.NoError(t, CheckReplyEligibility(f, enrolled(2), fee))

	err := CheckReplyEligibility(f, enrolled(3), fee)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
}

func TestCheckReplyEligibilitySnapshotSemester(t *testing.T) {
	f := openForm()
	f.RequireCouncilFee = true

	// Non-joined payer: the record's own snapshot wins over the account counter.
	fee := &domain.CouncilFee{
		IsJoinedService:  false,
		SnapshotSemester: 2,
		PaidAt:           1,
		NumPaidSemesters: 2,
	}

	writer := enrolled(4) // counter would fall outside the window
	f.EnrolledSemesters = []int{4}
	assert.NoError(t, CheckReplyEligibility(f, writer, fee))
}

func TestCheckReplyEligibilityFeeIgnoredWhenNotRequired(t *testing.T) {
	f := openForm()
	assert.NoError(t, CheckReplyEligibility(f, enrolled(2), nil))
}
