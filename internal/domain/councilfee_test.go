package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCouncilFeeAppliesTo(t *testing.T) {
	fee := &CouncilFee{PaidAt: 3, NumPaidSemesters: 4} // covers 3..6

	assert.False(t, fee.AppliesTo(2))
	assert.True(t, fee.AppliesTo(3))
	assert.True(t, fee.AppliesTo(6))
	assert.False(t, fee.AppliesTo(7))
}

func TestCouncilFeeAppliesToRefunded(t *testing.T) {
	fee := &CouncilFee{PaidAt: 3, NumPaidSemesters: 4, IsRefunded: true, RefundedAt: 4}

	assert.True(t, fee.AppliesTo(4))
	assert.False(t, fee.AppliesTo(5), "refund ends the window early")
}

func TestCouncilFeeEffectiveSemester(t *testing.T) {
	user := &User{CurrentCompletedSemester: 5}

	joined := &CouncilFee{IsJoinedService: true, SnapshotSemester: 2}
	assert.Equal(t, 5, joined.EffectiveSemester(user))

	snapshot := &CouncilFee{IsJoinedService: false, SnapshotSemester: 2}
	assert.Equal(t, 2, snapshot.EffectiveSemester(user))

	// A joined record without a loaded user falls back to its snapshot.
	assert.Equal(t, 2, (&CouncilFee{IsJoinedService: true, SnapshotSemester: 2}).EffectiveSemester(nil))
}

func TestCouncilFeeRemainingSemesters(t *testing.T) {
	fee := &CouncilFee{PaidAt: 1, NumPaidSemesters: 4} // covers 1..4

	assert.Equal(t, 2, fee.RemainingSemesters(2))
	assert.Equal(t, 0, fee.RemainingSemesters(4))
	assert.Equal(t, 0, fee.RemainingSemesters(9))
}
