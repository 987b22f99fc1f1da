package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

func TestUserState(t *testing.T) {
	cases := []struct {
		state domain.UserState
		code  apperr.Code
	}{
		{domain.UserStateActive, ""},
		{domain.UserStateDrop, apperr.CodeBlockedUser},
		{domain.UserStateInactive, apperr.CodeInactiveUser},
		{domain.UserStateAwait, apperr.CodeAwaitingUser},
		{domain.UserStateReject, apperr.CodeRejectedUser},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			err := UserState(tc.state).Validate()
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.code, apperr.CodeOf(err))
		})
	}
}

func TestUserStateUnknownIsInternal(t *testing.T) {
	err := UserState(domain.UserState("GARBAGE")).Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternalServer, apperr.CodeOf(err))
}

func TestUserRoleIsNone(t *testing.T) {
	assert.NoError(t, UserRoleIsNone(domain.NewRoleSet(domain.RoleCommon)).Validate())

	err := UserRoleIsNone(domain.NewRoleSet(domain.RoleNone)).Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNeedSignIn, apperr.CodeOf(err))

	// NONE alongside real roles still fails.
	err = UserRoleIsNone(domain.NewRoleSet(domain.RoleCommon, domain.RoleNone)).Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNeedSignIn, apperr.CodeOf(err))
}

func TestTargetIsDeleted(t *testing.T) {
	assert.NoError(t, TargetIsDeleted(false, apperr.DomainPost).Validate())

	err := TargetIsDeleted(true, apperr.DomainBoard).Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTargetDeleted, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "board")
}

func TestCircleMemberStatus(t *testing.T) {
	allowed := []domain.CircleMemberStatus{domain.CircleMemberStatusMember}

	assert.NoError(t, CircleMemberStatus(domain.CircleMemberStatusMember, allowed).Validate())

	for _, status := range []domain.CircleMemberStatus{
		domain.CircleMemberStatusAwait,
		domain.CircleMemberStatusReject,
		domain.CircleMemberStatusLeave,
	} {
		err := CircleMemberStatus(status, allowed).Validate()
		require.Error(t, err, string(status))
		assert.Equal(t, apperr.CodeNotMember, apperr.CodeOf(err))
	}
}

func TestCircleMemberStatusAllowsAwaitWhenListed(t *testing.T) {
	allowed := []domain.CircleMemberStatus{domain.CircleMemberStatusAwait}
	assert.NoError(t, CircleMemberStatus(domain.CircleMemberStatusAwait, allowed).Validate())
}

func TestContentsAdmin(t *testing.T) {
	roles := domain.NewRoleSet(domain.RoleCommon)

	assert.NoError(t, ContentsAdmin(roles, "u1", "u1", nil).Validate(), "writer passes")
	assert.NoError(t, ContentsAdmin(domain.NewRoleSet(domain.RoleAdmin), "u2", "u1", nil).Validate(), "admin passes")
	assert.NoError(t, ContentsAdmin(domain.NewRoleSet(domain.RolePresident), "u2", "u1", []domain.Role{domain.RolePresident}).Validate())

	err := ContentsAdmin(roles, "u2", "u1", nil).Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
}

func TestUserEqual(t *testing.T) {
	assert.NoError(t, UserEqual("u1", "u1").Validate())

	err := UserEqual("u1", "u2").Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
}

func TestExtendLockerExpiredAt(t *testing.T) {
	now := time.Now()

	assert.NoError(t, ExtendLockerExpiredAt(now, now.Add(time.Hour)).Validate())

	err := ExtendLockerExpiredAt(now, now).Validate()
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidExpireDate, apperr.CodeOf(err))
}
