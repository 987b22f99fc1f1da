package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/security"
)

const authTestSecret = "unit-test-secret-0123456789abcdef-extra"

func newAuthServiceForTest(users *mockUserRepo) AuthService {
	return NewAuthService(users, security.NewTokenManager(authTestSecret, 30, 20160))
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestSignUp(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthServiceForTest(users)

	users.On("GetByEmail", mock.Anything, "new@example.edu").Return(nil, sql.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:         "new@example.edu",
		Password:      "long-enough-password",
		Name:          "Jane Doe",
		Nickname:      "jane",
		StudentID:     "20231234",
		AdmissionYear: 2023,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.UserStateAwait, user.State)
	assert.True(t, user.Roles.Has(domain.RoleNone))
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	users.AssertExpectations(t)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthServiceForTest(users)

	users.On("GetByEmail", mock.Anything, "taken@example.edu").
		Return(&domain.User{ID: "existing"}, nil)

	_, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:         "taken@example.edu",
		Password:      "long-enough-password",
		Name:          "Jane Doe",
		Nickname:      "jane",
		StudentID:     "20231234",
		AdmissionYear: 2023,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeRowAlreadyExists, apperr.CodeOf(err))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUpInvalidRequest(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthServiceForTest(users)

	_, err := svc.SignUp(context.Background(), SignUpRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidParameter, apperr.CodeOf(err))
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestSignIn(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthServiceForTest(users)

	users.On("GetByEmail", mock.Anything, "jane@example.edu").Return(&domain.User{
		ID:           "u1",
		Email:        "jane@example.edu",
		PasswordHash: hashed(t, "correct-password"),
		State:        domain.UserStateActive,
		Roles:        domain.NewRoleSet(domain.RoleCommon),
	}, nil)

	access, refresh, err := svc.SignIn(context.Background(), "jane@example.edu", "correct-password")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)
}

func TestSignInWrongPassword(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthServiceForTest(users)

	users.On("GetByEmail", mock.Anything, "jane@example.edu").Return(&domain.User{
		ID:           "u1",
		PasswordHash: hashed(t, "correct-password"),
		State:        domain.UserStateActive,
		Roles:        domain.NewRoleSet(domain.RoleCommon),
	}, nil)

	_, _, err := svc.SignIn(context.Background(), "jane@example.edu", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidSignIn, apperr.CodeOf(err))
}

func TestSignInUnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := newAuthServiceForTest(users)

	users.On("GetByEmail", mock.Anything, "nobody@example.edu").Return(nil, sql.ErrNoRows)

	_, _, err := svc.SignIn(context.Background(), "nobody@example.edu", "whatever")
	require.Error(t, err)
	// Unknown email and wrong password are indistinguishable to the caller.
	assert.Equal(t, apperr.CodeInvalidSignIn, apperr.CodeOf(err))
}

func TestSignInBlockedStates(t *testing.T) {
	cases := []struct {
		state domain.UserState
		code  apperr.Code
	}{
		{domain.UserStateAwait, apperr.CodeAwaitingUser},
		{domain.UserStateReject, apperr.CodeRejectedUser},
		{domain.UserStateDrop, apperr.CodeBlockedUser},
		{domain.UserStateInactive, apperr.CodeInactiveUser},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			users := new(mockUserRepo)
			svc := newAuthServiceForTest(users)

			users.On("GetByEmail", mock.Anything, "jane@example.edu").Return(&domain.User{
				ID:           "u1",
				PasswordHash: hashed(t, "correct-password"),
				State:        tc.state,
				Roles:        domain.NewRoleSet(domain.RoleCommon),
			}, nil)

			_, _, err := svc.SignIn(context.Background(), "jane@example.edu", "correct-password")
			require.Error(t, err)
			assert.Equal(t, tc.code, apperr.CodeOf(err))
		})
	}
}

func TestRefreshToken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := security.NewTokenManager(authTestSecret, 30, 20160)
	svc := NewAuthService(users, tokens)

	refresh, err := tokens.GenerateRefreshToken("u1", "jane@example.edu")
	require.NoError(t, err)

	users.On("GetByID", mock.Anything, "u1").Return(&domain.User{
		ID:    "u1",
		Email: "jane@example.edu",
		State: domain.UserStateActive,
		Roles: domain.NewRoleSet(domain.RoleCommon),
	}, nil)

	access, newRefresh, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	users := new(mockUserRepo)
	tokens := security.NewTokenManager(authTestSecret, 30, 20160)
	svc := NewAuthService(users, tokens)

	access, err := tokens.GenerateAccessToken("u1", "jane@example.edu", []string{"COMMON"})
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNeedSignIn, apperr.CodeOf(err))
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
