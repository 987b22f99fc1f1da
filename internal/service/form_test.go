package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

func activeUser(id string, roles ...domain.Role) *domain.User {
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleCommon}
	}
	return &domain.User{
		ID:                       id,
		State:                    domain.UserStateActive,
		Roles:                    domain.NewRoleSet(roles...),
		AcademicStatus:           domain.AcademicStatusEnrolled,
		CurrentCompletedSemester: 2,
	}
}

func replyableForm() *domain.Form {
	return &domain.Form{
		ID:                "f1",
		Type:              domain.FormTypePost,
		AllowEnrolled:     true,
		EnrolledSemesters: []int{1, 2, 3, 4},
		Questions: []domain.Question{
			{ID: "q1", Number: 1, Text: "Why?", Type: domain.QuestionTypeSubjective},
		},
	}
}

func newFormServiceForTest(forms *mockFormRepo, circles *mockCircleRepo, users *mockUserRepo, fees *mockCouncilFeeRepo) FormService {
	return NewFormService(forms, circles, users, fees, NewReplyExporter())
}

func TestReplyToForm(t *testing.T) {
	forms := new(mockFormRepo)
	fees := new(mockCouncilFeeRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), fees)

	forms.On("GetByID", mock.Anything, "f1").Return(replyableForm(), nil)
	forms.On("ReplyExists", mock.Anything, "f1", "writer").Return(false, nil)
	forms.On("CreateReply", mock.Anything, mock.AnythingOfType("*domain.Reply")).Return(nil)

	reply, err := svc.ReplyToForm(context.Background(), activeUser("writer"),
		"f1", []domain.Answer{{QuestionID: "q1", Text: "because"}})
	require.NoError(t, err)
	assert.Equal(t, "f1", reply.FormID)
	assert.Equal(t, "writer", reply.WriterID)
	require.Len(t, reply.Answers, 1)
	assert.Equal(t, "because", reply.Answers[0].Text)
	forms.AssertExpectations(t)
	fees.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestReplyToFormAwaitingAccount(t *testing.T) {
	forms := new(mockFormRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), new(mockCouncilFeeRepo))

	forms.On("GetByID", mock.Anything, "f1").Return(replyableForm(), nil)

	actor := activeUser("writer")
	actor.State = domain.UserStateAwait

	_, err := svc.ReplyToForm(context.Background(), actor, "f1", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeAwaitingUser, apperr.CodeOf(err))
	forms.AssertNotCalled(t, "ReplyExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestReplyToFormClosed(t *testing.T) {
	forms := new(mockFormRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), new(mockCouncilFeeRepo))

	f := replyableForm()
	f.IsClosed = true
	forms.On("GetByID", mock.Anything, "f1").Return(f, nil)

	_, err := svc.ReplyToForm(context.Background(), activeUser("writer"), "f1", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
}

func TestReplyToFormDuplicate(t *testing.T) {
	forms := new(mockFormRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), new(mockCouncilFeeRepo))

	forms.On("GetByID", mock.Anything, "f1").Return(replyableForm(), nil)
	forms.On("ReplyExists", mock.Anything, "f1", "writer").Return(true, nil)

	_, err := svc.ReplyToForm(context.Background(), activeUser("writer"), "f1", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeRowAlreadyExists, apperr.CodeOf(err))
	forms.AssertNotCalled(t, "CreateReply", mock.Anything, mock.Anything)
}

func TestReplyToFormCouncilFeeMissing(t *testing.T) {
	forms := new(mockFormRepo)
	fees := new(mockCouncilFeeRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), fees)

	f := replyableForm()
	f.RequireCouncilFee = true
	forms.On("GetByID", mock.Anything, "f1").Return(f, nil)
	fees.On("GetByUserID", mock.Anything, "writer").Return(nil, sql.ErrNoRows)

	_, err := svc.ReplyToForm(context.Background(), activeUser("writer"), "f1", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
}

func TestReplyToFormCouncilFeePaid(t *testing.T) {
	forms := new(mockFormRepo)
	fees := new(mockCouncilFeeRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), fees)

	f := replyableForm()
	f.RequireCouncilFee = true
	forms.On("GetByID", mock.Anything, "f1").Return(f, nil)
	fees.On("GetByUserID", mock.Anything, "writer").
		Return(&domain.CouncilFee{IsJoinedService: true, PaidAt: 1, NumPaidSemesters: 4}, nil)
	forms.On("ReplyExists", mock.Anything, "f1", "writer").Return(false, nil)
	forms.On("CreateReply", mock.Anything, mock.AnythingOfType("*domain.Reply")).Return(nil)

	_, err := svc.ReplyToForm(context.Background(), activeUser("writer"),
		"f1", []domain.Answer{{QuestionID: "q1", Text: "paid"}})
	assert.NoError(t, err)
}

func TestReplyToFormNotFound(t *testing.T) {
	forms := new(mockFormRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), new(mockCouncilFeeRepo))

	forms.On("GetByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	_, err := svc.ReplyToForm(context.Background(), activeUser("writer"), "missing", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeRowDoesNotExist, apperr.CodeOf(err))
}

func TestListRepliesAccessControl(t *testing.T) {
	circleID := "c1"
	leaderID := "leader"
	f := replyableForm()
	f.Type = domain.FormTypeCircle
	f.CircleID = &circleID

	t.Run("admin tier passes", func(t *testing.T) {
		forms := new(mockFormRepo)
		svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), new(mockCouncilFeeRepo))
		forms.On("GetByID", mock.Anything, "f1").Return(f, nil)
		forms.On("ListReplies", mock.Anything, "f1").Return([]domain.Reply{}, nil)

		_, err := svc.ListReplies(context.Background(), activeUser("president", domain.RolePresident), "f1")
		assert.NoError(t, err)
	})

	t.Run("circle leader passes", func(t *testing.T) {
		forms := new(mockFormRepo)
		circles := new(mockCircleRepo)
		svc := newFormServiceForTest(forms, circles, new(mockUserRepo), new(mockCouncilFeeRepo))
		forms.On("GetByID", mock.Anything, "f1").Return(f, nil)
		circles.On("GetByID", mock.Anything, circleID).
			Return(&domain.Circle{ID: circleID, LeaderID: &leaderID}, nil)
		forms.On("ListReplies", mock.Anything, "f1").Return([]domain.Reply{}, nil)

		_, err := svc.ListReplies(context.Background(), activeUser(leaderID, domain.RoleLeaderCircle), "f1")
		assert.NoError(t, err)
	})

	t.Run("leader of another circle is rejected", func(t *testing.T) {
		forms := new(mockFormRepo)
		circles := new(mockCircleRepo)
		svc := newFormServiceForTest(forms, circles, new(mockUserRepo), new(mockCouncilFeeRepo))
		forms.On("GetByID", mock.Anything, "f1").Return(f, nil)
		circles.On("GetByID", mock.Anything, circleID).
			Return(&domain.Circle{ID: circleID, LeaderID: &leaderID}, nil)

		_, err := svc.ListReplies(context.Background(), activeUser("other", domain.RoleLeaderCircle), "f1")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
	})

	t.Run("common member is rejected", func(t *testing.T) {
		forms := new(mockFormRepo)
		svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), new(mockCouncilFeeRepo))
		forms.On("GetByID", mock.Anything, "f1").Return(f, nil)

		_, err := svc.ListReplies(context.Background(), activeUser("common"), "f1")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotAllowed, apperr.CodeOf(err))
	})

	t.Run("leaderless circle is a server fault", func(t *testing.T) {
		forms := new(mockFormRepo)
		circles := new(mockCircleRepo)
		svc := newFormServiceForTest(forms, circles, new(mockUserRepo), new(mockCouncilFeeRepo))
		forms.On("GetByID", mock.Anything, "f1").Return(f, nil)
		circles.On("GetByID", mock.Anything, circleID).
			Return(&domain.Circle{ID: circleID}, nil)

		_, err := svc.ListReplies(context.Background(), activeUser("claimant", domain.RoleLeaderCircle), "f1")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInternalServer, apperr.CodeOf(err))
	})
}

func TestCloseFormIdempotent(t *testing.T) {
	forms := new(mockFormRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), new(mockUserRepo), new(mockCouncilFeeRepo))

	f := replyableForm()
	f.IsClosed = true
	forms.On("GetByID", mock.Anything, "f1").Return(f, nil)

	err := svc.CloseForm(context.Background(), activeUser("admin", domain.RoleAdmin), "f1")
	require.NoError(t, err)
	forms.AssertNotCalled(t, "SetClosed", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportRepliesFilename(t *testing.T) {
	forms := new(mockFormRepo)
	users := new(mockUserRepo)
	svc := newFormServiceForTest(forms, new(mockCircleRepo), users, new(mockCouncilFeeRepo))

	forms.On("GetByID", mock.Anything, "f1").Return(replyableForm(), nil)
	forms.On("ListReplies", mock.Anything, "f1").Return([]domain.Reply{
		{ID: "r1", FormID: "f1", WriterID: "writer", Answers: []domain.Answer{{QuestionID: "q1", Text: "x"}}},
	}, nil)
	users.On("GetByID", mock.Anything, "writer").Return(activeUser("writer"), nil)

	data, filename, err := svc.ExportReplies(context.Background(), activeUser("admin", domain.RoleAdmin), "f1")
	require.NoError(t, err)
	assert.Equal(t, "form-f1-replies.xlsx", filename)
	assert.NotEmpty(t, data)
}
