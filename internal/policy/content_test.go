package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

func user(id string, roles ...domain.Role) *domain.User {
	return &domain.User{
		ID:    id,
		Roles: domain.NewRoleSet(roles...),
		State: domain.UserStateActive,
	}
}

func circleBoard(circle *domain.Circle) *domain.Board {
	return &domain.Board{ID: "b1", CircleID: &circle.ID, Circle: circle}
}

func TestCanUpdatePost(t *testing.T) {
	writer := user("writer", domain.RoleCommon)
	admin := user("admin", domain.RoleAdmin)
	other := user("other", domain.RoleCommon)

	post := &domain.Post{ID: "p1", WriterID: "writer"}

	assert.True(t, CanUpdatePost(post, writer, false))
	assert.True(t, CanUpdatePost(post, admin, false))
	assert.False(t, CanUpdatePost(post, other, false))

	deleted := &domain.Post{ID: "p2", WriterID: "writer", IsDeleted: true}
	assert.False(t, CanUpdatePost(deleted, admin, false), "deleted content is frozen even for admins")

	question := &domain.Post{ID: "p3", WriterID: "writer", IsQuestion: true}
	assert.True(t, CanUpdatePost(question, writer, false))
	assert.False(t, CanUpdatePost(question, writer, true), "an answered question locks for the writer")
	assert.True(t, CanUpdatePost(question, admin, true), "the lock does not bind admins")
}

func TestCanDeletePostAdminTier(t *testing.T) {
	post := &domain.Post{ID: "p1", WriterID: "writer"}
	board := &domain.Board{ID: "b1"}

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RolePresident, domain.RoleVicePresident} {
		allowed, err := CanDeletePost(post, user("x", role), board, true)
		require.NoError(t, err)
		assert.True(t, allowed, string(role))
	}
}

func TestCanDeletePostCircleLeader(t *testing.T) {
	leader := user("leader", domain.RoleLeaderCircle)
	circle := &domain.Circle{ID: "c1", Leader: leader}
	board := circleBoard(circle)
	post := &domain.Post{ID: "p1", WriterID: "someone-else"}

	allowed, err := CanDeletePost(post, leader, board, false)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Holding LEADER_CIRCLE for a different circle is not enough.
	otherLeader := user("other-leader", domain.RoleLeaderCircle)
	allowed, err = CanDeletePost(post, otherLeader, board, false)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanDeletePostUnresolvableLeaderIsFatal(t *testing.T) {
	claimant := user("claimant", domain.RoleLeaderCircle)
	circle := &domain.Circle{ID: "c1"} // no leader on record
	board := circleBoard(circle)
	post := &domain.Post{ID: "p1", WriterID: "someone-else"}

	allowed, err := CanDeletePost(post, claimant, board, false)
	require.Error(t, err)
	assert.False(t, allowed)
	assert.Equal(t, apperr.CodeInternalServer, apperr.CodeOf(err))
}

func TestCanDeletePostWriterSkipsLeaderLookup(t *testing.T) {
	// A writer who also holds LEADER_CIRCLE deletes their own post on a board
	// whose circle has no leader on record. The writer path decides first, so
	// the leader is never resolved and no integrity error fires.
	writer := user("writer", domain.RoleCommon, domain.RoleLeaderCircle)
	board := circleBoard(&domain.Circle{ID: "c1"})
	post := &domain.Post{ID: "p1", WriterID: "writer"}

	allowed, err := CanDeletePost(post, writer, board, false)
	require.NoError(t, err)
	assert.True(t, allowed)

	// The question lock keeps the writer path closed, so the same actor's
	// leader claim is then consulted and the missing leader is fatal.
	question := &domain.Post{ID: "p2", WriterID: "writer", IsQuestion: true}
	_, err = CanDeletePost(question, writer, board, true)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternalServer, apperr.CodeOf(err))
}

func TestCanDeletePostWriterAndQuestionLock(t *testing.T) {
	writer := user("writer", domain.RoleCommon)
	board := &domain.Board{ID: "b1"}

	post := &domain.Post{ID: "p1", WriterID: "writer"}
	allowed, err := CanDeletePost(post, writer, board, false)
	require.NoError(t, err)
	assert.True(t, allowed)

	question := &domain.Post{ID: "p2", WriterID: "writer", IsQuestion: true}
	allowed, err = CanDeletePost(question, writer, board, true)
	require.NoError(t, err)
	assert.False(t, allowed)

	deleted := &domain.Post{ID: "p3", WriterID: "writer", IsDeleted: true}
	allowed, err = CanDeletePost(deleted, writer, board, false)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanUpdateComment(t *testing.T) {
	assert.True(t, CanUpdateComment("writer", false, user("writer", domain.RoleCommon)))
	assert.True(t, CanUpdateComment("writer", false, user("admin", domain.RoleAdmin)))
	assert.False(t, CanUpdateComment("writer", false, user("other", domain.RoleCommon)))
	assert.False(t, CanUpdateComment("writer", true, user("admin", domain.RoleAdmin)))
}

func TestCanDeleteComment(t *testing.T) {
	board := &domain.Board{ID: "b1"}

	allowed, err := CanDeleteComment("writer", false, user("writer", domain.RoleCommon), board)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = CanDeleteComment("writer", false, user("vp", domain.RoleVicePresident), board)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = CanDeleteComment("writer", false, user("other", domain.RoleCommon), board)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = CanDeleteComment("writer", true, user("writer", domain.RoleCommon), board)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanDeleteCommentCircleLeader(t *testing.T) {
	leader := user("leader", domain.RoleLeaderCircle)
	circle := &domain.Circle{ID: "c1", Leader: leader}
	board := circleBoard(circle)

	allowed, err := CanDeleteComment("writer", false, leader, board)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Missing leader row only matters when a leader decision is required.
	broken := circleBoard(&domain.Circle{ID: "c2"})
	_, err = CanDeleteComment("writer", false, user("claimant", domain.RoleLeaderCircle), broken)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternalServer, apperr.CodeOf(err))

	// A non-leader on the same broken board never touches the leader lookup.
	allowed, err = CanDeleteComment("writer", false, user("common", domain.RoleCommon), broken)
	require.NoError(t, err)
	assert.False(t, allowed)
}
