// Package policy answers "may this actor update or delete this content?" as
// pure decisions over already-loaded state. Services use the same functions to
// compute the Updatable/Deletable capability flags returned with content.
package policy

import (
	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

// CanUpdatePost decides update permission for a post. Deleted posts are never
// updatable, admins always may, and a question post that already has a comment
// is locked for everyone else to preserve question/answer integrity.
func CanUpdatePost(post *domain.Post, user *domain.User, hasComment bool) bool {
	if post.IsDeleted {
		return false
	}
	if user.Roles.Has(domain.RoleAdmin) {
		return true
	}
	if post.IsQuestion && hasComment {
		return false
	}
	return post.WriterID == user.ID
}

// CanDeletePost decides delete permission for a post. Beyond the writer and
// admin-tier roles, the leader of the board's circle may delete content on
// that circle's boards. The writer path is decided first so the leader is
// only resolved when the decision needs one; an unresolvable leader is then a
// data-integrity failure, never a silent "no". Only a leader (or admin) may
// delete a question post that already has a comment.
func CanDeletePost(post *domain.Post, user *domain.User, board *domain.Board, hasComment bool) (bool, error) {
	if post.IsDeleted {
		return false, nil
	}
	if user.IsAdminTier() {
		return true, nil
	}
	if post.WriterID == user.ID && !(post.IsQuestion && hasComment) {
		return true, nil
	}
	if board.Circle != nil && user.Roles.Has(domain.RoleLeaderCircle) {
		return leadsCircle(user, board.Circle)
	}
	return false, nil
}

// CanUpdateComment decides update permission for a comment or child comment,
// identified by its writer and deletion flag.
func CanUpdateComment(writerID string, isDeleted bool, user *domain.User) bool {
	if isDeleted {
		return false
	}
	return user.Roles.Has(domain.RoleAdmin) || writerID == user.ID
}

// CanDeleteComment decides delete permission for a comment or child comment on
// the given board.
func CanDeleteComment(writerID string, isDeleted bool, user *domain.User, board *domain.Board) (bool, error) {
	if isDeleted {
		return false, nil
	}
	if user.IsAdminTier() || writerID == user.ID {
		return true, nil
	}
	if board.Circle == nil || !user.Roles.Has(domain.RoleLeaderCircle) {
		return false, nil
	}
	return leadsCircle(user, board.Circle)
}

// leadsCircle reports whether user is the circle's leader. Called only when a
// leader is required for the decision, so an absent leader is fatal.
func leadsCircle(user *domain.User, circle *domain.Circle) (bool, error) {
	if circle.Leader == nil {
		return false, apperr.New(apperr.CodeInternalServer, apperr.MsgCircleWithoutLeader)
	}
	return circle.Leader.ID == user.ID, nil
}
