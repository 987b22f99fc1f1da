package validation

import (
	"time"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

// UserState checks that the account is active. Each non-active state fails
// with its own code so the client can tell a blocked account from one still
// awaiting admission.
func UserState(state domain.UserState) Validator {
	return ValidatorFunc(func() error {
		switch state {
		case domain.UserStateActive:
			return nil
		case domain.UserStateDrop:
			return apperr.New(apperr.CodeBlockedUser, apperr.MsgBlockedUser)
		case domain.UserStateInactive:
			return apperr.New(apperr.CodeInactiveUser, apperr.MsgInactiveUser)
		case domain.UserStateAwait:
			return apperr.New(apperr.CodeAwaitingUser, apperr.MsgAwaitingUser)
		case domain.UserStateReject:
			return apperr.New(apperr.CodeRejectedUser, apperr.MsgRejectedUser)
		default:
			return apperr.Newf(apperr.CodeInternalServer, "unknown user state %q", state)
		}
	})
}

// UserRoleIsNone rejects role sets carrying the no-role marker, regardless of
// what else is present.
func UserRoleIsNone(roles domain.RoleSet) Validator {
	return ValidatorFunc(func() error {
		if roles.Has(domain.RoleNone) {
			return apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn)
		}
		return nil
	})
}

// TargetIsDeleted fails when the target carries a soft-deletion flag. The
// domain name parameterizes the message (board, post, circle, ...).
func TargetIsDeleted(isDeleted bool, domainName string) Validator {
	return ValidatorFunc(func() error {
		if isDeleted {
			return apperr.Newf(apperr.CodeTargetDeleted, "this %s has been deleted", domainName)
		}
		return nil
	})
}

// CircleMemberStatus checks that the membership status is one of the allowed
// set supplied by the caller.
func CircleMemberStatus(status domain.CircleMemberStatus, allowed []domain.CircleMemberStatus) Validator {
	return ValidatorFunc(func() error {
		for _, s := range allowed {
			if status == s {
				return nil
			}
		}
		switch status {
		case domain.CircleMemberStatusAwait:
			return apperr.New(apperr.CodeNotMember, "membership application is still pending")
		case domain.CircleMemberStatusReject:
			return apperr.New(apperr.CodeNotMember, "membership application was rejected")
		case domain.CircleMemberStatusLeave:
			return apperr.New(apperr.CodeNotMember, "already left this circle")
		default:
			return apperr.New(apperr.CodeNotMember, apperr.MsgNotCircleMember)
		}
	})
}

// ContentsAdmin passes when the actor wrote the content, holds an admin role,
// or holds any role in the caller-supplied extra set.
func ContentsAdmin(roles domain.RoleSet, actorID, writerID string, extraAllowed []domain.Role) Validator {
	return ValidatorFunc(func() error {
		if actorID == writerID || roles.Has(domain.RoleAdmin) {
			return nil
		}
		for _, r := range extraAllowed {
			if roles.Has(r) {
				return nil
			}
		}
		return apperr.New(apperr.CodeNotAllowed, "no access right to this content")
	})
}

// UserEqual checks that two identifiers refer to the same user, e.g. that the
// actor really is the circle's leader.
func UserEqual(targetID, actorID string) Validator {
	return ValidatorFunc(func() error {
		if targetID != actorID {
			return apperr.New(apperr.CodeNotAllowed, "no access right for this user")
		}
		return nil
	})
}

// ExtendLockerExpiredAt rejects a locker extension that would not move the
// expiry at all.
func ExtendLockerExpiredAt(src, dst time.Time) Validator {
	return ValidatorFunc(func() error {
		if src.Equal(dst) {
			return apperr.New(apperr.CodeInvalidExpireDate, apperr.MsgLockerAlreadyExtended)
		}
		return nil
	})
}
