package apperr

// Shared user-facing messages. Kept in one place so service and validation
// code fail with consistent wording.
const (
	MsgNeedSignIn          = "no access right, please sign in again"
	MsgBlockedUser         = "this account has been blocked"
	MsgInactiveUser        = "this account is inactive"
	MsgAwaitingUser        = "this account is awaiting admission approval"
	MsgRejectedUser        = "this account's admission was rejected"
	MsgNotCircleMember     = "not a member of this circle"
	MsgCircleApplyInvalid  = "no membership application found for this circle"
	MsgCircleWithoutLeader = "circle has no resolvable leader"
	MsgUserNotFound        = "user not found"
	MsgCircleNotFound      = "circle not found"
	MsgBoardNotFound       = "board not found"
	MsgPostNotFound        = "post not found"
	MsgCommentNotFound     = "comment not found"
	MsgFormNotFound        = "form not found"
	MsgQuestionNotFound    = "question not found"
	MsgLockerNotFound      = "locker not found"
	MsgFormClosed          = "this form is closed"
	MsgNotAllowedToReply   = "not eligible to reply to this form"
	MsgAlreadyReplied      = "a reply has already been submitted for this form"
	MsgInvalidReply        = "invalid reply contents"
	MsgAlreadyLiked        = "already liked"
	MsgLockerAlreadyExtended = "locker expiry is unchanged"
	MsgNotAllowedToAccessReply = "no access right to form results"
)

// Domain names used in target-deleted messages.
const (
	DomainBoard        = "board"
	DomainPost         = "post"
	DomainComment      = "comment"
	DomainChildComment = "child comment"
	DomainCircle       = "circle"
	DomainForm         = "form"
)
