package repository

import (
	"context"

	"campus-community-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateState(ctx context.Context, id string, state domain.UserState) error
	UpdateRoles(ctx context.Context, id string, roles domain.RoleSet) error
	ListByState(ctx context.Context, state domain.UserState) ([]domain.User, error)
}

type CircleRepository interface {
	Create(ctx context.Context, circle *domain.Circle) error
	GetByID(ctx context.Context, id string) (*domain.Circle, error)
	List(ctx context.Context) ([]domain.Circle, error)
	Update(ctx context.Context, circle *domain.Circle) error
	SetDeleted(ctx context.Context, id string, deleted bool) error
}

type CircleMemberRepository interface {
	Create(ctx context.Context, member *domain.CircleMember) error
	GetByUserAndCircle(ctx context.Context, userID, circleID string) (*domain.CircleMember, error)
	ListByCircle(ctx context.Context, circleID string) ([]domain.CircleMember, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CircleMember, error)
	UpdateStatus(ctx context.Context, id string, status domain.CircleMemberStatus) error
	CountByCircle(ctx context.Context, circleID string, status domain.CircleMemberStatus) (int, error)
}

type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	ListByCircle(ctx context.Context, circleID string) ([]domain.Board, error)
	ListDefault(ctx context.Context) ([]domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	SetDeleted(ctx context.Context, id string, deleted bool) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	SetDeleted(ctx context.Context, id string, deleted bool) error
	ListByBoard(ctx context.Context, boardID string, page, pageSize int) ([]domain.Post, int, error)
	CreateLike(ctx context.Context, postID, userID string) error
	LikeExists(ctx context.Context, postID, userID string) (bool, error)
	CountLikes(ctx context.Context, postID string) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	SetDeleted(ctx context.Context, id string, deleted bool) error
	ListByPost(ctx context.Context, postID string, page, pageSize int) ([]domain.Comment, int, error)
	CountByPost(ctx context.Context, postID string) (int, error)
	CreateLike(ctx context.Context, commentID, userID string) error
	LikeExists(ctx context.Context, commentID, userID string) (bool, error)
	CountLikes(ctx context.Context, commentID string) (int, error)
}

type ChildCommentRepository interface {
	Create(ctx context.Context, comment *domain.ChildComment) error
	GetByID(ctx context.Context, id string) (*domain.ChildComment, error)
	Update(ctx context.Context, comment *domain.ChildComment) error
	SetDeleted(ctx context.Context, id string, deleted bool) error
	ListByParent(ctx context.Context, parentCommentID string) ([]domain.ChildComment, error)
	CreateLike(ctx context.Context, childCommentID, userID string) error
	LikeExists(ctx context.Context, childCommentID, userID string) (bool, error)
	CountLikes(ctx context.Context, childCommentID string) (int, error)
}

type FormRepository interface {
	Create(ctx context.Context, form *domain.Form) error
	GetByID(ctx context.Context, id string) (*domain.Form, error)
	SetClosed(ctx context.Context, id string, closed bool) error
	CreateReply(ctx context.Context, reply *domain.Reply) error
	ReplyExists(ctx context.Context, formID, userID string) (bool, error)
	ListReplies(ctx context.Context, formID string) ([]domain.Reply, error)
}

type CouncilFeeRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.CouncilFee, error)
}

type LockerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Locker, error)
	Update(ctx context.Context, locker *domain.Locker) error
}

type NoticeRepository interface {
	CreateBatch(ctx context.Context, notices []domain.CrawledNotice) error
	GetLatestCrawl(ctx context.Context, category domain.CrawlCategory) (*domain.LatestCrawl, error)
	UpsertLatestCrawl(ctx context.Context, crawl *domain.LatestCrawl) error
}
