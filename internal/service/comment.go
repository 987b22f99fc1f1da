package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/policy"
	"campus-community-backend/internal/repository"
	"campus-community-backend/internal/validation"
)

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	boardRepo   repository.BoardRepository
	circleRepo  repository.CircleRepository
	memberRepo  repository.CircleMemberRepository
	userRepo    repository.UserRepository
	check       *validator.Validate
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	boardRepo repository.BoardRepository,
	circleRepo repository.CircleRepository,
	memberRepo repository.CircleMemberRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		circleRepo:  circleRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		check:       validator.New(),
	}
}

func (s *commentService) CreateComment(ctx context.Context, actor *domain.User, req CreateCommentRequest) (*domain.Comment, error) {
	if err := validation.NewBucket().ConsistOf(validation.Constraint(&req, s.check)).Validate(); err != nil {
		return nil, err
	}

	post, board, err := s.loadPostContext(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.commentBucket(ctx, actor, post, board)
	if err != nil {
		return nil, err
	}
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
		WriterID:    actor.ID,
		PostID:      post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor *domain.User, commentID, content string) (*domain.Comment, error) {
	if content == "" {
		return nil, apperr.New(apperr.CodeInvalidParameter, "content is required")
	}

	comment, post, board, err := s.loadComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.commentBucket(ctx, actor, post, board)
	if err != nil {
		return nil, err
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(comment.IsDeleted, apperr.DomainComment))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	if !policy.CanUpdateComment(comment.WriterID, comment.IsDeleted, actor) {
		return nil, apperr.New(apperr.CodeNotAllowed, "no access right to update this comment")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor *domain.User, commentID string) error {
	comment, post, board, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}

	bucket, err := s.commentBucket(ctx, actor, post, board)
	if err != nil {
		return err
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(comment.IsDeleted, apperr.DomainComment))
	if err := bucket.Validate(); err != nil {
		return err
	}

	allowed, err := policy.CanDeleteComment(comment.WriterID, comment.IsDeleted, actor, board)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.New(apperr.CodeNotAllowed, "no access right to delete this comment")
	}

	return s.commentRepo.SetDeleted(ctx, commentID, true)
}

func (s *commentService) LikeComment(ctx context.Context, actor *domain.User, commentID string) error {
	comment, _, _, err := s.loadComment(ctx, commentID)
	if err != nil {
		return err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(comment.IsDeleted, apperr.DomainComment))
	if err := bucket.Validate(); err != nil {
		return err
	}

	exists, err := s.commentRepo.LikeExists(ctx, commentID, actor.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.New(apperr.CodeRowAlreadyExists, apperr.MsgAlreadyLiked)
	}
	return s.commentRepo.CreateLike(ctx, commentID, actor.ID)
}

// commentBucket is the precondition prefix shared by comment operations:
// account state, role, post and board liveness, then circle liveness and
// membership for circle boards.
func (s *commentService) commentBucket(ctx context.Context, actor *domain.User, post *domain.Post, board *domain.Board) (validation.Bucket, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(board.IsDeleted, apperr.DomainBoard)).
		ConsistOf(validation.TargetIsDeleted(post.IsDeleted, apperr.DomainPost))

	if board.Circle == nil {
		return bucket, nil
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(board.Circle.IsDeleted, apperr.DomainCircle))

	if actor.IsAdminTier() {
		return bucket, nil
	}

	member, err := s.memberRepo.GetByUserAndCircle(ctx, actor.ID, board.Circle.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bucket.ConsistOf(validation.ValidatorFunc(func() error {
				return apperr.New(apperr.CodeNotMember, apperr.MsgNotCircleMember)
			})), nil
		}
		return bucket, err
	}
	return bucket.ConsistOf(validation.CircleMemberStatus(member.Status, []domain.CircleMemberStatus{domain.CircleMemberStatusMember})), nil
}

func (s *commentService) loadComment(ctx context.Context, commentID string) (*domain.Comment, *domain.Post, *domain.Board, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgCommentNotFound)
		}
		return nil, nil, nil, err
	}
	post, board, err := s.loadPostContext(ctx, comment.PostID)
	if err != nil {
		return nil, nil, nil, err
	}
	return comment, post, board, nil
}

func (s *commentService) loadPostContext(ctx context.Context, postID string) (*domain.Post, *domain.Board, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgPostNotFound)
		}
		return nil, nil, err
	}
	board, err := s.boardRepo.GetByID(ctx, post.BoardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgBoardNotFound)
		}
		return nil, nil, err
	}
	if err := hydrateBoard(ctx, board, s.circleRepo, s.userRepo); err != nil {
		return nil, nil, err
	}
	return post, board, nil
}
