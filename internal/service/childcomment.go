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

type childCommentService struct {
	childRepo   repository.ChildCommentRepository
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	boardRepo   repository.BoardRepository
	circleRepo  repository.CircleRepository
	memberRepo  repository.CircleMemberRepository
	userRepo    repository.UserRepository
	check       *validator.Validate
}

func NewChildCommentService(
	childRepo repository.ChildCommentRepository,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	boardRepo repository.BoardRepository,
	circleRepo repository.CircleRepository,
	memberRepo repository.CircleMemberRepository,
	userRepo repository.UserRepository,
) ChildCommentService {
	return &childCommentService{
		childRepo:   childRepo,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		circleRepo:  circleRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		check:       validator.New(),
	}
}

// CreateChildComment replies to a comment. The precondition chain covers the
// whole ancestry: board, post, and the parent comment must all be live.
func (s *childCommentService) CreateChildComment(ctx context.Context, actor *domain.User, req CreateChildCommentRequest) (*domain.ChildComment, error) {
	if err := validation.NewBucket().ConsistOf(validation.Constraint(&req, s.check)).Validate(); err != nil {
		return nil, err
	}

	parent, post, board, err := s.loadParent(ctx, req.ParentCommentID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.childBucket(ctx, actor, parent, post, board)
	if err != nil {
		return nil, err
	}
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	child := &domain.ChildComment{
		Content:         req.Content,
		IsAnonymous:     req.IsAnonymous,
		TagUserName:     req.TagUserName,
		WriterID:        actor.ID,
		ParentCommentID: parent.ID,
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *childCommentService) UpdateChildComment(ctx context.Context, actor *domain.User, childCommentID, content string) (*domain.ChildComment, error) {
	if content == "" {
		return nil, apperr.New(apperr.CodeInvalidParameter, "content is required")
	}

	child, parent, post, board, err := s.loadChild(ctx, childCommentID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.childBucket(ctx, actor, parent, post, board)
	if err != nil {
		return nil, err
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(child.IsDeleted, apperr.DomainChildComment))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	if !policy.CanUpdateComment(child.WriterID, child.IsDeleted, actor) {
		return nil, apperr.New(apperr.CodeNotAllowed, "no access right to update this comment")
	}

	child.Content = content
	if err := s.childRepo.Update(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *childCommentService) DeleteChildComment(ctx context.Context, actor *domain.User, childCommentID string) error {
	child, parent, post, board, err := s.loadChild(ctx, childCommentID)
	if err != nil {
		return err
	}

	bucket, err := s.childBucket(ctx, actor, parent, post, board)
	if err != nil {
		return err
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(child.IsDeleted, apperr.DomainChildComment))
	if err := bucket.Validate(); err != nil {
		return err
	}

	allowed, err := policy.CanDeleteComment(child.WriterID, child.IsDeleted, actor, board)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.New(apperr.CodeNotAllowed, "no access right to delete this comment")
	}

	return s.childRepo.SetDeleted(ctx, childCommentID, true)
}

func (s *childCommentService) LikeChildComment(ctx context.Context, actor *domain.User, childCommentID string) error {
	child, _, _, _, err := s.loadChild(ctx, childCommentID)
	if err != nil {
		return err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(child.IsDeleted, apperr.DomainChildComment))
	if err := bucket.Validate(); err != nil {
		return err
	}

	exists, err := s.childRepo.LikeExists(ctx, childCommentID, actor.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.New(apperr.CodeRowAlreadyExists, apperr.MsgAlreadyLiked)
	}
	return s.childRepo.CreateLike(ctx, childCommentID, actor.ID)
}

func (s *childCommentService) childBucket(ctx context.Context, actor *domain.User, parent *domain.Comment, post *domain.Post, board *domain.Board) (validation.Bucket, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(board.IsDeleted, apperr.DomainBoard)).
		ConsistOf(validation.TargetIsDeleted(post.IsDeleted, apperr.DomainPost)).
		ConsistOf(validation.TargetIsDeleted(parent.IsDeleted, apperr.DomainComment))

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

func (s *childCommentService) loadChild(ctx context.Context, childCommentID string) (*domain.ChildComment, *domain.Comment, *domain.Post, *domain.Board, error) {
	child, err := s.childRepo.GetByID(ctx, childCommentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgCommentNotFound)
		}
		return nil, nil, nil, nil, err
	}
	parent, post, board, err := s.loadParent(ctx, child.ParentCommentID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return child, parent, post, board, nil
}

func (s *childCommentService) loadParent(ctx context.Context, parentCommentID string) (*domain.Comment, *domain.Post, *domain.Board, error) {
	parent, err := s.commentRepo.GetByID(ctx, parentCommentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgCommentNotFound)
		}
		return nil, nil, nil, err
	}
	post, err := s.postRepo.GetByID(ctx, parent.PostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgPostNotFound)
		}
		return nil, nil, nil, err
	}
	board, err := s.boardRepo.GetByID(ctx, post.BoardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgBoardNotFound)
		}
		return nil, nil, nil, err
	}
	if err := hydrateBoard(ctx, board, s.circleRepo, s.userRepo); err != nil {
		return nil, nil, nil, err
	}
	return parent, post, board, nil
}
