package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/policy"
	"campus-community-backend/internal/repository"
	"campus-community-backend/internal/validation"
)

type postService struct {
	postRepo    repository.PostRepository
	boardRepo   repository.BoardRepository
	circleRepo  repository.CircleRepository
	memberRepo  repository.CircleMemberRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	formRepo    repository.FormRepository
	check       *validator.Validate
}

func NewPostService(
	postRepo repository.PostRepository,
	boardRepo repository.BoardRepository,
	circleRepo repository.CircleRepository,
	memberRepo repository.CircleMemberRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	formRepo repository.FormRepository,
) PostService {
	return &postService{
		postRepo:    postRepo,
		boardRepo:   boardRepo,
		circleRepo:  circleRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		formRepo:    formRepo,
		check:       validator.New(),
	}
}

// CreatePost writes a post to a board after the full precondition chain:
// account state, role, board and circle liveness, circle membership, and the
// board's role whitelist. A request carrying a form creates the form first and
// links it to the post.
func (s *postService) CreatePost(ctx context.Context, actor *domain.User, req CreatePostRequest) (*domain.Post, error) {
	if err := validation.NewBucket().ConsistOf(validation.Constraint(&req, s.check)).Validate(); err != nil {
		return nil, err
	}

	board, err := s.loadBoard(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.boardAccessBucket(ctx, actor, board)
	if err != nil {
		return nil, err
	}
	bucket = bucket.ConsistOf(validation.ValidatorFunc(func() error {
		if !board.CanCreatePost(actor.Roles) {
			return apperr.New(apperr.CodeNotAllowed, "no access right to write to this board")
		}
		return nil
	}))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:       req.Title,
		Content:     req.Content,
		IsQuestion:  req.IsQuestion,
		IsAnonymous: req.IsAnonymous,
		WriterID:    actor.ID,
		BoardID:     board.ID,
	}

	if req.Form != nil {
		f, err := buildForm(req.Form)
		if err != nil {
			return nil, err
		}
		if err := s.formRepo.Create(ctx, f); err != nil {
			return nil, err
		}
		post.FormID = &f.ID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	logger.Info("post created", "post_id", post.ID, "board_id", board.ID, "writer", actor.ID)
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, actor *domain.User, postID string) (*PostDetail, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	board, err := s.loadBoard(ctx, post.BoardID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.boardAccessBucket(ctx, actor, board)
	if err != nil {
		return nil, err
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(post.IsDeleted, apperr.DomainPost))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	comments, commentCount, err := s.commentRepo.ListByPost(ctx, post.ID, 0, defaultPageSize)
	if err != nil {
		return nil, err
	}
	likeCount, err := s.postRepo.CountLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	hasComment := commentCount > 0
	deletable, err := policy.CanDeletePost(post, actor, board, hasComment)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:         post,
		Board:        board,
		Comments:     comments,
		CommentCount: commentCount,
		LikeCount:    likeCount,
		Updatable:    policy.CanUpdatePost(post, actor, hasComment),
		Deletable:    deletable,
	}, nil
}

func (s *postService) ListPosts(ctx context.Context, actor *domain.User, boardID string, page, pageSize int) ([]domain.Post, int, error) {
	board, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return nil, 0, err
	}

	bucket, err := s.boardAccessBucket(ctx, actor, board)
	if err != nil {
		return nil, 0, err
	}
	if err := bucket.Validate(); err != nil {
		return nil, 0, err
	}

	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return s.postRepo.ListByBoard(ctx, boardID, page, pageSize)
}

func (s *postService) UpdatePost(ctx context.Context, actor *domain.User, postID string, req UpdatePostRequest) (*domain.Post, error) {
	if err := validation.NewBucket().ConsistOf(validation.Constraint(&req, s.check)).Validate(); err != nil {
		return nil, err
	}

	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	board, err := s.loadBoard(ctx, post.BoardID)
	if err != nil {
		return nil, err
	}

	bucket, err := s.boardAccessBucket(ctx, actor, board)
	if err != nil {
		return nil, err
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(post.IsDeleted, apperr.DomainPost))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	hasComment, err := s.hasComment(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdatePost(post, actor, hasComment) {
		return nil, apperr.New(apperr.CodeNotAllowed, "no access right to update this post")
	}

	post.Title = req.Title
	post.Content = req.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, actor *domain.User, postID string) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	board, err := s.loadBoard(ctx, post.BoardID)
	if err != nil {
		return err
	}

	bucket, err := s.boardAccessBucket(ctx, actor, board)
	if err != nil {
		return err
	}
	bucket = bucket.ConsistOf(validation.TargetIsDeleted(post.IsDeleted, apperr.DomainPost))
	if err := bucket.Validate(); err != nil {
		return err
	}

	hasComment, err := s.hasComment(ctx, post.ID)
	if err != nil {
		return err
	}
	allowed, err := policy.CanDeletePost(post, actor, board, hasComment)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.New(apperr.CodeNotAllowed, "no access right to delete this post")
	}

	if err := s.postRepo.SetDeleted(ctx, postID, true); err != nil {
		return err
	}
	logger.Info("post deleted", "post_id", postID, "actor", actor.ID)
	return nil
}

func (s *postService) LikePost(ctx context.Context, actor *domain.User, postID string) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(post.IsDeleted, apperr.DomainPost))
	if err := bucket.Validate(); err != nil {
		return err
	}

	exists, err := s.postRepo.LikeExists(ctx, postID, actor.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.New(apperr.CodeRowAlreadyExists, apperr.MsgAlreadyLiked)
	}
	return s.postRepo.CreateLike(ctx, postID, actor.ID)
}

const defaultPageSize = 20

// boardAccessBucket builds the shared precondition prefix for operations under
// a board: account state, role, board liveness, and for circle boards the
// circle's liveness plus the actor's membership. Admin-tier actors skip the
// membership check.
func (s *postService) boardAccessBucket(ctx context.Context, actor *domain.User, board *domain.Board) (validation.Bucket, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(board.IsDeleted, apperr.DomainBoard))

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
			bucket = bucket.ConsistOf(validation.ValidatorFunc(func() error {
				return apperr.New(apperr.CodeNotMember, apperr.MsgNotCircleMember)
			}))
			return bucket, nil
		}
		return bucket, err
	}
	bucket = bucket.ConsistOf(validation.CircleMemberStatus(member.Status, []domain.CircleMemberStatus{domain.CircleMemberStatusMember}))
	return bucket, nil
}

func (s *postService) hasComment(ctx context.Context, postID string) (bool, error) {
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *postService) loadPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgPostNotFound)
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) loadBoard(ctx context.Context, boardID string) (*domain.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgBoardNotFound)
		}
		return nil, err
	}
	if err := hydrateBoard(ctx, board, s.circleRepo, s.userRepo); err != nil {
		return nil, err
	}
	return board, nil
}

// buildForm converts a create-form request into a domain form with numbered
// questions and options.
func buildForm(req *CreateFormRequest) (*domain.Form, error) {
	formType := domain.FormType(req.Type)
	if formType != domain.FormTypePost && formType != domain.FormTypeCircle {
		return nil, apperr.New(apperr.CodeInvalidParameter, "unknown form type")
	}

	f := &domain.Form{
		Title:               req.Title,
		Type:                formType,
		AllowEnrolled:       req.AllowEnrolled,
		AllowLeaveOfAbsence: req.AllowLeaveOfAbsence,
		AllowGraduated:      req.AllowGraduated,
		EnrolledSemesters:   req.EnrolledSemesters,
		LeaveSemesters:      req.LeaveSemesters,
		RequireCouncilFee:   req.RequireCouncilFee,
	}
	if req.CircleID != "" {
		circleID := req.CircleID
		f.CircleID = &circleID
	}

	for _, q := range req.Questions {
		questionType := domain.QuestionType(q.Type)
		if questionType != domain.QuestionTypeObjective && questionType != domain.QuestionTypeSubjective {
			return nil, apperr.New(apperr.CodeInvalidParameter, "unknown question type")
		}
		if questionType == domain.QuestionTypeObjective && len(q.Options) == 0 {
			return nil, apperr.New(apperr.CodeInvalidParameter, "objective questions need at least one option")
		}
		question := domain.Question{
			Number:     q.Number,
			Text:       q.Text,
			Type:       questionType,
			IsMultiple: q.IsMultiple,
		}
		for i, text := range q.Options {
			question.Options = append(question.Options, domain.Option{Number: i + 1, Text: text})
		}
		f.Questions = append(f.Questions, question)
	}
	return f, nil
}
