package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/repository"
	"campus-community-backend/internal/validation"
)

type boardService struct {
	boardRepo  repository.BoardRepository
	circleRepo repository.CircleRepository
	userRepo   repository.UserRepository
	check      *validator.Validate
}

func NewBoardService(boardRepo repository.BoardRepository, circleRepo repository.CircleRepository, userRepo repository.UserRepository) BoardService {
	return &boardService{
		boardRepo:  boardRepo,
		circleRepo: circleRepo,
		userRepo:   userRepo,
		check:      validator.New(),
	}
}

// CreateBoard adds a board. General boards need an admin-tier actor; circle
// boards may also be created by the circle's own leader.
func (s *boardService) CreateBoard(ctx context.Context, actor *domain.User, req CreateBoardRequest) (*domain.Board, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.Constraint(&req, s.check))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	board := &domain.Board{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		CreateRoles: rolesFromStrings(req.CreateRoles),
	}

	if req.CircleID != "" {
		circle, err := s.circleRepo.GetByID(ctx, req.CircleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgCircleNotFound)
			}
			return nil, err
		}
		check := validation.NewBucket().
			ConsistOf(validation.TargetIsDeleted(circle.IsDeleted, apperr.DomainCircle)).
			ConsistOf(validation.ValidatorFunc(func() error {
				if actor.IsAdminTier() {
					return nil
				}
				if !actor.Roles.Has(domain.RoleLeaderCircle) || circle.LeaderID == nil {
					return apperr.New(apperr.CodeNotAllowed, "no access right to create boards for this circle")
				}
				return validation.UserEqual(*circle.LeaderID, actor.ID).Validate()
			}))
		if err := check.Validate(); err != nil {
			return nil, err
		}
		board.CircleID = &circle.ID
	} else if !actor.IsAdminTier() {
		return nil, apperr.New(apperr.CodeNotAllowed, "no access right to create boards")
	}

	if len(board.CreateRoles) == 0 {
		board.CreateRoles = []domain.Role{domain.RoleCommon}
	}

	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}
	logger.Info("board created", "board_id", board.ID, "actor", actor.ID)
	return board, nil
}

func (s *boardService) ListBoards(ctx context.Context, actor *domain.User) ([]domain.Board, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}
	return s.boardRepo.ListDefault(ctx)
}

func (s *boardService) DeleteBoard(ctx context.Context, actor *domain.User, boardID string) error {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgBoardNotFound)
		}
		return err
	}
	if err := hydrateBoard(ctx, board, s.circleRepo, s.userRepo); err != nil {
		return err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(board.IsDeleted, apperr.DomainBoard))
	if board.Circle != nil {
		bucket = bucket.ConsistOf(validation.TargetIsDeleted(board.Circle.IsDeleted, apperr.DomainCircle))
	}
	bucket = bucket.ConsistOf(validation.ValidatorFunc(func() error {
		if actor.IsAdminTier() {
			return nil
		}
		if board.Circle == nil || !actor.Roles.Has(domain.RoleLeaderCircle) {
			return apperr.New(apperr.CodeNotAllowed, "no access right to delete this board")
		}
		if board.Circle.Leader == nil {
			return apperr.New(apperr.CodeInternalServer, apperr.MsgCircleWithoutLeader)
		}
		return validation.UserEqual(board.Circle.Leader.ID, actor.ID).Validate()
	}))
	if err := bucket.Validate(); err != nil {
		return err
	}

	if err := s.boardRepo.SetDeleted(ctx, boardID, true); err != nil {
		return err
	}
	logger.Info("board deleted", "board_id", boardID, "actor", actor.ID)
	return nil
}

func rolesFromStrings(values []string) []domain.Role {
	roles := make([]domain.Role, 0, len(values))
	for _, v := range values {
		roles = append(roles, domain.Role(v))
	}
	return roles
}
