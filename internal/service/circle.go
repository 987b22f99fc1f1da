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

type circleService struct {
	circleRepo repository.CircleRepository
	memberRepo repository.CircleMemberRepository
	userRepo   repository.UserRepository
	check      *validator.Validate
}

func NewCircleService(circleRepo repository.CircleRepository, memberRepo repository.CircleMemberRepository, userRepo repository.UserRepository) CircleService {
	return &circleService{
		circleRepo: circleRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		check:      validator.New(),
	}
}

// CreateCircle registers a circle and installs its leader: the leader gains
// the LEADER_CIRCLE role and becomes the first member.
func (s *circleService) CreateCircle(ctx context.Context, actor *domain.User, req CreateCircleRequest) (*domain.Circle, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.Constraint(&req, s.check)).
		ConsistOf(validation.ValidatorFunc(func() error {
			if !actor.IsAdminTier() {
				return apperr.New(apperr.CodeNotAllowed, "no access right to create circles")
			}
			return nil
		}))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	leader, err := s.userRepo.GetByID(ctx, req.LeaderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgUserNotFound)
		}
		return nil, err
	}
	if err := validation.UserState(leader.State).Validate(); err != nil {
		return nil, err
	}

	circle := &domain.Circle{
		Name:        req.Name,
		MainImage:   req.MainImage,
		Description: req.Description,
		LeaderID:    &leader.ID,
	}
	if err := s.circleRepo.Create(ctx, circle); err != nil {
		return nil, err
	}

	roles := domain.NewRoleSet(leader.Roles.Slice()...)
	delete(roles, domain.RoleNone)
	roles[domain.RoleLeaderCircle] = struct{}{}
	if err := s.userRepo.UpdateRoles(ctx, leader.ID, roles); err != nil {
		return nil, err
	}

	member := &domain.CircleMember{
		UserID:   leader.ID,
		CircleID: circle.ID,
		Status:   domain.CircleMemberStatusMember,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	logger.Info("circle created", "circle_id", circle.ID, "leader_id", leader.ID)
	return circle, nil
}

func (s *circleService) GetCircle(ctx context.Context, circleID string) (*domain.Circle, int, error) {
	circle, err := s.loadCircle(ctx, circleID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.memberRepo.CountByCircle(ctx, circleID, domain.CircleMemberStatusMember)
	if err != nil {
		return nil, 0, err
	}
	return circle, count, nil
}

func (s *circleService) ListCircles(ctx context.Context) ([]domain.Circle, error) {
	return s.circleRepo.List(ctx)
}

// Apply creates or revives a membership application. A pending or accepted
// record blocks a new application; a left or rejected one is moved back to
// AWAIT.
func (s *circleService) Apply(ctx context.Context, actor *domain.User, circleID string) (*domain.CircleMember, error) {
	circle, err := s.loadCircle(ctx, circleID)
	if err != nil {
		return nil, err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(circle.IsDeleted, apperr.DomainCircle))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.memberRepo.GetByUserAndCircle(ctx, actor.ID, circleID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case domain.CircleMemberStatusAwait:
			return nil, apperr.New(apperr.CodeRowAlreadyExists, "membership application already pending")
		case domain.CircleMemberStatusMember:
			return nil, apperr.New(apperr.CodeRowAlreadyExists, "already a member of this circle")
		default:
			if err := s.memberRepo.UpdateStatus(ctx, existing.ID, domain.CircleMemberStatusAwait); err != nil {
				return nil, err
			}
			existing.Status = domain.CircleMemberStatusAwait
			return existing, nil
		}
	}

	member := &domain.CircleMember{
		UserID:   actor.ID,
		CircleID: circleID,
		Status:   domain.CircleMemberStatusAwait,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *circleService) AcceptMember(ctx context.Context, actor *domain.User, circleID, userID string) error {
	return s.reviewApplication(ctx, actor, circleID, userID, domain.CircleMemberStatusMember)
}

func (s *circleService) RejectMember(ctx context.Context, actor *domain.User, circleID, userID string) error {
	return s.reviewApplication(ctx, actor, circleID, userID, domain.CircleMemberStatusReject)
}

func (s *circleService) reviewApplication(ctx context.Context, actor *domain.User, circleID, userID string, next domain.CircleMemberStatus) error {
	circle, err := s.loadCircle(ctx, circleID)
	if err != nil {
		return err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(circle.IsDeleted, apperr.DomainCircle)).
		ConsistOf(s.leaderCheck(actor, circle))
	if err := bucket.Validate(); err != nil {
		return err
	}

	member, err := s.memberRepo.GetByUserAndCircle(ctx, userID, circleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgCircleApplyInvalid)
		}
		return err
	}
	if member.Status != domain.CircleMemberStatusAwait {
		return apperr.New(apperr.CodeInvalidParameter, apperr.MsgCircleApplyInvalid)
	}

	return s.memberRepo.UpdateStatus(ctx, member.ID, next)
}

// Leave moves the actor's membership to LEAVE. The leader cannot leave their
// own circle; leadership must be handed over first.
func (s *circleService) Leave(ctx context.Context, actor *domain.User, circleID string) error {
	circle, err := s.loadCircle(ctx, circleID)
	if err != nil {
		return err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(circle.IsDeleted, apperr.DomainCircle))
	if err := bucket.Validate(); err != nil {
		return err
	}

	if circle.LeaderID != nil && *circle.LeaderID == actor.ID {
		return apperr.New(apperr.CodeNotAllowed, "the leader cannot leave their own circle")
	}

	member, err := s.memberRepo.GetByUserAndCircle(ctx, actor.ID, circleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.CodeNotMember, apperr.MsgNotCircleMember)
		}
		return err
	}
	if err := validation.CircleMemberStatus(member.Status, []domain.CircleMemberStatus{domain.CircleMemberStatusMember}).Validate(); err != nil {
		return err
	}

	return s.memberRepo.UpdateStatus(ctx, member.ID, domain.CircleMemberStatusLeave)
}

func (s *circleService) DeleteCircle(ctx context.Context, actor *domain.User, circleID string) error {
	circle, err := s.loadCircle(ctx, circleID)
	if err != nil {
		return err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(circle.IsDeleted, apperr.DomainCircle)).
		ConsistOf(s.leaderCheck(actor, circle))
	if err := bucket.Validate(); err != nil {
		return err
	}

	if err := s.circleRepo.SetDeleted(ctx, circleID, true); err != nil {
		return err
	}
	logger.Info("circle deleted", "circle_id", circleID, "actor", actor.ID)
	return nil
}

// ListMembers returns the circle's membership records with the given status.
// Only the circle's leader or an admin-tier actor may read them.
func (s *circleService) ListMembers(ctx context.Context, actor *domain.User, circleID string, status domain.CircleMemberStatus) ([]domain.CircleMember, error) {
	circle, err := s.loadCircle(ctx, circleID)
	if err != nil {
		return nil, err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(circle.IsDeleted, apperr.DomainCircle)).
		ConsistOf(s.leaderCheck(actor, circle))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByCircle(ctx, circleID)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.CircleMember, 0, len(members))
	for _, m := range members {
		if m.Status == status {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// leaderCheck passes for admin-tier actors and for the circle's own leader.
func (s *circleService) leaderCheck(actor *domain.User, circle *domain.Circle) validation.Validator {
	return validation.ValidatorFunc(func() error {
		if actor.IsAdminTier() {
			return nil
		}
		if !actor.Roles.Has(domain.RoleLeaderCircle) {
			return apperr.New(apperr.CodeNotAllowed, "no access right to manage this circle")
		}
		if circle.LeaderID == nil {
			return apperr.New(apperr.CodeInternalServer, apperr.MsgCircleWithoutLeader)
		}
		return validation.UserEqual(*circle.LeaderID, actor.ID).Validate()
	})
}

func (s *circleService) loadCircle(ctx context.Context, circleID string) (*domain.Circle, error) {
	circle, err := s.circleRepo.GetByID(ctx, circleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgCircleNotFound)
		}
		return nil, err
	}
	return circle, nil
}
