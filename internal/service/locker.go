package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/repository"
	"campus-community-backend/internal/validation"
)

// lockerExtensionPeriod is how far a single extension pushes the expiry.
const lockerExtensionPeriod = 30 * 24 * time.Hour

type lockerService struct {
	lockerRepo repository.LockerRepository
}

func NewLockerService(lockerRepo repository.LockerRepository) LockerService {
	return &lockerService{lockerRepo: lockerRepo}
}

func (s *lockerService) GetLocker(ctx context.Context, lockerID string) (*domain.Locker, error) {
	return s.loadLocker(ctx, lockerID)
}

// RegisterLocker assigns a free locker to the actor with an initial expiry one
// extension period from now.
func (s *lockerService) RegisterLocker(ctx context.Context, actor *domain.User, lockerID string) (*domain.Locker, error) {
	locker, err := s.loadLocker(ctx, lockerID)
	if err != nil {
		return nil, err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.ValidatorFunc(func() error {
			if !locker.IsActive {
				return apperr.New(apperr.CodeNotAllowed, "this locker is not in service")
			}
			if locker.UserID != nil {
				return apperr.New(apperr.CodeRowAlreadyExists, "this locker is already in use")
			}
			return nil
		}))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	expireAt := time.Now().UTC().Add(lockerExtensionPeriod)
	locker.UserID = &actor.ID
	locker.ExpireAt = &expireAt
	if err := s.lockerRepo.Update(ctx, locker); err != nil {
		return nil, err
	}
	logger.Info("locker registered", "locker_id", locker.ID, "user_id", actor.ID)
	return locker, nil
}

func (s *lockerService) ReturnLocker(ctx context.Context, actor *domain.User, lockerID string) (*domain.Locker, error) {
	locker, err := s.loadLocker(ctx, lockerID)
	if err != nil {
		return nil, err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.ValidatorFunc(func() error {
			if actor.IsAdminTier() {
				return nil
			}
			if locker.UserID == nil || *locker.UserID != actor.ID {
				return apperr.New(apperr.CodeNotAllowed, "this locker belongs to someone else")
			}
			return nil
		}))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	locker.UserID = nil
	locker.ExpireAt = nil
	if err := s.lockerRepo.Update(ctx, locker); err != nil {
		return nil, err
	}
	logger.Info("locker returned", "locker_id", locker.ID, "actor", actor.ID)
	return locker, nil
}

// ExtendLocker pushes the expiry by one extension period. An extension that
// would not move the expiry at all is rejected.
func (s *lockerService) ExtendLocker(ctx context.Context, actor *domain.User, lockerID string) (*domain.Locker, error) {
	locker, err := s.loadLocker(ctx, lockerID)
	if err != nil {
		return nil, err
	}
	if locker.UserID == nil || locker.ExpireAt == nil {
		return nil, apperr.New(apperr.CodeInvalidParameter, "this locker is not in use")
	}

	next := locker.ExpireAt.Add(lockerExtensionPeriod)
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.UserEqual(*locker.UserID, actor.ID)).
		ConsistOf(validation.ExtendLockerExpiredAt(*locker.ExpireAt, next))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	locker.ExpireAt = &next
	if err := s.lockerRepo.Update(ctx, locker); err != nil {
		return nil, err
	}
	logger.Info("locker extended", "locker_id", locker.ID, "expire_at", next)
	return locker, nil
}

func (s *lockerService) loadLocker(ctx context.Context, lockerID string) (*domain.Locker, error) {
	locker, err := s.lockerRepo.GetByID(ctx, lockerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgLockerNotFound)
		}
		return nil, err
	}
	return locker, nil
}
