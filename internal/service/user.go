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

type userService struct {
	userRepo   repository.UserRepository
	circleRepo repository.CircleRepository
	email      EmailService
	check      *validator.Validate
}

func NewUserService(userRepo repository.UserRepository, circleRepo repository.CircleRepository, email EmailService) UserService {
	return &userService{
		userRepo:   userRepo,
		circleRepo: circleRepo,
		email:      email,
		check:      validator.New(),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListAwaitingUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := s.admissionReviewBucket(actor).Validate(); err != nil {
		return nil, err
	}
	return s.userRepo.ListByState(ctx, domain.UserStateAwait)
}

// ApproveAdmission moves an awaiting account to ACTIVE and replaces its NONE
// role with COMMON.
func (s *userService) ApproveAdmission(ctx context.Context, actor *domain.User, userID string) error {
	return s.reviewAdmission(ctx, actor, userID, true)
}

func (s *userService) RejectAdmission(ctx context.Context, actor *domain.User, userID string) error {
	return s.reviewAdmission(ctx, actor, userID, false)
}

func (s *userService) reviewAdmission(ctx context.Context, actor *domain.User, userID string, accept bool) error {
	if err := s.admissionReviewBucket(actor).Validate(); err != nil {
		return err
	}

	target, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if target.State != domain.UserStateAwait {
		return apperr.New(apperr.CodeInvalidParameter, "this account is not awaiting admission")
	}

	if accept {
		if err := s.userRepo.UpdateState(ctx, target.ID, domain.UserStateActive); err != nil {
			return err
		}
		if err := s.userRepo.UpdateRoles(ctx, target.ID, domain.NewRoleSet(domain.RoleCommon)); err != nil {
			return err
		}
	} else {
		if err := s.userRepo.UpdateState(ctx, target.ID, domain.UserStateReject); err != nil {
			return err
		}
	}

	if err := s.email.SendAdmissionResult(ctx, target.Email, target.Name, accept); err != nil {
		// Notification failure must not undo the review itself.
		logger.Warn("admission result email failed", "user_id", target.ID, "error", err)
	}
	logger.Info("admission reviewed", "user_id", target.ID, "accepted", accept, "reviewer", actor.ID)
	return nil
}

// GrantRole assigns a role to another user. Only the president tier may grant,
// and the PRESIDENT role itself may only come from an admin. Granting
// LEADER_CIRCLE does not touch circle records; circle leadership is assigned
// through the circle itself.
func (s *userService) GrantRole(ctx context.Context, actor *domain.User, granteeID string, role domain.Role) error {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.ValidatorFunc(func() error {
			if role == domain.RolePresident || role == domain.RoleAdmin {
				if !actor.Roles.Has(domain.RoleAdmin) {
					return apperr.New(apperr.CodeNotAllowed, "only an admin may grant this role")
				}
				return nil
			}
			if !actor.IsAdminTier() {
				return apperr.New(apperr.CodeNotAllowed, "no access right to grant roles")
			}
			return nil
		}))
	if err := bucket.Validate(); err != nil {
		return err
	}

	target, err := s.GetProfile(ctx, granteeID)
	if err != nil {
		return err
	}
	if err := validation.UserState(target.State).Validate(); err != nil {
		return err
	}

	roles := domain.NewRoleSet(target.Roles.Slice()...)
	delete(roles, domain.RoleNone)
	roles[role] = struct{}{}
	if err := s.userRepo.UpdateRoles(ctx, target.ID, roles); err != nil {
		return err
	}

	if err := s.email.SendRoleChangeNotification(ctx, target.Email, target.Name, string(role)); err != nil {
		logger.Warn("role change email failed", "user_id", target.ID, "error", err)
	}
	logger.Info("role granted", "user_id", target.ID, "role", role, "grantor", actor.ID)
	return nil
}

// DropUser blocks an account. Admin only.
func (s *userService) DropUser(ctx context.Context, actor *domain.User, userID string) error {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.ValidatorFunc(func() error {
			if !actor.Roles.HasAny(domain.RoleAdmin, domain.RolePresident) {
				return apperr.New(apperr.CodeNotAllowed, "no access right to drop users")
			}
			return nil
		}))
	if err := bucket.Validate(); err != nil {
		return err
	}

	target, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if target.Roles.HasAny(domain.RoleAdmin, domain.RolePresident) {
		return apperr.New(apperr.CodeNotAllowed, "this account cannot be dropped")
	}

	if err := s.userRepo.UpdateState(ctx, target.ID, domain.UserStateDrop); err != nil {
		return err
	}
	logger.Info("user dropped", "user_id", target.ID, "actor", actor.ID)
	return nil
}

// UpdateAcademicRecord lets a user update their own academic standing: status,
// completed-semester counter, and graduation year. These fields feed the form
// reply eligibility gates, so the account must be fully provisioned.
func (s *userService) UpdateAcademicRecord(ctx context.Context, actor *domain.User, req UpdateAcademicRecordRequest) (*domain.User, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.Constraint(&req, s.check))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	status := domain.AcademicStatus(req.AcademicStatus)
	if status == domain.AcademicStatusGraduated && req.GraduationYear == nil {
		return nil, apperr.New(apperr.CodeInvalidParameter, "graduation year is required for graduated status")
	}

	target, err := s.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	target.AcademicStatus = status
	target.CurrentCompletedSemester = req.CurrentCompletedSemester
	target.GraduationYear = req.GraduationYear
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	logger.Info("academic record updated", "user_id", target.ID, "status", status)
	return target, nil
}

func (s *userService) admissionReviewBucket(actor *domain.User) validation.Bucket {
	return validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.ValidatorFunc(func() error {
			if !actor.IsAdminTier() {
				return apperr.New(apperr.CodeNotAllowed, "no access right to admission review")
			}
			return nil
		}))
}
