package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/repository"
	"campus-community-backend/internal/security"
	"campus-community-backend/internal/validation"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	check    *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		check:    validator.New(),
	}
}

// SignUp registers a new account. The account starts in AWAIT state with the
// NONE role and stays unusable until an admission review moves it to ACTIVE.
func (s *authService) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	bucket := validation.NewBucket().
		ConsistOf(validation.Constraint(&req, s.check))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.New(apperr.CodeRowAlreadyExists, "an account with this email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:          req.Email,
		PasswordHash:   string(hash),
		Name:           req.Name,
		Nickname:       req.Nickname,
		StudentID:      req.StudentID,
		AdmissionYear:  req.AdmissionYear,
		Roles:          domain.NewRoleSet(domain.RoleNone),
		State:          domain.UserStateAwait,
		AcademicStatus: domain.AcademicStatusEnrolled,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("SignUp", err, "email", req.Email)
		return nil, err
	}

	logger.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// SignIn authenticates by email and password, then runs the account-state
// checks so a blocked or still-awaiting account gets its specific rejection
// instead of a generic one.
func (s *authService) SignIn(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", apperr.New(apperr.CodeInvalidSignIn, "invalid email or password")
		}
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", apperr.New(apperr.CodeInvalidSignIn, "invalid email or password")
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(user.State))
	if err := bucket.Validate(); err != nil {
		return "", "", err
	}

	return s.generateTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn)
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", apperr.New(apperr.CodeNeedSignIn, apperr.MsgNeedSignIn)
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(user.State))
	if err := bucket.Validate(); err != nil {
		return "", "", err
	}

	return s.generateTokens(user)
}

func (s *authService) generateTokens(user *domain.User) (string, string, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles.Slice() {
		roles = append(roles, string(r))
	}
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, roles)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
