package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/form"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/repository"
	"campus-community-backend/internal/validation"
)

type formService struct {
	formRepo   repository.FormRepository
	circleRepo repository.CircleRepository
	userRepo   repository.UserRepository
	feeRepo    repository.CouncilFeeRepository
	exporter   *ReplyExporter
}

func NewFormService(
	formRepo repository.FormRepository,
	circleRepo repository.CircleRepository,
	userRepo repository.UserRepository,
	feeRepo repository.CouncilFeeRepository,
	exporter *ReplyExporter,
) FormService {
	return &formService{
		formRepo:   formRepo,
		circleRepo: circleRepo,
		userRepo:   userRepo,
		feeRepo:    feeRepo,
		exporter:   exporter,
	}
}

func (s *formService) GetForm(ctx context.Context, actor *domain.User, formID string) (*domain.Form, error) {
	f, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(f.IsDeleted, apperr.DomainForm))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// ReplyToForm submits a reply. The precondition chain runs account checks,
// form liveness, the eligibility gates, the duplicate guard, and answer-shape
// validation; only then does the reply persist. The insert itself is covered
// by a uniqueness constraint, so a concurrent duplicate still cannot slip in.
func (s *formService) ReplyToForm(ctx context.Context, actor *domain.User, formID string, answers []domain.Answer) (*domain.Reply, error) {
	f, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	bucket := validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.TargetIsDeleted(f.IsDeleted, apperr.DomainForm))
	if err := bucket.Validate(); err != nil {
		return nil, err
	}

	var fee *domain.CouncilFee
	if f.RequireCouncilFee {
		fee, err = s.feeRepo.GetByUserID(ctx, actor.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	if err := form.CheckReplyEligibility(f, actor, fee); err != nil {
		return nil, err
	}

	exists, err := s.formRepo.ReplyExists(ctx, formID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.CodeRowAlreadyExists, apperr.MsgAlreadyReplied)
	}

	normalized, err := form.ValidateAnswers(f, answers)
	if err != nil {
		return nil, err
	}

	reply := &domain.Reply{
		FormID:   f.ID,
		WriterID: actor.ID,
		Answers:  normalized,
	}
	if err := s.formRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	logger.Info("form reply created", "form_id", f.ID, "writer", actor.ID)
	return reply, nil
}

func (s *formService) CloseForm(ctx context.Context, actor *domain.User, formID string) error {
	f, err := s.loadForm(ctx, formID)
	if err != nil {
		return err
	}

	if err := s.resultsAccessBucket(ctx, actor, f).Validate(); err != nil {
		return err
	}
	if f.IsClosed {
		return nil
	}
	return s.formRepo.SetClosed(ctx, formID, true)
}

func (s *formService) ListReplies(ctx context.Context, actor *domain.User, formID string) ([]domain.Reply, error) {
	f, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := s.resultsAccessBucket(ctx, actor, f).Validate(); err != nil {
		return nil, err
	}
	return s.formRepo.ListReplies(ctx, formID)
}

func (s *formService) SummarizeReplies(ctx context.Context, actor *domain.User, formID string) ([]form.QuestionSummary, error) {
	f, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	if err := s.resultsAccessBucket(ctx, actor, f).Validate(); err != nil {
		return nil, err
	}
	replies, err := s.formRepo.ListReplies(ctx, formID)
	if err != nil {
		return nil, err
	}
	return form.Summarize(f, replies), nil
}

// ExportReplies renders all replies of a form to a spreadsheet.
func (s *formService) ExportReplies(ctx context.Context, actor *domain.User, formID string) ([]byte, string, error) {
	f, err := s.loadForm(ctx, formID)
	if err != nil {
		return nil, "", err
	}
	if err := s.resultsAccessBucket(ctx, actor, f).Validate(); err != nil {
		return nil, "", err
	}
	replies, err := s.formRepo.ListReplies(ctx, formID)
	if err != nil {
		return nil, "", err
	}

	writers := make(map[string]*domain.User, len(replies))
	for _, reply := range replies {
		if _, ok := writers[reply.WriterID]; ok {
			continue
		}
		writer, err := s.userRepo.GetByID(ctx, reply.WriterID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, "", err
		}
		writers[reply.WriterID] = writer
	}

	data, err := s.exporter.Export(f, replies, writers)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("form-%s-replies.xlsx", f.ID), nil
}

// resultsAccessBucket gates the result-reading operations: account state,
// role, then ownership. Admin-tier actors always pass; a circle form also
// admits the circle's leader.
func (s *formService) resultsAccessBucket(ctx context.Context, actor *domain.User, f *domain.Form) validation.Bucket {
	return validation.NewBucket().
		ConsistOf(validation.UserState(actor.State)).
		ConsistOf(validation.UserRoleIsNone(actor.Roles)).
		ConsistOf(validation.ValidatorFunc(func() error {
			if actor.IsAdminTier() {
				return nil
			}
			if f.CircleID != nil && actor.Roles.Has(domain.RoleLeaderCircle) {
				circle, err := s.circleRepo.GetByID(ctx, *f.CircleID)
				if err != nil {
					if errors.Is(err, sql.ErrNoRows) {
						return apperr.New(apperr.CodeInternalServer, "form references a missing circle")
					}
					return err
				}
				if circle.LeaderID == nil {
					return apperr.New(apperr.CodeInternalServer, apperr.MsgCircleWithoutLeader)
				}
				if *circle.LeaderID == actor.ID {
					return nil
				}
			}
			return apperr.New(apperr.CodeNotAllowed, apperr.MsgNotAllowedToAccessReply)
		}))
}

func (s *formService) loadForm(ctx context.Context, formID string) (*domain.Form, error) {
	f, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgFormNotFound)
		}
		return nil, err
	}
	return f, nil
}
