// Package form implements the reply-admissibility rules for structured forms:
// who may answer a form, and what an answer set must look like. All functions
// are pure reads over loaded state; persistence and duplicate protection live
// in the service layer.
package form

import (
	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

// CheckReplyEligibility decides whether writer may submit a reply to f.
// Layered gates, evaluated in order:
//  1. the form must be open,
//  2. the writer's academic status must be allowed,
//  3. an enrolled writer must be in the enrolled semester whitelist and, when
//     the form requires it, inside a council-fee payment window,
//  4. a writer on leave must be in the leave-of-absence semester whitelist.
//
// fee may be nil; it is only consulted when the form requires council-fee
// payment, and a missing record is then a rejection.
func CheckReplyEligibility(f *domain.Form, writer *domain.User, fee *domain.CouncilFee) error {
	if f.IsClosed {
		return apperr.New(apperr.CodeNotAllowed, apperr.MsgFormClosed)
	}

	allowed := f.AllowedAcademicStatuses()
	if _, ok := allowed[writer.AcademicStatus]; !ok {
		return apperr.New(apperr.CodeNotAllowed, apperr.MsgNotAllowedToReply)
	}

	if f.AllowEnrolled && writer.AcademicStatus == domain.AcademicStatusEnrolled {
		if !containsSemester(f.EnrolledSemesters, writer.CurrentCompletedSemester) {
			return apperr.New(apperr.CodeNotAllowed, apperr.MsgNotAllowedToReply)
		}
		if f.RequireCouncilFee {
			if fee == nil {
				return apperr.New(apperr.CodeNotAllowed, apperr.MsgNotAllowedToReply)
			}
			if !fee.AppliesTo(fee.EffectiveSemester(writer)) {
				return apperr.New(apperr.CodeNotAllowed, apperr.MsgNotAllowedToReply)
			}
		}
	}

	if f.AllowLeaveOfAbsence && writer.AcademicStatus == domain.AcademicStatusLeaveOfAbsence {
		if !containsSemester(f.LeaveSemesters, writer.CurrentCompletedSemester) {
			return apperr.New(apperr.CodeNotAllowed, apperr.MsgNotAllowedToReply)
		}
	}

	return nil
}

func containsSemester(semesters []int, semester int) bool {
	for _, s := range semesters {
		if s == semester {
			return true
		}
	}
	return false
}
