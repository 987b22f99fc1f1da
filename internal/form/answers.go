package form

import (
	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

// ValidateAnswers checks a submitted answer set against the form's question
// definitions and returns the normalized answers to persist. Answers are
// validated as a unit; any violation rejects the whole submission.
//
// An objective question must carry no free text, must not select more than one
// option unless it allows multiple selection, and every selected option must
// exist among the question's defined options. A subjective question must not
// carry a selected-option list.
func ValidateAnswers(f *domain.Form, answers []domain.Answer) ([]domain.Answer, error) {
	validated := make([]domain.Answer, 0, len(answers))

	for _, answer := range answers {
		question := f.QuestionByID(answer.QuestionID)
		if question == nil {
			return nil, apperr.New(apperr.CodeRowDoesNotExist, apperr.MsgQuestionNotFound)
		}

		switch question.Type {
		case domain.QuestionTypeObjective:
			if answer.Text != "" {
				return nil, apperr.New(apperr.CodeInvalidParameter, apperr.MsgInvalidReply)
			}
			if !question.IsMultiple && len(answer.SelectedOptions) > 1 {
				return nil, apperr.New(apperr.CodeInvalidParameter, apperr.MsgInvalidReply)
			}
			for _, number := range answer.SelectedOptions {
				if !question.HasOption(number) {
					return nil, apperr.New(apperr.CodeInvalidParameter, apperr.MsgInvalidReply)
				}
			}
			validated = append(validated, domain.Answer{
				QuestionID:      question.ID,
				SelectedOptions: answer.SelectedOptions,
			})

		case domain.QuestionTypeSubjective:
			if answer.SelectedOptions != nil {
				return nil, apperr.New(apperr.CodeInvalidParameter, apperr.MsgInvalidReply)
			}
			validated = append(validated, domain.Answer{
				QuestionID: question.ID,
				Text:       answer.Text,
			})

		default:
			return nil, apperr.Newf(apperr.CodeInternalServer, "unknown question type %q", question.Type)
		}
	}

	return validated, nil
}
