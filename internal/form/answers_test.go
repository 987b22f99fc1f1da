package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
)

func questionForm() *domain.Form {
	return &domain.Form{
		ID: "f1",
		Questions: []domain.Question{
			{
				ID:     "q1",
				Number: 1,
				Text:   "Pick one",
				Type:   domain.QuestionTypeObjective,
				Options: []domain.Option{
					{Number: 1, Text: "Yes"},
					{Number: 2, Text: "No"},
				},
			},
			{
				ID:         "q2",
				Number:     2,
				Text:       "Pick any",
				Type:       domain.QuestionTypeObjective,
				IsMultiple: true,
				Options: []domain.Option{
					{Number: 1, Text: "A"},
					{Number: 2, Text: "B"},
					{Number: 3, Text: "C"},
				},
			},
			{
				ID:     "q3",
				Number: 3,
				Text:   "Explain",
				Type:   domain.QuestionTypeSubjective,
			},
		},
	}
}

func TestValidateAnswers(t *testing.T) {
	f := questionForm()

	validated, err := ValidateAnswers(f, []domain.Answer{
		{QuestionID: "q1", SelectedOptions: []int{2}},
		{QuestionID: "q2", SelectedOptions: []int{1, 3}},
		{QuestionID: "q3", Text: "because"},
	})
	require.NoError(t, err)
	require.Len(t, validated, 3)
	assert.Equal(t, []int{2}, validated[0].SelectedOptions)
	assert.Empty(t, validated[0].Text)
	assert.Equal(t, "because", validated[2].Text)
}

func TestValidateAnswersUnknownQuestion(t *testing.T) {
	_, err := ValidateAnswers(questionForm(), []domain.Answer{
		{QuestionID: "missing", Text: "x"},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeRowDoesNotExist, apperr.CodeOf(err))
}

func TestValidateAnswersObjectiveRejectsText(t *testing.T) {
	_, err := ValidateAnswers(questionForm(), []domain.Answer{
		{QuestionID: "q1", Text: "not allowed", SelectedOptions: []int{1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidParameter, apperr.CodeOf(err))
}

func TestValidateAnswersSingleChoiceRejectsMultiple(t *testing.T) {
	_, err := ValidateAnswers(questionForm(), []domain.Answer{
		{QuestionID: "q1", SelectedOptions: []int{1, 2}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidParameter, apperr.CodeOf(err))
}

func TestValidateAnswersUndefinedOption(t *testing.T) {
	_, err := ValidateAnswers(questionForm(), []domain.Answer{
		{QuestionID: "q2", SelectedOptions: []int{4}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidParameter, apperr.CodeOf(err))
}

func TestValidateAnswersSubjectiveRejectsOptions(t *testing.T) {
	_, err := ValidateAnswers(questionForm(), []domain.Answer{
		{QuestionID: "q3", SelectedOptions: []int{1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidParameter, apperr.CodeOf(err))
}
