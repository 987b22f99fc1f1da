package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/domain"
)

func TestSummarize(t *testing.T) {
	f := questionForm()

	replies := []domain.Reply{
		{
			ID: "r1", WriterID: "u1",
			Answers: []domain.Answer{
				{QuestionID: "q1", SelectedOptions: []int{1}},
				{QuestionID: "q2", SelectedOptions: []int{1, 2}},
				{QuestionID: "q3", Text: "first"},
			},
		},
		{
			ID: "r2", WriterID: "u2",
			Answers: []domain.Answer{
				{QuestionID: "q1", SelectedOptions: []int{1}},
				{QuestionID: "q2", SelectedOptions: []int{2}},
				{QuestionID: "q3", Text: "second"},
			},
		},
	}

	summaries := Summarize(f, replies)
	require.Len(t, summaries, 3)

	q1 := summaries[0]
	assert.Equal(t, "q1", q1.QuestionID)
	require.Len(t, q1.OptionCounts, 2)
	assert.Equal(t, 2, q1.OptionCounts[0].Selected)
	assert.Equal(t, 0, q1.OptionCounts[1].Selected)
	assert.Empty(t, q1.TextAnswers)

	q2 := summaries[1]
	require.Len(t, q2.OptionCounts, 3)
	assert.Equal(t, 1, q2.OptionCounts[0].Selected)
	assert.Equal(t, 2, q2.OptionCounts[1].Selected)
	assert.Equal(t, 0, q2.OptionCounts[2].Selected)

	q3 := summaries[2]
	assert.Equal(t, []string{"first", "second"}, q3.TextAnswers)
	assert.Empty(t, q3.OptionCounts)
}

func TestSummarizeNoReplies(t *testing.T) {
	summaries := Summarize(questionForm(), nil)
	require.Len(t, summaries, 3)

	for _, count := range summaries[0].OptionCounts {
		assert.Zero(t, count.Selected)
	}
	assert.Empty(t, summaries[2].TextAnswers)
}
