package form

import "campus-community-backend/internal/domain"

// QuestionSummary aggregates all replies to one question: free-text answers
// for subjective questions, per-option selection counts for objective ones.
type QuestionSummary struct {
	QuestionID   string              `json:"question_id"`
	Number       int                 `json:"number"`
	Text         string              `json:"text"`
	Type         domain.QuestionType `json:"type"`
	TextAnswers  []string            `json:"text_answers,omitempty"`
	OptionCounts []OptionCount       `json:"option_counts,omitempty"`
}

type OptionCount struct {
	Number   int    `json:"number"`
	Text     string `json:"text"`
	Selected int    `json:"selected"`
}

// Summarize tallies replies per question. A pure aggregation over the read
// path; it plays no part in eligibility decisions.
func Summarize(f *domain.Form, replies []domain.Reply) []QuestionSummary {
	byQuestion := make(map[string][]domain.Answer, len(f.Questions))
	for _, reply := range replies {
		for _, answer := range reply.Answers {
			byQuestion[answer.QuestionID] = append(byQuestion[answer.QuestionID], answer)
		}
	}

	summaries := make([]QuestionSummary, 0, len(f.Questions))
	for _, question := range f.Questions {
		summary := QuestionSummary{
			QuestionID: question.ID,
			Number:     question.Number,
			Text:       question.Text,
			Type:       question.Type,
		}
		answers := byQuestion[question.ID]

		if question.Type == domain.QuestionTypeSubjective {
			for _, answer := range answers {
				summary.TextAnswers = append(summary.TextAnswers, answer.Text)
			}
		} else {
			for _, option := range question.Options {
				count := 0
				for _, answer := range answers {
					for _, selected := range answer.SelectedOptions {
						if selected == option.Number {
							count++
							break
						}
					}
				}
				summary.OptionCounts = append(summary.OptionCounts, OptionCount{
					Number:   option.Number,
					Text:     option.Text,
					Selected: count,
				})
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
