package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"campus-community-backend/internal/domain"
)

// ReplyExporter renders form replies to an xlsx workbook: one row per reply,
// one column per question, in question-number order.
type ReplyExporter struct{}

func NewReplyExporter() *ReplyExporter {
	return &ReplyExporter{}
}

func (e *ReplyExporter) Export(f *domain.Form, replies []domain.Reply, writers map[string]*domain.User) ([]byte, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Replies"
	wb.SetSheetName(wb.GetSheetName(0), sheet)

	headers := []string{"Name", "Student ID", "Submitted At"}
	for _, q := range f.Questions {
		headers = append(headers, fmt.Sprintf("Q%d. %s", q.Number, q.Text))
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, reply := range replies {
		values := []string{"(unknown)", "", reply.CreatedAt}
		if writer := writers[reply.WriterID]; writer != nil {
			values[0] = writer.Name
			values[1] = writer.StudentID
		}
		for _, q := range f.Questions {
			values = append(values, answerText(&q, reply.Answers))
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// answerText renders one answer for the spreadsheet: the free text for
// subjective questions, the selected option texts for objective ones.
func answerText(q *domain.Question, answers []domain.Answer) string {
	for _, a := range answers {
		if a.QuestionID != q.ID {
			continue
		}
		if q.Type == domain.QuestionTypeSubjective {
			return a.Text
		}
		texts := make([]string, 0, len(a.SelectedOptions))
		for _, number := range a.SelectedOptions {
			for _, o := range q.Options {
				if o.Number == number {
					texts = append(texts, o.Text)
					break
				}
			}
		}
		return strings.Join(texts, ", ")
	}
	return ""
}
