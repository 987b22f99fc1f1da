package domain

type FormType string

const (
	FormTypePost   FormType = "POST_FORM"
	FormTypeCircle FormType = "CIRCLE_RECRUIT_FORM"
)

type QuestionType string

const (
	QuestionTypeObjective  QuestionType = "OBJECTIVE"
	QuestionTypeSubjective QuestionType = "SUBJECTIVE"
)

type Form struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Type                 FormType   `json:"type"`
	IsClosed             bool       `json:"is_closed"`
	IsDeleted            bool       `json:"is_deleted"`
	AllowEnrolled        bool       `json:"allow_enrolled"`
	AllowLeaveOfAbsence  bool       `json:"allow_leave_of_absence"`
	AllowGraduated       bool       `json:"allow_graduated"`
	EnrolledSemesters    []int      `json:"enrolled_semesters"`
	LeaveSemesters       []int      `json:"leave_semesters"`
	RequireCouncilFee    bool       `json:"require_council_fee"`
	CircleID             *string    `json:"circle_id,omitempty"`
	Questions            []Question `json:"questions"`
	CreatedAt            string     `json:"created_at"`
	UpdatedAt            string     `json:"updated_at"`
}

// AllowedAcademicStatuses expands the three allow flags into the set of
// statuses permitted to reply.
func (f *Form) AllowedAcademicStatuses() map[AcademicStatus]struct{} {
	allowed := make(map[AcademicStatus]struct{}, 3)
	if f.AllowEnrolled {
		allowed[AcademicStatusEnrolled] = struct{}{}
	}
	if f.AllowLeaveOfAbsence {
		allowed[AcademicStatusLeaveOfAbsence] = struct{}{}
	}
	if f.AllowGraduated {
		allowed[AcademicStatusGraduated] = struct{}{}
	}
	return allowed
}

func (f *Form) QuestionByID(id string) *Question {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i]
		}
	}
	return nil
}

type Question struct {
	ID         string       `json:"id"`
	FormID     string       `json:"form_id"`
	Number     int          `json:"number"`
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	IsMultiple bool         `json:"is_multiple"`
	Options    []Option     `json:"options,omitempty"`
}

// HasOption reports whether number is among the question's defined options.
func (q *Question) HasOption(number int) bool {
	for _, o := range q.Options {
		if o.Number == number {
			return true
		}
	}
	return false
}

type Option struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Number     int    `json:"number"`
	Text       string `json:"text"`
}

// Reply is an immutable aggregate: one per (form, writer), created once and
// never updated.
type Reply struct {
	ID        string   `json:"id"`
	FormID    string   `json:"form_id"`
	WriterID  string   `json:"writer_id"`
	Answers   []Answer `json:"answers"`
	CreatedAt string   `json:"created_at"`
}

// Answer carries either free text (subjective) or selected option numbers
// (objective), never both.
type Answer struct {
	QuestionID      string `json:"question_id"`
	Text            string `json:"text,omitempty"`
	SelectedOptions []int  `json:"selected_options,omitempty"`
}
