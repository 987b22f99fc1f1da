package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type formRepository struct {
	db *sql.DB
}

func NewFormRepository(db *sql.DB) repository.FormRepository {
	return &formRepository{db: db}
}

const formColumns = `id, title, type, is_closed, is_deleted, allow_enrolled, allow_leave_of_absence, allow_graduated,
	enrolled_semesters, leave_semesters, require_council_fee, circle_id, created_at, updated_at`

// uniqueViolation is the postgres error code for unique-constraint failures.
const uniqueViolation = "23505"

func (r *formRepository) Create(ctx context.Context, f *domain.Form) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	f.ID = newID()
	f.CreatedAt = now()
	f.UpdatedAt = f.CreatedAt
	formQuery := `INSERT INTO tb_form (` + formColumns + `)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = tx.ExecContext(ctx, formQuery, f.ID, f.Title, f.Type, f.IsClosed, f.IsDeleted,
		f.AllowEnrolled, f.AllowLeaveOfAbsence, f.AllowGraduated,
		joinInts(f.EnrolledSemesters), joinInts(f.LeaveSemesters),
		f.RequireCouncilFee, f.CircleID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return err
	}

	questionQuery := `INSERT INTO tb_form_question (id, form_id, number, text, type, is_multiple)
	                  VALUES ($1, $2, $3, $4, $5, $6)`
	optionQuery := `INSERT INTO tb_form_option (id, question_id, number, text) VALUES ($1, $2, $3, $4)`
	for i := range f.Questions {
		q := &f.Questions[i]
		q.ID = newID()
		q.FormID = f.ID
		if _, err := tx.ExecContext(ctx, questionQuery, q.ID, q.FormID, q.Number, q.Text, q.Type, q.IsMultiple); err != nil {
			return err
		}
		for j := range q.Options {
			o := &q.Options[j]
			o.ID = newID()
			o.QuestionID = q.ID
			if _, err := tx.ExecContext(ctx, optionQuery, o.ID, o.QuestionID, o.Number, o.Text); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func (r *formRepository) GetByID(ctx context.Context, id string) (*domain.Form, error) {
	query := `SELECT ` + formColumns + ` FROM tb_form WHERE id = $1`
	f := &domain.Form{}
	var enrolled, leave string
	var circleID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Title, &f.Type, &f.IsClosed, &f.IsDeleted,
		&f.AllowEnrolled, &f.AllowLeaveOfAbsence, &f.AllowGraduated,
		&enrolled, &leave, &f.RequireCouncilFee, &circleID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.EnrolledSemesters = splitInts(enrolled)
	f.LeaveSemesters = splitInts(leave)
	if circleID.Valid {
		f.CircleID = &circleID.String
	}
	if err := r.loadQuestions(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *formRepository) loadQuestions(ctx context.Context, f *domain.Form) error {
	query := `SELECT id, form_id, number, text, type, is_multiple FROM tb_form_question
	          WHERE form_id = $1 ORDER BY number ASC`
	rows, err := r.db.QueryContext(ctx, query, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.FormID, &q.Number, &q.Text, &q.Type, &q.IsMultiple); err != nil {
			return err
		}
		f.Questions = append(f.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	optionQuery := `SELECT id, question_id, number, text FROM tb_form_option WHERE question_id = $1 ORDER BY number ASC`
	for i := range f.Questions {
		q := &f.Questions[i]
		optRows, err := r.db.QueryContext(ctx, optionQuery, q.ID)
		if err != nil {
			return err
		}
		for optRows.Next() {
			var o domain.Option
			if err := optRows.Scan(&o.ID, &o.QuestionID, &o.Number, &o.Text); err != nil {
				optRows.Close()
				return err
			}
			q.Options = append(q.Options, o)
		}
		if err := optRows.Err(); err != nil {
			optRows.Close()
			return err
		}
		optRows.Close()
	}
	return nil
}

func (r *formRepository) SetClosed(ctx context.Context, id string, closed bool) error {
	query := `UPDATE tb_form SET is_closed=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, closed, now(), id)
	return err
}

// CreateReply inserts the reply and its answers in one transaction. The
// (form_id, writer_id) unique index backs the one-reply-per-user rule, so a
// concurrent duplicate surfaces here as ROW_ALREADY_EXISTS.
func (r *formRepository) CreateReply(ctx context.Context, reply *domain.Reply) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	reply.ID = newID()
	reply.CreatedAt = now()
	replyQuery := `INSERT INTO tb_form_reply (id, form_id, writer_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, replyQuery, reply.ID, reply.FormID, reply.WriterID, reply.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return apperr.New(apperr.CodeRowAlreadyExists, apperr.MsgAlreadyReplied)
		}
		return err
	}

	answerQuery := `INSERT INTO tb_form_reply_answer (id, reply_id, question_id, text, selected_options)
	                VALUES ($1, $2, $3, $4, $5)`
	for _, a := range reply.Answers {
		if _, err := tx.ExecContext(ctx, answerQuery, newID(), reply.ID, a.QuestionID, a.Text, joinInts(a.SelectedOptions)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *formRepository) ReplyExists(ctx context.Context, formID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tb_form_reply WHERE form_id = $1 AND writer_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, formID, userID).Scan(&exists)
	return exists, err
}

func (r *formRepository) ListReplies(ctx context.Context, formID string) ([]domain.Reply, error) {
	query := `SELECT id, form_id, writer_id, created_at FROM tb_form_reply WHERE form_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []domain.Reply
	for rows.Next() {
		var rep domain.Reply
		if err := rows.Scan(&rep.ID, &rep.FormID, &rep.WriterID, &rep.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	answerQuery := `SELECT question_id, text, selected_options FROM tb_form_reply_answer WHERE reply_id = $1`
	for i := range replies {
		ansRows, err := r.db.QueryContext(ctx, answerQuery, replies[i].ID)
		if err != nil {
			return nil, err
		}
		for ansRows.Next() {
			var a domain.Answer
			var selected string
			if err := ansRows.Scan(&a.QuestionID, &a.Text, &selected); err != nil {
				ansRows.Close()
				return nil, err
			}
			a.SelectedOptions = splitInts(selected)
			replies[i].Answers = append(replies[i].Answers, a)
		}
		if err := ansRows.Err(); err != nil {
			ansRows.Close()
			return nil, err
		}
		ansRows.Close()
	}
	return replies, nil
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

func splitInts(joined string) []int {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}
