package postgres

import (
	"context"
	"database/sql"
	"strings"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, nickname, student_id, admission_year, roles, state, academic_status, current_completed_semester, graduation_year, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO tb_user (` + userColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	u.ID = newID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Nickname, u.StudentID, u.AdmissionYear,
		joinRoles(u.Roles), u.State, u.AcademicStatus, u.CurrentCompletedSemester,
		u.GraduationYear, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM tb_user WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM tb_user WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE tb_user SET email=$1, name=$2, nickname=$3, student_id=$4, admission_year=$5,
	          academic_status=$6, current_completed_semester=$7, graduation_year=$8, updated_at=$9 WHERE id=$10`
	u.UpdatedAt = now()
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.Nickname, u.StudentID, u.AdmissionYear,
		u.AcademicStatus, u.CurrentCompletedSemester, u.GraduationYear, u.UpdatedAt, u.ID)
	return err
}

func (r *userRepository) UpdateState(ctx context.Context, id string, state domain.UserState) error {
	query := `UPDATE tb_user SET state=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, state, now(), id)
	return err
}

func (r *userRepository) UpdateRoles(ctx context.Context, id string, roles domain.RoleSet) error {
	query := `UPDATE tb_user SET roles=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, joinRoles(roles), now(), id)
	return err
}

func (r *userRepository) ListByState(ctx context.Context, state domain.UserState) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM tb_user WHERE state = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *userRepository) scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var roles string
	var graduationYear sql.NullInt64
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Nickname, &u.StudentID,
		&u.AdmissionYear, &roles, &u.State, &u.AcademicStatus, &u.CurrentCompletedSemester,
		&graduationYear, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Roles = splitRoles(roles)
	if graduationYear.Valid {
		year := int(graduationYear.Int64)
		u.GraduationYear = &year
	}
	return u, nil
}

func joinRoles(roles domain.RoleSet) string {
	values := make([]string, 0, len(roles))
	for _, r := range roles.Slice() {
		values = append(values, string(r))
	}
	return strings.Join(values, ",")
}

func splitRoles(joined string) domain.RoleSet {
	if joined == "" {
		return domain.NewRoleSet()
	}
	return domain.RoleSetFromStrings(strings.Split(joined, ","))
}
