package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-community-backend/internal/domain"
)

func userRow(id, email, roles string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "name", "nickname", "student_id", "admission_year",
		"roles", "state", "academic_status", "current_completed_semester", "graduation_year",
		"created_at", "updated_at",
	}).AddRow(id, email, "hash", "Jane Doe", "jane", "20231234", 2023,
		roles, "ACTIVE", "ENROLLED", 2, nil,
		"2026-01-01 00:00:00", "2026-01-01 00:00:00")
}

func TestUserRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM tb_user WHERE id = \$1`).
		WithArgs("u1").
		WillReturnRows(userRow("u1", "jane@example.edu", "COMMON,LEADER_CIRCLE"))

	repo := NewUserRepository(db)
	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.UserStateActive, user.State)
	assert.True(t, user.Roles.Has(domain.RoleCommon))
	assert.True(t, user.Roles.Has(domain.RoleLeaderCircle))
	assert.Nil(t, user.GraduationYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM tb_user WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryGetByEmailIsCaseInsensitive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM tb_user WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("Jane@Example.edu").
		WillReturnRows(userRow("u1", "jane@example.edu", "COMMON"))

	repo := NewUserRepository(db)
	user, err := repo.GetByEmail(context.Background(), "Jane@Example.edu")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.edu", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO tb_user`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)
	user := &domain.User{
		Email:          "jane@example.edu",
		PasswordHash:   "hash",
		Name:           "Jane Doe",
		Nickname:       "jane",
		StudentID:      "20231234",
		AdmissionYear:  2023,
		Roles:          domain.NewRoleSet(domain.RoleNone),
		State:          domain.UserStateAwait,
		AcademicStatus: domain.AcademicStatusEnrolled,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Len(t, user.ID, 32, "ids are dashless uuids")
	assert.NotEmpty(t, user.CreatedAt)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE tb_user SET roles=`).
		WithArgs("COMMON", sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)
	err = repo.UpdateRoles(context.Background(), "u1", domain.NewRoleSet(domain.RoleCommon))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListByState(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := userRow("u1", "a@example.edu", "NONE")
	mock.ExpectQuery(`SELECT .+ FROM tb_user WHERE state = \$1`).
		WithArgs(domain.UserStateAwait).
		WillReturnRows(rows)

	repo := NewUserRepository(db)
	users, err := repo.ListByState(context.Background(), domain.UserStateAwait)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
