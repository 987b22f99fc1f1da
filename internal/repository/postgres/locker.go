package postgres

import (
	"context"
	"database/sql"
	"time"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type lockerRepository struct {
	db *sql.DB
}

func NewLockerRepository(db *sql.DB) repository.LockerRepository {
	return &lockerRepository{db: db}
}

const lockerColumns = `id, number, location, is_active, user_id, expire_at, created_at, updated_at`

func (r *lockerRepository) GetByID(ctx context.Context, id string) (*domain.Locker, error) {
	query := `SELECT ` + lockerColumns + ` FROM tb_locker WHERE id = $1`
	l := &domain.Locker{}
	var userID sql.NullString
	var expireAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.Number, &l.Location, &l.IsActive,
		&userID, &expireAt, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		l.UserID = &userID.String
	}
	if expireAt.Valid {
		t := expireAt.Time.UTC()
		l.ExpireAt = &t
	}
	return l, nil
}

func (r *lockerRepository) Update(ctx context.Context, l *domain.Locker) error {
	query := `UPDATE tb_locker SET is_active=$1, user_id=$2, expire_at=$3, updated_at=$4 WHERE id=$5`
	l.UpdatedAt = now()
	var expireAt any
	if l.ExpireAt != nil {
		expireAt = l.ExpireAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, query, l.IsActive, l.UserID, expireAt, l.UpdatedAt, l.ID)
	return err
}
