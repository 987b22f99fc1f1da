package postgres

import (
	"context"
	"database/sql"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type circleRepository struct {
	db *sql.DB
}

func NewCircleRepository(db *sql.DB) repository.CircleRepository {
	return &circleRepository{db: db}
}

const circleColumns = `id, name, main_image, description, is_deleted, leader_id, created_at, updated_at`

func (r *circleRepository) Create(ctx context.Context, c *domain.Circle) error {
	query := `INSERT INTO tb_circle (` + circleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.MainImage, c.Description, c.IsDeleted, c.LeaderID, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *circleRepository) GetByID(ctx context.Context, id string) (*domain.Circle, error) {
	query := `SELECT ` + circleColumns + ` FROM tb_circle WHERE id = $1`
	return r.scanCircle(r.db.QueryRowContext(ctx, query, id))
}

func (r *circleRepository) List(ctx context.Context) ([]domain.Circle, error) {
	query := `SELECT ` + circleColumns + ` FROM tb_circle WHERE is_deleted = false ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var circles []domain.Circle
	for rows.Next() {
		c, err := r.scanCircle(rows)
		if err != nil {
			return nil, err
		}
		circles = append(circles, *c)
	}
	return circles, rows.Err()
}

func (r *circleRepository) Update(ctx context.Context, c *domain.Circle) error {
	query := `UPDATE tb_circle SET name=$1, main_image=$2, description=$3, leader_id=$4, updated_at=$5 WHERE id=$6`
	c.UpdatedAt = now()
	_, err := r.db.ExecContext(ctx, query, c.Name, c.MainImage, c.Description, c.LeaderID, c.UpdatedAt, c.ID)
	return err
}

func (r *circleRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	query := `UPDATE tb_circle SET is_deleted=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, deleted, now(), id)
	return err
}

func (r *circleRepository) scanCircle(row rowScanner) (*domain.Circle, error) {
	c := &domain.Circle{}
	var leaderID sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.MainImage, &c.Description, &c.IsDeleted, &leaderID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if leaderID.Valid {
		c.LeaderID = &leaderID.String
	}
	return c, nil
}

type circleMemberRepository struct {
	db *sql.DB
}

func NewCircleMemberRepository(db *sql.DB) repository.CircleMemberRepository {
	return &circleMemberRepository{db: db}
}

const circleMemberColumns = `id, user_id, circle_id, status, created_at, updated_at`

func (r *circleMemberRepository) Create(ctx context.Context, m *domain.CircleMember) error {
	query := `INSERT INTO tb_circle_member (` + circleMemberColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	m.ID = newID()
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt
	_, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.CircleID, m.Status, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *circleMemberRepository) GetByUserAndCircle(ctx context.Context, userID, circleID string) (*domain.CircleMember, error) {
	query := `SELECT ` + circleMemberColumns + ` FROM tb_circle_member WHERE user_id = $1 AND circle_id = $2`
	m := &domain.CircleMember{}
	err := r.db.QueryRowContext(ctx, query, userID, circleID).
		Scan(&m.ID, &m.UserID, &m.CircleID, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *circleMemberRepository) ListByCircle(ctx context.Context, circleID string) ([]domain.CircleMember, error) {
	query := `SELECT ` + circleMemberColumns + ` FROM tb_circle_member WHERE circle_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, circleID)
}

func (r *circleMemberRepository) ListByUser(ctx context.Context, userID string) ([]domain.CircleMember, error) {
	query := `SELECT ` + circleMemberColumns + ` FROM tb_circle_member WHERE user_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, userID)
}

func (r *circleMemberRepository) list(ctx context.Context, query string, arg any) ([]domain.CircleMember, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.CircleMember
	for rows.Next() {
		var m domain.CircleMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.CircleID, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *circleMemberRepository) UpdateStatus(ctx context.Context, id string, status domain.CircleMemberStatus) error {
	query := `UPDATE tb_circle_member SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, now(), id)
	return err
}

func (r *circleMemberRepository) CountByCircle(ctx context.Context, circleID string, status domain.CircleMemberStatus) (int, error) {
	query := `SELECT COUNT(*) FROM tb_circle_member WHERE circle_id = $1 AND status = $2`
	var count int
	err := r.db.QueryRowContext(ctx, query, circleID, status).Scan(&count)
	return count, err
}
