package postgres

import (
	"context"
	"database/sql"
	"strings"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type boardRepository struct {
	db *sql.DB
}

func NewBoardRepository(db *sql.DB) repository.BoardRepository {
	return &boardRepository{db: db}
}

const boardColumns = `id, name, description, category, create_roles, is_deleted, is_default, circle_id, created_at, updated_at`

func (r *boardRepository) Create(ctx context.Context, b *domain.Board) error {
	query := `INSERT INTO tb_board (` + boardColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	b.ID = newID()
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
	_, err := r.db.ExecContext(ctx, query, b.ID, b.Name, b.Description, b.Category,
		joinRoleList(b.CreateRoles), b.IsDeleted, b.IsDefault, b.CircleID, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *boardRepository) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM tb_board WHERE id = $1`
	return r.scanBoard(r.db.QueryRowContext(ctx, query, id))
}

func (r *boardRepository) ListByCircle(ctx context.Context, circleID string) ([]domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM tb_board WHERE circle_id = $1 AND is_deleted = false ORDER BY created_at ASC`
	return r.list(ctx, query, circleID)
}

func (r *boardRepository) ListDefault(ctx context.Context) ([]domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM tb_board WHERE is_default = true AND is_deleted = false ORDER BY created_at ASC`
	return r.list(ctx, query)
}

func (r *boardRepository) list(ctx context.Context, query string, args ...any) ([]domain.Board, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		b, err := r.scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *b)
	}
	return boards, rows.Err()
}

func (r *boardRepository) Update(ctx context.Context, b *domain.Board) error {
	query := `UPDATE tb_board SET name=$1, description=$2, category=$3, create_roles=$4, updated_at=$5 WHERE id=$6`
	b.UpdatedAt = now()
	_, err := r.db.ExecContext(ctx, query, b.Name, b.Description, b.Category,
		joinRoleList(b.CreateRoles), b.UpdatedAt, b.ID)
	return err
}

func (r *boardRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	query := `UPDATE tb_board SET is_deleted=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, deleted, now(), id)
	return err
}

func (r *boardRepository) scanBoard(row rowScanner) (*domain.Board, error) {
	b := &domain.Board{}
	var createRoles string
	var circleID sql.NullString
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.Category, &createRoles,
		&b.IsDeleted, &b.IsDefault, &circleID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.CreateRoles = splitRoleList(createRoles)
	if circleID.Valid {
		b.CircleID = &circleID.String
	}
	return b, nil
}

func joinRoleList(roles []domain.Role) string {
	values := make([]string, 0, len(roles))
	for _, role := range roles {
		values = append(values, string(role))
	}
	return strings.Join(values, ",")
}

func splitRoleList(joined string) []domain.Role {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	roles := make([]domain.Role, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, domain.Role(p))
	}
	return roles
}
