package postgres

import (
	"context"
	"database/sql"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, title, content, is_deleted, is_question, is_anonymous, writer_id, board_id, form_id, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, p *domain.Post) error {
	query := `INSERT INTO tb_post (` + postColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Content, p.IsDeleted,
		p.IsQuestion, p.IsAnonymous, p.WriterID, p.BoardID, p.FormID, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM tb_post WHERE id = $1`
	return r.scanPost(r.db.QueryRowContext(ctx, query, id))
}

func (r *postRepository) Update(ctx context.Context, p *domain.Post) error {
	query := `UPDATE tb_post SET title=$1, content=$2, updated_at=$3 WHERE id=$4`
	p.UpdatedAt = now()
	_, err := r.db.ExecContext(ctx, query, p.Title, p.Content, p.UpdatedAt, p.ID)
	return err
}

func (r *postRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	query := `UPDATE tb_post SET is_deleted=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, deleted, now(), id)
	return err
}

func (r *postRepository) ListByBoard(ctx context.Context, boardID string, page, pageSize int) ([]domain.Post, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM tb_post WHERE board_id = $1 AND is_deleted = false`
	if err := r.db.QueryRowContext(ctx, countQuery, boardID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + postColumns + ` FROM tb_post WHERE board_id = $1 AND is_deleted = false
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, boardID, pageSize, page*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := r.scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	return posts, total, rows.Err()
}

func (r *postRepository) CreateLike(ctx context.Context, postID, userID string) error {
	query := `INSERT INTO tb_like_post (id, post_id, user_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, newID(), postID, userID, now())
	return err
}

func (r *postRepository) LikeExists(ctx context.Context, postID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tb_like_post WHERE post_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&exists)
	return exists, err
}

func (r *postRepository) CountLikes(ctx context.Context, postID string) (int, error) {
	query := `SELECT COUNT(*) FROM tb_like_post WHERE post_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&count)
	return count, err
}

func (r *postRepository) scanPost(row rowScanner) (*domain.Post, error) {
	p := &domain.Post{}
	var formID sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.IsDeleted, &p.IsQuestion,
		&p.IsAnonymous, &p.WriterID, &p.BoardID, &formID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if formID.Valid {
		p.FormID = &formID.String
	}
	return p, nil
}
