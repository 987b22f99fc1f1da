package postgres

import (
	"context"
	"database/sql"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, content, is_deleted, is_anonymous, writer_id, post_id, created_at, updated_at`

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `INSERT INTO tb_comment (` + commentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Content, c.IsDeleted, c.IsAnonymous,
		c.WriterID, c.PostID, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM tb_comment WHERE id = $1`
	c := &domain.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Content, &c.IsDeleted, &c.IsAnonymous, &c.WriterID, &c.PostID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) Update(ctx context.Context, c *domain.Comment) error {
	query := `UPDATE tb_comment SET content=$1, updated_at=$2 WHERE id=$3`
	c.UpdatedAt = now()
	_, err := r.db.ExecContext(ctx, query, c.Content, c.UpdatedAt, c.ID)
	return err
}

func (r *commentRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	query := `UPDATE tb_comment SET is_deleted=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, deleted, now(), id)
	return err
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, page, pageSize int) ([]domain.Comment, int, error) {
	total, err := r.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + commentColumns + ` FROM tb_comment WHERE post_id = $1
	          ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, postID, pageSize, page*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.IsDeleted, &c.IsAnonymous, &c.WriterID, &c.PostID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *commentRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	query := `SELECT COUNT(*) FROM tb_comment WHERE post_id = $1 AND is_deleted = false`
	var count int
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&count)
	return count, err
}

func (r *commentRepository) CreateLike(ctx context.Context, commentID, userID string) error {
	query := `INSERT INTO tb_like_comment (id, comment_id, user_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, newID(), commentID, userID, now())
	return err
}

func (r *commentRepository) LikeExists(ctx context.Context, commentID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tb_like_comment WHERE comment_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, commentID, userID).Scan(&exists)
	return exists, err
}

func (r *commentRepository) CountLikes(ctx context.Context, commentID string) (int, error) {
	query := `SELECT COUNT(*) FROM tb_like_comment WHERE comment_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, commentID).Scan(&count)
	return count, err
}

type childCommentRepository struct {
	db *sql.DB
}

func NewChildCommentRepository(db *sql.DB) repository.ChildCommentRepository {
	return &childCommentRepository{db: db}
}

const childCommentColumns = `id, content, is_deleted, is_anonymous, tag_user_name, writer_id, parent_comment_id, created_at, updated_at`

func (r *childCommentRepository) Create(ctx context.Context, c *domain.ChildComment) error {
	query := `INSERT INTO tb_child_comment (` + childCommentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Content, c.IsDeleted, c.IsAnonymous,
		c.TagUserName, c.WriterID, c.ParentCommentID, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *childCommentRepository) GetByID(ctx context.Context, id string) (*domain.ChildComment, error) {
	query := `SELECT ` + childCommentColumns + ` FROM tb_child_comment WHERE id = $1`
	c := &domain.ChildComment{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Content, &c.IsDeleted, &c.IsAnonymous, &c.TagUserName, &c.WriterID, &c.ParentCommentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *childCommentRepository) Update(ctx context.Context, c *domain.ChildComment) error {
	query := `UPDATE tb_child_comment SET content=$1, updated_at=$2 WHERE id=$3`
	c.UpdatedAt = now()
	_, err := r.db.ExecContext(ctx, query, c.Content, c.UpdatedAt, c.ID)
	return err
}

func (r *childCommentRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	query := `UPDATE tb_child_comment SET is_deleted=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, deleted, now(), id)
	return err
}

func (r *childCommentRepository) ListByParent(ctx context.Context, parentCommentID string) ([]domain.ChildComment, error) {
	query := `SELECT ` + childCommentColumns + ` FROM tb_child_comment WHERE parent_comment_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, parentCommentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.ChildComment
	for rows.Next() {
		var c domain.ChildComment
		if err := rows.Scan(&c.ID, &c.Content, &c.IsDeleted, &c.IsAnonymous, &c.TagUserName, &c.WriterID, &c.ParentCommentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *childCommentRepository) CreateLike(ctx context.Context, childCommentID, userID string) error {
	query := `INSERT INTO tb_like_child_comment (id, child_comment_id, user_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, newID(), childCommentID, userID, now())
	return err
}

func (r *childCommentRepository) LikeExists(ctx context.Context, childCommentID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tb_like_child_comment WHERE child_comment_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, childCommentID, userID).Scan(&exists)
	return exists, err
}

func (r *childCommentRepository) CountLikes(ctx context.Context, childCommentID string) (int, error) {
	query := `SELECT COUNT(*) FROM tb_like_child_comment WHERE child_comment_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, childCommentID).Scan(&count)
	return count, err
}
