package postgres

import (
	"context"
	"database/sql"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type noticeRepository struct {
	db *sql.DB
}

func NewNoticeRepository(db *sql.DB) repository.NoticeRepository {
	return &noticeRepository{db: db}
}

func (r *noticeRepository) CreateBatch(ctx context.Context, notices []domain.CrawledNotice) error {
	if len(notices) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO tb_crawled_notice (id, category, notice_type, title, content, link, author, announce_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (link) DO NOTHING`
	for i := range notices {
		n := &notices[i]
		n.ID = newID()
		n.CreatedAt = now()
		if _, err := tx.ExecContext(ctx, query, n.ID, n.Category, n.NoticeType, n.Title, n.Content,
			n.Link, n.Author, n.AnnounceDate, n.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *noticeRepository) GetLatestCrawl(ctx context.Context, category domain.CrawlCategory) (*domain.LatestCrawl, error) {
	query := `SELECT category, latest_url, updated_at FROM tb_latest_crawl WHERE category = $1`
	c := &domain.LatestCrawl{}
	err := r.db.QueryRowContext(ctx, query, category).Scan(&c.Category, &c.LatestURL, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *noticeRepository) UpsertLatestCrawl(ctx context.Context, crawl *domain.LatestCrawl) error {
	query := `INSERT INTO tb_latest_crawl (category, latest_url, updated_at) VALUES ($1, $2, $3)
	          ON CONFLICT (category) DO UPDATE SET latest_url = EXCLUDED.latest_url, updated_at = EXCLUDED.updated_at`
	crawl.UpdatedAt = now()
	_, err := r.db.ExecContext(ctx, query, crawl.Category, crawl.LatestURL, crawl.UpdatedAt)
	return err
}
