package postgres

import (
	"context"
	"database/sql"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

type councilFeeRepository struct {
	db *sql.DB
}

func NewCouncilFeeRepository(db *sql.DB) repository.CouncilFeeRepository {
	return &councilFeeRepository{db: db}
}

const councilFeeColumns = `id, user_id, is_joined_service, snapshot_semester, paid_at, num_paid_semesters, is_refunded, refunded_at, created_at, updated_at`

func (r *councilFeeRepository) GetByUserID(ctx context.Context, userID string) (*domain.CouncilFee, error) {
	query := `SELECT ` + councilFeeColumns + ` FROM tb_council_fee WHERE user_id = $1
	          ORDER BY created_at DESC LIMIT 1`
	fee := &domain.CouncilFee{}
	var uid sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&fee.ID, &uid, &fee.IsJoinedService,
		&fee.SnapshotSemester, &fee.PaidAt, &fee.NumPaidSemesters, &fee.IsRefunded, &fee.RefundedAt,
		&fee.CreatedAt, &fee.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if uid.Valid {
		fee.UserID = &uid.String
	}
	return fee, nil
}
