package service

import (
	"context"
	"database/sql"
	"errors"

	"campus-community-backend/internal/apperr"
	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/repository"
)

// hydrateBoard attaches the board's circle, and the circle's leader, so policy
// decisions can run over fully loaded state. General boards pass through
// untouched. A circle board whose circle row is missing is a data-integrity
// failure; a missing leader user is tolerated here and surfaces only if a
// decision actually needs the leader.
func hydrateBoard(ctx context.Context, board *domain.Board, circleRepo repository.CircleRepository, userRepo repository.UserRepository) error {
	if board.CircleID == nil {
		return nil
	}

	circle, err := circleRepo.GetByID(ctx, *board.CircleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.CodeInternalServer, "board references a missing circle")
		}
		return err
	}

	if circle.LeaderID != nil {
		leader, err := userRepo.GetByID(ctx, *circle.LeaderID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		circle.Leader = leader
	}

	board.Circle = circle
	return nil
}
