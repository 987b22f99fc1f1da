package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"campus-community-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CircleRepository
	repository.CircleMemberRepository
	repository.BoardRepository
	repository.PostRepository
	repository.CommentRepository
	repository.ChildCommentRepository
	repository.FormRepository
	repository.CouncilFeeRepository
	repository.LockerRepository
	repository.NoticeRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		CircleRepository:       NewCircleRepository(db),
		CircleMemberRepository: NewCircleMemberRepository(db),
		BoardRepository:        NewBoardRepository(db),
		PostRepository:         NewPostRepository(db),
		CommentRepository:      NewCommentRepository(db),
		ChildCommentRepository: NewChildCommentRepository(db),
		FormRepository:         NewFormRepository(db),
		CouncilFeeRepository:   NewCouncilFeeRepository(db),
		LockerRepository:       NewLockerRepository(db),
		NoticeRepository:       NewNoticeRepository(db),
	}
}

const timeLayout = "2006-01-02 15:04:05"

// newID returns a dashless UUID, the historical primary-key format of the
// platform's tables.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func now() string {
	return time.Now().UTC().Format(timeLayout)
}
