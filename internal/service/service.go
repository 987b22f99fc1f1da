package service

import (
	"context"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/form"
)

type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, string, error) // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	ListAwaitingUsers(ctx context.Context, actor *domain.User) ([]domain.User, error)
	ApproveAdmission(ctx context.Context, actor *domain.User, userID string) error
	RejectAdmission(ctx context.Context, actor *domain.User, userID string) error
	GrantRole(ctx context.Context, actor *domain.User, granteeID string, role domain.Role) error
	DropUser(ctx context.Context, actor *domain.User, userID string) error
	UpdateAcademicRecord(ctx context.Context, actor *domain.User, req UpdateAcademicRecordRequest) (*domain.User, error)
}

type CircleService interface {
	CreateCircle(ctx context.Context, actor *domain.User, req CreateCircleRequest) (*domain.Circle, error)
	GetCircle(ctx context.Context, circleID string) (*domain.Circle, int, error) // circle, member count
	ListCircles(ctx context.Context) ([]domain.Circle, error)
	Apply(ctx context.Context, actor *domain.User, circleID string) (*domain.CircleMember, error)
	AcceptMember(ctx context.Context, actor *domain.User, circleID, userID string) error
	RejectMember(ctx context.Context, actor *domain.User, circleID, userID string) error
	Leave(ctx context.Context, actor *domain.User, circleID string) error
	DeleteCircle(ctx context.Context, actor *domain.User, circleID string) error
	ListMembers(ctx context.Context, actor *domain.User, circleID string, status domain.CircleMemberStatus) ([]domain.CircleMember, error)
}

type BoardService interface {
	CreateBoard(ctx context.Context, actor *domain.User, req CreateBoardRequest) (*domain.Board, error)
	ListBoards(ctx context.Context, actor *domain.User) ([]domain.Board, error)
	DeleteBoard(ctx context.Context, actor *domain.User, boardID string) error
}

type PostService interface {
	CreatePost(ctx context.Context, actor *domain.User, req CreatePostRequest) (*domain.Post, error)
	GetPost(ctx context.Context, actor *domain.User, postID string) (*PostDetail, error)
	ListPosts(ctx context.Context, actor *domain.User, boardID string, page, pageSize int) ([]domain.Post, int, error)
	UpdatePost(ctx context.Context, actor *domain.User, postID string, req UpdatePostRequest) (*domain.Post, error)
	DeletePost(ctx context.Context, actor *domain.User, postID string) error
	LikePost(ctx context.Context, actor *domain.User, postID string) error
}

type CommentService interface {
	CreateComment(ctx context.Context, actor *domain.User, req CreateCommentRequest) (*domain.Comment, error)
	UpdateComment(ctx context.Context, actor *domain.User, commentID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, actor *domain.User, commentID string) error
	LikeComment(ctx context.Context, actor *domain.User, commentID string) error
}

type ChildCommentService interface {
	CreateChildComment(ctx context.Context, actor *domain.User, req CreateChildCommentRequest) (*domain.ChildComment, error)
	UpdateChildComment(ctx context.Context, actor *domain.User, childCommentID, content string) (*domain.ChildComment, error)
	DeleteChildComment(ctx context.Context, actor *domain.User, childCommentID string) error
	LikeChildComment(ctx context.Context, actor *domain.User, childCommentID string) error
}

type FormService interface {
	GetForm(ctx context.Context, actor *domain.User, formID string) (*domain.Form, error)
	ReplyToForm(ctx context.Context, actor *domain.User, formID string, answers []domain.Answer) (*domain.Reply, error)
	CloseForm(ctx context.Context, actor *domain.User, formID string) error
	ListReplies(ctx context.Context, actor *domain.User, formID string) ([]domain.Reply, error)
	SummarizeReplies(ctx context.Context, actor *domain.User, formID string) ([]form.QuestionSummary, error)
	ExportReplies(ctx context.Context, actor *domain.User, formID string) ([]byte, string, error) // file bytes, filename
}

type LockerService interface {
	GetLocker(ctx context.Context, lockerID string) (*domain.Locker, error)
	RegisterLocker(ctx context.Context, actor *domain.User, lockerID string) (*domain.Locker, error)
	ReturnLocker(ctx context.Context, actor *domain.User, lockerID string) (*domain.Locker, error)
	ExtendLocker(ctx context.Context, actor *domain.User, lockerID string) (*domain.Locker, error)
}

type EmailService interface {
	SendAdmissionResult(ctx context.Context, email, name string, accepted bool) error
	SendRoleChangeNotification(ctx context.Context, email, name, role string) error
}

// SignUpRequest carries the sign-up fields, constrained by validator tags.
type SignUpRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required"`
	Nickname      string `json:"nickname" validate:"required"`
	StudentID     string `json:"student_id" validate:"required"`
	AdmissionYear int    `json:"admission_year" validate:"required,min=1972"`
}

// UpdateAcademicRecordRequest updates the actor's own academic standing, the
// inputs the form eligibility gates read.
type UpdateAcademicRecordRequest struct {
	AcademicStatus           string `json:"academic_status" validate:"required,oneof=ENROLLED LEAVE_OF_ABSENCE GRADUATED"`
	CurrentCompletedSemester int    `json:"current_completed_semester" validate:"min=0"`
	GraduationYear           *int   `json:"graduation_year,omitempty"`
}

type CreateCircleRequest struct {
	Name        string `json:"name" validate:"required"`
	MainImage   string `json:"main_image"`
	Description string `json:"description" validate:"required"`
	LeaderID    string `json:"leader_id" validate:"required"`
}

type CreateBoardRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	CreateRoles []string `json:"create_roles"`
	CircleID    string   `json:"circle_id"`
}

type CreatePostRequest struct {
	BoardID     string             `json:"board_id" validate:"required"`
	Title       string             `json:"title" validate:"required"`
	Content     string             `json:"content" validate:"required"`
	IsQuestion  bool               `json:"is_question"`
	IsAnonymous bool               `json:"is_anonymous"`
	Form        *CreateFormRequest `json:"form,omitempty"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type CreateFormRequest struct {
	Title               string                  `json:"title" validate:"required"`
	Type                string                  `json:"type" validate:"required"`
	AllowEnrolled       bool                    `json:"allow_enrolled"`
	AllowLeaveOfAbsence bool                    `json:"allow_leave_of_absence"`
	AllowGraduated      bool                    `json:"allow_graduated"`
	EnrolledSemesters   []int                   `json:"enrolled_semesters"`
	LeaveSemesters      []int                   `json:"leave_semesters"`
	RequireCouncilFee   bool                    `json:"require_council_fee"`
	CircleID            string                  `json:"circle_id"`
	Questions           []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	Number     int      `json:"number" validate:"required,min=1"`
	Text       string   `json:"text" validate:"required"`
	Type       string   `json:"type" validate:"required"`
	IsMultiple bool     `json:"is_multiple"`
	Options    []string `json:"options"`
}

type CreateCommentRequest struct {
	PostID      string `json:"post_id" validate:"required"`
	Content     string `json:"content" validate:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type CreateChildCommentRequest struct {
	ParentCommentID string `json:"parent_comment_id" validate:"required"`
	Content         string `json:"content" validate:"required"`
	IsAnonymous     bool   `json:"is_anonymous"`
	TagUserName     string `json:"tag_user_name"`
}

// PostDetail is a post plus the capability flags and counters the client
// renders alongside it.
type PostDetail struct {
	Post         *domain.Post     `json:"post"`
	Board        *domain.Board    `json:"board"`
	Comments     []domain.Comment `json:"comments"`
	CommentCount int              `json:"comment_count"`
	LikeCount    int              `json:"like_count"`
	Updatable    bool             `json:"updatable"`
	Deletable    bool             `json:"deletable"`
}
