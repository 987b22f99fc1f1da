package domain

type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsDeleted   bool   `json:"is_deleted"`
	IsQuestion  bool   `json:"is_question"`
	IsAnonymous bool   `json:"is_anonymous"`
	WriterID    string `json:"writer_id"`
	BoardID     string `json:"board_id"`
	FormID      *string `json:"form_id,omitempty"` // set for application posts carrying a form
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Comment struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	IsDeleted   bool   `json:"is_deleted"`
	IsAnonymous bool   `json:"is_anonymous"`
	WriterID    string `json:"writer_id"`
	PostID      string `json:"post_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type ChildComment struct {
	ID              string `json:"id"`
	Content         string `json:"content"`
	IsDeleted       bool   `json:"is_deleted"`
	IsAnonymous     bool   `json:"is_anonymous"`
	TagUserName     string `json:"tag_user_name,omitempty"`
	WriterID        string `json:"writer_id"`
	ParentCommentID string `json:"parent_comment_id"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
