package domain

type CircleMemberStatus string

const (
	CircleMemberStatusAwait  CircleMemberStatus = "AWAIT"
	CircleMemberStatusMember CircleMemberStatus = "MEMBER"
	CircleMemberStatusReject CircleMemberStatus = "REJECT"
	CircleMemberStatusLeave  CircleMemberStatus = "LEAVE"
)

type Circle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MainImage   string `json:"main_image"`
	Description string `json:"description"`
	IsDeleted   bool    `json:"is_deleted"`
	LeaderID    *string `json:"leader_id,omitempty"`
	Leader      *User   `json:"leader,omitempty"` // hydrated by the service layer; nil when no leader on record
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CircleMember ties a user to a circle. Records are never hard-deleted;
// leaving or rejection only moves the status.
type CircleMember struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	CircleID  string             `json:"circle_id"`
	Status    CircleMemberStatus `json:"status"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}
