package domain

type Board struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	CreateRoles []Role  `json:"create_roles"`
	IsDeleted   bool    `json:"is_deleted"`
	IsDefault   bool    `json:"is_default"`
	CircleID    *string `json:"circle_id,omitempty"` // nil for general boards
	Circle      *Circle `json:"circle,omitempty"`    // hydrated by the service layer when CircleID is set
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CanCreatePost reports whether a holder of the given roles may write to the
// board. Admins and the president can always post.
func (b *Board) CanCreatePost(roles RoleSet) bool {
	if roles.HasAny(RoleAdmin, RolePresident) {
		return true
	}
	for _, r := range b.CreateRoles {
		if roles.Has(r) {
			return true
		}
	}
	return false
}
