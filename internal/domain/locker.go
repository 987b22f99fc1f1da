package domain

import "time"

type Locker struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	Location  string     `json:"location"`
	IsActive  bool       `json:"is_active"`
	UserID    *string    `json:"user_id,omitempty"`
	ExpireAt  *time.Time `json:"expire_at,omitempty"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}
