package domain

// CouncilFee records a student-council fee payment. A record either references
// a joined user or, for payers without an account yet, carries its own
// completed-semester snapshot.
type CouncilFee struct {
	ID                string  `json:"id"`
	UserID            *string `json:"user_id,omitempty"`
	IsJoinedService   bool    `json:"is_joined_service"`
	SnapshotSemester  int     `json:"snapshot_semester"` // used when IsJoinedService is false
	PaidAt            int     `json:"paid_at"`           // first semester the payment covers
	NumPaidSemesters  int     `json:"num_paid_semesters"`
	IsRefunded        bool    `json:"is_refunded"`
	RefundedAt        int     `json:"refunded_at"` // last covered semester when refunded
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// EffectiveSemester returns the completed-semester count the payment window is
// compared against: the joined user's counter, or the record's own snapshot.
func (c *CouncilFee) EffectiveSemester(user *User) int {
	if c.IsJoinedService && user != nil {
		return user.CurrentCompletedSemester
	}
	return c.SnapshotSemester
}

// AppliesTo reports whether the payment window covers the given semester. The
// window runs from PaidAt through RefundedAt when refunded, otherwise through
// PaidAt+NumPaidSemesters-1.
func (c *CouncilFee) AppliesTo(semester int) bool {
	end := c.PaidAt + c.NumPaidSemesters - 1
	if c.IsRefunded {
		end = c.RefundedAt
	}
	return c.PaidAt <= semester && semester <= end
}

// RemainingSemesters returns how many covered semesters are left after the
// given one, never negative.
func (c *CouncilFee) RemainingSemesters(semester int) int {
	end := c.PaidAt + c.NumPaidSemesters - 1
	if c.IsRefunded {
		end = c.RefundedAt
	}
	if rest := end - semester; rest > 0 {
		return rest
	}
	return 0
}
