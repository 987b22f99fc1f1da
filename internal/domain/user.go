package domain

type UserState string

const (
	UserStateActive   UserState = "ACTIVE"
	UserStateAwait    UserState = "AWAIT"
	UserStateReject   UserState = "REJECT"
	UserStateInactive UserState = "INACTIVE"
	UserStateDrop     UserState = "DROP"
)

type AcademicStatus string

const (
	AcademicStatusEnrolled       AcademicStatus = "ENROLLED"
	AcademicStatusLeaveOfAbsence AcademicStatus = "LEAVE_OF_ABSENCE"
	AcademicStatusGraduated      AcademicStatus = "GRADUATED"
)

type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RolePresident     Role = "PRESIDENT"
	RoleVicePresident Role = "VICE_PRESIDENT"
	RoleCouncil       Role = "COUNCIL"
	RoleLeaderCircle  Role = "LEADER_CIRCLE"
	RoleProfessor     Role = "PROFESSOR"
	RoleCommon        Role = "COMMON"
	RoleNone          Role = "NONE"
)

// RoleSet holds the roles granted to a user. Multiple roles may co-exist;
// RoleNone marks an account that has not completed sign-up.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

func (s RoleSet) Slice() []Role {
	roles := make([]Role, 0, len(s))
	for r := range s {
		roles = append(roles, r)
	}
	return roles
}

func RoleSetFromStrings(values []string) RoleSet {
	set := make(RoleSet, len(values))
	for _, v := range values {
		set[Role(v)] = struct{}{}
	}
	return set
}

type User struct {
	ID                       string         `json:"id"`
	Email                    string         `json:"email"`
	PasswordHash             string         `json:"-"`
	Name                     string         `json:"name"`
	Nickname                 string         `json:"nickname"`
	StudentID                string         `json:"student_id"`
	AdmissionYear            int            `json:"admission_year"`
	Roles                    RoleSet        `json:"roles"`
	State                    UserState      `json:"state"`
	AcademicStatus           AcademicStatus `json:"academic_status"`
	CurrentCompletedSemester int            `json:"current_completed_semester"`
	GraduationYear           *int           `json:"graduation_year,omitempty"`
	CreatedAt                string         `json:"created_at"`
	UpdatedAt                string         `json:"updated_at"`
}

// IsAdminTier reports whether the user holds a role that bypasses
// membership-scoped checks.
func (u *User) IsAdminTier() bool {
	return u.Roles.HasAny(RoleAdmin, RolePresident, RoleVicePresident)
}
