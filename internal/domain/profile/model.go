package profile

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleFaculty    Role = "faculty"
	RoleViewOnly   Role = "view_only"
)

var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleFaculty, RoleViewOnly}

var roleRank = map[Role]int{
	RoleViewOnly:   1,
	RoleFaculty:    2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// Profile is the role-bearing record for an authenticated account. Its id is
// the account id.
type Profile struct {
	ID                string    `json:"id" gorm:"primaryKey;size:36"`
	Email             string    `json:"email" gorm:"not null;index"`
	FullName          *string   `json:"full_name,omitempty"`
	Role              Role      `json:"role" gorm:"not null;default:'view_only'"`
	EmailOnNewProject bool      `json:"email_on_new_project" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// IsAdmin is true for super_admin and admin only.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleSuperAdmin || p.Role == RoleAdmin
}

func (p Profile) Clone() Profile {
	out := p
	if p.FullName != nil {
		v := *p.FullName
		out.FullName = &v
	}
	return out
}

type UpdateRoleInput struct {
	Role Role `json:"role" binding:"required,oneof=super_admin admin faculty view_only" example:"faculty"`
}
