package domain

import "time"

// Membership roles. Every project has exactly one owner row matching its OwnerID.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Project is the tenant boundary: all tasks, subtasks and comments belong to
// exactly one project, and only its members may see or touch them.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is one (project, user) membership row.
type Member struct {
	ProjectID string `json:"project_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`

	// Denormalized for member listings.
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (m *Member) IsOwner() bool {
	return m != nil && m.Role == RoleOwner
}
