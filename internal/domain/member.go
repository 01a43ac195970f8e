package domain

import (
	"strings"
	"time"
)

// Member is an editorial staff account. Roles is a comma-separated list
// of role names (writer, copydesk, editor, admin).
type Member struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(50)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(190);uniqueIndex" json:"email"`
	Roles     string    `gorm:"column:roles;type:varchar(255)" json:"roles"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

// RoleList returns the member's roles as a slice.
func (m *Member) RoleList() []string {
	if m.Roles == "" {
		return nil
	}
	parts := strings.Split(m.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// HasRole reports whether the member holds the given role.
func (m *Member) HasRole(role string) bool {
	for _, r := range m.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}
