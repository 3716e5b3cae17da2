package model

import "time"

// User roles. Admins and managers may read other users' plans.
const (
	RoleMember  = "member"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User stores portal account metadata. Sessions live in the portal; the
// planner authenticates with per-user API tokens.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string
	Email          string `gorm:"uniqueIndex"`
	Role           string `gorm:"default:member"`
	APIToken       string `gorm:"uniqueIndex"`
	TelegramChatID int64  `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanViewUser reports whether the user may read another user's plan.
func (u User) CanViewUser(otherID uint) bool {
	return u.ID == otherID || u.Role == RoleAdmin || u.Role == RoleManager
}
