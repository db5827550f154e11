package models

import "time"

// MemberRole is the authorization role carried in access tokens.
type MemberRole string

const (
	RoleAdmin    MemberRole = "ADMIN"
	RoleEmployee MemberRole = "EMPLOYEE"
)

// DefaultMemberRole is granted to members created through email registration.
const DefaultMemberRole = RoleAdmin

// Member is an account allowed to sign in to the admin backend.
type Member struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string     `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	Name      string     `json:"name" gorm:"type:varchar(100);not null"`
	Role      MemberRole `json:"role" gorm:"type:varchar(20);not null"`
	Verified  bool       `json:"verified"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
