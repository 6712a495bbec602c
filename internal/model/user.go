package model

import "time"

// Role is the closed set of capabilities a principal can hold.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a raw claim value onto the role enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// User mirrors the identity provider's principal. Authentication itself
// happens outside this service; only id, name and role are consumed here.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Role      Role      `json:"role" gorm:"size:16;not null;default:'student'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
