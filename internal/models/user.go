package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// UserStatus tracks where a user is in the signup flow.
type UserStatus string

const (
	StatusPending UserStatus = "pending"
	StatusActive  UserStatus = "active"
)

// User represents an account of the review service.
type User struct {
	ID          string     `json:"-" gorm:"primaryKey;type:varchar(36)"`
	Username    string     `json:"username" gorm:"uniqueIndex;type:varchar(150);not null"`
	Email       string     `json:"email" gorm:"uniqueIndex;type:varchar(254);not null"`
	FirstName   string     `json:"first_name" gorm:"type:varchar(150)"`
	LastName    string     `json:"last_name" gorm:"type:varchar(150)"`
	Bio         string     `json:"bio" gorm:"type:text"`
	Role        Role       `json:"role" gorm:"type:varchar(16);not null;default:user"`
	IsSuperuser bool       `json:"-" gorm:"not null;default:false"`
	Status      UserStatus `json:"-" gorm:"type:varchar(16);not null;default:pending"`
	ConfirmedAt *time.Time `json:"-"`
	LastLogin   *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// BeforeCreate assigns a UUID and the default role.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = StatusPending
	}
	return nil
}

// IsAdmin is true for the admin role and for superusers.
func (u *User) IsAdmin() bool {
	return u != nil && (u.Role == RoleAdmin || u.IsSuperuser)
}

// IsModerator is true for the moderator role only.
func (u *User) IsModerator() bool {
	return u != nil && u.Role == RoleModerator
}

// IsActive reports whether the user has exchanged a confirmation code.
func (u *User) IsActive() bool {
	return u != nil && u.Status == StatusActive
}
