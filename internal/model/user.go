package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of access levels.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// User stores registered identities with role-based access.
// Public self-registration always produces RoleCustomer; RoleAdmin is only
// reachable through the one-time bootstrap path.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        *string   `gorm:"uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'customer'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BeforeCreate assigns the ID app-side so the same model works against
// postgres and the sqlite test harness.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
