package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName     string    `json:"first_name" gorm:"not null"`
	LastName      string    `json:"last_name" gorm:"not null"`
	Password      string    `json:"-" gorm:"not null"` // hide in json
	Role          Role      `json:"role" gorm:"not null;default:'USER'"`
	Status        Status    `json:"status" gorm:"not null;default:'PENDING'"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	StatusComment string    `json:"status_comment,omitempty"` // audit note for disable/reject
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}

func IsValidStatus(status string) bool {
	switch status {
	case string(StatusPending), string(StatusApproved), string(StatusDisabled):
		return true
	default:
		return false
	}
}
