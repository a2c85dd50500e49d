package requests

import (
	"time"

	"github.com/google/uuid"
)

// RequestType distinguishes the two kinds of work in the admin review queue.
type RequestType string

const (
	TypeRegistration RequestType = "REGISTRATION"
	TypeSchedule     RequestType = "SCHEDULE"
)

func (t RequestType) IsValid() bool {
	switch t {
	case TypeRegistration, TypeSchedule:
		return true
	}
	return false
}

// RequestStatus is the review state of a request. Requests are immutable
// after a decision; users submit a fresh one instead of editing.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request is one row in the review queue: either a new account waiting for
// approval or a proposed bench reservation. Schedule fields are nil for
// registration requests.
type Request struct {
	ID     uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Type   RequestType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status RequestStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	// Schedule-only fields. StartsAt/EndsAt are inclusive bounds; a
	// reservation ending at 12:00 still occupies the 12:00 slot.
	BenchID  *uuid.UUID `gorm:"type:uuid;index" json:"bench_id,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	Comments  string     `json:"comments"`
	DecidedBy *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
