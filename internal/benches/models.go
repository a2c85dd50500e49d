package benches

import (
	"time"

	"github.com/google/uuid"
)

// BenchStatus captures the lifecycle of a workbench.
type BenchStatus string

const (
	BenchActive      BenchStatus = "ACTIVE"
	BenchMaintenance BenchStatus = "MAINTENANCE"
	BenchRetired     BenchStatus = "RETIRED"
)

func (s BenchStatus) IsValid() bool {
	switch s {
	case BenchActive, BenchMaintenance, BenchRetired:
		return true
	}
	return false
}

// Schedulable reports whether new reservation requests may target the bench.
// Maintenance and retired benches stay visible but cannot take new work.
func (s BenchStatus) Schedulable() bool {
	return s == BenchActive
}

type Bench struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string      `gorm:"uniqueIndex;not null" json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Status      BenchStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
