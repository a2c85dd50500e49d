package database

import (
	"benchlab/internal/benches"
	"benchlab/internal/requests"
	"benchlab/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&benches.Bench{},
		&requests.Request{},
	)
}
