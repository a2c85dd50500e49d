package main

import (
	"fmt"
	"log"
	"time"

	"benchlab/internal/benches"
	"benchlab/internal/requests"
	"benchlab/internal/shared/config"
	"benchlab/internal/shared/database"
	"benchlab/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting BenchLab Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
	fmt.Println("   admin:  admin@benchlab.local / admin12345")
	fmt.Println("   user:   ada@benchlab.local   / user12345")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"requests",
		"benches",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	admin, members, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	benchIDs, err := s.SeedBenches()
	if err != nil {
		return fmt.Errorf("failed to seed benches: %w", err)
	}

	if err := s.SeedRequests(admin, members, benchIDs); err != nil {
		return fmt.Errorf("failed to seed requests: %w", err)
	}

	return nil
}

// SeedUsers creates one admin, two approved members and one pending
// registration. Returns the admin ID and the member IDs in order.
func (s *Seeder) SeedUsers() (uuid.UUID, []uuid.UUID, error) {
	hash := func(password string) string {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return string(hashed)
	}

	seeded := []users.User{
		{
			FirstName: "Lab",
			LastName:  "Admin",
			Email:     "admin@benchlab.local",
			Password:  hash("admin12345"),
			Role:      users.RoleAdmin,
			Status:    users.StatusApproved,
		},
		{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@benchlab.local",
			Password:  hash("user12345"),
			Role:      users.RoleUser,
			Status:    users.StatusApproved,
		},
		{
			FirstName: "Grace",
			LastName:  "Hopper",
			Email:     "grace@benchlab.local",
			Password:  hash("user12345"),
			Role:      users.RoleUser,
			Status:    users.StatusApproved,
		},
		{
			FirstName: "Alan",
			LastName:  "Turing",
			Email:     "alan@benchlab.local",
			Password:  hash("user12345"),
			Role:      users.RoleUser,
			Status:    users.StatusPending,
		},
	}

	var adminID uuid.UUID
	var memberIDs []uuid.UUID
	for i := range seeded {
		if err := s.db.PostgreSQL.Create(&seeded[i]).Error; err != nil {
			return uuid.Nil, nil, err
		}
		fmt.Printf("  Created user: %s (%s/%s)\n", seeded[i].Email, seeded[i].Role, seeded[i].Status)

		switch {
		case seeded[i].Role == users.RoleAdmin:
			adminID = seeded[i].ID
		case seeded[i].Status == users.StatusApproved:
			memberIDs = append(memberIDs, seeded[i].ID)
		default:
			// Pending accounts get a registration request in the review queue.
			registration := requests.Request{
				Type:   requests.TypeRegistration,
				Status: requests.StatusPending,
				UserID: seeded[i].ID,
			}
			if err := s.db.PostgreSQL.Create(&registration).Error; err != nil {
				return uuid.Nil, nil, err
			}
			fmt.Printf("  Created registration request for %s\n", seeded[i].Email)
		}
	}

	return adminID, memberIDs, nil
}

func (s *Seeder) SeedBenches() ([]uuid.UUID, error) {
	seeded := []benches.Bench{
		{
			Name:        "soldering-station-1",
			Description: "Weller station with fume extractor and hot air rework",
			Location:    "Room 204, west wall",
			Status:      benches.BenchActive,
		},
		{
			Name:        "oscilloscope-bench",
			Description: "4-channel 1GHz scope, signal generator, bench PSU",
			Location:    "Room 204, center island",
			Status:      benches.BenchActive,
		},
		{
			Name:        "chemistry-hood-2",
			Description: "Fume hood with acid cabinet",
			Location:    "Room 310",
			Status:      benches.BenchMaintenance,
		},
	}

	var ids []uuid.UUID
	for i := range seeded {
		if err := s.db.PostgreSQL.Create(&seeded[i]).Error; err != nil {
			return nil, err
		}
		ids = append(ids, seeded[i].ID)
		fmt.Printf("  Created bench: %s (%s)\n", seeded[i].Name, seeded[i].Status)
	}
	return ids, nil
}

// SeedRequests creates one approved reservation on the first bench plus a
// pending one from a second member, so the calendar shows both day classes.
func (s *Seeder) SeedRequests(adminID uuid.UUID, memberIDs []uuid.UUID, benchIDs []uuid.UUID) error {
	if len(memberIDs) < 2 || len(benchIDs) < 1 {
		return fmt.Errorf("not enough seeded users or benches")
	}

	day := func(offset int, hour int) time.Time {
		now := time.Now().UTC()
		base := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
		return base.AddDate(0, 0, offset)
	}

	decidedAt := time.Now().UTC()

	approvedStart := day(3, 9)
	approvedEnd := day(3, 12)
	approved := requests.Request{
		Type:      requests.TypeSchedule,
		Status:    requests.StatusApproved,
		UserID:    memberIDs[0],
		BenchID:   &benchIDs[0],
		StartsAt:  &approvedStart,
		EndsAt:    &approvedEnd,
		Comments:  "prototype bring-up",
		DecidedBy: &adminID,
		DecidedAt: &decidedAt,
	}
	if err := s.db.PostgreSQL.Create(&approved).Error; err != nil {
		return err
	}
	fmt.Printf("  Created approved reservation %s..%s\n", approvedStart.Format("Jan 2 15:04"), approvedEnd.Format("15:04"))

	pendingStart := day(5, 8)
	pendingEnd := day(6, 19)
	pending := requests.Request{
		Type:     requests.TypeSchedule,
		Status:   requests.StatusPending,
		UserID:   memberIDs[1],
		BenchID:  &benchIDs[0],
		StartsAt: &pendingStart,
		EndsAt:   &pendingEnd,
		Comments: "two-day thermal soak test",
	}
	if err := s.db.PostgreSQL.Create(&pending).Error; err != nil {
		return err
	}
	fmt.Printf("  Created pending reservation %s..%s\n", pendingStart.Format("Jan 2 15:04"), pendingEnd.Format("Jan 2 15:04"))

	return nil
}
