package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"nexora-chat/config"
	"nexora-chat/internal/repository"
	"nexora-chat/pkg/database"

	"gorm.io/gorm"
)

const usage = `
Nexora Chat - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create or update the users, chat and feedback tables
  status      Show database connection status and row counts
  seed-dev    Register a demo user with one chat entry and one feedback entry
  reset       Drop all tables and re-run migrations (DANGEROUS)

Flags:
  -email string   Email used by seed-dev (default "demo@example.com")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  DB_DRIVER=sqlite go run cmd/migrate/main.go seed-dev
`

func main() {
	email := flag.String("email", "demo@example.com", "Email used by seed-dev")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	// Load config and connect to database
	cfg := config.LoadConfig()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer database.Close(db)

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(db)
	case "seed-dev":
		runSeedDevelopment(db, *email)
	case "reset":
		runReset(db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("Running migrations UP...")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}

func showStatus(db *gorm.DB) {
	log.Println("Checking database status...")

	if err := database.HealthCheck(context.Background(), db); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	for _, table := range []string{"users", "chat_entries", "feedback_entries"} {
		if !db.Migrator().HasTable(table) {
			log.Printf("Table %-20s does not exist", table)
			continue
		}
		count, err := database.CountRows(db, table)
		if err != nil {
			log.Printf("Error counting table %s: %v", table, err)
			continue
		}
		log.Printf("Table %-20s exists (%d rows)", table, count)
	}
}

func runSeedDevelopment(db *gorm.DB, email string) {
	log.Println("Seeding database (development mode)...")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	ctx := context.Background()
	repo := repository.NewUserRepository(db)
	u, created, err := repo.CreateOrGetUser(ctx, email)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	if _, err := repo.AppendChat(ctx, u.ID, "assistant", "Welcome! How can I help you today?"); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	if _, err := repo.AppendFeedback(ctx, u.ID, 5, "Seeded feedback"); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Demo user %s (ID: %s, new: %t)", email, u.ID, created)
	log.Println("Development seeding completed")
}

func runReset(db *gorm.DB) {
	log.Println("WARNING: This will DROP all tables and re-run migrations!")

	if err := database.Reset(db); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}

	log.Println("Database reset completed")
}
