package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/auth"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE ALL USER DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all users and profiles")
	fmt.Println("  - Delete all productions, receipts and takes")
	fmt.Println("  - Delete all Green Room projects, tickets and votes")
	fmt.Println("  - Delete all posts, jobs, rentals and notifications")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	// Database connection
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "swn_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting database...")

	ctx := context.Background()

	// Start transaction
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	// Disable foreign key checks
	_, err = tx.Exec(ctx, "SET session_replication_role = 'replica'")
	if err != nil {
		log.Fatalf("Failed to disable foreign key checks: %v\n", err)
	}

	// Truncate all tables
	tables := []string{
		"login_logs",
		"action_logs",
		"notifications",
		"rental_orders",
		"rental_listings",
		"job_applications",
		"job_listings",
		"comments",
		"posts",
		"votes",
		"voting_tickets",
		"greenroom_projects",
		"continuity_photos",
		"continuity_notes",
		"takes",
		"receipts",
		"budget_lines",
		"scenes",
		"shoot_days",
		"production_members",
		"productions",
		"totp_verification_attempts",
		"profiles",
		"users",
		"system_settings",
	}

	for _, table := range tables {
		_, err = tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  ✓ Cleared %s\n", table)
	}

	// Re-enable foreign key checks
	_, err = tx.Exec(ctx, "SET session_replication_role = 'origin'")
	if err != nil {
		log.Fatalf("Failed to enable foreign key checks: %v\n", err)
	}

	// Reset sequences
	sequences := []string{
		"users_id_seq",
		"totp_verification_attempts_id_seq",
		"productions_id_seq",
		"production_members_id_seq",
		"shoot_days_id_seq",
		"scenes_id_seq",
		"budget_lines_id_seq",
		"receipts_id_seq",
		"takes_id_seq",
		"continuity_notes_id_seq",
		"continuity_photos_id_seq",
		"greenroom_projects_id_seq",
		"voting_tickets_id_seq",
		"votes_id_seq",
		"posts_id_seq",
		"comments_id_seq",
		"job_listings_id_seq",
		"job_applications_id_seq",
		"rental_listings_id_seq",
		"rental_orders_id_seq",
		"notifications_id_seq",
		"system_settings_id_seq",
		"action_logs_id_seq",
		"login_logs_id_seq",
	}

	for _, seq := range sequences {
		_, err = tx.Exec(ctx, fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1", seq))
		if err != nil {
			log.Printf("Warning: Failed to reset sequence %s: %v\n", seq, err)
		}
	}
	fmt.Println("  ✓ Reset ID sequences")

	// Create default admin user, already confirmed so it can log in straight away
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v\n", err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO users (email, password_hash, name, role, confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())`,
		"admin@secondwatch.network",
		adminHash,
		"Administrator",
		"admin",
	)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v\n", err)
	}
	fmt.Println("  ✓ Created admin user")

	// Create default system settings
	settings := []struct {
		key   string
		value string
		desc  string
	}{
		{"greenroom_default_allowance", "5", "Voting tickets granted per member per cycle"},
		{"greenroom_active_cycle", "default", "Green Room cycle new submissions attach to"},
		{"reimbursement_auto_approve_limit", "0", "Auto-approve receipts at or below this amount (0 disables)"},
		{"upload_max_size_mb", "25", "Maximum upload size in megabytes"},
	}

	for _, s := range settings {
		_, err = tx.Exec(ctx, `
			INSERT INTO system_settings (setting_key, setting_value, description, updated_at)
			VALUES ($1, $2, $3, NOW())`,
			s.key, s.value, s.desc,
		)
		if err != nil {
			log.Printf("Warning: Failed to create setting %s: %v\n", s.key, err)
		}
	}
	fmt.Println("  ✓ Created default settings")

	// Commit transaction
	err = tx.Commit(ctx)
	if err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("✅ Database reset successful!")
	fmt.Println()
	fmt.Println("Default credentials:")
	fmt.Println("  Email:    admin@secondwatch.network")
	fmt.Println("  Password: admin123")
	fmt.Println()
	fmt.Println("Database is now ready for testing!")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
