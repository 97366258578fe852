package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/QuentinDoniczka/SeriousGameBack/config"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	username := "demoUser"
	// satisfies the password policy: 12+ chars, upper, lower, digit, symbol
	password := "Demo123!Demo123!"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET username=EXCLUDED.username
		RETURNING id
	`, username, email, hash, "").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", id, email, username, password)

	// Ensure base roles exist
	var playerRoleID string
	if err := db.QueryRow(`
		INSERT INTO roles (name) VALUES ('player')
		ON CONFLICT (name) DO UPDATE SET updated_at = now()
		RETURNING id
	`).Scan(&playerRoleID); err != nil {
		log.Fatalf("failed to upsert player role: %v", err)
	}
	fmt.Printf("roles ensured: player=%s\n", playerRoleID)

	// Assign player role to seeded user
	if _, err := db.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, id, playerRoleID); err != nil {
		log.Fatalf("failed to assign player role: %v", err)
	}
	fmt.Println("assigned player role to seeded user (if not already)")
}
