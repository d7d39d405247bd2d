package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/store-rating-platform/config"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
)

// Seeds the platform administrator account. Safe to run repeatedly:
// an existing admin with the same email is left untouched.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, address, role)
		VALUES ($1, $2, $3, $4, 'admin')
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, cfg.SeedAdminName, cfg.SeedAdminEmail, hash, "Head Office").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, cfg.SeedAdminEmail)
}
