package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"devconnect/pkg/auth"
)

// Seeds a user account for local development:
//
//	DB_DSN=... SEED_EMAIL=... SEED_PASSWORD=... go run ./scripts
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("SEED_EMAIL")
	name := os.Getenv("SEED_NAME")
	password := os.Getenv("SEED_PASSWORD")
	if name == "" {
		name = "Dev User"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, name, email, password_hash, avatar, created_at)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (email) DO UPDATE SET password_hash = $4
	`
	if _, err := pool.Exec(context.Background(), query, uuid.New(), name, email, hash, time.Now().UTC()); err != nil {
		log.Fatalf("cannot seed user: %v", err)
	}

	log.Printf("seeded user '%s'", email)
}
