package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/travelbuddy/journal-api/config"
	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// Seeds a demo account with a couple of travel stories for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@travelbuddy.dev"
	password := "password123"
	fullName := "Demo Traveller"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, fullName, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	var count int
	if err := db.QueryRow(`SELECT count(*) FROM travel_stories WHERE user_id = $1`, id).Scan(&count); err != nil {
		log.Fatalf("failed to count stories: %v", err)
	}
	if count > 0 {
		fmt.Printf("user already has %d stories, skipping\n", count)
		return
	}

	placeholder := cfg.PlaceholderImageURL()
	stories := []struct {
		title, story, location string
		visited                time.Time
		favourite              bool
	}{
		{"Sunrise in Kyoto", "Watched the sun rise over Fushimi Inari before the crowds arrived.", "Kyoto", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), true},
		{"A week in Lisbon", "Pastel de nata for breakfast every single day, no regrets.", "Lisbon", time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC), false},
	}
	for _, s := range stories {
		if _, err := db.Exec(`
			INSERT INTO travel_stories (title, story, visited_location, image_url, visited_date, is_favourite, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, s.title, s.story, s.location, placeholder, s.visited, s.favourite, id); err != nil {
			log.Fatalf("failed to seed story %q: %v", s.title, err)
		}
	}
	fmt.Printf("seeded %d stories\n", len(stories))
}
