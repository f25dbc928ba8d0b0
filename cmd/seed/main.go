package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/buatanmy/discovery-backend/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := []struct {
		name     string
		email    string
		location string
	}{
		{"Aina Rahman", "aina@example.com", "Kuala Lumpur"},
		{"Daniel Wong", "daniel@example.com", "Penang"},
		{"Siti Nurul", "siti@example.com", "Johor Bahru"},
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (id, name, email, location)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, uuid.NewString(), u.name, u.email, u.location).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		userIDs = append(userIDs, id)
		fmt.Printf("seeded user: id=%s email=%s\n", id, u.email)
	}

	products := []struct {
		title       string
		description string
		url         string
		tags        string
		location    string
		author      string
	}{
		{"KopiKita", "Subscription service for local coffee beans", "https://kopikita.example.com", "{coffee,subscription}", "Kuala Lumpur", userIDs[0]},
		{"PasarLink", "Marketplace connecting wet market vendors with buyers", "https://pasarlink.example.com", "{marketplace,groceries}", "Penang", userIDs[1]},
		{"BacaBuku", "Community book sharing app", "https://bacabuku.example.com", "{books,community}", "Johor Bahru", userIDs[2]},
	}

	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		var id string
		err := db.QueryRow(`SELECT id FROM products WHERE url = $1`, p.url).Scan(&id)
		if err == sql.ErrNoRows {
			err = db.QueryRow(`
				INSERT INTO products (id, title, description, url, tags, location, is_made_in_my, author_id)
				VALUES ($1, $2, $3, $4, $5, $6, true, $7)
				RETURNING id
			`, uuid.NewString(), p.title, p.description, p.url, p.tags, p.location, p.author).Scan(&id)
		}
		if err != nil {
			log.Fatalf("failed to seed product %s: %v", p.title, err)
		}
		productIDs = append(productIDs, id)
		fmt.Printf("seeded product: id=%s title=%s\n", id, p.title)
	}

	// Cross-vote so rankings have signal
	votes := [][2]string{
		{userIDs[0], productIDs[1]},
		{userIDs[1], productIDs[0]},
		{userIDs[2], productIDs[0]},
		{userIDs[2], productIDs[1]},
	}
	for _, v := range votes {
		if _, err := db.Exec(`
			INSERT INTO votes (id, user_id, product_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, product_id) DO NOTHING
		`, uuid.NewString(), v[0], v[1]); err != nil {
			log.Fatalf("failed to seed vote: %v", err)
		}
	}
	fmt.Printf("seeded %d votes\n", len(votes))

	var commentCount int
	if err := db.QueryRow(`SELECT count(*) FROM comments WHERE product_id = $1`, productIDs[0]).Scan(&commentCount); err != nil {
		log.Fatalf("failed to count comments: %v", err)
	}
	if commentCount == 0 {
		if _, err := db.Exec(`
			INSERT INTO comments (id, content, author_id, product_id)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), "Been using this every morning, highly recommended!", userIDs[1], productIDs[0]); err != nil {
			log.Fatalf("failed to seed comment: %v", err)
		}
		fmt.Println("seeded demo comment")
	}
}
