// seed inserts demo accounts into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/altynbekov/streamflix/internal/infrastructure/postgres"
	"github.com/altynbekov/streamflix/internal/password"
)

type account struct {
	name     string
	email    string
	password string
	role     string
}

var accounts = []account{
	{"Demo User", "demo@streamflix.local", "demo-password", "user"},
	{"Ana", "ana@streamflix.local", "secret123", "user"},
	{"Ops Admin", "admin@streamflix.local", "admin-password", "admin"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.Migrate(ctx, dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hasher := password.NewHasher(password.DefaultCost)

	var inserted, skipped int
	for _, acc := range accounts {
		hash, err := hasher.Hash(acc.password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", acc.email, err)
		}

		tag, err := pool.Exec(ctx, `
			INSERT INTO users (name, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO NOTHING`,
			acc.name, acc.email, hash, acc.role,
		)
		if err != nil {
			log.Fatalf("insert user %s: %v", acc.email, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Printf("  users inserted: %d, already present: %d\n", inserted, skipped)
	fmt.Println()
	fmt.Println("Try: curl -X POST localhost:8080/api/auth/login \\")
	fmt.Println(`       -H 'Content-Type: application/json' \`)
	fmt.Println(`       -d '{"email":"demo@streamflix.local","password":"demo-password"}'`)
}
