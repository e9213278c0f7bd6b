package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username  string
	password  string
	firstName string
	lastName  string
	phone     string
}

var devUsers = []seedUser{
	{"alice", "secret1", "Alice", "Smith", "+15551234567"},
	{"bob", "secret2", "Bob", "Jones", "+15557654321"},
	{"carol", "secret3", "Carol", "Baker", "+15550001111"},
}

// SeedDev inserts development users and a few messages between them. Existing
// rows are left alone, so it is safe to run repeatedly.
func SeedDev(ctx context.Context, pool *pgxpool.Pool, bcryptCost int) error {
	for _, u := range devUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		_, err = pool.Exec(ctx,
			`INSERT INTO users (username, password, first_name, last_name, phone, join_at)
			 VALUES ($1, $2, $3, $4, $5, current_timestamp)
			 ON CONFLICT (username) DO NOTHING`,
			u.username, string(hash), u.firstName, u.lastName, u.phone)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}

	seedMessages := []struct {
		from, to, body string
	}{
		{"alice", "bob", "hi bob, welcome aboard"},
		{"bob", "alice", "thanks alice!"},
		{"carol", "alice", "lunch tomorrow?"},
	}

	for _, m := range seedMessages {
		_, err := pool.Exec(ctx,
			`INSERT INTO messages (from_username, to_username, body, sent_at)
			 SELECT $1, $2, $3, current_timestamp
			 WHERE NOT EXISTS (
			     SELECT 1 FROM messages
			     WHERE from_username = $1 AND to_username = $2 AND body = $3
			 )`,
			m.from, m.to, m.body)
		if err != nil {
			return fmt.Errorf("seed message %s -> %s: %w", m.from, m.to, err)
		}
	}

	return nil
}
