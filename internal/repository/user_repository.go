package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-chat/internal/domain/message"
	"courier-chat/internal/domain/user"
	courier_errors "courier-chat/pkg/errors"
)

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password, first_name, last_name, phone, join_at)
		 VALUES ($1, $2, $3, $4, $5, current_timestamp)
		 RETURNING join_at`,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
	).Scan(&u.JoinAt)
	if err != nil {
		if isUniqueViolation(err) {
			return courier_errors.ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx,
		`SELECT username, password, first_name, last_name, phone, join_at, last_login_at
		 FROM users
		 WHERE username = $1`,
		username,
	).Scan(&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.JoinAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, fmt.Errorf("%w: no such user: %s", courier_errors.ErrNotFound, username)
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) UpdateLoginTimestamp(ctx context.Context, username string) (time.Time, error) {
	var loggedInAt time.Time
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET last_login_at = current_timestamp
		 WHERE username = $1
		 RETURNING last_login_at`,
		username,
	).Scan(&loggedInAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, fmt.Errorf("%w: no such user: %s", courier_errors.ErrNotFound, username)
		}
		return time.Time{}, fmt.Errorf("update login timestamp: %w", err)
	}
	return loggedInAt, nil
}

func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]user.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT username, first_name, last_name, phone
		 FROM users
		 ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	profiles := make([]user.Profile, 0)
	for rows.Next() {
		var p user.Profile
		if err := rows.Scan(&p.Username, &p.FirstName, &p.LastName, &p.Phone); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *PostgresUserRepository) MessagesFrom(ctx context.Context, username string) ([]message.Outbound, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        t.username, t.first_name, t.last_name, t.phone
		 FROM messages AS m
		 JOIN users AS t ON m.to_username = t.username
		 WHERE m.from_username = $1
		 ORDER BY m.sent_at`,
		username)
	if err != nil {
		return nil, fmt.Errorf("messages from %s: %w", username, err)
	}
	defer rows.Close()

	messages := make([]message.Outbound, 0)
	for rows.Next() {
		var m message.Outbound
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *PostgresUserRepository) MessagesTo(ctx context.Context, username string) ([]message.Inbound, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        f.username, f.first_name, f.last_name, f.phone
		 FROM messages AS m
		 JOIN users AS f ON m.from_username = f.username
		 WHERE m.to_username = $1
		 ORDER BY m.sent_at`,
		username)
	if err != nil {
		return nil, fmt.Errorf("messages to %s: %w", username, err)
	}
	defer rows.Close()

	messages := make([]message.Inbound, 0)
	for rows.Next() {
		var m message.Inbound
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &m.ReadAt,
			&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
