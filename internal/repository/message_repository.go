package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-chat/internal/domain/message"
	courier_errors "courier-chat/pkg/errors"
)

type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (from_username, to_username, body, sent_at)
		 VALUES ($1, $2, $3, current_timestamp)
		 RETURNING id, sent_at`,
		m.FromUsername, m.ToUsername, m.Body,
	).Scan(&m.ID, &m.SentAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: no such user: %s", courier_errors.ErrNotFound, m.ToUsername)
		}
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Detail, error) {
	var d message.Detail
	err := r.pool.QueryRow(ctx,
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        f.username, f.first_name, f.last_name, f.phone,
		        t.username, t.first_name, t.last_name, t.phone
		 FROM messages AS m
		 JOIN users AS f ON m.from_username = f.username
		 JOIN users AS t ON m.to_username = t.username
		 WHERE m.id = $1`,
		id,
	).Scan(&d.ID, &d.Body, &d.SentAt, &d.ReadAt,
		&d.FromUser.Username, &d.FromUser.FirstName, &d.FromUser.LastName, &d.FromUser.Phone,
		&d.ToUser.Username, &d.ToUser.FirstName, &d.ToUser.LastName, &d.ToUser.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return message.Detail{}, fmt.Errorf("%w: no such message: %s", courier_errors.ErrNotFound, id)
		}
		return message.Detail{}, fmt.Errorf("get message: %w", err)
	}
	return d, nil
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, id uuid.UUID) (time.Time, error) {
	var readAt time.Time
	err := r.pool.QueryRow(ctx,
		`UPDATE messages
		 SET read_at = current_timestamp
		 WHERE id = $1
		 RETURNING read_at`,
		id,
	).Scan(&readAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, fmt.Errorf("%w: no such message: %s", courier_errors.ErrNotFound, id)
		}
		return time.Time{}, fmt.Errorf("mark read: %w", err)
	}
	return readAt, nil
}
