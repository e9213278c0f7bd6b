package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"courier-chat/internal/domain/message"
	"courier-chat/internal/domain/user"
)

// UserRepository persists users and answers directory queries.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (user.User, error)
	UpdateLoginTimestamp(ctx context.Context, username string) (time.Time, error)
	GetAll(ctx context.Context) ([]user.Profile, error)
	MessagesFrom(ctx context.Context, username string) ([]message.Outbound, error)
	MessagesTo(ctx context.Context, username string) ([]message.Inbound, error)
}

// MessageRepository persists direct messages.
type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (message.Detail, error)
	MarkRead(ctx context.Context, id uuid.UUID) (time.Time, error)
}
