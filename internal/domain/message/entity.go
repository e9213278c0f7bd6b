package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"courier-chat/internal/domain/user"
)

// Message represents the messages table
type Message struct {
	ID           uuid.UUID
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time
	ReadAt       sql.NullTime
}

// Detail is a message joined with both counterpart profiles.
type Detail struct {
	ID       uuid.UUID
	Body     string
	SentAt   time.Time
	ReadAt   sql.NullTime
	FromUser user.Profile
	ToUser   user.Profile
}

// Outbound is a sent message joined with the recipient's profile.
type Outbound struct {
	ID     uuid.UUID
	Body   string
	SentAt time.Time
	ReadAt sql.NullTime
	ToUser user.Profile
}

// Inbound is a received message joined with the sender's profile.
type Inbound struct {
	ID       uuid.UUID
	Body     string
	SentAt   time.Time
	ReadAt   sql.NullTime
	FromUser user.Profile
}
