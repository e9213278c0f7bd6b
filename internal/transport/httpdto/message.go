package httpdto

import (
	"database/sql"
	"time"

	"courier-chat/internal/domain/message"
)

// SendMessageRequest is used for POST /messages
type SendMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

// MessageDTO represents a stored message in API responses
type MessageDTO struct {
	ID           string     `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// MessageDetailDTO is a message joined with both counterpart profiles
type MessageDetailDTO struct {
	ID       string     `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser ProfileDTO `json:"from_user"`
	ToUser   ProfileDTO `json:"to_user"`
}

// OutboundMessageDTO is a sent message with the recipient profile
type OutboundMessageDTO struct {
	ID     string     `json:"id"`
	Body   string     `json:"body"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
	ToUser ProfileDTO `json:"to_user"`
}

// InboundMessageDTO is a received message with the sender profile
type InboundMessageDTO struct {
	ID       string     `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser ProfileDTO `json:"from_user"`
}

// ReadReceiptDTO is returned after marking a message read
type ReadReceiptDTO struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// FromMessage converts a domain message to MessageDTO
func FromMessage(m message.Message) MessageDTO {
	return MessageDTO{
		ID:           m.ID.String(),
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt,
		ReadAt:       nullTimePtr(m.ReadAt),
	}
}

// FromMessageDetail converts a domain message detail to MessageDetailDTO
func FromMessageDetail(d message.Detail) MessageDetailDTO {
	return MessageDetailDTO{
		ID:       d.ID.String(),
		Body:     d.Body,
		SentAt:   d.SentAt,
		ReadAt:   nullTimePtr(d.ReadAt),
		FromUser: FromProfile(d.FromUser),
		ToUser:   FromProfile(d.ToUser),
	}
}

// FromOutboundSlice converts domain outbound messages to DTOs
func FromOutboundSlice(messages []message.Outbound) []OutboundMessageDTO {
	dtos := make([]OutboundMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = OutboundMessageDTO{
			ID:     m.ID.String(),
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: nullTimePtr(m.ReadAt),
			ToUser: FromProfile(m.ToUser),
		}
	}
	return dtos
}

// FromInboundSlice converts domain inbound messages to DTOs
func FromInboundSlice(messages []message.Inbound) []InboundMessageDTO {
	dtos := make([]InboundMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = InboundMessageDTO{
			ID:       m.ID.String(),
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   nullTimePtr(m.ReadAt),
			FromUser: FromProfile(m.FromUser),
		}
	}
	return dtos
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
