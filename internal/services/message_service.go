package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"courier-chat/internal/domain/message"
	"courier-chat/internal/repository"
	courier_errors "courier-chat/pkg/errors"
)

// MessageService owns direct-message persistence. Identity checks (who may
// read, who may mark read) are the caller's responsibility.
type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

type CreateMessageInput struct {
	FromUsername string
	ToUsername   string
	Body         string
}

// Create stores a new message and returns it with the assigned id and sent_at.
func (s *MessageService) Create(ctx context.Context, in CreateMessageInput) (message.Message, error) {
	if in.ToUsername == "" || in.Body == "" {
		return message.Message{}, courier_errors.ErrInvalidInput
	}

	m := &message.Message{
		FromUsername: in.FromUsername,
		ToUsername:   in.ToUsername,
		Body:         in.Body,
	}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return message.Message{}, err
	}
	return *m, nil
}

// Get returns a message with both counterpart profiles joined in.
func (s *MessageService) Get(ctx context.Context, id uuid.UUID) (message.Detail, error) {
	return s.messageRepo.GetByID(ctx, id)
}

// MarkRead stamps read_at for the message. Calling it again re-stamps with a
// later time; it never fails once the message exists.
func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID) (time.Time, error) {
	return s.messageRepo.MarkRead(ctx, id)
}
