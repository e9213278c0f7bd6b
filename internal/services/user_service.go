package services

import (
	"context"
	"time"

	"courier-chat/internal/domain/message"
	"courier-chat/internal/domain/user"
	"courier-chat/internal/redis"
	"courier-chat/internal/repository"
	"courier-chat/pkg/logger"
)

// UserService is the user directory: listing, profile lookup, and the per-user
// inbound/outbound message views.
type UserService struct {
	userRepo repository.UserRepository
	cache    *redis.CacheStore
	logger   *logger.Logger
}

func NewUserService(userRepo repository.UserRepository, cache *redis.CacheStore, l *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    cache,
		logger:   l,
	}
}

// ProfileDetail is a full profile including timestamps.
type ProfileDetail struct {
	Username    string
	FirstName   string
	LastName    string
	Phone       string
	JoinAt      time.Time
	LastLoginAt *time.Time
}

// All returns every user's public profile, ordered by last name then first name.
func (s *UserService) All(ctx context.Context) ([]user.Profile, error) {
	return s.userRepo.GetAll(ctx)
}

// Get returns the full profile for a username. Profiles are served from the
// cache when present; the cache is best-effort and misses fall through to the
// store.
func (s *UserService) Get(ctx context.Context, username string) (ProfileDetail, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProfile(ctx, username)
		if err != nil && s.logger != nil {
			s.logger.Errorf("profile cache read for %s: %s", username, err)
		}
		if cached != nil {
			return ProfileDetail{
				Username:    cached.Username,
				FirstName:   cached.FirstName,
				LastName:    cached.LastName,
				Phone:       cached.Phone,
				JoinAt:      cached.JoinAt,
				LastLoginAt: cached.LastLoginAt,
			}, nil
		}
	}

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return ProfileDetail{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetProfileFromEntity(ctx, u); err != nil && s.logger != nil {
			s.logger.Errorf("profile cache write for %s: %s", username, err)
		}
	}

	detail := ProfileDetail{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		JoinAt:    u.JoinAt,
	}
	if u.LastLoginAt.Valid {
		t := u.LastLoginAt.Time
		detail.LastLoginAt = &t
	}
	return detail, nil
}

// MessagesFrom returns messages the user sent, each with the recipient profile.
func (s *UserService) MessagesFrom(ctx context.Context, username string) ([]message.Outbound, error) {
	return s.userRepo.MessagesFrom(ctx, username)
}

// MessagesTo returns messages the user received, each with the sender profile.
func (s *UserService) MessagesTo(ctx context.Context, username string) ([]message.Inbound, error) {
	return s.userRepo.MessagesTo(ctx, username)
}
