package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"courier-chat/config"
	"courier-chat/internal/domain/message"
	"courier-chat/internal/domain/user"
	"courier-chat/internal/middleware"
	"courier-chat/internal/services"
	courier_errors "courier-chat/pkg/errors"
	"courier-chat/pkg/logger"
)

// memoryStore implements repository.UserRepository and
// repository.MessageRepository in memory for handler tests.
type memoryStore struct {
	mu       sync.Mutex
	users    map[string]user.User
	messages map[uuid.UUID]message.Message
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[string]user.User),
		messages: make(map[uuid.UUID]message.Message),
	}
}

func (s *memoryStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return courier_errors.ErrUsernameTaken
	}
	u.JoinAt = time.Now()
	s.users[u.Username] = *u
	return nil
}

func (s *memoryStore) GetByUsername(ctx context.Context, username string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return user.User{}, courier_errors.ErrNotFound
	}
	return u, nil
}

func (s *memoryStore) UpdateLoginTimestamp(ctx context.Context, username string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return time.Time{}, courier_errors.ErrNotFound
	}
	now := time.Now()
	u.LastLoginAt.Time = now
	u.LastLoginAt.Valid = true
	s.users[username] = u
	return now, nil
}

func (s *memoryStore) GetAll(ctx context.Context) ([]user.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := make([]user.Profile, 0, len(s.users))
	for _, u := range s.users {
		profiles = append(profiles, u.Profile())
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].LastName != profiles[j].LastName {
			return profiles[i].LastName < profiles[j].LastName
		}
		return profiles[i].FirstName < profiles[j].FirstName
	})
	return profiles, nil
}

func (s *memoryStore) MessagesFrom(ctx context.Context, username string) ([]message.Outbound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]message.Outbound, 0)
	for _, m := range s.messages {
		if m.FromUsername != username {
			continue
		}
		out = append(out, message.Outbound{
			ID:     m.ID,
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
			ToUser: s.users[m.ToUsername].Profile(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	return out, nil
}

func (s *memoryStore) MessagesTo(ctx context.Context, username string) ([]message.Inbound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := make([]message.Inbound, 0)
	for _, m := range s.messages {
		if m.ToUsername != username {
			continue
		}
		in = append(in, message.Inbound{
			ID:       m.ID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
			FromUser: s.users[m.FromUsername].Profile(),
		})
	}
	sort.Slice(in, func(i, j int) bool { return in[i].SentAt.Before(in[j].SentAt) })
	return in, nil
}

func (s *memoryStore) CreateMessage(ctx context.Context, m *message.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[m.ToUsername]; !ok {
		return courier_errors.ErrNotFound
	}
	m.ID = uuid.New()
	m.SentAt = time.Now()
	s.messages[m.ID] = *m
	return nil
}

func (s *memoryStore) GetMessageByID(ctx context.Context, id uuid.UUID) (message.Detail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return message.Detail{}, courier_errors.ErrNotFound
	}
	return message.Detail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: s.users[m.FromUsername].Profile(),
		ToUser:   s.users[m.ToUsername].Profile(),
	}, nil
}

func (s *memoryStore) MarkMessageRead(ctx context.Context, id uuid.UUID) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return time.Time{}, courier_errors.ErrNotFound
	}
	now := time.Now()
	m.ReadAt.Time = now
	m.ReadAt.Valid = true
	s.messages[id] = m
	return now, nil
}

// messageRepoView adapts memoryStore to repository.MessageRepository.
type messageRepoView struct{ store *memoryStore }

func (v messageRepoView) Create(ctx context.Context, m *message.Message) error {
	return v.store.CreateMessage(ctx, m)
}

func (v messageRepoView) GetByID(ctx context.Context, id uuid.UUID) (message.Detail, error) {
	return v.store.GetMessageByID(ctx, id)
}

func (v messageRepoView) MarkRead(ctx context.Context, id uuid.UUID) (time.Time, error) {
	return v.store.MarkMessageRead(ctx, id)
}

type testApp struct {
	router *gin.Engine
	store  *memoryStore
	auth   *services.AuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemoryStore()
	cfg := &config.Config{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}

	authService := services.NewAuthService(store, nil, logger.NewNop(), cfg)
	userService := services.NewUserService(store, nil, logger.NewNop())
	messageService := services.NewMessageService(messageRepoView{store})

	authH := NewAuthHandler(authService)
	userH := NewUserHandler(userService)
	messageH := NewMessageHandler(messageService)

	r := gin.New()
	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", authH.Login)

	r.GET("/users", middleware.RequireLogin(authService), userH.List)
	r.GET("/users/:username", middleware.RequireSameUser(authService), userH.Get)
	r.GET("/users/:username/to", middleware.RequireSameUser(authService), userH.MessagesTo)
	r.GET("/users/:username/from", middleware.RequireSameUser(authService), userH.MessagesFrom)

	messages := r.Group("/messages", middleware.RequireLogin(authService))
	messages.GET("/:id", messageH.Get)
	messages.POST("", messageH.Send)
	messages.POST("/:id/read", messageH.MarkRead)

	return &testApp{router: r, store: store, auth: authService}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates a user directly in the store and returns a token, skipping
// the HTTP registration round trip.
func (a *testApp) register(t *testing.T, username, firstName, lastName string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw-"+username), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err = a.store.Create(context.Background(), &user.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        "+15550000000",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	token, err := a.auth.IssueToken(username)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
