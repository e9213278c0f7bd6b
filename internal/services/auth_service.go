package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"courier-chat/config"
	"courier-chat/internal/domain/user"
	"courier-chat/internal/redis"
	"courier-chat/internal/repository"
	courier_errors "courier-chat/pkg/errors"
	"courier-chat/pkg/logger"
)

// AuthService owns registration, credential checks, and token issuance.
type AuthService struct {
	userRepo   repository.UserRepository
	cache      *redis.CacheStore
	logger     *logger.Logger
	jwtSecret  []byte
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, cache *redis.CacheStore, l *logger.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cache:      cache,
		logger:     l,
		jwtSecret:  []byte(cfg.JWTSecret),
		bcryptCost: cfg.BcryptCost,
	}
}

type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Claims is the token payload. No expiry claim is set: tokens are valid until
// the signing secret rotates. This mirrors the existing API contract and is a
// known limitation, not an oversight.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Register creates a user with a bcrypt-hashed password and returns a signed
// token for the new account. The last-login timestamp is written asynchronously
// once the account exists.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := validateRegister(in); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", err
	}

	newUser := &user.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return "", err
	}

	token, err := s.IssueToken(in.Username)
	if err != nil {
		return "", err
	}

	go s.touchLoginTimestamp(in.Username)

	return token, nil
}

// Login checks the candidate password against the stored hash and returns a
// signed token. Unknown usernames and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", courier_errors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(username)
	if err != nil {
		return "", err
	}

	go s.touchLoginTimestamp(username)

	return token, nil
}

// Authenticate reports whether the password matches the stored hash. A missing
// account surfaces as ErrInvalidCredentials, indistinguishable from a wrong
// password at the API boundary.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, courier_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, courier_errors.ErrNotFound) {
			return false, courier_errors.ErrInvalidCredentials
		}
		return false, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// IssueToken signs a token carrying the username.
func (s *AuthService) IssueToken(username string) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken validates the signature and extracts the username.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", courier_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, courier_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", courier_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Username == "" {
		return "", courier_errors.ErrUnauthorized
	}

	return claims.Username, nil
}

// touchLoginTimestamp records the login time after the fact. Token issuance
// does not wait on it; a failed write is logged, never surfaced.
func (s *AuthService) touchLoginTimestamp(username string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.userRepo.UpdateLoginTimestamp(ctx, username); err != nil {
		if s.logger != nil {
			s.logger.Errorf("failed to update login timestamp for %s: %s", username, err)
		}
		return
	}

	if s.cache != nil {
		if err := s.cache.InvalidateProfile(ctx, username); err != nil && s.logger != nil {
			s.logger.Errorf("failed to invalidate profile cache for %s: %s", username, err)
		}
	}
}

func validateRegister(in RegisterInput) error {
	if in.Username == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.Phone == "" {
		return courier_errors.ErrInvalidInput
	}
	return nil
}

// HTTPStatus maps a domain error to the status code it is reported with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, courier_errors.ErrInvalidInput),
		errors.Is(err, courier_errors.ErrUsernameTaken),
		errors.Is(err, courier_errors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, courier_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, courier_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, courier_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var usernameKey ctxKey = "username"

// WithUsernameContext attaches the authenticated username to the context.
func WithUsernameContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(usernameKey)
	if value == nil {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}
