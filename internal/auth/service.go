package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/andeshop/tienda-api/internal/common"
)

const defaultAccessTTL = 15 * time.Minute

// User is the safe subset of the user model returned to clients.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// Credential pairs a user with their stored password hash for login checks.
type Credential struct {
	User
	PasswordHash string
}

// Store persists and retrieves user accounts.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (User, error)
	UserByEmail(ctx context.Context, email string) (Credential, error)
	UserByID(ctx context.Context, id uuid.UUID) (User, error)
}

// LoginResult bundles token material returned after a successful login.
type LoginResult struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"access_token"`
	AccessExpiry time.Time `json:"access_expires_at"`
}

// Service coordinates registration, login and token handling.
type Service struct {
	store     Store
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
	signer    jwa.SignatureAlgorithm
	validator TokenValidator
	issuer    string
	audience  string
}

// Config configures the auth service.
type Config struct {
	Store          Store
	Secret         string
	AccessTokenTTL time.Duration
	Issuer         string
	Audience       string
	ClockSkew      time.Duration
}

// NewService constructs a Service with sane defaults.
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("auth: store is required")
	}
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "tienda-api"
	}
	audience := strings.TrimSpace(cfg.Audience)
	if audience == "" {
		audience = "tienda-frontend"
	}
	return &Service{
		store:     cfg.Store,
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
		signer:    jwa.HS256,
		validator: TokenValidator{
			Issuer:    issuer,
			Audience:  audience,
			ClockSkew: cfg.ClockSkew,
			Algorithm: jwa.HS256,
		},
		issuer:   issuer,
		audience: audience,
	}, nil
}

// WithNow allows tests to override the time provider.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Register creates a new user with the supplied credentials.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	created, err := s.store.CreateUser(ctx, strings.TrimSpace(name), normalizedEmail, hash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, common.NewAppError("EMAIL_ALREADY_USED", "email is already registered", http.StatusConflict, err)
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	invalid := common.NewAppError("INVALID_CREDENTIALS", "invalid email or password", http.StatusUnauthorized, nil)
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	if normalizedEmail == "" || password == "" {
		return LoginResult{}, invalid
	}
	cred, err := s.store.UserByEmail(ctx, normalizedEmail)
	if err != nil {
		return LoginResult{}, invalid
	}
	ok, err := argon2id.ComparePasswordAndHash(password, cred.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, invalid
	}
	token, expiry, err := s.issueAccessToken(cred.User)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{User: cred.User, AccessToken: token, AccessExpiry: expiry}, nil
}

// UserByID loads the safe user record for the given identifier.
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.store.UserByID(ctx, id)
}

// HasRole reports whether the identified user carries the given role.
func (s *Service) HasRole(ctx context.Context, id uuid.UUID, role string) (bool, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		return false, err
	}
	return slices.Contains(user.Roles, role), nil
}

// ParseAccessToken validates a token and returns the subject user id.
func (s *Service) ParseAccessToken(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", common.NewAppError("UNAUTHORIZED", "token is empty", http.StatusUnauthorized, nil)
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(s.signer, s.secret), jwt.WithValidate(false))
	if err != nil {
		return "", common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
	}
	if err := s.validator.Validate(parsed, s.signer, s.now()); err != nil {
		return "", common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
	}
	subject := strings.TrimSpace(parsed.Subject())
	if subject == "" {
		return "", common.NewAppError("UNAUTHORIZED", "token missing subject", http.StatusUnauthorized, nil)
	}
	return subject, nil
}

func (s *Service) issueAccessToken(u User) (string, time.Time, error) {
	now := s.now()
	expiry := now.Add(s.accessTTL)
	token, err := jwt.NewBuilder().
		Issuer(s.issuer).
		Audience([]string{s.audience}).
		Subject(u.ID.String()).
		IssuedAt(now).
		Expiration(expiry).
		Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(s.signer, s.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiry, nil
}
