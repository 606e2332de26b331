package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quizflow/internal/domain"
)

// UserRepository persists admin accounts behind the auth facade.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// AuthService is the facade over account storage and token issuance. It
// gates the admin surfaces only; the renderer and quiz-taking flow stay
// public.
type AuthService struct {
	users      UserRepository
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(users UserRepository, secret []byte, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, secret: secret, sessionTTL: sessionTTL, now: time.Now}
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// SignUp registers a new admin account and returns a fresh session.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Session{}, err
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return domain.Session{}, err
	}
	return s.issueSession(user)
}

// SignIn authenticates by email and password. Failures surface as
// ErrInvalidCredentials regardless of which check failed.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	return s.issueSession(user)
}

// SignOut acknowledges a sign-out. Session tokens are stateless with a
// bounded lifetime and are not revoked server-side.
func (s *AuthService) SignOut(_ context.Context, _ string) error {
	return nil
}

// CurrentSession validates a token and returns the live session, rejecting
// tokens for accounts that no longer exist.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (domain.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrSessionExpired
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return domain.Session{}, domain.ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return domain.Session{}, domain.ErrSessionExpired
	}
	return domain.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ResetPassword issues a short-lived reset token for the account. There is
// no mail delivery here; the token is logged for the operator. Unknown
// emails are acknowledged without distinction so the endpoint does not leak
// which accounts exist.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	slog.Info("password reset token issued", slog.String("userId", user.ID), slog.String("token", token))
	return nil
}

func (s *AuthService) issueSession(user domain.User) (domain.Session, error) {
	expires := s.now().Add(s.sessionTTL)
	claims := sessionClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ExpiresAt: expires,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
