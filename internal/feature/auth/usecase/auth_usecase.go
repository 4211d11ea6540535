package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"lead_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the shortest accepted password.
	minPasswordLength = 6

	// maxNameLength is the longest accepted display name, in characters.
	maxNameLength = 50

	// dummyHash keeps Login's timing the same whether or not the email exists.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	// It returns ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// TokenIssuer signs and parses bearer tokens.
// Implemented by platform/jwt.
type TokenIssuer interface {
	// GenerateToken returns a signed token for the user and its claims.
	GenerateToken(userID string) (string, entity.Token, error)

	// ParseToken checks signature and expiry and returns the claims.
	ParseToken(token string) (entity.Token, error)
}

// AuthResult is what register and login hand back to the transport.
type AuthResult struct {
	Token  string
	Claims entity.Token
	User   *entity.User
}

// authUsecase implements the credential service.
type authUsecase struct {
	users   UserRepository
	tokens  TokenIssuer
	revoked RevocationRepository
	cost    int
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, revoked RevocationRepository) *authUsecase {
	return &authUsecase{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		cost:    bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (u *authUsecase) WithHashCost(cost int) *authUsecase {
	u.cost = cost
	return u
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName trims name and checks it is 1 to maxNameLength characters.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", ErrNameRequired
	case utf8.RuneCountInString(name) > maxNameLength:
		return "", ErrNameTooLong
	}
	return name, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates an account and signs the user in.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)

	// The unique index is the real guard; this check gives a clean error in the common case.
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issue(user)
}

// Login authenticates by email and password.
// Unknown email and wrong password return the same ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if user != nil {
		passwordHash = user.PasswordHash
	}

	// Always compare so a missing user costs the same as a wrong password.
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if user == nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issue(user)
}

func (u *authUsecase) issue(user *entity.User) (*AuthResult, error) {
	token, claims, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, Claims: claims, User: user}, nil
}

// Me returns the user behind an authenticated request.
func (u *authUsecase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// Logout revokes the presented token for the rest of its lifetime.
func (u *authUsecase) Logout(ctx context.Context, token entity.Token) error {
	if token.ID == "" || token.IsExpired() {
		return nil
	}
	return u.revoked.Revoke(ctx, token)
}

// VerifyToken resolves a bearer token to its claims.
// Any failure is reported as ErrInvalidToken or ErrTokenRevoked; store errors pass through.
func (u *authUsecase) VerifyToken(ctx context.Context, token string) (entity.Token, error) {
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return entity.Token{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	revoked, err := u.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return entity.Token{}, err
	}
	if revoked {
		return entity.Token{}, ErrTokenRevoked
	}

	if _, err := u.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Warn("token for unknown user", "user_id", claims.UserID)
			return entity.Token{}, ErrInvalidToken
		}
		return entity.Token{}, err
	}

	return claims, nil
}

// PurgeRevocations drops revocation entries whose tokens have expired.
func (u *authUsecase) PurgeRevocations(ctx context.Context) (int64, error) {
	n, err := u.revoked.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge revocations: %w", err)
	}
	return n, nil
}
