package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lead_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "generated-id"
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &entity.User{ID: id}, nil
}

// mockTokenIssuer is a mock implementation of TokenIssuer.
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID string) (string, entity.Token, error)
	ParseTokenFunc    func(token string) (entity.Token, error)
}

func (m *mockTokenIssuer) GenerateToken(userID string) (string, entity.Token, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "mock-jwt-token", entity.Token{ID: "jti-1", UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *mockTokenIssuer) ParseToken(token string) (entity.Token, error) {
	if m.ParseTokenFunc != nil {
		return m.ParseTokenFunc(token)
	}
	return entity.Token{ID: "jti-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// mockRevocations is a mock implementation of RevocationRepository.
type mockRevocations struct {
	revoked map[string]bool
	err     error
}

func (m *mockRevocations) Revoke(ctx context.Context, token entity.Token) error {
	if m.err != nil {
		return m.err
	}
	if m.revoked == nil {
		m.revoked = map[string]bool{}
	}
	m.revoked[token.ID] = true
	return nil
}

func (m *mockRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.revoked[tokenID], nil
}

func (m *mockRevocations) DeleteExpired(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return 2, nil
}

func newTestUsecase(users *mockUserRepository, tokens *mockTokenIssuer, revoked *mockRevocations) *authUsecase {
	return NewAuthUsecase(users, tokens, revoked).WithHashCost(bcrypt.MinCost)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Test@Example.COM "); got != "test@example.com" {
		t.Errorf("expected normalized email, got %q", got)
	}
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful register", func(t *testing.T) {
		var stored *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				if user.PasswordHash == "password123" {
					t.Errorf("password is not hashed")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				user.ID = "user-1"
				stored = user
				return nil
			},
		}

		uc := newTestUsecase(repo, &mockTokenIssuer{}, &mockRevocations{})
		res, err := uc.Register(ctx, " Test User ", "Test@Example.com", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Token != "mock-jwt-token" {
			t.Errorf("expected token, got %q", res.Token)
		}
		if stored.Email != "test@example.com" || stored.Name != "Test User" {
			t.Errorf("expected normalized user, got %+v", stored)
		}
		if res.User.Public().ID != "user-1" {
			t.Errorf("expected public user id user-1, got %q", res.User.ID)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		created := false
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: "existing", Email: email}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = true
				return nil
			},
		}

		uc := newTestUsecase(repo, &mockTokenIssuer{}, &mockRevocations{})
		_, err := uc.Register(ctx, "Dup", "dup@example.com", "password123")
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
		if created {
			t.Error("Create must not be called for a duplicate email")
		}
	})

	t.Run("duplicate detected by unique index", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := newTestUsecase(repo, &mockTokenIssuer{}, &mockRevocations{})
		_, err := uc.Register(ctx, "Race", "race@example.com", "password123")
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{}, &mockTokenIssuer{}, &mockRevocations{})
		_, err := uc.Register(ctx, "Short", "short@example.com", "12345")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("blank or long name", func(t *testing.T) {
		cases := []struct {
			name string
			want error
		}{
			{"", ErrNameRequired},
			{"   \t ", ErrNameRequired},
			{strings.Repeat("n", 51), ErrNameTooLong},
		}
		for _, tc := range cases {
			repo := &mockUserRepository{
				CreateFunc: func(ctx context.Context, user *entity.User) error {
					t.Errorf("Create must not be called for name %q", tc.name)
					return nil
				},
			}
			uc := newTestUsecase(repo, &mockTokenIssuer{}, &mockRevocations{})
			_, err := uc.Register(ctx, tc.name, "blank@example.com", "password123")
			if !errors.Is(err, tc.want) {
				t.Errorf("name %q: expected %v, got %v", tc.name, tc.want, err)
			}
		}
	})

	t.Run("name length counted after trimming", func(t *testing.T) {
		var stored *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				stored = user
				return nil
			},
		}
		uc := newTestUsecase(repo, &mockTokenIssuer{}, &mockRevocations{})
		name := strings.Repeat("é", 50)
		if _, err := uc.Register(ctx, "  "+name+"  ", "long@example.com", "password123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Name != name {
			t.Errorf("expected trimmed name, got %q", stored.Name)
		}
	})

	t.Run("repository lookup failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, expectedErr
			},
		}

		uc := newTestUsecase(repo, &mockTokenIssuer{}, &mockRevocations{})
		_, err := uc.Register(ctx, "Err", "err@example.com", "password123")
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	testUser := &entity.User{ID: "user-1", Name: "Test", Email: "test@example.com", PasswordHash: string(hashed)}

	findTestUser := func(ctx context.Context, email string) (*entity.User, error) {
		if email == testUser.Email {
			return testUser, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("successful login", func(t *testing.T) {
		tokens := &mockTokenIssuer{
			GenerateTokenFunc: func(userID string) (string, entity.Token, error) {
				if userID != testUser.ID {
					t.Errorf("unexpected userID %q", userID)
				}
				return "signed", entity.Token{ID: "jti", UserID: userID}, nil
			},
		}

		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, tokens, &mockRevocations{})
		res, err := uc.Login(ctx, "TEST@example.com ", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Token != "signed" || res.User != testUser {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("unknown email and wrong password share one error", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, &mockTokenIssuer{}, &mockRevocations{})

		_, errUnknown := uc.Login(ctx, "nobody@example.com", "password123")
		_, errWrong := uc.Login(ctx, "test@example.com", "wrong-password")

		if !errors.Is(errUnknown, ErrInvalidCredentials) || !errors.Is(errWrong, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials twice, got %v and %v", errUnknown, errWrong)
		}
		if errUnknown.Error() != errWrong.Error() {
			t.Errorf("messages differ: %q vs %q", errUnknown, errWrong)
		}
	})

	t.Run("token generation failure", func(t *testing.T) {
		tokens := &mockTokenIssuer{
			GenerateTokenFunc: func(userID string) (string, entity.Token, error) {
				return "", entity.Token{}, errors.New("failed to sign token")
			},
		}

		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, tokens, &mockRevocations{})
		_, err := uc.Login(ctx, "test@example.com", "password123")
		if err == nil {
			t.Fatal("expected error but got nil")
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("signing failure must not look like bad credentials")
		}
	})
}

func TestAuthUsecase_LogoutAndVerify(t *testing.T) {
	ctx := context.Background()
	claims := entity.Token{ID: "jti-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	tokens := &mockTokenIssuer{
		ParseTokenFunc: func(token string) (entity.Token, error) {
			if token != "good" {
				return entity.Token{}, errors.New("signature is invalid")
			}
			return claims, nil
		},
	}
	revoked := &mockRevocations{}
	uc := newTestUsecase(&mockUserRepository{}, tokens, revoked)

	got, err := uc.VerifyToken(ctx, "good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", got.UserID)
	}

	if _, err := uc.VerifyToken(ctx, "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	if err := uc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := uc.VerifyToken(ctx, "good"); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("expected ErrTokenRevoked after logout, got %v", err)
	}
}

func TestAuthUsecase_VerifyToken_DeletedUser(t *testing.T) {
	repo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return nil, ErrUserNotFound
		},
	}
	uc := newTestUsecase(repo, &mockTokenIssuer{}, &mockRevocations{})

	if _, err := uc.VerifyToken(context.Background(), "any"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthUsecase_Logout_ExpiredTokenIsNoop(t *testing.T) {
	revoked := &mockRevocations{err: errors.New("store down")}
	uc := newTestUsecase(&mockUserRepository{}, &mockTokenIssuer{}, revoked)

	err := uc.Logout(context.Background(), entity.Token{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	if err != nil {
		t.Errorf("expected nil for expired token, got %v", err)
	}
}

func TestAuthUsecase_Me(t *testing.T) {
	uc := newTestUsecase(&mockUserRepository{}, &mockTokenIssuer{}, &mockRevocations{})

	u, err := uc.Me(context.Background(), "user-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "user-9" {
		t.Errorf("expected user-9, got %q", u.ID)
	}
}

func TestAuthUsecase_PurgeRevocations(t *testing.T) {
	uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenIssuer{}, &mockRevocations{})
	n, err := uc.PurgeRevocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 purged, got %d", n)
	}

	failing := NewAuthUsecase(&mockUserRepository{}, &mockTokenIssuer{}, &mockRevocations{err: errors.New("db down")})
	if _, err := failing.PurgeRevocations(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
}
