package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewManager checks that the Manager keeps its configuration.
func TestNewManager(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour},
		{"seven days", "secret", 7 * 24 * time.Hour},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewManager(tt.secret, tt.expiration)

			if string(m.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(m.secret))
			}
			if m.Expiration() != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, m.Expiration())
			}
		})
	}
}

// TestManager_GenerateToken checks the signed token carries sub, jti, iat and exp.
func TestManager_GenerateToken(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", 2*time.Hour)
	before := time.Now().Truncate(time.Second)
	tokenStr, claims, err := m.GenerateToken("user-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token")
	}
	if claims.UserID != "user-42" || claims.ID == "" {
		t.Errorf("unexpected claims %+v", claims)
	}

	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("failed to parse token: %v", err)
	}

	mc := token.Claims.(jwt.MapClaims)
	if mc["sub"] != "user-42" {
		t.Errorf("expected sub user-42, got %v", mc["sub"])
	}
	if mc["jti"] != claims.ID {
		t.Errorf("expected jti %q, got %v", claims.ID, mc["jti"])
	}
	exp := int64(mc["exp"].(float64))
	if want := before.Add(2 * time.Hour).Unix(); exp < want || exp > want+2 {
		t.Errorf("exp %d not near %d", exp, want)
	}
}

// TestManager_GenerateToken_UniqueIDs checks each token gets its own jti.
func TestManager_GenerateToken_UniqueIDs(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", time.Hour)
	_, a, _ := m.GenerateToken("u")
	_, b, _ := m.GenerateToken("u")

	if a.ID == b.ID {
		t.Error("expected different token IDs")
	}
}

// TestManager_ParseToken covers valid and rejected tokens.
func TestManager_ParseToken(t *testing.T) {
	t.Parallel()

	const secret = "parse-secret"
	m := NewManager(secret, time.Hour)
	valid, issued, _ := m.GenerateToken("user-1")

	expired, _, _ := NewManager(secret, -time.Hour).GenerateToken("user-1")
	wrongKey, _, _ := NewManager("other-secret", time.Hour).GenerateToken("user-1")
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).SignedString([]byte(secret))
	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))

	got, err := m.ParseToken(valid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "user-1" || got.ID != issued.ID {
		t.Errorf("unexpected claims %+v", got)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"expired", expired},
		{"wrong secret", wrongKey},
		{"missing exp", noExp},
		{"missing sub", noSub},
		{"other algorithm", hs512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ParseToken(tt.token); err == nil {
				t.Error("expected error")
			}
		})
	}
}
