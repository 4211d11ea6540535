package entity

import "time"

// Token describes an issued bearer token by its claims.
type Token struct {
	ID        string    // jti, unique per issued token
	UserID    string    // sub
	IssuedAt  time.Time // iat
	ExpiresAt time.Time // exp
}

// IsExpired returns true if the token has passed its expiration time.
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// TTL returns the time remaining until expiry, or zero once expired.
func (t *Token) TTL() time.Duration {
	if d := time.Until(t.ExpiresAt); d > 0 {
		return d
	}
	return 0
}
