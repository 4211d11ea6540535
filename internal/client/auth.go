package client

import (
	"context"
	"errors"
	"sync"

	authentity "lead_backend/internal/feature/auth/domain/entity"
)

// AuthState is a snapshot of who is signed in.
// Loading is true until the first Hydrate finishes.
type AuthState struct {
	User            *authentity.PublicUser
	IsAuthenticated bool
	Loading         bool
}

// Auth tracks the authentication state of a Client.
type Auth struct {
	c *Client

	mu    sync.RWMutex
	state AuthState
}

// NewAuth binds an Auth to c. A 401 on any request made through c moves
// the state to unauthenticated.
func NewAuth(c *Client) *Auth {
	a := &Auth{c: c, state: AuthState{Loading: true}}
	c.mu.Lock()
	c.onUnauthorized = a.signedOut
	c.mu.Unlock()
	return a
}

// State returns the current snapshot.
func (a *Auth) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *Auth) set(s AuthState) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Auth) signedOut() { a.set(AuthState{}) }

func (a *Auth) signedIn(u *authentity.PublicUser) {
	a.set(AuthState{User: u, IsAuthenticated: true})
}

// Hydrate resolves a persisted token into a user. A missing or rejected
// token leaves the state unauthenticated without an error.
func (a *Auth) Hydrate(ctx context.Context) error {
	if !a.c.Session().Valid() {
		a.signedOut()
		return nil
	}
	u, err := a.c.Me(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil
		}
		a.set(AuthState{})
		return err
	}
	a.signedIn(u)
	return nil
}

func (a *Auth) Login(ctx context.Context, email, password string) error {
	s, err := a.c.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.signedIn(s.User)
	return nil
}

func (a *Auth) Register(ctx context.Context, name, email, password string) error {
	s, err := a.c.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	a.signedIn(s.User)
	return nil
}

func (a *Auth) Logout(ctx context.Context) error {
	err := a.c.Logout(ctx)
	a.signedOut()
	return err
}
