package session

import (
	"context"

	"github.com/amreinch/removebg-pro/internal/model"
)

// AuthAPI is the slice of the remote client the session manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Signup(ctx context.Context, email, password, fullName string) (string, error)
	Profile(ctx context.Context, token string) (*model.UserProfile, error)
}

// TokenStore persists the opaque session token across process restarts.
// A single active session at most; an empty token means logged out.
type TokenStore interface {
	Token() string
	SetToken(token string)
	ClearToken()
}
