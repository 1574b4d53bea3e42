package auth

import (
	"context"

	"marketplace-service/internal/models"
	"marketplace-service/internal/redisclient"
)

// Identity is the capability carried by an authenticated request: who the
// caller is and which role they hold. It is resolved once at the request
// boundary and passed explicitly; nothing reads it from global state.
// A nil *Identity means anonymous.
type Identity struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity holds the ADMIN role
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == models.RoleAdmin
}

// IsUser reports whether the identity holds the USER role
func (id *Identity) IsUser() bool {
	return id != nil && id.Role == models.RoleUser
}

// Resolver turns opaque session tokens into identities. The session
// provider itself (issuance, credentials) lives outside this service;
// we only read what it wrote.
type Resolver struct {
	redis *redisclient.Client
}

// NewResolver creates a session resolver backed by Redis
func NewResolver(redis *redisclient.Client) *Resolver {
	return &Resolver{redis: redis}
}

// Resolve looks up the session for a token. An empty or unknown token
// yields an anonymous identity (nil) without error; only infrastructure
// failures are reported.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := r.redis.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	return &Identity{UserID: sess.UserID, Role: sess.Role}, nil
}
