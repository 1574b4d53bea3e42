package auth

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func admin() *Identity {
	return &Identity{UserID: 1, Role: models.RoleAdmin}
}

func user() *Identity {
	return &Identity{UserID: 2, Role: models.RoleUser}
}

func TestEvaluateDecisionTable(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		identity *Identity
		allow    bool
		redirect string
	}{
		{"auth anonymous", "/auth/signin", nil, true, ""},
		{"auth admin", "/auth/signin", admin(), false, "/admin"},
		{"auth user", "/auth/signin", user(), false, "/"},

		{"admin anonymous", "/admin/orders", nil, false, "/auth/signin"},
		{"admin admin", "/admin/orders", admin(), true, ""},
		{"admin user", "/admin/orders", user(), false, "/"},

		{"dashboard anonymous", "/dashboard", nil, false, "/auth/signin"},
		{"dashboard admin", "/dashboard/stats", admin(), false, "/admin"},
		{"dashboard user", "/dashboard/orders", user(), true, ""},

		{"public anonymous", "/products/42", nil, true, ""},
		{"public admin", "/products/42", admin(), true, ""},
		{"public user", "/", user(), true, ""},

		{"bare admin prefix", "/admin", nil, false, "/auth/signin"},
		{"bare auth prefix", "/auth", admin(), false, "/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Evaluate(tt.path, tt.identity)

			assert.Equal(t, tt.allow, decision.Allow)
			assert.Equal(t, tt.redirect, decision.RedirectTo)
		})
	}
}

func TestEvaluatePrefixBoundaries(t *testing.T) {
	// /administrators is not under /admin
	assert.True(t, Evaluate("/administrators", nil).Allow)
	assert.True(t, Evaluate("/authors", admin()).Allow)
	assert.True(t, Evaluate("/dashboards-export", admin()).Allow)
}

func TestIdentityRoleChecks(t *testing.T) {
	var anon *Identity

	assert.False(t, anon.IsAdmin())
	assert.False(t, anon.IsUser())
	assert.True(t, admin().IsAdmin())
	assert.False(t, admin().IsUser())
	assert.True(t, user().IsUser())
}
