// Package supabase verifies admin credentials against Supabase Auth.
package supabase

import (
	"context"

	"github.com/LCtech96/EmilyBoutique/internal/config"

	"github.com/cockroachdb/errors"
	"github.com/nedpals/supabase-go"
)

type AuthClient struct {
	client *supabase.Client
}

func NewAuthClient(cfg config.SupabaseConfig) *AuthClient {
	return &AuthClient{client: supabase.CreateClient(cfg.URL, cfg.AnonKey)}
}

// VerifyPassword signs in with email/password and returns the Supabase user id.
func (a *AuthClient) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	details, err := a.client.Auth.SignIn(ctx, supabase.UserCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", errors.Wrap(err, "supabase sign in")
	}
	return details.User.ID, nil
}
