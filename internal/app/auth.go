package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Auth owns the token lifecycle: set on login, cleared on logout.
type Auth struct {
	tokens  TokenStore
	gateway AdminGateway
}

func NewAuth(tokens TokenStore, gateway AdminGateway) *Auth {
	return &Auth{tokens: tokens, gateway: gateway}
}

// Login exchanges credentials for a token and stores it.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	token, err := a.gateway.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	log.Info().Str("user", username).Msg("logged in")
	return nil
}

// Logout drops the stored token.
func (a *Auth) Logout(ctx context.Context) error {
	if err := a.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	log.Info().Msg("logged out")
	return nil
}

// LoggedIn reports whether a token is stored.
func (a *Auth) LoggedIn(ctx context.Context) bool {
	return a.tokens.IsPresent(ctx)
}
