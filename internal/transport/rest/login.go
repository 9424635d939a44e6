package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"quizdesk/internal/domain"
)

const loginPath = "/api/auth/login"

// Login runs the OAuth2 password grant against the backend and returns the
// issued access token. The token is not stored here.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + loginPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) {
			status := http.StatusBadRequest
			if rErr.Response != nil {
				status = rErr.Response.StatusCode
			}
			return "", &domain.APIError{Status: status, Detail: errorDetail(rErr.Body)}
		}
		return "", fmt.Errorf("%w: login: %v", domain.ErrTransport, err)
	}
	return tok.AccessToken, nil
}
