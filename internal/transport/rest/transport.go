package rest

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"quizdesk/internal/app"
)

// bearerTransport attaches the stored token to every request and drops it
// when the backend answers 401. All typed calls go through it, so no call
// site has to handle the expiry bookkeeping.
type bearerTransport struct {
	tokens app.TokenStore
	next   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	token, ok, err := t.tokens.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("token store read failed, sending request unauthenticated")
	}
	if ok {
		req = req.Clone(ctx)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().Str("path", req.URL.Path).Msg("authorization rejected, clearing token")
		if err := t.tokens.Clear(ctx); err != nil {
			log.Warn().Err(err).Msg("clear token failed")
		}
	}
	return resp, nil
}
