package cli

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"quizdesk/internal/app"
	"quizdesk/internal/config"
	"quizdesk/internal/infra/file"
	"quizdesk/internal/infra/memory"
	redisstore "quizdesk/internal/infra/redis"
	"quizdesk/internal/transport/rest"
)

// openTokenStore builds the configured store. The returned func releases
// whatever connection it holds.
func openTokenStore(cfg config.Config) (app.TokenStore, func(), error) {
	switch cfg.Token.Store {
	case config.StoreMemory:
		return memory.NewTokenStore(), func() {}, nil
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisstore.NewTokenStore(client, cfg.Redis.Namespace, app.TokenKey), func() { _ = client.Close() }, nil
	case config.StoreFile:
		return file.NewTokenStore(cfg.Token.Path, app.TokenKey), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store %q", cfg.Token.Store)
	}
}

// session bundles what most commands need.
type session struct {
	tokens app.TokenStore
	client *rest.Client
	close  func()
}

func openSession(opts *options) (*session, error) {
	tokens, closeFn, err := openTokenStore(opts.cfg)
	if err != nil {
		return nil, err
	}
	client := rest.New(rest.Config{BaseURL: opts.cfg.API.BaseURL, Timeout: opts.cfg.APITimeout()}, tokens)
	return &session{tokens: tokens, client: client, close: closeFn}, nil
}
