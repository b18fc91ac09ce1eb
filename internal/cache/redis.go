package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/config"
)

// Client mirrors coarse presence state into Redis so processes other than
// the one holding the websocket can answer "is this user online".
type Client struct {
	Cli *redis.Client
}

func NewRedis(cfg *config.Config) *Client {
	r := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis ping")
	}
	return &Client{Cli: r}
}

func (c *Client) Close() error {
	return c.Cli.Close()
}

func (c *Client) SetPresence(ctx context.Context, userID string, online bool) error {
	key := "presence:" + userID
	val := "0"
	if online {
		val = "1"
	}
	return c.Cli.Set(ctx, key, val, 0).Err()
}

func (c *Client) GetPresence(ctx context.Context, userID string) (bool, error) {
	s, err := c.Cli.Get(ctx, "presence:"+userID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s == "1", nil
}
