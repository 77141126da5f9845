// Package cache keeps recently decorated user profiles in redis so history
// reads do not hit the directory for every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/s21platform/dialog-service/internal/config"
	"github.com/s21platform/dialog-service/internal/model"
)

const userInfoTTL = 5 * time.Minute

type Client struct {
	client *redis.Client
}

func New(cfg *config.Config) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
		}),
	}
}

func (c *Client) Close() {
	_ = c.client.Close()
}

func userKey(userID string) string {
	return "dialog:user:" + userID
}

// GetUserInfo returns the cached profile, or nil without error on a miss.
func (c *Client) GetUserInfo(ctx context.Context, userID string) (*model.UserInfo, error) {
	data, err := c.client.Get(ctx, userKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read user cache: %w", err)
	}

	var info model.UserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}

	return &info, nil
}

func (c *Client) SetUserInfo(ctx context.Context, info model.UserInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to encode user for cache: %w", err)
	}

	if err := c.client.Set(ctx, userKey(info.ID.String()), data, userInfoTTL).Err(); err != nil {
		return fmt.Errorf("failed to write user cache: %w", err)
	}

	return nil
}

func (c *Client) DropUserInfo(ctx context.Context, userID string) error {
	return c.client.Del(ctx, userKey(userID)).Err()
}
