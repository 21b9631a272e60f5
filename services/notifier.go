package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"blog-service/models"
)

// Publisher is the outbound notification sink. Publishing is always
// best-effort: the notification record in the store is the source of truth,
// the channel only wakes up connected clients.
type Publisher interface {
	Publish(ctx context.Context, n models.Notification) error
}

// RedisPublisher fans notifications out on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, data).Err()
}
