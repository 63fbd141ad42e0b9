package cartledger

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists a cart under one Redis key and publishes a message on
// the companion channel after every write, so other processes holding the
// same cart can react the way a second browser tab reacts to a storage
// event.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *RedisStore) Save(ctx context.Context, payload []byte) error {
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, s.changeChannel(), "changed").Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, s.changeChannel(), "cleared").Err()
}

// Watch invokes fn whenever another process writes this cart. It blocks
// until ctx is cancelled.
func (s *RedisStore) Watch(ctx context.Context, fn func()) error {
	sub := s.client.Subscribe(ctx, s.changeChannel())
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			fn()
		}
	}
}

func (s *RedisStore) changeChannel() string {
	return s.key + ":changed"
}
