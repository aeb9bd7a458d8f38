package cache

import (
	"context"
	"testing"

	"dish-quiz/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_RequiresAddress(t *testing.T) {
	client, err := NewRedisClient(context.Background(), config.RedisConfig{})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNoAddress)
}

func TestNewRedisClient_UnreachableServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, err := NewRedisClient(ctx, config.RedisConfig{Address: "127.0.0.1:1"})
	assert.Nil(t, client)
	assert.Error(t, err)
}
