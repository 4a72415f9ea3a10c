package database

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresPool_RequiresURL(t *testing.T) {
	cfg := &config.Config{RegistrationSink: config.RegistrationSinkPostgres}

	_, err := NewPostgresPool(context.Background(), cfg, zerolog.Nop())
	require.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestNewRedisClient_RejectsBadURL(t *testing.T) {
	cfg := &config.Config{RedisURL: "not-a-redis-url"}

	_, err := NewRedisClient(context.Background(), cfg, zerolog.Nop())
	require.ErrorContains(t, err, "parse redis URL")
}
