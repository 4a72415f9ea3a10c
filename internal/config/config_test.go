package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SESSION_STORE", "REGISTRATION_SINK", "PAYMENT_SIMULATED_DELAY_MS", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, SessionStoreMemory, cfg.SessionStore)
	require.Equal(t, RegistrationSinkNone, cfg.RegistrationSink)
	require.Equal(t, 1500*time.Millisecond, cfg.PaymentDelay)
	require.Nil(t, cfg.AllowedOrigins)
	require.False(t, cfg.UsesRedis())
	require.False(t, cfg.UsesPostgres())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REGISTRATION_SINK", "queue")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("SUBMIT_RATE_LIMIT", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://sadriving.com , ,https://www.sadriving.com")

	cfg := Load()

	require.Equal(t, SessionStoreRedis, cfg.SessionStore)
	require.Equal(t, 5*time.Minute, cfg.SessionTTL)
	require.Equal(t, 10, cfg.SubmitRateLimit)
	require.Equal(t, []string{"https://sadriving.com", "https://www.sadriving.com"}, cfg.AllowedOrigins)
	require.True(t, cfg.UsesRedis())
	require.True(t, cfg.UsesPostgres())
}

func TestLoad_NonPositiveValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL_MINUTES", "0")
	t.Setenv("SUBMIT_RATE_LIMIT", "-3")

	cfg := Load()

	require.Equal(t, 60*time.Minute, cfg.SessionTTL)
	require.Equal(t, 10, cfg.SubmitRateLimit)
}

func TestConfig_Validate(t *testing.T) {
	t.Setenv("SESSION_STORE", "")
	t.Setenv("REGISTRATION_SINK", "")
	require.NoError(t, Load().Validate())

	tests := []struct {
		name  string
		store string
		sink  string
		want  string
	}{
		{"unknown store", "memcached", RegistrationSinkNone, "SESSION_STORE"},
		{"unknown sink", SessionStoreMemory, "kafka", "REGISTRATION_SINK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SessionStore: tt.store, RegistrationSink: tt.sink}
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := &Config{SessionStore: SessionStoreRedis, RegistrationSink: RegistrationSinkQueue}
	require.NoError(t, cfg.Validate())
}

func TestCacheKey_FormSessionKey(t *testing.T) {
	require.Equal(t, "registration:session:abc", CacheKey.FormSessionKey("abc"))
}

func TestWorkerKey(t *testing.T) {
	require.NotEqual(t, WorkerKey.PersistRegistrationsQueue, WorkerKey.FailedRegistrationsQueue)
}
