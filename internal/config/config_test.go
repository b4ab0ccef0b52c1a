package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "repairdesk", cfg.JWT.Issuer)
	assert.Equal(t, []string{"andhra pradesh", "ap"}, cfg.Billing.HomeStates)
	assert.InDelta(t, 18.0, cfg.Billing.DefaultGSTRate, 0.0001)
	assert.Equal(t, 100000, cfg.Numbering.MaxCandidates)
	assert.Equal(t, 5, cfg.Numbering.WriteRetries)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Len(t, cfg.CORS.AllowedOrigins, 3)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REPAIRDESK_DB_HOST", "db.internal")
	t.Setenv("REPAIRDESK_DB_PORT", "6543")
	t.Setenv("REPAIRDESK_BILLING_HOME_STATES", "Telangana, TS ,")
	t.Setenv("REPAIRDESK_NUMBERING_WRITE_RETRIES", "9")
	t.Setenv("REPAIRDESK_QUOTATION_WORKER_POLL_INTERVAL_SECS", "60")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, []string{"Telangana", "TS"}, cfg.Billing.HomeStates)
	assert.Equal(t, 9, cfg.Numbering.WriteRetries)
	assert.Equal(t, 60, cfg.QuotationWorker.PollIntervalSecs)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REPAIRDESK_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)
}

func TestLoad_ExplicitPortWins(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REPAIRDESK_SERVER_PORT", ":7000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_RejectsBadNumbering(t *testing.T) {
	t.Setenv("REPAIRDESK_NUMBERING_WRITE_RETRIES", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositivePollInterval(t *testing.T) {
	for _, v := range []string{"0", "-30"} {
		t.Setenv("REPAIRDESK_QUOTATION_WORKER_POLL_INTERVAL_SECS", v)

		_, err := config.Load()
		assert.Error(t, err, v)
	}
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", db.DSN())
}
