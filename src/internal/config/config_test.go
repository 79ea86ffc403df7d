package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "1123", cfg.AdminPin)
	assert.Equal(t, LedgerStoreFile, cfg.LedgerStore)
	assert.Equal(t, 15*time.Second, cfg.GenAITimeout)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "0 0 7 * * *", cfg.DigestSchedule)
	assert.True(t, cfg.Offline(), "missing API key means offline")
	assert.Contains(t, cfg.DatabaseDSN, "dbname=somaluganda_remit_db")
	assert.Contains(t, cfg.DatabaseDSN, "sslmode=disable")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "admin_pin: \"4455\"\nledger_store: postgres\ngenai_timeout_seconds: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LEDGER_STORE", "MONGO")
	t.Setenv("GENAI_API_KEY", "key")
	t.Setenv("OFFLINE_MODE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4455", cfg.AdminPin)
	assert.Equal(t, LedgerStoreMongo, cfg.LedgerStore)
	assert.Equal(t, 5*time.Second, cfg.GenAITimeout)
	assert.False(t, cfg.Offline())
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("LEDGER_STORE", "redis")

	_, err := Load()
	require.Error(t, err)
}

func TestNormalizeConnectionString(t *testing.T) {
	got := normalizeConnectionString("Host=db;Port=5432;Database=remit;Username=app;Password=secret;SslMode=require")
	assert.Equal(t, "host=db port=5432 dbname=remit user=app password=secret sslmode=require", got)

	url := "postgres://app:secret@db:5432/remit?sslmode=disable"
	assert.Equal(t, url, normalizeConnectionString(url))
}
