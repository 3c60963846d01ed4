package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte(`
relays:
  - wss://relay.one
  - wss://relay.two
query_timeout_ms: 1500
database: /var/lib/surety/cache.db
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"wss://relay.one", "wss://relay.two"}, cfg.Relays)
	assert.Equal(t, 1500, cfg.QueryTimeoutMS)
	assert.Equal(t, "/var/lib/surety/cache.db", cfg.Database)
	assert.Equal(t, 1500*time.Millisecond, cfg.QueryTimeout())
}

func TestFromYAMLDefaultsTimeout(t *testing.T) {
	cfg, err := FromYAML([]byte("database: cache.db\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultQueryTimeoutMS, cfg.QueryTimeoutMS)
	assert.Empty(t, cfg.Relays)
}

func TestFromYAMLRejectsUnknownFields(t *testing.T) {
	_, err := FromYAML([]byte("database: cache.db\nrelay: wss://typo\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestFromYAMLRequiresDatabase(t *testing.T) {
	_, err := FromYAML([]byte("relays: [wss://relay.one]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surety.yml")
	require.NoError(t, os.WriteFile(path, []byte("database: cache.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cache.db", cfg.Database)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
