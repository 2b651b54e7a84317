package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"backend_base_url": "http://backend.example:9000",
		"storage":          "s3",
		"s3_bucket":        "contacts-prod",
		"latency_max":      "300ms",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "http://backend.example:9000", cfg.BackendBaseURL)
		assert.Equal(t, StorageS3, cfg.Storage)
		assert.Equal(t, "contacts-prod", cfg.S3Bucket)
		assert.Equal(t, 300*time.Millisecond, cfg.LatencyMax)
		// Absent keys keep their defaults.
		assert.Equal(t, "rolodex.db", cfg.SQLiteDSN)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			BackendBaseURL: "http://defaults.example:1234",
			LatencyMax:     42 * time.Second,
		}
		parseJson(cfg)

		assert.Equal(t, "http://defaults.example:1234", cfg.BackendBaseURL)
		assert.Equal(t, 42*time.Second, cfg.LatencyMax)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
