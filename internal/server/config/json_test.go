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

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"http_addr":      ":9090",
		"database_dsn":   "postgres://db/civic",
		"token_validity": "2h",
		"cors_origins":   []string{"http://localhost:3000"},
		"s3_bucket":      "pics",
		"s3_public_url":  "https://cdn.example.com",
	})

	t.Run("overlays present keys", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{GRPCAddr: ":1", SecretKey: "keep"}
		parseJson(cfg)

		assert.Equal(t, ":9090", cfg.HTTPAddr)
		assert.Equal(t, "postgres://db/civic", cfg.DatabaseDSN)
		assert.Equal(t, 2*time.Hour, cfg.TokenValidity)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.CorsOrigins)
		assert.Equal(t, "pics", cfg.S3Bucket)
		assert.Equal(t, "https://cdn.example.com", cfg.S3PublicURL)
		assert.Equal(t, ":1", cfg.GRPCAddr, "absent keys keep their value")
		assert.Equal(t, "keep", cfg.SecretKey)
	})

	t.Run("no flag, no change", func(t *testing.T) {
		os.Args = []string{"testbin"}
		cfg := &Config{HTTPAddr: ":1"}
		parseJson(cfg)
		assert.Equal(t, ":1", cfg.HTTPAddr)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "nope.json")}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("bad json panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		os.Args = []string{"testbin", "-c", bad}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}
