package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", ":9090", "-g", ":9091", "-d", "postgres://db", "-s", "k", "-t", "30",
				"-o", "http://x,http://y", "-u", "u", "-p", "p", "-b", "bkt", "-r", "eu", "-e", "http://s3", "-w", "http://cdn"},
			expected: &Config{
				HTTPAddr:       ":9090",
				GRPCAddr:       ":9091",
				DatabaseDSN:    "postgres://db",
				SecretKey:      "k",
				TokenValidity:  30 * time.Minute,
				CorsOrigins:    []string{"http://x", "http://y"},
				S3RootUser:     "u",
				S3RootPassword: "p",
				S3Bucket:       "bkt",
				S3Region:       "eu",
				S3BaseEndpoint: "http://s3",
				S3PublicURL:    "http://cdn",
			},
		},
		{
			name: "config and envfile flags are ignored",
			args: []string{"cmd", "-c", "x.json", "-envfile", ".env", "-a", ":1"},
			expected: &Config{
				HTTPAddr:    ":1",
				CorsOrigins: []string{},
			},
		},
		{name: "incorrect token validity", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := &Config{}

			if tt.expectPanic {
				assert.Panics(t, func() { parseFlags(cfg) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg) })
			if diff := cmp.Diff(tt.expected, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
