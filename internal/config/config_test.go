package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeops/internal/domain/quantity"
)

func setRequired(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://inventory.example.com/api/")
	t.Setenv("SESSION_SECRET", "dev-secret")
	t.Setenv("APP_ENV", "development")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://inventory.example.com/api", cfg.BackendBaseURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, quantity.DefaultLimits(), cfg.Limits())
	assert.True(t, cfg.Development())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("BILL_DOCUMENT_MAX_BYTES", "1024")
	t.Setenv("SESSION_MAX_WORKSPACES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, int64(1024), cfg.BillDocumentMaxBytes)
	assert.Equal(t, 5000, cfg.SessionMaxWorkspaces)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing backend",
			env:     map[string]string{"BACKEND_BASE_URL": "", "SESSION_SECRET": "x"},
			wantErr: "BACKEND_BASE_URL",
		},
		{
			name:    "backend not http",
			env:     map[string]string{"BACKEND_BASE_URL": "ftp://x", "SESSION_SECRET": "x"},
			wantErr: "http(s)",
		},
		{
			name:    "missing secret",
			env:     map[string]string{"BACKEND_BASE_URL": "http://x", "SESSION_SECRET": ""},
			wantErr: "SESSION_SECRET",
		},
		{
			name:    "short secret in production",
			env:     map[string]string{"BACKEND_BASE_URL": "http://x", "SESSION_SECRET": "short", "APP_ENV": "production"},
			wantErr: "at least 32 bytes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "development")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.env")
	require.NoError(t, os.WriteFile(path, []byte("STOREOPS_TEST_KEY=from-file\n"), 0o600))

	t.Setenv("STOREOPS_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("STOREOPS_TEST_KEY"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("STOREOPS_TEST_KEY"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))
}
