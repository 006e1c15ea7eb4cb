package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"client"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, "storefront.db", cfg.StateDBPath)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, int64(349), cfg.DeliveryFee)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-a", "http://shop.local", "-t", "30")

	cfg := LoadConfig()

	require.Equal(t, "http://shop.local", cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "storefront.db", cfg.StateDBPath)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"api_base_url": "http://json.local",
		"state_db_path": "json.db",
		"request_timeout": "5s",
		"delivery_fee": 500
	}`), 0o600))

	withArgs(t, "-c", file)

	cfg := LoadConfig()

	require.Equal(t, "http://json.local", cfg.APIBaseURL)
	require.Equal(t, "json.db", cfg.StateDBPath)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, int64(500), cfg.DeliveryFee)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"api_base_url": "http://json.local"}`), 0o600))

	withArgs(t, "-c", file, "-a", "http://flag.local")

	cfg := LoadConfig()

	require.Equal(t, "http://flag.local", cfg.APIBaseURL)
}

func TestParseJson_MalformedFilePanics(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{not json`), 0o600))

	withArgs(t, "-c", file)

	require.Panics(t, func() { LoadConfig() })
}
