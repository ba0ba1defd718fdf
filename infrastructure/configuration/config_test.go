package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "missing-env-for-test")
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("STORE_VENDOR", "")
	t.Setenv("TLS_ENABLED", "")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10001, c.App.Port)
	assert.Equal(t, "http://localhost:10001", c.App.BaseURL)
	assert.Equal(t, "postgres", c.Database.Vendor)
	assert.Equal(t, "1433", c.Database.Mssql.Port)
	assert.Equal(t, "http://localhost:10001/auth/linkedin/callback", c.LinkedIn.RedirectURI)
	assert.Equal(t, DefaultLinkedInAPIVersion, c.LinkedIn.APIVersion)
	assert.Equal(t, "https://www.linkedin.com/oauth/v2/accessToken", c.LinkedIn.TokenURL())
	assert.Equal(t, 15, c.LinkedIn.TimeoutSeconds)
	assert.Equal(t, 60, c.LinkedIn.MediaTimeoutSeconds)
	assert.Equal(t, "@daily", c.Scheduler.ExpiryCheckSpec)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", "missing-env-for-test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("TLS_ENABLED", "true")
	t.Setenv("STORE_VENDOR", "Redis")
	t.Setenv("LINKEDIN_CLIENT_ID", "cid")
	t.Setenv("LINKEDIN_API_BASE_URL", "http://127.0.0.1:9999/")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, c.App.Port)
	assert.Equal(t, "redis", c.Database.Vendor)
	assert.Equal(t, "cid", c.LinkedIn.ClientID)
	assert.Equal(t, "http://127.0.0.1:9999", c.LinkedIn.APIBaseURL)
	assert.Equal(t, "https://localhost:8080/auth/linkedin/callback", c.LinkedIn.RedirectURI)
}

func TestLoadEnvFromFile_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.env")
	require.NoError(t, os.WriteFile(path, []byte("AUTOPOSTER_TEST_A=from-file\nAUTOPOSTER_TEST_B=\"quoted\"\n"), 0o600))
	t.Setenv("AUTOPOSTER_TEST_A", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("AUTOPOSTER_TEST_B") })

	LoadEnvFromFile(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "from-env", os.Getenv("AUTOPOSTER_TEST_A"))
	assert.Equal(t, "quoted", os.Getenv("AUTOPOSTER_TEST_B"))
}
