package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	"GREETLOOP_PROVIDER", "GREETLOOP_MODEL", "GREETLOOP_MAX_ROUNDS",
	"PHOENIX_HOST", "PHOENIX_COLLECTOR_ENDPOINT", "PHOENIX_PROJECT",
	"GREETLOOP_LOG_LEVEL", "GREETLOOP_LOG_FORMAT",
}

// isolateEnv unsets the config variables for the test and restores the prior
// state afterwards. Restoration also covers variables godotenv sets
// process-wide while loading a .env file.
func isolateEnv(t *testing.T) {
	t.Helper()

	for _, key := range configKeys {
		old, had := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "", cfg.Model)
	assert.Equal(t, 25, cfg.MaxRounds)
	assert.Equal(t, "http://localhost:6006", cfg.PhoenixHost)
	assert.Equal(t, "http://localhost:6006/v1/traces", cfg.CollectorEndpoint)
	assert.Equal(t, "hello-phoenix", cfg.Project)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadYAMLOverlay(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "greetloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
provider: anthropic
model: claude-3-5-sonnet-20241022
max_rounds: 7
project: demo
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Model)
	assert.Equal(t, 7, cfg.MaxRounds)
	assert.Equal(t, "demo", cfg.Project)

	// Settings the file does not mention keep their defaults.
	assert.Equal(t, "http://localhost:6006", cfg.PhoenixHost)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverridesYAML(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "greetloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: anthropic\nmax_rounds: 7\n"), 0o600))

	t.Setenv("GREETLOOP_PROVIDER", "openai")
	t.Setenv("GREETLOOP_MAX_ROUNDS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 3, cfg.MaxRounds)
}

func TestDotEnvFillsUnsetVariables(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"GREETLOOP_MODEL=gpt-4o\nPHOENIX_PROJECT=dotenv-project\n",
	), 0o600))
	t.Chdir(dir)

	// A variable the environment already carries wins over the .env file.
	t.Setenv("PHOENIX_PROJECT", "real-env")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "real-env", cfg.Project)
}

func TestLoadMissingFile(t *testing.T) {
	isolateEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidate(t *testing.T) {
	base := Default()

	t.Run("openai requires key", func(t *testing.T) {
		cfg := base
		require.Error(t, cfg.Validate())
		assert.Contains(t, cfg.Validate().Error(), "OPENAI_API_KEY")

		cfg.OpenAIAPIKey = "sk-test"
		require.NoError(t, cfg.Validate())
	})

	t.Run("anthropic requires key", func(t *testing.T) {
		cfg := base
		cfg.Provider = "anthropic"
		assert.Contains(t, cfg.Validate().Error(), "ANTHROPIC_API_KEY")

		cfg.AnthropicAPIKey = "sk-ant-test"
		require.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := base
		cfg.Provider = "cohere"
		assert.Contains(t, cfg.Validate().Error(), "unknown provider")
	})

	t.Run("non-positive rounds", func(t *testing.T) {
		cfg := base
		cfg.OpenAIAPIKey = "sk-test"
		cfg.MaxRounds = 0
		assert.Contains(t, cfg.Validate().Error(), "max rounds")
	})
}
