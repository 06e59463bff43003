package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func mapSource(m map[string]string) SecretSource {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok && v != ""
	}
}

func baseSecrets() map[string]string {
	return map[string]string{
		EnvOpenAIAPIKey:  "sk-test",
		EnvEmailSender:   "bot@example.com",
		EnvEmailPassword: "app-password",
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Config{Whisper: WhisperConfig{ModelPath: "models/base.en.bin"}}
		c.applyDefaults()
		c.Secrets = Secrets{OpenAIAPIKey: "k", EmailSender: "a@b.com", EmailPassword: "p"}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "model path is optional", mutate: func(c *Config) { c.Whisper.ModelPath = "" }},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "llama" },
			wantErr: `llm.provider "llama" is not supported`,
		},
		{
			name: "gemini needs keys",
			mutate: func(c *Config) {
				c.LLM.Provider = ProviderGemini
			},
			wantErr: EnvGeminiAPIKeys,
		},
		{
			name:    "missing mail secrets listed together",
			mutate:  func(c *Config) { c.Secrets.EmailSender, c.Secrets.EmailPassword = "", "" },
			wantErr: "missing required secrets: EMAIL_PASSWORD, EMAIL_SENDER",
		},
		{
			name:    "remote enabled needs graph secrets",
			mutate:  func(c *Config) { c.Remote.Enabled = true },
			wantErr: "CLIENT_ID, CLIENT_SECRET, DRIVE_ID, SITE_ID, TENANT_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"

llm:
  provider: "openai"
  timeout: 30s

remote:
  folder: "Meetings"

mail:
  host: "smtp.example.com"
  port: 2525

paths:
  temp: "tmp"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := LoadWith(path, mapSource(baseSecrets()))
	require.NoError(t, err)

	assert.Equal(t, "models/test.bin", cfg.Whisper.ModelPath)
	assert.Equal(t, "./whisper", cfg.Whisper.BinaryPath)
	assert.Equal(t, 8, cfg.Whisper.Threads)
	assert.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "Meetings", cfg.Remote.Folder)
	assert.Equal(t, 64*1024, cfg.Remote.ChunkSize)
	assert.Equal(t, []string{".mp4", ".mov", ".avi"}, cfg.Remote.Extensions)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "Meeting Summary", cfg.Mail.Subject)
	assert.Equal(t, "tmp", cfg.Paths.Temp)
	assert.Equal(t, "sk-test", cfg.Secrets.OpenAIAPIKey)
	assert.Equal(t, "bot@example.com", cfg.Secrets.EmailSender)
}

func TestLoadFailsFastOnMissingSecrets(t *testing.T) {
	path := writeConfig(t, "whisper:\n  model_path: m.bin\n")

	_, err := LoadWith(path, mapSource(map[string]string{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSecrets)
	assert.Contains(t, err.Error(), EnvOpenAIAPIKey)
}

func TestLoadGeminiKeyList(t *testing.T) {
	path := writeConfig(t, "whisper:\n  model_path: m.bin\nllm:\n  provider: gemini\n")
	secrets := baseSecrets()
	secrets[EnvGeminiAPIKeys] = "k1, k2,,k3"

	cfg, err := LoadWith(path, mapSource(secrets))
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2", "k3"}, cfg.Secrets.GeminiAPIKeys)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
}

func TestLoadSourcesInOrder(t *testing.T) {
	path := writeConfig(t, "whisper:\n  model_path: m.bin\n")
	first := mapSource(map[string]string{EnvOpenAIAPIKey: "from-env"})
	second := mapSource(map[string]string{
		EnvOpenAIAPIKey:  "from-keyring",
		EnvEmailSender:   "bot@example.com",
		EnvEmailPassword: "pw",
	})

	cfg, err := LoadWith(path, first, second)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Secrets.OpenAIAPIKey)
	assert.Equal(t, "pw", cfg.Secrets.EmailPassword)
}

func TestKeyringSource(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set(KeyringService, EnvEmailPassword, "secret"))

	v, ok := KeyringSource(EnvEmailPassword)
	assert.True(t, ok)
	assert.Equal(t, "secret", v)

	_, ok = KeyringSource(EnvClientSecret)
	assert.False(t, ok)
}

func TestEnvSource(t *testing.T) {
	t.Setenv(EnvTenantID, "  tenant-1 ")
	v, ok := EnvSource(EnvTenantID)
	assert.True(t, ok)
	assert.Equal(t, "tenant-1", v)
}

func TestTokenEndpoint(t *testing.T) {
	c := Config{Secrets: Secrets{TenantID: "abc"}}
	assert.Equal(t, "https://login.microsoftonline.com/abc/oauth2/v2.0/token", c.TokenEndpoint())

	c.Remote.TokenURL = "http://localhost/token"
	assert.Equal(t, "http://localhost/token", c.TokenEndpoint())
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadWith("nonexistent.yaml", mapSource(baseSecrets()))
	assert.Error(t, err)
}

func TestLoadWithoutWhisperModel(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: openai\n")

	cfg, err := LoadWith(path, mapSource(baseSecrets()))
	require.NoError(t, err)
	assert.Empty(t, cfg.Whisper.ModelPath)
}

func TestReadSkipsValidation(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: debug\n")

	cfg, err := Read(path, mapSource(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ffmpeg", cfg.FFmpeg.BinaryPath)
	assert.Error(t, cfg.Validate())
}
