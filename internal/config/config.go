package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrMissingSecrets is returned when a required credential is not configured.
var ErrMissingSecrets = errors.New("missing required secrets")

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	LLM         LLMConfig         `yaml:"llm"`
	Remote      RemoteConfig      `yaml:"remote"`
	Mail        MailConfig        `yaml:"mail"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`

	// Secrets never come from the YAML file.
	Secrets Secrets `yaml:"-"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type RemoteConfig struct {
	Enabled    bool     `yaml:"enabled"`
	GraphURL   string   `yaml:"graph_url"`
	TokenURL   string   `yaml:"token_url"`
	Folder     string   `yaml:"folder"`
	ChunkSize  int      `yaml:"chunk_size"`
	Extensions []string `yaml:"extensions"`
}

type MailConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Subject string `yaml:"subject"`
}

type PathsConfig struct {
	Temp    string `yaml:"temp"`
	Inbox   string `yaml:"inbox"`
	Reports string `yaml:"reports"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Secrets holds credentials resolved from the environment or the OS keyring.
type Secrets struct {
	OpenAIAPIKey  string
	GeminiAPIKeys []string
	ClientID      string
	ClientSecret  string
	TenantID      string
	SiteID        string
	DriveID       string
	EmailSender   string
	EmailPassword string
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// applyDefaults fills every optional field left empty by the YAML file.
func (c *Config) applyDefaults() {
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case ProviderGemini:
			c.LLM.Model = "gemini-2.5-flash"
		default:
			c.LLM.Model = "gpt-3.5-turbo"
		}
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 2 * time.Minute
	}
	if c.Remote.GraphURL == "" {
		c.Remote.GraphURL = "https://graph.microsoft.com/v1.0"
	}
	if c.Remote.Folder == "" {
		c.Remote.Folder = "Recordings"
	}
	if c.Remote.ChunkSize == 0 {
		c.Remote.ChunkSize = 64 * 1024
	}
	if len(c.Remote.Extensions) == 0 {
		c.Remote.Extensions = []string{".mp4", ".mov", ".avi"}
	}
	if c.Mail.Host == "" {
		c.Mail.Host = "smtp.gmail.com"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.Subject == "" {
		c.Mail.Subject = "Meeting Summary"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "data/reports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
}

// Validate checks structural settings and that every required secret is
// present. All missing secrets are reported at once. The whisper model is
// optional here; without it only video input is unavailable.
func (c *Config) Validate() error {
	if c.Remote.ChunkSize < 0 {
		return fmt.Errorf("remote.chunk_size must be positive")
	}
	if c.Mail.Port < 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port out of range: %d", c.Mail.Port)
	}

	var missing []string
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.Secrets.OpenAIAPIKey == "" {
			missing = append(missing, EnvOpenAIAPIKey)
		}
	case ProviderGemini:
		if len(c.Secrets.GeminiAPIKeys) == 0 {
			missing = append(missing, EnvGeminiAPIKeys)
		}
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}

	if c.Secrets.EmailSender == "" {
		missing = append(missing, EnvEmailSender)
	}
	if c.Secrets.EmailPassword == "" {
		missing = append(missing, EnvEmailPassword)
	}

	if c.Remote.Enabled {
		for name, v := range map[string]string{
			EnvClientID:     c.Secrets.ClientID,
			EnvClientSecret: c.Secrets.ClientSecret,
			EnvTenantID:     c.Secrets.TenantID,
			EnvSiteID:       c.Secrets.SiteID,
			EnvDriveID:      c.Secrets.DriveID,
		} {
			if v == "" {
				missing = append(missing, name)
			}
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingSecrets, strings.Join(missing, ", "))
	}
	return nil
}

// TokenEndpoint returns the OAuth2 token URL for the configured tenant.
func (c *Config) TokenEndpoint() string {
	if c.Remote.TokenURL != "" {
		return c.Remote.TokenURL
	}
	return fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", c.Secrets.TenantID)
}
