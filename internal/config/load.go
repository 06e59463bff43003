package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// Environment variable names for secrets.
const (
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvGeminiAPIKeys = "GEMINI_API_KEYS"
	EnvClientID      = "CLIENT_ID"
	EnvClientSecret  = "CLIENT_SECRET"
	EnvTenantID      = "TENANT_ID"
	EnvSiteID        = "SITE_ID"
	EnvDriveID       = "DRIVE_ID"
	EnvEmailSender   = "EMAIL_SENDER"
	EnvEmailPassword = "EMAIL_PASSWORD"
)

// KeyringService is the OS keyring service secrets are looked up under.
const KeyringService = "meeting-digest"

// SecretSource resolves a secret by its environment variable name.
type SecretSource func(name string) (string, bool)

// EnvSource reads secrets from the process environment.
func EnvSource(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

// KeyringSource reads secrets stored with `keyring set meeting-digest NAME`.
func KeyringSource(name string) (string, bool) {
	v, err := keyring.Get(KeyringService, name)
	if err != nil {
		return "", false
	}
	return v, v != ""
}

// Load reads the YAML file at path (optional when empty), resolves secrets
// from the environment then the keyring, and validates the result.
func Load(path string) (*Config, error) {
	return LoadWith(path, EnvSource, KeyringSource)
}

// LoadWith is Load with explicit secret sources, tried in order.
func LoadWith(path string, sources ...SecretSource) (*Config, error) {
	cfg, err := Read(path, sources...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Read is LoadWith without validation, for diagnostics that report every
// problem instead of stopping at the first.
func Read(path string, sources ...SecretSource) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.Secrets = resolveSecrets(sources)
	return cfg, nil
}

func resolveSecrets(sources []SecretSource) Secrets {
	get := func(name string) string {
		for _, src := range sources {
			if v, ok := src(name); ok {
				return v
			}
		}
		return ""
	}

	return Secrets{
		OpenAIAPIKey:  get(EnvOpenAIAPIKey),
		GeminiAPIKeys: splitList(get(EnvGeminiAPIKeys)),
		ClientID:      get(EnvClientID),
		ClientSecret:  get(EnvClientSecret),
		TenantID:      get(EnvTenantID),
		SiteID:        get(EnvSiteID),
		DriveID:       get(EnvDriveID),
		EmailSender:   get(EnvEmailSender),
		EmailPassword: get(EnvEmailPassword),
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}
