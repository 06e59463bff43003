package fetcher

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
)

const (
	graphScope       = "https://graph.microsoft.com/.default"
	defaultChunkSize = 64 * 1024
)

// Options configures a Fetcher. Remote operations are unavailable when
// HTTPClient is nil.
type Options struct {
	TempDir    string
	ChunkSize  int
	Extensions []string

	GraphURL   string
	SiteID     string
	DriveID    string
	Folder     string
	HTTPClient *http.Client
}

type implFetcher struct {
	opts   Options
	logger logger.Logger
}

// New creates a Fetcher.
func New(opts Options, log logger.Logger) Fetcher {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	opts.GraphURL = strings.TrimRight(opts.GraphURL, "/")
	exts := make([]string, len(opts.Extensions))
	for i, ext := range opts.Extensions {
		exts[i] = strings.ToLower(ext)
	}
	opts.Extensions = exts
	return &implFetcher{opts: opts, logger: log}
}

// NewFromConfig creates a Fetcher whose remote calls authenticate with the
// OAuth2 client-credentials flow when remote access is enabled.
func NewFromConfig(cfg *config.Config, log logger.Logger) Fetcher {
	opts := Options{
		TempDir:    cfg.Paths.Temp,
		ChunkSize:  cfg.Remote.ChunkSize,
		Extensions: cfg.Remote.Extensions,
		GraphURL:   cfg.Remote.GraphURL,
		SiteID:     cfg.Secrets.SiteID,
		DriveID:    cfg.Secrets.DriveID,
		Folder:     cfg.Remote.Folder,
	}

	if cfg.Remote.Enabled {
		cc := clientcredentials.Config{
			ClientID:     cfg.Secrets.ClientID,
			ClientSecret: cfg.Secrets.ClientSecret,
			TokenURL:     cfg.TokenEndpoint(),
			Scopes:       []string{graphScope},
		}
		opts.HTTPClient = cc.Client(context.Background())
	}

	return New(opts, log)
}
