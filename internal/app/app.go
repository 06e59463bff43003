// Package app wires configuration into the pipeline components.
package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/distributor"
	"github.com/nguyentantai21042004/meeting-digest/internal/document"
	"github.com/nguyentantai21042004/meeting-digest/internal/fetcher"
	"github.com/nguyentantai21042004/meeting-digest/internal/llm"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/media"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
	"github.com/nguyentantai21042004/meeting-digest/internal/orchestrator"
	"github.com/nguyentantai21042004/meeting-digest/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-digest/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

// App holds the shared components. Sessions created from one App share its
// result caches.
type App struct {
	Config  *config.Config
	Logger  logger.Logger
	Metrics *metrics.Metrics

	Executor    executor.Executor
	Fetcher     fetcher.Fetcher
	Extractor   media.Extractor
	Transcriber transcriber.Transcriber
	Parser      document.Parser
	Summarizer  summarizer.Summarizer
	Distributor distributor.Distributor

	// VideoErr explains why video input is unavailable; nil when it is.
	VideoErr error
}

// New builds every component from cfg, registering metrics on reg.
func New(cfg *config.Config, log logger.Logger, reg prometheus.Registerer) (*App, error) {
	m := metrics.New(reg)
	exec := executor.New()

	model, err := llm.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("language model: %w", err)
	}

	transport := distributor.NewSMTPTransport(distributor.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Secrets.EmailSender,
		Password: cfg.Secrets.EmailPassword,
	})

	a := &App{
		Config:      cfg,
		Logger:      log,
		Metrics:     m,
		Executor:    exec,
		Fetcher:     fetcher.NewFromConfig(cfg, log),
		Extractor:   media.New(cfg.FFmpeg.BinaryPath, cfg.Paths.Temp, exec, log),
		Parser:      document.New(log),
		Summarizer:  summarizer.New(model, summarizer.NewCaches(m), m, log),
		Distributor: distributor.New(cfg.Secrets.EmailSender, transport, m, log),
	}

	a.Transcriber, a.VideoErr = transcriber.New(cfg.Whisper, exec, log)
	return a, nil
}

// NewSession starts a session backed by the shared components.
func (a *App) NewSession() *orchestrator.Session {
	deps := orchestrator.Dependencies{
		Fetcher:     a.Fetcher,
		Parser:      a.Parser,
		Summarizer:  a.Summarizer,
		Distributor: a.Distributor,
		Metrics:     a.Metrics,
		Logger:      a.Logger,
	}
	if a.Config != nil {
		deps.Subject = a.Config.Mail.Subject
	}
	if a.VideoErr == nil {
		deps.Extractor = a.Extractor
		deps.Transcriber = a.Transcriber
	}
	return orchestrator.NewSession(deps)
}
