package transcriber

import (
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

type implTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcriber. It fails if the model file cannot be read, so a
// misconfigured install is reported before any recording is accepted.
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("whisper.model_path is not set")
	}
	info, err := os.Stat(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper model: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("whisper model %s is a directory", cfg.ModelPath)
	}

	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}, nil
}
