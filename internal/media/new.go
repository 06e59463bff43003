package media

import (
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

type implExtractor struct {
	binary   string
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Extractor that runs binary (ffmpeg) and writes audio under tempDir.
func New(binary, tempDir string, exec executor.Executor, log logger.Logger) Extractor {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &implExtractor{
		binary:   binary,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
