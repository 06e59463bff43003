package watcher

import "context"

// Watcher monitors an inbox directory for new recordings
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one new file
type EventHandler func(ctx context.Context, filePath string) error
