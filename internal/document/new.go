package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	apperrors "github.com/nguyentantai21042004/meeting-digest/internal/errors"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/meeting"
)

type implParser struct {
	logger logger.Logger
}

// New creates a Parser.
func New(log logger.Logger) Parser {
	return &implParser{logger: log}
}

func (p *implParser) Parse(ctx context.Context, rec meeting.Recording) (meeting.Transcript, error) {
	if err := ctx.Err(); err != nil {
		return meeting.Transcript{}, err
	}

	var (
		text string
		err  error
	)

	switch rec.Kind {
	case meeting.KindDocx:
		text, err = p.parseDocxFile(rec.Path)
	case meeting.KindVTT:
		text, err = p.parseVTTFile(rec.Path)
	default:
		return meeting.Transcript{}, apperrors.Parse(fmt.Sprintf("%s is not a transcript document", rec.Name), nil)
	}
	if err != nil {
		return meeting.Transcript{}, err
	}

	if strings.TrimSpace(text) == "" {
		return meeting.Transcript{}, apperrors.Parse(rec.Name+" contains no text", nil)
	}

	p.logger.Info(ctx, "Parsed %s transcript %s: %d characters", rec.Kind, rec.Name, len(text))

	return meeting.Transcript{Raw: text, Normalized: text, Source: rec.Kind}, nil
}

func (p *implParser) parseDocxFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apperrors.Parse("open document", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", apperrors.Parse("stat document", err)
	}
	return ParseDocx(f, info.Size())
}

func (p *implParser) parseVTTFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", apperrors.Parse("open caption file", err)
	}
	defer f.Close()
	return ParseVTT(f)
}
