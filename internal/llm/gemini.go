package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
)

const defaultGeminiModel = "gemini-2.5-flash"

type implGemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates a Model that rotates through the supplied Gemini API keys
// when one is rate limited.
func NewGemini(apiKeys []string, model string, log logger.Logger) (Model, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("gemini: no API keys")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &implGemini{apiKeys: apiKeys, model: model, logger: log}, nil
}

// Generate tries each key at most once. Quota errors rotate to the next key;
// any other error is returned immediately.
func (g *implGemini) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for range g.apiKeys {
		idx, key := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotate(idx)
			continue
		}

		var cfg *genai.GenerateContentConfig
		if req.System != "" {
			cfg = &genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
			}
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), cfg)
		if err != nil {
			if isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating", idx+1)
				g.rotate(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var sb strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				sb.WriteString(part.Text)
			}
			return sb.String(), nil
		}

		return "", errors.New("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotate advances past idx unless a concurrent caller already moved on.
func (g *implGemini) rotate(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (idx + 1) % len(g.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
