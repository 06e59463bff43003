// Package llm is the language-model boundary: one prompt in, one completion out.
package llm

import "context"

// Request is a single chat turn: a system instruction and one user message.
type Request struct {
	System string
	User   string
}

// Model generates a completion for a request.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ModelFunc adapts a function to a Model.
type ModelFunc func(ctx context.Context, req Request) (string, error)

func (f ModelFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
