package ai

import "context"

const defaultModel = "gpt-4o-mini"

// Request is a single system/user instruction pair. The completion provider
// is treated as unreliable: callers must validate whatever comes back.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completer generates text from an instruction pair. Implemented by the
// OpenAI-compatible client; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
