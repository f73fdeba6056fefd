package generation

import "context"

// Prompt is the message set sent to the text-generation service.
type Prompt struct {
	System string
	User   string
}

// CompletionOptions bound one generation call. MaxTokens is scaled from the
// requested word count by the prompt builder; there is no retry.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// LLMClient abstracts the external text-generation service so it can be
// swapped or mocked in tests.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error)
}

// LLMSettings holds the provider configuration for concrete clients.
type LLMSettings struct {
	Model   string
	APIKey  string
	BaseURL string
}
