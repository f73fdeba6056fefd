package generation

import (
	"context"
	"strings"
)

// MockLLM is a deterministic stand-in for local development and tests. It
// never calls an external service.
type MockLLM struct {
	// Err, when set, is returned from every Complete call.
	Err error
}

func (m MockLLM) Complete(_ context.Context, prompt Prompt, _ CompletionOptions) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	var sb strings.Builder
	sb.WriteString("# Generated draft\n\n")
	sb.WriteString("This paragraph summarizes the article, produced locally without an external model.\n\n")
	sb.WriteString("## Body\n\n")
	sb.WriteString("Content generated for the request:\n\n")
	sb.WriteString("- point one\n- point two\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
