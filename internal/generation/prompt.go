package generation

import (
	"fmt"
	"strings"
)

// Request carries the structured parameters collected by the assistant flow.
type Request struct {
	Title     string
	Topic     string
	Category  string
	Template  string
	Audience  string
	WordCount int
	Keywords  []string
}

const defaultWordCount = 1200

// tokensPerWord scales the max-token budget from the requested word count.
// Roughly 1.5 tokens per word plus headroom for markup.
const tokensPerWord = 2

// BuildPrompt assembles the natural-language instruction for one draft.
func BuildPrompt(req Request) Prompt {
	words := req.WordCount
	if words <= 0 {
		words = defaultWordCount
	}

	var sb strings.Builder
	sb.WriteString("Write a complete blog post in Markdown. Output only the article, no commentary.\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Title: %s (use it as the H1 heading)\n", req.Title))
	if req.Category != "" {
		sb.WriteString(fmt.Sprintf("- Category: %s\n", req.Category))
	} else if req.Topic != "" {
		sb.WriteString(fmt.Sprintf("- Topic: %s\n", req.Topic))
	}
	sb.WriteString(fmt.Sprintf("- Target length: about %d words (±15%% is fine)\n", words))
	if req.Audience != "" {
		sb.WriteString(fmt.Sprintf("- Audience: %s readers; match depth and vocabulary accordingly\n", req.Audience))
	}
	if len(req.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("- Work these keywords in naturally: %s\n", strings.Join(req.Keywords, ", ")))
	}

	if t, ok := GetTemplate(req.Template); ok {
		sb.WriteString(fmt.Sprintf("- Structure it as a %s:\n", strings.ToLower(t.Name)))
		for i, section := range t.Outline {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, section))
		}
	}
	sb.WriteString("- Use H2 subheadings, at least one list, and short paragraphs.\n")
	sb.WriteString("- Open with a one-paragraph summary before the first subheading.\n")

	return Prompt{
		System: "You are a professional content writer. Respond with well-structured Markdown only.",
		User:   sb.String(),
	}
}

// MaxTokensFor returns the per-request token budget for a word count.
func MaxTokensFor(wordCount int) int {
	if wordCount <= 0 {
		wordCount = defaultWordCount
	}
	return wordCount*tokensPerWord + 500
}
