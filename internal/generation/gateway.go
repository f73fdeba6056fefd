package generation

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"golang.org/x/time/rate"

	"pressmind/internal/seo"
)

// Result is the gateway output: the raw generated text plus simple derived
// metadata. Draft assembly is the orchestrator's job.
type Result struct {
	Content         string
	WordCount       int
	SEOScore        int
	TagCandidates   []string
	MissingSections []string
	Model           string
	Duration        time.Duration
}

// Gateway is the thin adapter in front of the text-generation service. It
// builds the prompt, enforces the outbound rate limit and derives metadata.
// No retries: a failed call fails the generation step immediately.
type Gateway struct {
	llm         LLMClient
	model       string
	temperature float64
	limiter     *rate.Limiter
}

// NewGateway wires a gateway around an LLM client. ratePerMinute of 0 means
// unlimited.
func NewGateway(llm LLMClient, model string, temperature float64, ratePerMinute int) *Gateway {
	var limiter *rate.Limiter
	if ratePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute)
	}
	return &Gateway{
		llm:         llm,
		model:       model,
		temperature: temperature,
		limiter:     limiter,
	}
}

// Generate performs one generation call. The caller is responsible for
// catching the error and marking the generation sub-record failed.
func (g *Gateway) Generate(ctx context.Context, req Request) (*Result, error) {
	if g.llm == nil {
		return nil, fmt.Errorf("generation gateway: no llm client configured")
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("generation rate limit: %w", err)
		}
	}

	prompt := BuildPrompt(req)
	opts := CompletionOptions{
		Temperature: g.temperature,
		MaxTokens:   MaxTokensFor(req.WordCount),
	}

	start := time.Now()
	text, err := g.llm.Complete(ctx, prompt, opts)
	if err != nil {
		return nil, fmt.Errorf("generation call failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("generation returned empty content")
	}

	preScore := seo.Analyze(seo.Content{
		Title:    req.Title,
		Content:  text,
		Category: req.Category,
		Tags:     req.Keywords,
	})

	candidates := seo.SuggestTags(seo.Content{Title: req.Title, Content: text})
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}

	return &Result{
		Content:         text,
		WordCount:       seo.WordCount(text),
		SEOScore:        preScore.Total,
		TagCandidates:   names,
		MissingSections: ValidateAgainstTemplate(text, req.Template),
		Model:           g.model,
		Duration:        time.Since(start),
	}, nil
}

// RenderHTML converts generated markdown to HTML for the draft body.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render failed: %w", err)
	}
	return buf.String(), nil
}

// Excerpt derives a short excerpt by truncating the first prose paragraph.
func Excerpt(markdown string, maxLen int) string {
	for _, block := range strings.Split(markdown, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" || strings.HasPrefix(block, "#") || strings.HasPrefix(block, "```") ||
			strings.HasPrefix(block, "-") || strings.HasPrefix(block, "*") || strings.HasPrefix(block, "!") {
			continue
		}
		plain := seo.StripMarkup(block)
		runes := []rune(plain)
		if len(runes) <= maxLen {
			return plain
		}
		cut := string(runes[:maxLen])
		if idx := strings.LastIndex(cut, " "); idx > maxLen/2 {
			cut = cut[:idx]
		}
		return cut + "…"
	}
	return ""
}
