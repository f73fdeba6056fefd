package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGatewayGenerate(t *testing.T) {
	g := NewGateway(MockLLM{}, "mock-model", 0.7, 0)

	result, err := g.Generate(context.Background(), Request{
		Title:     "Scaling Go services",
		Topic:     "scaling go services",
		Category:  "Backend",
		Template:  TemplateGuide,
		Audience:  "advanced",
		WordCount: 1200,
		Keywords:  []string{"go", "scaling"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Content == "" || result.WordCount == 0 {
		t.Errorf("expected non-empty content with word count, got %+v", result)
	}
	if result.Model != "mock-model" {
		t.Errorf("expected model tag mock-model, got %s", result.Model)
	}
	if result.SEOScore < 0 || result.SEOScore > 100 {
		t.Errorf("pre-score out of range: %d", result.SEOScore)
	}
}

func TestGatewayGenerateError(t *testing.T) {
	wantErr := errors.New("provider down")
	g := NewGateway(MockLLM{Err: wantErr}, "mock-model", 0.7, 0)

	_, err := g.Generate(context.Background(), Request{Title: "t"})
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestGatewayNoClient(t *testing.T) {
	g := NewGateway(nil, "", 0, 0)
	if _, err := g.Generate(context.Background(), Request{Title: "t"}); err == nil {
		t.Error("expected error with no llm client")
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Request{
		Title:     "My Post",
		Category:  "DevOps",
		Template:  TemplateTutorial,
		Audience:  "beginner",
		WordCount: 800,
		Keywords:  []string{"docker", "ci"},
	})

	if p.System == "" {
		t.Error("system prompt must be set")
	}
	for _, fragment := range []string{"My Post", "DevOps", "800 words", "beginner", "docker, ci", "Prerequisites"} {
		if !strings.Contains(p.User, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, p.User)
		}
	}
}

func TestBuildPromptDefaults(t *testing.T) {
	p := BuildPrompt(Request{Title: "t"})
	if !strings.Contains(p.User, "1200 words") {
		t.Errorf("zero word count should use the default, got:\n%s", p.User)
	}
}

func TestMaxTokensFor(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{1000, 2500},
		{0, defaultWordCount*tokensPerWord + 500},
		{-5, defaultWordCount*tokensPerWord + 500},
	}
	for _, tt := range tests {
		if got := MaxTokensFor(tt.words); got != tt.want {
			t.Errorf("MaxTokensFor(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	markdown := `# Title

- a list first

This is the opening paragraph that should become the excerpt of the post.

## Section

More text.`

	got := Excerpt(markdown, 160)
	if got != "This is the opening paragraph that should become the excerpt of the post." {
		t.Errorf("unexpected excerpt: %q", got)
	}
}

func TestExcerptTruncatesAtWordBoundary(t *testing.T) {
	long := strings.Repeat("palabra ", 60)
	got := Excerpt(long, 50)

	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated excerpt should end with ellipsis, got %q", got)
	}
	if strings.Contains(strings.TrimSuffix(got, "…"), "palabr ") {
		t.Errorf("excerpt cut mid-word: %q", got)
	}
	if len([]rune(got)) > 51 {
		t.Errorf("excerpt too long: %d runes", len([]rune(got)))
	}
}

func TestExcerptSkipsNonProse(t *testing.T) {
	if got := Excerpt("# Only a heading\n\n```\ncode\n```", 100); got != "" {
		t.Errorf("expected empty excerpt for non-prose content, got %q", got)
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# Hello\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<h1>") || !strings.Contains(html, "<strong>") {
		t.Errorf("unexpected html: %s", html)
	}
}
