package seo

import (
	"strings"
	"testing"
)

func TestSuggestTagsExcludesExisting(t *testing.T) {
	c := Content{
		Title:   "Deploying Go services",
		Content: "We use Docker and Kubernetes to ship Go services backed by MongoDB.",
		Tags:    []string{"docker", "GO"},
	}

	suggestions := SuggestTags(c)

	for _, s := range suggestions {
		lower := strings.ToLower(s.Name)
		if lower == "docker" || lower == "go" {
			t.Errorf("suggestion %q duplicates an existing tag", s.Name)
		}
	}

	found := false
	for _, s := range suggestions {
		if s.Name == "Kubernetes" {
			found = true
			if s.Confidence != 0.9 || s.Source != "entity" {
				t.Errorf("entity suggestion should carry 0.9/entity, got %+v", s)
			}
		}
	}
	if !found {
		t.Errorf("expected Kubernetes among suggestions, got %v", suggestions)
	}
}

func TestSuggestTagsCapped(t *testing.T) {
	// Lots of distinct frequent terms to overflow the cap.
	var sb strings.Builder
	terms := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
		"hotel", "india", "juliett", "kilo", "lima", "mike", "november",
	}
	for _, term := range terms {
		sb.WriteString(strings.Repeat(term+" ", 3))
	}

	suggestions := SuggestTags(Content{Title: "t", Content: sb.String()})

	if len(suggestions) > 10 {
		t.Errorf("expected at most 10 suggestions, got %d", len(suggestions))
	}
}

func TestSuggestTagsRanked(t *testing.T) {
	c := Content{
		Title:   "React frontend patterns",
		Content: "React components and css for the ui. Component state, component props, component testing.",
	}

	suggestions := SuggestTags(c)
	if len(suggestions) < 2 {
		t.Fatalf("expected multiple suggestions, got %v", suggestions)
	}

	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Confidence > suggestions[i-1].Confidence {
			t.Errorf("suggestions not sorted by confidence: %v", suggestions)
		}
	}
	if suggestions[0].Name != "React" {
		t.Errorf("entity should rank first, got %v", suggestions[0])
	}
}
