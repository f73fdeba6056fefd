package seo

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	text := "Docker containers simplify deployment. Docker images are portable. Deployment with containers scales."

	kws := ExtractKeywords(text, 3)

	if len(kws) != 3 {
		t.Fatalf("expected 3 keywords, got %d: %v", len(kws), kws)
	}
	// "containers", "deployment" and "docker" each appear twice; ties break
	// alphabetically.
	want := []Keyword{
		{Word: "containers", Count: 2},
		{Word: "deployment", Count: 2},
		{Word: "docker", Count: 2},
	}
	if !reflect.DeepEqual(kws, want) {
		t.Errorf("got %v, want %v", kws, want)
	}
}

func TestExtractKeywordsFiltersStopwords(t *testing.T) {
	kws := ExtractKeywords("the and for con para microservicios microservicios", 10)

	if len(kws) != 1 || kws[0].Word != "microservicios" || kws[0].Count != 2 {
		t.Errorf("expected only microservicios(2), got %v", kws)
	}
}

func TestExtractEntities(t *testing.T) {
	text := "We migrated from nextjs to Next.js 14, kept golang services on kubernetes, and stored data in MongoDB."

	got := ExtractEntities(text)

	// First-appearance order, canonical names, no duplicates (nextjs and
	// next.js both map to Next.js).
	want := []string{"Next.js", "Go", "Kubernetes", "MongoDB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractTopics(t *testing.T) {
	text := "Design an api endpoint on the server with proper middleware. Store results in mongodb and redis with a good schema."

	topics := ExtractTopics(text)

	if len(topics) < 2 {
		t.Fatalf("expected at least backend and databases, got %v", topics)
	}
	// backend has 4 hits (api, server, endpoint, middleware), databases 3.
	if topics[0] != "backend" || topics[1] != "databases" {
		t.Errorf("expected [backend databases ...], got %v", topics)
	}
}

func TestExtractTopicsRequiresTwoHits(t *testing.T) {
	topics := ExtractTopics("I wrote about react once.")
	for _, topic := range topics {
		if topic == "frontend" {
			t.Errorf("single indicator term should not qualify a topic, got %v", topics)
		}
	}
}

func TestAnalyzeReadability(t *testing.T) {
	r := AnalyzeReadability("The big cat sat. The dog ran. The bird flew away now.")

	if r.Words != 12 {
		t.Errorf("expected 12 words, got %d", r.Words)
	}
	if r.Sentences != 3 {
		t.Errorf("expected 3 sentences, got %d", r.Sentences)
	}
	if r.AvgSentenceLength != 4 {
		t.Errorf("expected avg sentence length 4, got %f", r.AvgSentenceLength)
	}
	if r.Level != LevelVeryEasy && r.Level != LevelEasy {
		t.Errorf("short simple sentences should read easy, got %s (flesch %f)", r.Level, r.Flesch)
	}
}

func TestAnalyzeReadabilityEmpty(t *testing.T) {
	r := AnalyzeReadability("")
	if r.Words != 0 || r.Level != LevelStandard {
		t.Errorf("empty text should yield zero words and standard level, got %+v", r)
	}
}

func TestAnalyzeReadabilityNoTerminator(t *testing.T) {
	r := AnalyzeReadability(strings.Repeat("word ", 40))
	if r.Sentences != 1 {
		t.Errorf("unterminated text counts as one sentence, got %d", r.Sentences)
	}
	if r.AvgSentenceLength != 40 {
		t.Errorf("expected avg sentence length 40, got %f", r.AvgSentenceLength)
	}
}

func TestEstimateSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"table", 1},  // silent-e discount
		{"banana", 3},
		{"rhythm", 1}, // y counts as a vowel
		{"queue", 1},
	}
	for _, tt := range tests {
		if got := estimateSyllables(tt.word); got != tt.want {
			t.Errorf("estimateSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}
