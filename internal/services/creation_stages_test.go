package services

import (
	"reflect"
	"testing"

	"pressmind/internal/models"
)

func TestGenerateTitleFromTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"lowercase", "microservicios con go", "Microservicios con go"},
		{"already capitalized", "Microservicios con go", "Microservicios con go"},
		{"accented first rune", "índices en mongodb", "Índices en mongodb"},
		{"trims whitespace", "  docker basics ", "Docker basics"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateTitleFromTopic(tt.topic)
			if got != tt.want {
				t.Errorf("GenerateTitleFromTopic(%q) = %q, want %q", tt.topic, got, tt.want)
			}
			// Applying it to its own output must not change anything.
			if again := GenerateTitleFromTopic(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestParseDetailsFreeText(t *testing.T) {
	audience, length, keywords := parseDetails("Audiencia: avanzado, Longitud: 2000, Keywords: a, b, c")

	if audience != "advanced" {
		t.Errorf("expected advanced, got %s", audience)
	}
	if length != 2000 {
		t.Errorf("expected 2000, got %d", length)
	}
	if !reflect.DeepEqual(keywords, []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", keywords)
	}
}

func TestParseDetailsJSON(t *testing.T) {
	audience, length, keywords := parseDetails(`{"audience":"beginner","length":800,"keywords":["go","fiber"]}`)

	if audience != "beginner" || length != 800 {
		t.Errorf("got %s/%d, want beginner/800", audience, length)
	}
	if !reflect.DeepEqual(keywords, []string{"go", "fiber"}) {
		t.Errorf("got %v, want [go fiber]", keywords)
	}
}

func TestParseDetailsFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantAudience string
		wantLength   int
	}{
		{"empty", "", defaultAudience, defaultLength},
		{"gibberish", "whatever you think is best", defaultAudience, defaultLength},
		{"qualitative length", "para expertos, muy largo", "expert", 3000},
		{"short spanish", "corto y básico", "beginner", 800},
		{"malformed json falls back", `{"audience": bro`, defaultAudience, defaultLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audience, length, _ := parseDetails(tt.input)
			if audience != tt.wantAudience || length != tt.wantLength {
				t.Errorf("parseDetails(%q) = %s/%d, want %s/%d",
					tt.input, audience, length, tt.wantAudience, tt.wantLength)
			}
		})
	}
}

func TestResolveCategoryInput(t *testing.T) {
	options := []models.CategoryOption{
		{ID: "64f0aa", Name: "Backend"},
		{ID: "64f0bb", Name: "DevOps"},
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ordinal", "2", "64f0bb"},
		{"name case-insensitive", "backend", "64f0aa"},
		{"direct id", "64f0bb", "64f0bb"},
		{"json categoryId", `{"categoryId":"64f0aa"}`, "64f0aa"},
		{"json category name", `{"category":"devops"}`, "64f0bb"},
		{"unknown passes through", "nonsense", "nonsense"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveCategoryInput(tt.input, options); got != tt.want {
				t.Errorf("resolveCategoryInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryQuestionOrdinals(t *testing.T) {
	options := []models.CategoryOption{
		{ID: "a", Name: "Web Development"},
		{ID: "b", Name: "Career"},
	}

	q := categoryQuestion(options)

	if len(q.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(q.Options))
	}
	if q.Options[0].Value != "a" || q.Options[1].Label != "2. Career" {
		t.Errorf("unexpected options: %+v", q.Options)
	}
}

func TestRenderSummary(t *testing.T) {
	c := models.Collected{
		Title:    "Microservicios con Go",
		Topic:    "microservicios con go",
		Template: "guide",
		Audience: "advanced",
		Length:   2000,
		Keywords: []string{"go", "grpc"},
	}

	summary := renderSummary(c, "Backend")

	for _, fragment := range []string{
		"Microservicios con Go", "advanced", "2000 words", "go, grpc", "Backend",
		"sí, generar", "modificar", "cancelar",
	} {
		if !containsAnyKeyword(summary, []string{fragment}) {
			t.Errorf("summary missing %q:\n%s", fragment, summary)
		}
	}
}
