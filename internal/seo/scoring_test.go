package seo

import (
	"strings"
	"testing"
)

func optimalContent() Content {
	return Content{
		Title:         strings.Repeat("t", 55),
		Excerpt:       strings.Repeat("e", 155),
		Content:       strings.Repeat("word ", 1000),
		Tags:          []string{"go", "backend", "api", "mongodb", "fiber"},
		Category:      "Backend",
		FeaturedImage: "https://cdn.example.com/cover.png",
	}
}

func TestScoreSEOOptimal(t *testing.T) {
	report := Analyze(optimalContent())

	if report.SEO.Score != 100 {
		t.Errorf("expected SEO score 100, got %d", report.SEO.Score)
	}
	if len(report.SEO.Improvements) != 0 {
		t.Errorf("expected no SEO improvements, got %v", report.SEO.Improvements)
	}
}

func TestScoreSEOTitleBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		titleLen int
		points   int
		priority string
	}{
		{"just under minimum", 29, 5, PriorityHigh},
		{"lower partial bound", 30, 10, PriorityLow},
		{"optimal lower bound", 50, 20, ""},
		{"optimal upper bound", 60, 20, ""},
		{"just over optimal", 61, 10, PriorityMedium},
		{"upper partial bound", 70, 10, PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := optimalContent()
			c.Title = strings.Repeat("t", tt.titleLen)
			report := Analyze(c)

			// All other criteria stay optimal, so the delta is the title's.
			got := report.SEO.Score - (100 - pointsTitle)
			if got != tt.points {
				t.Errorf("title of %d chars: expected %d points, got %d", tt.titleLen, tt.points, got)
			}

			if tt.priority == "" {
				if len(report.SEO.Improvements) != 0 {
					t.Errorf("expected no suggestion for %d chars, got %v", tt.titleLen, report.SEO.Improvements)
				}
			} else {
				if len(report.SEO.Improvements) != 1 || report.SEO.Improvements[0].Priority != tt.priority {
					t.Errorf("expected one %s suggestion for %d chars, got %v", tt.priority, tt.titleLen, report.SEO.Improvements)
				}
			}
		})
	}
}

func TestScoreSEOThinContent(t *testing.T) {
	c := optimalContent()
	c.Content = strings.Repeat("word ", 200)

	report := Analyze(c)

	found := false
	for _, s := range report.SEO.Improvements {
		if s.Priority == PriorityCritical {
			found = true
		}
	}
	if !found {
		t.Error("expected a critical suggestion for content under 300 words")
	}
	if report.SEO.Score != 100-pointsWords {
		t.Errorf("expected %d, got %d", 100-pointsWords, report.SEO.Score)
	}
}

func TestScoreSEOMissingExcerpt(t *testing.T) {
	c := optimalContent()
	c.Excerpt = ""

	report := Analyze(c)

	if report.SEO.Score != 100-pointsExcerpt {
		t.Errorf("expected %d, got %d", 100-pointsExcerpt, report.SEO.Score)
	}
	if len(report.SEO.Improvements) != 1 || report.SEO.Improvements[0].Priority != PriorityHigh {
		t.Errorf("expected one high-priority suggestion, got %v", report.SEO.Improvements)
	}
}

func TestAggregateScore(t *testing.T) {
	tests := []struct {
		name                                   string
		seo, readability, structure, engagement int
		want                                   int
	}{
		{"all perfect", 100, 100, 100, 100, 100},
		{"all zero", 0, 0, 0, 0, 0},
		{"mixed exact", 80, 60, 70, 50, 68},
		{"rounds up", 95, 90, 90, 90, 92},
		{"seo dominates", 100, 0, 0, 0, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateScore(tt.seo, tt.readability, tt.structure, tt.engagement)
			if got != tt.want {
				t.Errorf("AggregateScore(%d,%d,%d,%d) = %d, want %d",
					tt.seo, tt.readability, tt.structure, tt.engagement, got, tt.want)
			}
		})
	}
}

func TestAggregateScoreDeterministic(t *testing.T) {
	c := optimalContent()
	first := Analyze(c)
	for i := 0; i < 5; i++ {
		if got := Analyze(c); got.Total != first.Total || got.Grade != first.Grade {
			t.Fatalf("run %d produced %d/%s, first run produced %d/%s", i, got.Total, got.Grade, first.Total, first.Grade)
		}
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {80, "B"},
		{79, "C"}, {70, "C"}, {69, "D"}, {60, "D"},
		{59, "E"}, {50, "E"}, {49, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := Grade(tt.total); got != tt.want {
			t.Errorf("Grade(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}

func TestScoreStructure(t *testing.T) {
	content := `# Main Title

Intro paragraph with a [link](https://example.com).

## First Section

- point one
- point two

## Second Section

![diagram](https://example.com/d.png)

Closing paragraph.`

	report := Analyze(Content{Title: "t", Content: content})

	// H1 (15) + two H2 (20) + list (15) + image density (15) + link (15) +
	// short paragraphs (20)
	if report.Structure.Score != 100 {
		t.Errorf("expected structure score 100, got %d (improvements: %v)",
			report.Structure.Score, report.Structure.Improvements)
	}
}

func TestScoreEngagement(t *testing.T) {
	c := Content{
		Title:   "t",
		Content: "Short post. Subscribe to our newsletter and find us on Twitter.",
	}
	report := Analyze(c)

	// CTA (30) + comments enabled (20) + social (20) + short read (30)
	if report.Engagement.Score != 100 {
		t.Errorf("expected engagement score 100, got %d", report.Engagement.Score)
	}

	c.CommentsOff = true
	report = Analyze(c)
	if report.Engagement.Score != 80 {
		t.Errorf("expected engagement score 80 with comments off, got %d", report.Engagement.Score)
	}
}
