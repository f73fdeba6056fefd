package seo

import (
	"sort"
	"strings"
)

const maxTagSuggestions = 10

// SuggestTags merges keyword frequency, recognized technology entities and
// topic clusters into a deduplicated, confidence-ranked candidate list. Tags
// already present on the content are excluded (case-insensitive) and the
// result is capped at 10 entries.
func SuggestTags(c Content) []TagSuggestion {
	plain := StripMarkup(c.Title + "\n" + c.Content)

	existing := map[string]bool{}
	for _, t := range c.Tags {
		existing[strings.ToLower(strings.TrimSpace(t))] = true
	}

	seen := map[string]bool{}
	var out []TagSuggestion

	add := func(name string, confidence float64, source string) {
		key := strings.ToLower(name)
		if key == "" || seen[key] || existing[key] {
			return
		}
		seen[key] = true
		out = append(out, TagSuggestion{Name: name, Confidence: confidence, Source: source})
	}

	// Entities are the strongest signal: explicit technology mentions.
	for _, e := range ExtractEntities(plain) {
		add(e, 0.9, "entity")
	}

	// Topic clusters next.
	for _, t := range ExtractTopics(plain) {
		add(t, 0.6, "topic")
	}

	// Frequent keywords fill the remainder, confidence scaled by count.
	for _, kw := range ExtractKeywords(plain, 20) {
		conf := 0.3 + float64(kw.Count)*0.05
		if conf > 0.8 {
			conf = 0.8
		}
		add(kw.Word, conf, "keyword")
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Name < out[j].Name
	})

	if len(out) > maxTagSuggestions {
		out = out[:maxTagSuggestions]
	}
	return out
}
