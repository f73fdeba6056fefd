package seo

import (
	"fmt"
	"math"
	"strings"
)

// Analyze computes the full score report for one piece of content.
// Pure and deterministic: identical input always yields an identical report.
func Analyze(c Content) ScoreReport {
	plain := StripMarkup(c.Content)
	words := len(strings.Fields(plain))
	structure := analyzeStructure(c.Content)
	readability := AnalyzeReadability(plain)

	report := ScoreReport{
		SEO:         scoreSEO(c, words),
		Readability: scoreReadability(readability),
		Structure:   scoreStructure(structure, words),
		Engagement:  scoreEngagement(c, plain, words),
	}
	report.Total = AggregateScore(report.SEO.Score, report.Readability.Score, report.Structure.Score, report.Engagement.Score)
	report.Grade = Grade(report.Total)
	return report
}

// AggregateScore is the published weighted sum. Kept separate so the exact
// numeric contract is testable in isolation.
func AggregateScore(seoScore, readability, structure, engagement int) int {
	total := WeightSEO*float64(seoScore) +
		WeightReadability*float64(readability) +
		WeightStructure*float64(structure) +
		WeightEngagement*float64(engagement)
	return int(math.Round(total))
}

// Grade buckets a total score into a letter grade.
func Grade(total int) string {
	switch {
	case total >= 90:
		return "A"
	case total >= 80:
		return "B"
	case total >= 70:
		return "C"
	case total >= 60:
		return "D"
	case total >= 50:
		return "E"
	default:
		return "F"
	}
}

// SEO criterion point values. The six criteria sum to 100.
const (
	pointsTitle    = 20
	pointsExcerpt  = 15
	pointsImage    = 15
	pointsTags     = 15
	pointsCategory = 10
	pointsWords    = 25
)

func scoreSEO(c Content, words int) SubScore {
	var s SubScore
	s.Improvements = []Suggestion{}

	// Title length: [50,60] chars optimal
	titleLen := len([]rune(c.Title))
	switch {
	case titleLen >= 50 && titleLen <= 60:
		s.Score += pointsTitle
	case titleLen >= 30 && titleLen < 50:
		s.Score += pointsTitle / 2
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			fmt.Sprintf("Title is %d characters; 50-60 is the sweet spot for search snippets", titleLen)})
	case titleLen > 60 && titleLen <= 70:
		s.Score += pointsTitle / 2
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			fmt.Sprintf("Title is %d characters and may be truncated in search results; aim for 50-60", titleLen)})
	default:
		s.Score += 5
		if titleLen < 30 {
			s.Improvements = append(s.Improvements, Suggestion{PriorityHigh,
				fmt.Sprintf("Title is only %d characters; expand it to 50-60 for better ranking", titleLen)})
		} else {
			s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
				fmt.Sprintf("Title is %d characters, far from the 50-60 target", titleLen)})
		}
	}

	// Excerpt length: [150,160] chars optimal
	excerptLen := len([]rune(c.Excerpt))
	switch {
	case excerptLen >= 150 && excerptLen <= 160:
		s.Score += pointsExcerpt
	case excerptLen >= 100 && excerptLen <= 200:
		s.Score += 8
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			fmt.Sprintf("Excerpt is %d characters; 150-160 fits meta descriptions best", excerptLen)})
	case excerptLen == 0:
		s.Improvements = append(s.Improvements, Suggestion{PriorityHigh,
			"Add an excerpt of 150-160 characters to control the search snippet"})
	default:
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			fmt.Sprintf("Excerpt is %d characters; rewrite it to 150-160", excerptLen)})
	}

	// Featured image
	if c.FeaturedImage != "" {
		s.Score += pointsImage
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			"Add a featured image; posts with one get better click-through"})
	}

	// Tag count: [3,7] optimal
	tagCount := len(c.Tags)
	switch {
	case tagCount >= 3 && tagCount <= 7:
		s.Score += pointsTags
	case tagCount >= 1 && tagCount <= 10:
		s.Score += 8
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			fmt.Sprintf("Post has %d tags; 3-7 is the recommended range", tagCount)})
	default:
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			"Add between 3 and 7 relevant tags"})
	}

	// Category
	if c.Category != "" {
		s.Score += pointsCategory
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityHigh,
			"Assign the post to a category"})
	}

	// Word count: >=300 required, [800,1500] preferred
	switch {
	case words < 300:
		s.Improvements = append(s.Improvements, Suggestion{PriorityCritical,
			fmt.Sprintf("Content has only %d words; search engines need at least 300", words)})
	case words >= 800 && words <= 1500:
		s.Score += pointsWords
	default:
		s.Score += 15
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			fmt.Sprintf("Content has %d words; 800-1500 tends to rank best", words)})
	}

	return s
}

func scoreReadability(r Readability) SubScore {
	s := SubScore{Score: 100, Improvements: []Suggestion{}}

	if r.AvgSentenceLength > 25 {
		s.Score -= 30
		s.Improvements = append(s.Improvements, Suggestion{PriorityHigh,
			fmt.Sprintf("Average sentence length is %.0f words; break sentences up (target under 25)", r.AvgSentenceLength)})
	}
	if r.AvgWordLength > 7 {
		s.Score -= 20
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			"Average word length is high; prefer plainer vocabulary"})
	}
	switch r.Level {
	case LevelDifficult:
		s.Score -= 20
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			"Reading level is difficult; simplify phrasing for a broader audience"})
	case LevelVeryDifficult:
		s.Score -= 30
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			"Reading level is very difficult; simplify phrasing for a broader audience"})
	}

	if s.Score < 0 {
		s.Score = 0
	}
	return s
}

func scoreStructure(st structureStats, words int) SubScore {
	var s SubScore
	s.Improvements = []Suggestion{}

	if st.H1Count >= 1 {
		s.Score += 15
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityHigh,
			"Add a top-level heading (H1)"})
	}

	switch {
	case st.H2Count > 1:
		s.Score += 20
	case st.H2Count == 1:
		s.Score += 10
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			"Only one subheading found; more H2 sections improve scannability"})
	default:
		s.Improvements = append(s.Improvements, Suggestion{PriorityHigh,
			"Add subheadings (H2) to structure the content"})
	}

	if st.ListCount >= 1 {
		s.Score += 15
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			"Add at least one bulleted or numbered list"})
	}

	// Image density: roughly one image per 300-500 words
	expectedImages := words / 500
	if expectedImages == 0 || st.ImageCount >= expectedImages {
		s.Score += 15
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			fmt.Sprintf("Content has %d images for %d words; aim for one per 300-500 words", st.ImageCount, words)})
	}

	if st.LinkCount >= 1 {
		s.Score += 15
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			"Add at least one internal or external link"})
	}

	if st.ParagraphCount > 0 && float64(st.LongParagraphs)/float64(st.ParagraphCount) > 0.3 {
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			fmt.Sprintf("%d of %d paragraphs exceed %d words; split them up", st.LongParagraphs, st.ParagraphCount, longParagraphWords)})
	} else {
		s.Score += 20
	}

	return s
}

// ctaVocabulary are call-to-action phrases checked against the lowercased text.
var ctaVocabulary = []string{
	"subscribe", "sign up", "join", "comment", "share", "let us know", "get started",
	"suscríbete", "comenta", "comparte", "déjanos", "únete", "empieza",
}

var socialVocabulary = []string{
	"twitter", "linkedin", "facebook", "instagram", "social", "x.com",
}

const wordsPerMinute = 200

func scoreEngagement(c Content, plain string, words int) SubScore {
	var s SubScore
	s.Improvements = []Suggestion{}
	lower := strings.ToLower(plain)

	if containsAny(lower, ctaVocabulary) {
		s.Score += 30
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			"Add a call to action (subscribe, comment, share) near the end"})
	}

	if !c.CommentsOff {
		s.Score += 20
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			"Comments are disabled; enabling them increases engagement signals"})
	}

	if containsAny(lower, socialVocabulary) {
		s.Score += 20
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityLow,
			"Mention or link your social channels"})
	}

	readingMinutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if readingMinutes <= 15 {
		s.Score += 30
	} else {
		s.Improvements = append(s.Improvements, Suggestion{PriorityMedium,
			fmt.Sprintf("Estimated reading time is %d minutes; consider splitting into a series", readingMinutes)})
	}

	return s
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
