package seo

// Suggestion priorities, ordered from most to least urgent.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Content is the input to the scoring engine. Content may be HTML or markdown;
// the engine strips markup itself before text analysis.
type Content struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Category      string   `json:"category,omitempty"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	CommentsOff   bool     `json:"comments_off,omitempty"`
}

// Suggestion is one discrete improvement recommendation.
type Suggestion struct {
	Priority string `json:"priority"`
	Message  string `json:"message"`
}

// SubScore is one weighted component of the aggregate score.
type SubScore struct {
	Score        int          `json:"score"`
	Improvements []Suggestion `json:"improvements"`
}

// ScoreReport is the full scoring engine output for one piece of content.
// Ephemeral: recomputed on demand, never persisted standalone.
type ScoreReport struct {
	SEO         SubScore `json:"seo"`
	Readability SubScore `json:"readability"`
	Structure   SubScore `json:"structure"`
	Engagement  SubScore `json:"engagement"`
	Total       int      `json:"total"`
	Grade       string   `json:"grade"`
}

// Aggregate weights. Published contract: total = round(0.35*seo + 0.25*readability
// + 0.25*structure + 0.15*engagement).
const (
	WeightSEO         = 0.35
	WeightReadability = 0.25
	WeightStructure   = 0.25
	WeightEngagement  = 0.15
)

// TagSuggestion is one candidate tag with its ranking confidence.
type TagSuggestion struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"` // "keyword", "entity" or "topic"
}
