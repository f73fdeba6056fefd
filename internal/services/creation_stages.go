package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"pressmind/internal/generation"
	"pressmind/internal/models"
)

// Question is a structured prompt presented back to the user along with the
// agent reply.
type Question struct {
	Text    string           `json:"text"`
	Options []QuestionOption `json:"options,omitempty"`
}

// QuestionOption is one selectable answer, addressable by value or ordinal.
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// stageResult is the stage handler contract. Handlers mutate the in-memory
// session (Collected and CategoryOptions) and report the requested transition;
// the orchestrator commits stage and collected data together in one write.
type stageResult struct {
	Success        bool
	Message        string
	Questions      []Question
	Actions        []string
	ShouldGenerate bool
	NextStage      models.Stage // zero value means stay on the current stage
}

// GenerateTitleFromTopic derives a title from the raw topic: capitalize the
// first character only, leave the rest unchanged. Idempotent by construction.
func GenerateTitleFromTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ""
	}
	runes := []rune(topic)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Named fallback defaults for detail parsing. Unparseable input is resolved
// permissively instead of rejected; forward progress beats strict validation.
const (
	defaultAudience = "intermediate"
	defaultLength   = 1200
)

// audienceVocabulary maps substring cues (ES/EN) to normalized audience levels.
var audienceVocabulary = []struct {
	cues  []string
	level string
}{
	{[]string{"principiante", "beginner", "novato", "básico", "basico"}, "beginner"},
	{[]string{"intermedio", "intermediate"}, "intermediate"},
	{[]string{"avanzado", "advanced"}, "advanced"},
	{[]string{"experto", "expert"}, "expert"},
}

// lengthVocabulary maps cues to target word counts. Numeric cues first so
// explicit numbers win over qualitative words.
var lengthVocabulary = []struct {
	cues  []string
	words int
}{
	{[]string{"3000", "muy largo", "very long"}, 3000},
	{[]string{"2000", "largo", "long"}, 2000},
	{[]string{"1200", "medio", "medium"}, 1200},
	{[]string{"800", "corto", "short"}, 800},
}

var keywordsLabelRe = regexp.MustCompile(`(?i)(?:keywords|palabras\s+clave)\s*:\s*(.+)`)

// detailsInput is the JSON form accepted by details_collection.
type detailsInput struct {
	Audience string      `json:"audience"`
	Length   json.Number `json:"length"`
	Keywords []string    `json:"keywords"`
}

// parseDetails extracts audience, length and keywords from either a JSON
// object or free-form text. Unmatched audience/length fall back to the named
// defaults.
func parseDetails(input string) (audience string, length int, keywords []string) {
	audience = defaultAudience
	length = defaultLength

	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		var d detailsInput
		if err := json.Unmarshal([]byte(trimmed), &d); err == nil {
			if a := normalizeAudience(d.Audience); a != "" {
				audience = a
			}
			if n, err := d.Length.Int64(); err == nil && n > 0 {
				length = int(n)
			}
			for _, k := range d.Keywords {
				if k = strings.TrimSpace(k); k != "" {
					keywords = append(keywords, k)
				}
			}
			return audience, length, keywords
		}
		// fall through to free-text matching on malformed JSON
	}

	lower := strings.ToLower(trimmed)
	if a := normalizeAudience(lower); a != "" {
		audience = a
	}
	for _, lv := range lengthVocabulary {
		if containsAnyKeyword(lower, lv.cues) {
			length = lv.words
			break
		}
	}
	if m := keywordsLabelRe.FindStringSubmatch(trimmed); m != nil {
		for _, k := range strings.Split(m[1], ",") {
			if k = strings.TrimSpace(k); k != "" {
				keywords = append(keywords, k)
			}
		}
	}
	return audience, length, keywords
}

func normalizeAudience(s string) string {
	lower := strings.ToLower(s)
	for _, av := range audienceVocabulary {
		if containsAnyKeyword(lower, av.cues) {
			return av.level
		}
	}
	return ""
}

// categoryInput is the JSON form accepted by category_selection.
type categoryInput struct {
	CategoryID string `json:"categoryId"`
	Category   string `json:"category"`
}

// resolveCategoryInput maps user input (identifier, JSON payload or 1-based
// ordinal into the presented list) to a category id, or "" when unresolvable.
func resolveCategoryInput(input string, options []models.CategoryOption) string {
	trimmed := strings.TrimSpace(input)

	if strings.HasPrefix(trimmed, "{") {
		var ci categoryInput
		if err := json.Unmarshal([]byte(trimmed), &ci); err == nil {
			if ci.CategoryID != "" {
				return ci.CategoryID
			}
			if ci.Category != "" {
				trimmed = ci.Category
			}
		}
	}

	// 1-based ordinal into the presented list
	for i := range options {
		if trimmed == fmt.Sprintf("%d", i+1) {
			return options[i].ID
		}
	}

	// direct id or name match against the presented list
	for _, opt := range options {
		if strings.EqualFold(trimmed, opt.ID) || strings.EqualFold(trimmed, opt.Name) {
			return opt.ID
		}
	}

	return trimmed
}

// templateQuestion builds the fixed content-format question offered after
// topic discovery.
func templateQuestion() Question {
	q := Question{Text: "What format should the post have?"}
	for i, t := range generation.ListTemplates() {
		q.Options = append(q.Options, QuestionOption{
			Value: t.Key,
			Label: fmt.Sprintf("%d. %s — %s", i+1, t.Name, t.Description),
		})
	}
	return q
}

// detailsQuestion asks for audience, length and keywords.
func detailsQuestion() Question {
	return Question{
		Text: "Tell me about the audience (beginner/intermediate/advanced/expert), target length (800/1200/2000/3000 words) and optional comma-separated keywords. JSON or plain text both work.",
	}
}

// categoryQuestion lists the real catalog entries for selection.
func categoryQuestion(options []models.CategoryOption) Question {
	q := Question{Text: "Which category should the post go in?"}
	for i, opt := range options {
		q.Options = append(q.Options, QuestionOption{
			Value: opt.ID,
			Label: fmt.Sprintf("%d. %s", i+1, opt.Name),
		})
	}
	return q
}

// renderSummary builds the full configuration summary shown at review.
func renderSummary(c models.Collected, categoryName string) string {
	var sb strings.Builder
	sb.WriteString("Here is the configuration for your post:\n")
	sb.WriteString(fmt.Sprintf("• Title: %s\n", c.Title))
	sb.WriteString(fmt.Sprintf("• Topic: %s\n", c.Topic))
	if t, ok := generation.GetTemplate(c.Template); ok {
		sb.WriteString(fmt.Sprintf("• Format: %s\n", t.Name))
	}
	sb.WriteString(fmt.Sprintf("• Audience: %s\n", c.Audience))
	sb.WriteString(fmt.Sprintf("• Length: %d words\n", c.Length))
	if len(c.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("• Keywords: %s\n", strings.Join(c.Keywords, ", ")))
	}
	if categoryName != "" {
		sb.WriteString(fmt.Sprintf("• Category: %s\n", categoryName))
	}
	sb.WriteString("\nReply \"sí, generar\" to generate, \"modificar\" to change the details, or \"cancelar\" to stop.")
	return sb.String()
}
