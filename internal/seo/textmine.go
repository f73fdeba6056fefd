package seo

import (
	"regexp"
	"sort"
	"strings"
)

// Keyword is one extracted keyword with its occurrence count.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Readability holds the derived reading statistics of a plain text.
type Readability struct {
	Words             int     `json:"words"`
	Sentences         int     `json:"sentences"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	AvgWordLength     float64 `json:"avg_word_length"`
	Flesch            float64 `json:"flesch"`
	Level             string  `json:"level"`
}

// Reading level labels, easiest to hardest.
const (
	LevelVeryEasy        = "very-easy"
	LevelEasy            = "easy"
	LevelFairlyEasy      = "fairly-easy"
	LevelStandard        = "standard"
	LevelFairlyDifficult = "fairly-difficult"
	LevelDifficult       = "difficult"
	LevelVeryDifficult   = "very-difficult"
)

// Bilingual (EN/ES) stopword list. The flow accepts messages in both languages,
// so keyword mining has to ignore filler from either.
var stopwords = map[string]bool{
	// English
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "can": true, "with": true, "this": true, "that": true,
	"from": true, "they": true, "will": true, "would": true, "there": true,
	"their": true, "what": true, "about": true, "which": true, "when": true,
	"your": true, "have": true, "has": true, "had": true, "was": true, "were": true,
	"been": true, "more": true, "also": true, "into": true, "than": true,
	"then": true, "them": true, "these": true, "those": true, "some": true,
	"such": true, "only": true, "other": true, "how": true, "its": true,
	"our": true, "out": true, "use": true, "using": true, "like": true,
	// Spanish
	"los": true, "las": true, "una": true, "uno": true, "unos": true, "unas": true,
	"del": true, "por": true, "para": true, "con": true, "sin": true, "sobre": true,
	"este": true, "esta": true, "estos": true, "estas": true, "ese": true,
	"esa": true, "que": true, "como": true, "pero": true, "más": true, "mas": true,
	"muy": true, "también": true, "donde": true, "cuando": true, "porque": true,
	"desde": true, "hasta": true, "entre": true, "ser": true, "son": true,
	"está": true, "están": true, "hay": true, "puede": true, "pueden": true,
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}.+-]*`)

// ExtractKeywords returns the n most frequent non-stopword terms of the text,
// lowercased, ordered by descending count then alphabetically. Input is
// expected to be plain text (markup already stripped).
func ExtractKeywords(text string, n int) []Keyword {
	counts := map[string]int{}
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		w = strings.Trim(w, ".+-")
		if len([]rune(w)) < 3 || stopwords[w] {
			continue
		}
		counts[w]++
	}

	kws := make([]Keyword, 0, len(counts))
	for w, c := range counts {
		kws = append(kws, Keyword{Word: w, Count: c})
	}
	sort.Slice(kws, func(i, j int) bool {
		if kws[i].Count != kws[j].Count {
			return kws[i].Count > kws[j].Count
		}
		return kws[i].Word < kws[j].Word
	})

	if n > 0 && len(kws) > n {
		kws = kws[:n]
	}
	return kws
}

// knownEntities maps lowercased technology names to their canonical spelling.
var knownEntities = map[string]string{
	"next.js": "Next.js", "nextjs": "Next.js",
	"react": "React", "vue": "Vue", "angular": "Angular", "svelte": "Svelte",
	"node.js": "Node.js", "nodejs": "Node.js",
	"go": "Go", "golang": "Go",
	"python": "Python", "rust": "Rust",
	"typescript": "TypeScript", "javascript": "JavaScript",
	"docker": "Docker", "kubernetes": "Kubernetes",
	"mongodb": "MongoDB", "postgresql": "PostgreSQL", "postgres": "PostgreSQL",
	"mysql": "MySQL", "redis": "Redis",
	"graphql": "GraphQL", "grpc": "gRPC",
	"aws": "AWS", "azure": "Azure",
	"git": "Git", "github": "GitHub", "linux": "Linux",
	"tailwind": "Tailwind", "laravel": "Laravel",
	"django": "Django", "flask": "Flask", "spring": "Spring",
	"terraform": "Terraform", "ansible": "Ansible",
}

// ExtractEntities returns the canonical names of recognized technologies
// mentioned in the text, in first-appearance order and without duplicates.
func ExtractEntities(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		w = strings.Trim(w, ".+-")
		canonical, ok := knownEntities[w]
		if ok && !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}

// topicVocabulary maps topic cluster names to their indicator terms.
var topicVocabulary = map[string][]string{
	"frontend":     {"react", "vue", "angular", "css", "html", "component", "interfaz", "ui"},
	"backend":      {"api", "server", "servidor", "endpoint", "microservice", "middleware", "backend"},
	"devops":       {"docker", "kubernetes", "deploy", "pipeline", "cloud", "infrastructure", "despliegue"},
	"databases":    {"mongodb", "postgresql", "mysql", "redis", "query", "schema", "índice", "database"},
	"ai":           {"llm", "model", "modelo", "prompt", "embedding", "inference", "machine", "gpt"},
	"seo":          {"seo", "keyword", "ranking", "search", "posicionamiento", "metadata"},
	"architecture": {"pattern", "design", "arquitectura", "scalability", "monolith", "modular"},
}

// ExtractTopics clusters the text into named topics. A topic qualifies when at
// least two of its indicator terms appear. Results are ordered by hit count.
func ExtractTopics(text string) []string {
	lower := strings.ToLower(text)
	type hit struct {
		topic string
		count int
	}
	var hits []hit
	for topic, terms := range topicVocabulary {
		c := 0
		for _, t := range terms {
			if strings.Contains(lower, t) {
				c++
			}
		}
		if c >= 2 {
			hits = append(hits, hit{topic, c})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].count != hits[j].count {
			return hits[i].count > hits[j].count
		}
		return hits[i].topic < hits[j].topic
	})
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.topic
	}
	return out
}

var sentenceSplitRe = regexp.MustCompile(`[.!?¡¿]+`)

// AnalyzeReadability computes Flesch-style reading statistics for plain text.
func AnalyzeReadability(text string) Readability {
	words := strings.Fields(text)
	var r Readability
	r.Words = len(words)
	if r.Words == 0 {
		r.Level = LevelStandard
		return r
	}

	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			r.Sentences++
		}
	}
	if r.Sentences == 0 {
		r.Sentences = 1
	}

	var chars, syllables int
	for _, w := range words {
		chars += len([]rune(w))
		syllables += estimateSyllables(w)
	}

	r.AvgSentenceLength = float64(r.Words) / float64(r.Sentences)
	r.AvgWordLength = float64(chars) / float64(r.Words)
	r.Flesch = 206.835 - 1.015*r.AvgSentenceLength - 84.6*(float64(syllables)/float64(r.Words))
	r.Level = fleschLevel(r.Flesch)
	return r
}

func fleschLevel(score float64) string {
	switch {
	case score >= 90:
		return LevelVeryEasy
	case score >= 80:
		return LevelEasy
	case score >= 70:
		return LevelFairlyEasy
	case score >= 60:
		return LevelStandard
	case score >= 50:
		return LevelFairlyDifficult
	case score >= 30:
		return LevelDifficult
	default:
		return LevelVeryDifficult
	}
}

// estimateSyllables approximates syllable count by vowel groups.
func estimateSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, c := range word {
		isVowel := strings.ContainsRune("aeiouyáéíóúü", c)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}
