package generation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template keys offered during type selection.
const (
	TemplateTutorial    = "tutorial"
	TemplateGuide       = "guide"
	TemplateTechnical   = "technical"
	TemplateInformative = "informative"
	TemplateOpinion     = "opinion"
)

// FallbackTemplate is the explicit permissive default: unknown template input
// is mapped here instead of being rejected.
const FallbackTemplate = TemplateInformative

// Template describes one named content-structure template.
type Template struct {
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Outline     []string `json:"outline" yaml:"outline"`
	Required    []string `json:"-" yaml:"required"` // section words a conforming draft should contain
}

// The authored template definitions ship embedded in the binary; editing the
// catalog never touches Go code.
//
//go:embed templates.yaml
var templateCatalog []byte

// TemplateOrder is the fixed 1-based ordinal table used by type_selection
// ("2" selects guide). It follows the catalog document order.
var TemplateOrder []string

var templates map[string]Template

func init() {
	var doc struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(templateCatalog, &doc); err != nil {
		panic(fmt.Sprintf("invalid template catalog: %v", err))
	}
	templates = make(map[string]Template, len(doc.Templates))
	for _, t := range doc.Templates {
		templates[t.Key] = t
		TemplateOrder = append(TemplateOrder, t.Key)
	}
	if _, ok := templates[FallbackTemplate]; !ok {
		panic("template catalog is missing the fallback template")
	}
}

// GetTemplate returns the template for a key and whether the key was known.
func GetTemplate(key string) (Template, bool) {
	t, ok := templates[key]
	return t, ok
}

// ResolveTemplate maps user input (key, 1-based ordinal or free text) to a
// template key. Unknown input falls back to FallbackTemplate; the boolean
// reports whether the input actually matched.
func ResolveTemplate(input string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))

	if _, ok := templates[in]; ok {
		return in, true
	}

	// 1-based ordinal
	for i, key := range TemplateOrder {
		if in == fmt.Sprintf("%d", i+1) {
			return key, true
		}
	}

	// free text containing a key
	for _, key := range TemplateOrder {
		if strings.Contains(in, key) {
			return key, true
		}
	}

	return FallbackTemplate, false
}

// ListTemplates returns the catalog in ordinal order.
func ListTemplates() []Template {
	out := make([]Template, 0, len(TemplateOrder))
	for _, key := range TemplateOrder {
		out = append(out, templates[key])
	}
	return out
}

// ValidateAgainstTemplate checks that the generated text contains the
// template's required section words. Best-effort structural check only.
func ValidateAgainstTemplate(text, templateKey string) []string {
	t, ok := templates[templateKey]
	if !ok {
		return nil
	}
	lower := strings.ToLower(text)
	var missing []string
	for _, req := range t.Required {
		if !strings.Contains(lower, req) {
			missing = append(missing, req)
		}
	}
	return missing
}
