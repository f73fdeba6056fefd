package generation

import (
	"reflect"
	"testing"
)

func TestTemplateCatalogParses(t *testing.T) {
	want := []string{TemplateTutorial, TemplateGuide, TemplateTechnical, TemplateInformative, TemplateOpinion}
	if !reflect.DeepEqual(TemplateOrder, want) {
		t.Fatalf("catalog order %v, want %v", TemplateOrder, want)
	}
	tutorial, ok := GetTemplate(TemplateTutorial)
	if !ok {
		t.Fatal("tutorial template missing from catalog")
	}
	if !reflect.DeepEqual(tutorial.Required, []string{"prerequisite", "step"}) {
		t.Errorf("tutorial required sections = %v", tutorial.Required)
	}
}

func TestResolveTemplate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantKey     string
		wantMatched bool
	}{
		{"exact key", "guide", TemplateGuide, true},
		{"key with whitespace", "  Tutorial ", TemplateTutorial, true},
		{"ordinal one", "1", TemplateTutorial, true},
		{"ordinal two", "2", TemplateGuide, true},
		{"ordinal five", "5", TemplateOpinion, true},
		{"free text", "a technical piece please", TemplateTechnical, true},
		{"unknown falls back", "dunno", FallbackTemplate, false},
		{"empty falls back", "", FallbackTemplate, false},
		{"out-of-range ordinal falls back", "9", FallbackTemplate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, matched := ResolveTemplate(tt.input)
			if key != tt.wantKey || matched != tt.wantMatched {
				t.Errorf("ResolveTemplate(%q) = (%s, %v), want (%s, %v)",
					tt.input, key, matched, tt.wantKey, tt.wantMatched)
			}
		})
	}
}

func TestListTemplatesOrder(t *testing.T) {
	list := ListTemplates()
	if len(list) != len(TemplateOrder) {
		t.Fatalf("expected %d templates, got %d", len(TemplateOrder), len(list))
	}
	for i, tmpl := range list {
		if tmpl.Key != TemplateOrder[i] {
			t.Errorf("position %d: expected %s, got %s", i, TemplateOrder[i], tmpl.Key)
		}
		if tmpl.Name == "" || tmpl.Description == "" || len(tmpl.Outline) == 0 {
			t.Errorf("template %s is missing catalog fields", tmpl.Key)
		}
	}
}

func TestValidateAgainstTemplate(t *testing.T) {
	text := "## Prerequisites\n\nInstall Go.\n\n## Step 1\n\nDo the thing."

	if missing := ValidateAgainstTemplate(text, TemplateTutorial); len(missing) != 0 {
		t.Errorf("tutorial sections present, got missing %v", missing)
	}

	missing := ValidateAgainstTemplate("just some text", TemplateTutorial)
	if len(missing) != 2 {
		t.Errorf("expected both required words missing, got %v", missing)
	}

	if missing := ValidateAgainstTemplate("anything", "no-such-template"); missing != nil {
		t.Errorf("unknown template should validate as nil, got %v", missing)
	}
}
