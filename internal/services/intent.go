package services

import (
	"strings"
	"unicode"
)

// Intent is the normalized classification of a free-text confirmation answer.
type Intent int

const (
	IntentUnclear Intent = iota
	IntentConfirm
	IntentModify
	IntentCancel
)

// Keyword sets for intent classification. Bilingual: the flow accepts Spanish
// and English answers interchangeably. Long keywords are matched by
// containment; short affirmations only as whole words so "sin" or "book"
// never confirm by accident.
var (
	modifyKeywords  = []string{"modify", "cambiar", "modificar", "change", "editar"}
	cancelKeywords  = []string{"cancel", "cancelar", "abort"}
	confirmKeywords = []string{"generar", "generate", "confirm", "adelante"}
	confirmTokens   = map[string]bool{
		"sí": true, "si": true, "yes": true, "ok": true, "dale": true, "vale": true,
	}
)

// ClassifyIntent maps a raw user message to an intent. Pure function;
// precedence is modify > cancel > confirm so "cancelar los cambios" never
// accidentally confirms.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return IntentUnclear
	}
	if containsAnyKeyword(lower, modifyKeywords) {
		return IntentModify
	}
	if containsAnyKeyword(lower, cancelKeywords) {
		return IntentCancel
	}
	if containsAnyKeyword(lower, confirmKeywords) {
		return IntentConfirm
	}
	for _, tok := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		if confirmTokens[tok] {
			return IntentConfirm
		}
	}
	return IntentUnclear
}

func containsAnyKeyword(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}
