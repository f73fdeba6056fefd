package seo

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	mdImageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLinkRe     = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	htmlImgRe    = regexp.MustCompile(`(?i)<img\b`)
	htmlLinkRe   = regexp.MustCompile(`(?i)<a\s`)
	htmlH1Re     = regexp.MustCompile(`(?i)<h1\b`)
	htmlH2Re     = regexp.MustCompile(`(?i)<h2\b`)
	htmlListRe   = regexp.MustCompile(`(?i)<[uo]l\b`)
	mdH1Re       = regexp.MustCompile(`(?m)^#\s`)
	mdH2Re       = regexp.MustCompile(`(?m)^##\s`)
	mdListItemRe = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s`)
)

// StripMarkup removes HTML tags and markdown syntax, leaving plain prose.
// Image references are dropped entirely; link text is preserved.
func StripMarkup(content string) string {
	s := mdImageRe.ReplaceAllString(content, "")
	s = mdLinkRe.ReplaceAllStringFunc(s, func(m string) string {
		// keep the bracketed text
		end := strings.Index(m, "]")
		if end > 1 {
			return m[1:end]
		}
		return ""
	})
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = strings.NewReplacer("#", "", "*", "", "_", "", "`", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// structureStats captures the structural features of a document in either
// HTML or markdown form.
type structureStats struct {
	H1Count        int
	H2Count        int
	ListCount      int
	ImageCount     int
	LinkCount      int
	ParagraphCount int
	LongParagraphs int // paragraphs over 150 words
}

const longParagraphWords = 150

func analyzeStructure(content string) structureStats {
	var st structureStats

	st.H1Count = len(mdH1Re.FindAllString(content, -1)) + len(htmlH1Re.FindAllString(content, -1))
	st.H2Count = len(mdH2Re.FindAllString(content, -1)) + len(htmlH2Re.FindAllString(content, -1))
	st.ListCount = len(mdListItemRe.FindAllString(content, -1)) + len(htmlListRe.FindAllString(content, -1))
	st.ImageCount = len(mdImageRe.FindAllString(content, -1)) + len(htmlImgRe.FindAllString(content, -1))
	st.LinkCount = len(htmlLinkRe.FindAllString(content, -1))

	// Markdown links minus image links (the image regex also matches the link form)
	mdLinks := len(mdLinkRe.FindAllString(content, -1)) - len(mdImageRe.FindAllString(content, -1))
	if mdLinks > 0 {
		st.LinkCount += mdLinks
	}

	// Paragraphs: blank-line separated blocks of prose, headings and list items excluded
	blocks := strings.Split(content, "\n\n")
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if strings.HasPrefix(b, "#") || mdListItemRe.MatchString(b) || htmlH1Re.MatchString(b) || htmlH2Re.MatchString(b) || htmlListRe.MatchString(b) {
			continue
		}
		st.ParagraphCount++
		if len(strings.Fields(StripMarkup(b))) > longParagraphWords {
			st.LongParagraphs++
		}
	}

	return st
}

// WordCount returns the whitespace-split word count of the stripped content.
func WordCount(content string) int {
	return len(strings.Fields(StripMarkup(content)))
}
