package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	wordsPerMinute       = 200
	metaDescriptionLimit = 160
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	nonSearchChars = regexp.MustCompile(`[^A-Za-z0-9 ]+`)
	markdownMarks  = regexp.MustCompile("[#*_>`~\\[\\]]+")
)

// Slugify lowercases title and collapses every run of non-alphanumerics into
// a single hyphen: "UFC 300: Main Card" becomes "ufc-300-main-card".
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// NormalizeTags accepts taxonomy values as sent by a form, one value or many,
// each possibly comma separated, and returns them trimmed and de-duplicated
// (case-insensitively, first spelling wins).
func NormalizeTags(values []string) []string {
	tags := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			tag := strings.TrimSpace(part)
			key := strings.ToLower(tag)
			if tag == "" || seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, tag)
		}
	}

	return tags
}

// ParseTruthy reads a checkbox-style flag.
func ParseTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func ReadTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt returns body as plain text cut to at most limit runes on a word boundary.
func Excerpt(body string, limit int) string {
	text := strings.Join(strings.Fields(markdownMarks.ReplaceAllString(body, " ")), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}

// CleanSearchTerm drops every character outside letters, digits and spaces so
// the term can be used inside a LIKE pattern as-is.
func CleanSearchTerm(term string) string {
	return strings.Join(strings.Fields(nonSearchChars.ReplaceAllString(term, "")), " ")
}
