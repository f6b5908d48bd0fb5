package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maskChar = "*"

var blocklist = []string{
	"damn",
	"crap",
	"shit",
	"fuck",
	"bitch",
	"bastard",
	"asshole",
	"dick",
	"piss",
	"slut",
	"whore",
	"retard",
}

var blocklistPattern = compileBlocklist(blocklist)

// compileBlocklist matches a blocklisted word preceded by the start of the
// text or a character that is not a letter, digit or underscore. The
// trailing side is checked by isWordEnd since the pattern can not look ahead.
func compileBlocklist(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, word := range words {
		quoted[i] = regexp.QuoteMeta(word)
	}
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(` + strings.Join(quoted, "|") + `)`)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isWordEnd(body string, end int) bool {
	if end >= len(body) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(body[end:])
	return !isWordRune(r)
}

// SanitizeComment masks every whole-word blocklisted term with one mask
// character per character of the match, so length and layout are kept.
// Word boundaries are Unicode aware.
func SanitizeComment(body string) string {
	var b strings.Builder
	last := 0
	for _, loc := range blocklistPattern.FindAllStringSubmatchIndex(body, -1) {
		start, end := loc[2], loc[3]
		if !isWordEnd(body, end) {
			continue
		}
		b.WriteString(body[last:start])
		b.WriteString(strings.Repeat(maskChar, utf8.RuneCountInString(body[start:end])))
		last = end
	}
	if last == 0 {
		return body
	}
	b.WriteString(body[last:])
	return b.String()
}
