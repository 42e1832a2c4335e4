package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	defaultShortPrompt  = "Scenic colorful image"
	fallbackShortPrompt = "Scenic Image"

	maxSummaryWords  = 12
	keepSummaryWords = 8
	fallbackWords    = 6
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	clauseBreakRe   = regexp.MustCompile(`[.\n;\-—]`)
	wordRe          = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

var summaryStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "with": true,
	"in": true, "on": true, "for": true, "of": true, "to": true, "by": true,
	"is": true, "are": true, "that": true, "this": true, "as": true, "from": true,
	"create": true, "image": true, "showing": true, "here": true,
	"detailed": true, "prompt": true, "ai": true, "generation": true,
}

// cleanSummary normalizes a model-written short phrase.
func cleanSummary(reply string) string {
	short := strings.Trim(strings.TrimSpace(reply), `"'`)
	if words := strings.Fields(short); len(words) > maxSummaryWords {
		short = strings.Join(words[:keepSummaryWords], " ")
	}
	if short == "" {
		return defaultShortPrompt
	}
	return short
}

// SummarizeFallback derives a short title-cased phrase from text without a
// model call: parentheticals are dropped, only the first clause is kept, and
// stopwords are removed. The result has at most six words and is never empty.
func SummarizeFallback(text string) string {
	t := parentheticalRe.ReplaceAllString(text, "")
	clause := clauseBreakRe.Split(t, 2)[0]

	var content []string
	for _, w := range wordRe.FindAllString(clause, -1) {
		if !summaryStopwords[strings.ToLower(w)] {
			content = append(content, w)
		}
	}
	if len(content) == 0 {
		content = wordRe.FindAllString(text, fallbackWords)
	}
	if len(content) > fallbackWords {
		content = content[:fallbackWords]
	}

	if len(content) < 2 {
		return fallbackShortPrompt
	}
	for i, w := range content {
		content[i] = capitalize(w)
	}
	return strings.Join(content, " ")
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
