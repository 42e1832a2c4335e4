package service

import (
	"regexp"
	"strings"
)

// SafetyPrefix opens every sanitized image prompt.
const SafetyPrefix = "A safe, family-friendly, peaceful photorealistic image of"

const emptySanitizedScene = " a scenic, colorful scene."

// unsafeTerms are removed from prompts an image provider rejected as unsafe.
var unsafeTerms = []string{
	"blood", "bloody", "gore", "gory",
	"violent", "violence",
	"kill", "kills", "killed", "killing",
	"murder", "murders", "murdered",
	"dead", "death", "injured",
	"weapon", "weapons", "gun", "guns", "knife", "knives", "bomb", "bombs",
	"porn", "sexual", "nude", "naked",
	"celebrity", "celebrities", "famous", "real person", "face of",
	"graphic",
}

var unsafeTermRe = buildTermPattern(unsafeTerms)

func buildTermPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// SanitizePrompt strips unsafe terms, collapses whitespace and prepends
// SafetyPrefix. An empty remainder becomes a generic scenic prompt.
func SanitizePrompt(prompt string) string {
	cleaned := unsafeTermRe.ReplaceAllString(prompt, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return SafetyPrefix + emptySanitizedScene
	}
	return SafetyPrefix + " " + cleaned
}
