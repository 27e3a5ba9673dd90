package main

import (
	"regexp"
	"strings"
)

var (
	bracketedRe     = regexp.MustCompile(`\[.*?\]`)
	parentheticalRe = regexp.MustCompile(`\(.*?\)`)
	newlineRunRe    = regexp.MustCompile(`\n+`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// cleanCaptionText strips bracketed and parenthetical annotations such as
// [Music] or (applause) from a caption cue, then collapses the remaining
// whitespace to single spaces and trims. Annotation removal runs first so the
// collapse pass also swallows the gaps it leaves behind. Annotations never
// span newlines.
func cleanCaptionText(text string) string {
	text = bracketedRe.ReplaceAllString(text, "")
	text = parentheticalRe.ReplaceAllString(text, "")
	text = newlineRunRe.ReplaceAllString(text, " ")
	text = whitespaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
