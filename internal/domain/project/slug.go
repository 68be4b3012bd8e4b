package project

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify turns a title into a project code: lowercase, whitespace runs
// become a single hyphen, anything outside [a-z0-9-] is dropped.
func Slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}
