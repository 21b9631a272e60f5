package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Slugify turns a blog title into a URL slug with a random suffix so two
// posts with the same title never collide.
func Slugify(title string) string {
	slug := nonAlphanumeric.ReplaceAllString(title, " ")
	slug = strings.TrimSpace(slug)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return slug + "-" + uuid.NewString()
}
